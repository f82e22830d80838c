// Package favorites keeps each user's bookmarked characters. Pure membership,
// no custody semantics.
package favorites

import "github.com/nemesia-app/villaindex-backend/internal/pkg/model"

type Store interface {
	// Add is idempotent: favoriting a character twice keeps one row.
	Add(userId uint64, characterId string) (model.Favorite, error)
	// Remove is idempotent: removing an absent favorite is not an error.
	Remove(userId uint64, characterId string) error
	ListByUser(userId uint64) ([]model.Favorite, error)
}
