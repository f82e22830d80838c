// Package custody owns villain custody: who holds a character, and the claim
// transition that captures an unheld one or takes a held one over.
package custody

import (
	"errors"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
)

var (
	ErrAlreadyHeld = errors.New("character already has a custody record")
	ErrNotHeld     = errors.New("character has no custody record")
)

// Registry is the durable characterId -> holder mapping, at most one row per
// character. Rows are created on first capture, reassigned on exchange, and
// never deleted.
type Registry interface {
	// Find returns ErrNotHeld when the character has no record.
	Find(characterId string) (model.Villain, error)
	// Create inserts a record for an unheld character. Returns ErrAlreadyHeld
	// instead of overwriting an existing one.
	Create(characterId string, holderId uint64) (model.Villain, error)
	// Reassign moves an existing record to a new holder. Returns ErrNotHeld
	// when there is nothing to move.
	Reassign(characterId string, newHolderId uint64) (model.Villain, error)
	ListByHolder(userId uint64) ([]model.Villain, error)
}
