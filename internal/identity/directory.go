// Package identity is the user directory: it stores credentials and resolves
// the email addresses the API speaks to the stable user ids the custody core
// works with.
package identity

import (
	"errors"

	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("email or username already taken")
)

type Directory interface {
	// Create inserts a new user and returns it with its id assigned.
	// Returns ErrDuplicateUser when the email or username is taken.
	Create(user model.User) (model.User, error)
	// FindByEmail returns ErrUserNotFound when no user has that email.
	FindByEmail(email string) (model.User, error)
	// FindById returns ErrUserNotFound when the id does not resolve.
	FindById(id uint64) (model.User, error)
}
