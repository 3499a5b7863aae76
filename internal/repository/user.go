package repository

import (
	"context"
	"errors"

	"apptrack/internal/model"
)

// ErrDuplicateEmail is returned by Create when the normalized email is
// already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines data access for user accounts using SQL queries only.
// No business logic here — strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user record. Email must already be normalized
	// by the caller. Returns ErrDuplicateEmail on a unique violation.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByEmail returns a user by normalized email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns a user by its ID.
	FindByID(ctx context.Context, id string) (*model.User, error)
}
