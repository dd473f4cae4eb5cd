// Package domain defines the board user account.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/onionboard/backend/internal/errors"
)

// User is a registered board member. Username is the token subject.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates the username or email is already taken.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
