package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository is the identity record store: one document per account.
type Repository interface {
	// Create persists a new account and returns it with store-assigned
	// fields (id, timestamps) filled in. Returns ErrDuplicateEmail when the
	// email unique constraint is violated.
	Create(ctx context.Context, email, passwordHash string, profile Profile) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	// UpdateProfile replaces the profile subdocument, leaving every other
	// field untouched, and returns the updated account.
	UpdateProfile(ctx context.Context, id uuid.UUID, profile Profile) (*Account, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
