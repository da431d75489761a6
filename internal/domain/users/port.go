package users

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists users. Lookups return apperr.ErrNotFound when the row
// is missing and Create returns apperr.ErrConflict on a duplicate email.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Delete removes the user; projects, subscriptions and payments cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}
