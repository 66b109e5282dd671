package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for staff accounts
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}
