// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create creates a new user in the database.
	// Returns ErrUsernameOrEmailTaken when a unique constraint is violated.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByLoginIdentifier retrieves a user whose username or email equals identifier.
	FindByLoginIdentifier(ctx context.Context, identifier string) (*entity.User, error)

	// ExistsByUsernameOrEmail checks if a user with the given username or email exists.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
