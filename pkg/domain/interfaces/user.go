package interfaces

import (
	"context"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// UserRepository defines the interface for AdminUser data access
type UserRepository interface {
	// Create creates a new user with auto-generated ID
	Create(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id int64) (*model.AdminUser, error)

	// GetByEmail retrieves a user by email.
	// Returns nil, nil when no user has the email.
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)

	// List retrieves all users
	List(ctx context.Context) ([]*model.AdminUser, error)

	// Update updates an existing user
	Update(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error)

	// Delete deletes a user by ID
	Delete(ctx context.Context, id int64) error

	// Count counts all users
	Count(ctx context.Context) (int, error)
}
