package interfaces

import (
	"context"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// ContactRepository defines the interface for ContactMessage data access
type ContactRepository interface {
	// Create creates a new message with auto-generated ID
	Create(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error)

	// Get retrieves a message by ID
	Get(ctx context.Context, id int64) (*model.ContactMessage, error)

	// List retrieves messages, newest first
	List(ctx context.Context) ([]*model.ContactMessage, error)

	// Update updates an existing message (read/replied flags)
	Update(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error)

	// Delete deletes a message by ID
	Delete(ctx context.Context, id int64) error

	// Count counts all messages
	Count(ctx context.Context) (int, error)

	// CountUnread counts messages not yet marked as read
	CountUnread(ctx context.Context) (int, error)
}
