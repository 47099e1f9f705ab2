package interfaces

import (
	"context"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// VKRepository defines the interface for VK integration data access.
// At most one integration record exists; Put replaces any existing one.
type VKRepository interface {
	// GetIntegration retrieves the integration settings.
	// Returns nil, nil when not configured.
	GetIntegration(ctx context.Context) (*model.VKIntegration, error)

	// PutIntegration creates or replaces the integration settings
	PutIntegration(ctx context.Context, v *model.VKIntegration) (*model.VKIntegration, error)

	// UpdateIntegration updates the existing integration settings
	UpdateIntegration(ctx context.Context, v *model.VKIntegration) (*model.VKIntegration, error)

	// DeleteIntegration removes the integration settings
	DeleteIntegration(ctx context.Context) error

	// CreateImported records an imported wall post
	CreateImported(ctx context.Context, p *model.VKImportedPost) (*model.VKImportedPost, error)

	// GetImported retrieves the import record for a wall post.
	// Returns nil, nil when the post was never imported.
	GetImported(ctx context.Context, integrationID, vkPostID int64) (*model.VKImportedPost, error)

	// DeleteImported removes one import record
	DeleteImported(ctx context.Context, id int64) error

	// ListImported retrieves import records, newest first, up to limit
	ListImported(ctx context.Context, limit int) ([]*model.VKImportedPost, error)

	// DeleteAllImported removes every import record and returns how many
	// were removed
	DeleteAllImported(ctx context.Context) (int, error)

	// CountImported counts import records for the integration
	CountImported(ctx context.Context, integrationID int64) (int, error)
}
