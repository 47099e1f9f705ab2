package interfaces

import (
	"context"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// PartnerRepository defines the interface for Partner data access
type PartnerRepository interface {
	// Create creates a new partner with auto-generated ID
	Create(ctx context.Context, p *model.Partner) (*model.Partner, error)

	// Get retrieves a partner by ID
	Get(ctx context.Context, id int64) (*model.Partner, error)

	// List retrieves partners ordered ascending by display order.
	// activeOnly restricts the listing to active partners.
	List(ctx context.Context, activeOnly bool) ([]*model.Partner, error)

	// Update updates an existing partner
	Update(ctx context.Context, p *model.Partner) (*model.Partner, error)

	// Delete deletes a partner by ID
	Delete(ctx context.Context, id int64) error

	// Count counts all partners
	Count(ctx context.Context) (int, error)
}
