package interfaces

import (
	"context"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// FieldRepository defines the interface for RegistrationField data access
type FieldRepository interface {
	// Create creates a new field with auto-generated ID
	Create(ctx context.Context, f *model.RegistrationField) (*model.RegistrationField, error)

	// Get retrieves a field by ID
	Get(ctx context.Context, id int64) (*model.RegistrationField, error)

	// ListBySeason retrieves all fields of a season ordered ascending by
	// display order, including inactive ones. Callers filter for the
	// public form.
	ListBySeason(ctx context.Context, seasonID int64) ([]*model.RegistrationField, error)

	// Update updates an existing field
	Update(ctx context.Context, f *model.RegistrationField) (*model.RegistrationField, error)

	// Delete deletes a field by ID
	Delete(ctx context.Context, id int64) error
}
