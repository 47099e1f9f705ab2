package interfaces

import (
	"context"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// SeasonRepository defines the interface for Season data access
type SeasonRepository interface {
	// Create creates a new season with auto-generated ID
	Create(ctx context.Context, s *model.Season) (*model.Season, error)

	// Get retrieves a season by ID
	Get(ctx context.Context, id int64) (*model.Season, error)

	// GetCurrent retrieves the season marked as current.
	// Returns nil, nil when no season is current.
	GetCurrent(ctx context.Context) (*model.Season, error)

	// GetByYear retrieves a season by its year.
	// Returns nil, nil when no season exists for the year.
	GetByYear(ctx context.Context, year int) (*model.Season, error)

	// List retrieves seasons ordered by year descending
	List(ctx context.Context, includeArchived bool) ([]*model.Season, error)

	// Update updates an existing season
	Update(ctx context.Context, s *model.Season) (*model.Season, error)

	// Delete deletes a season by ID
	Delete(ctx context.Context, id int64) error

	// ClearCurrent unmarks every season except the given one.
	// The single-current invariant is maintained through this call.
	ClearCurrent(ctx context.Context, exceptID int64) error
}

// ArchiveRepository defines the interface for finalized season archives
type ArchiveRepository interface {
	Create(ctx context.Context, a *model.ArchiveSeason) (*model.ArchiveSeason, error)
	GetByYear(ctx context.Context, year int) (*model.ArchiveSeason, error)
	List(ctx context.Context) ([]*model.ArchiveSeason, error)
	Delete(ctx context.Context, id int64) error
}
