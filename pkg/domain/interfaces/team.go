package interfaces

import (
	"context"
	"time"

	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/domain/types"
)

// TeamFilter narrows a team listing. Zero values mean "no constraint".
type TeamFilter struct {
	SeasonID int64
	Status   types.TeamStatus
	League   types.League
}

// TeamRepository defines the interface for Team data access
type TeamRepository interface {
	// Create creates a new team with auto-generated ID
	Create(ctx context.Context, t *model.Team) (*model.Team, error)

	// Get retrieves a team by ID
	Get(ctx context.Context, id int64) (*model.Team, error)

	// List retrieves teams matching the filter, newest first
	List(ctx context.Context, filter TeamFilter) ([]*model.Team, error)

	// Update updates an existing team
	Update(ctx context.Context, t *model.Team) (*model.Team, error)

	// Delete deletes a team by ID
	Delete(ctx context.Context, id int64) error

	// Count counts teams matching the filter
	Count(ctx context.Context, filter TeamFilter) (int, error)

	// CountCreatedSince counts teams registered at or after the given time
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}
