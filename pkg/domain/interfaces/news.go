package interfaces

import (
	"context"
	"time"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

// NewsFilter narrows a news listing. Zero values mean "no constraint".
type NewsFilter struct {
	PublishedOnly bool
	CategoryID    int64
	Limit         int
}

// NewsRepository defines the interface for News data access
type NewsRepository interface {
	// Create creates a new news record with auto-generated ID
	Create(ctx context.Context, n *model.News) (*model.News, error)

	// Get retrieves a news record by ID
	Get(ctx context.Context, id int64) (*model.News, error)

	// GetBySlug retrieves a news record by slug.
	// Returns nil, nil when no record has the slug.
	GetBySlug(ctx context.Context, slug string) (*model.News, error)

	// List retrieves news matching the filter, newest first
	List(ctx context.Context, filter NewsFilter) ([]*model.News, error)

	// Update updates an existing news record
	Update(ctx context.Context, n *model.News) (*model.News, error)

	// Delete deletes a news record by ID
	Delete(ctx context.Context, id int64) error

	// ListScheduledDue retrieves unpublished records whose scheduled
	// publication time is at or before now.
	ListScheduledDue(ctx context.Context, now time.Time) ([]*model.News, error)

	// Count counts all news records
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the interface for NewsCategory data access
type CategoryRepository interface {
	Create(ctx context.Context, c *model.NewsCategory) (*model.NewsCategory, error)
	Get(ctx context.Context, id int64) (*model.NewsCategory, error)

	// GetBySlug returns nil, nil when no category has the slug
	GetBySlug(ctx context.Context, slug string) (*model.NewsCategory, error)

	List(ctx context.Context) ([]*model.NewsCategory, error)
	Delete(ctx context.Context, id int64) error
}
