package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
)

type newsRepository struct {
	mu     sync.RWMutex
	news   map[int64]*model.News
	nextID int64
}

func newNewsRepository() *newsRepository {
	return &newsRepository{
		news:   make(map[int64]*model.News),
		nextID: 1,
	}
}

func cloneNews(n *model.News) *model.News {
	c := *n
	if n.Gallery != nil {
		c.Gallery = make([]string, len(n.Gallery))
		copy(c.Gallery, n.Gallery)
	}
	if n.ScheduledPublishAt != nil {
		at := *n.ScheduledPublishAt
		c.ScheduledPublishAt = &at
	}
	if n.PublishDate != nil {
		at := *n.PublishDate
		c.PublishDate = &at
	}
	return &c
}

func (r *newsRepository) Create(ctx context.Context, n *model.News) (*model.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := cloneNews(n)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.news[created.ID] = created
	return cloneNews(created), nil
}

func (r *newsRepository) Get(ctx context.Context, id int64) (*model.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.news[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "news not found", goerr.V("id", id))
	}
	return cloneNews(n), nil
}

func (r *newsRepository) GetBySlug(ctx context.Context, slug string) (*model.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.news {
		if n.Slug == slug {
			return cloneNews(n), nil
		}
	}
	return nil, nil
}

func (r *newsRepository) List(ctx context.Context, filter interfaces.NewsFilter) ([]*model.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	news := make([]*model.News, 0)
	for _, n := range r.news {
		if filter.PublishedOnly && !n.IsPublished {
			continue
		}
		if filter.CategoryID != 0 && n.CategoryID != filter.CategoryID {
			continue
		}
		news = append(news, cloneNews(n))
	}
	sort.Slice(news, func(i, j int) bool {
		return news[i].CreatedAt.After(news[j].CreatedAt)
	})
	if filter.Limit > 0 && len(news) > filter.Limit {
		news = news[:filter.Limit]
	}
	return news, nil
}

func (r *newsRepository) Update(ctx context.Context, n *model.News) (*model.News, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.news[n.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "news not found", goerr.V("id", n.ID))
	}

	updated := cloneNews(n)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.news[updated.ID] = updated
	return cloneNews(updated), nil
}

func (r *newsRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.news[id]; !exists {
		return goerr.Wrap(ErrNotFound, "news not found", goerr.V("id", id))
	}
	delete(r.news, id)
	return nil
}

func (r *newsRepository) ListScheduledDue(ctx context.Context, now time.Time) ([]*model.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	due := make([]*model.News, 0)
	for _, n := range r.news {
		if n.IsPublished || n.ScheduledPublishAt == nil {
			continue
		}
		if !n.ScheduledPublishAt.After(now) {
			due = append(due, cloneNews(n))
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].ScheduledPublishAt.Before(*due[j].ScheduledPublishAt)
	})
	return due, nil
}

func (r *newsRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.news), nil
}

type categoryRepository struct {
	mu         sync.RWMutex
	categories map[int64]*model.NewsCategory
	nextID     int64
}

func newCategoryRepository() *categoryRepository {
	return &categoryRepository{
		categories: make(map[int64]*model.NewsCategory),
		nextID:     1,
	}
}

func cloneCategory(c *model.NewsCategory) *model.NewsCategory {
	cp := *c
	return &cp
}

func (r *categoryRepository) Create(ctx context.Context, c *model.NewsCategory) (*model.NewsCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := cloneCategory(c)
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	r.nextID++

	r.categories[created.ID] = created
	return cloneCategory(created), nil
}

func (r *categoryRepository) Get(ctx context.Context, id int64) (*model.NewsCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.categories[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "news category not found", goerr.V("id", id))
	}
	return cloneCategory(c), nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*model.NewsCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Slug == slug {
			return cloneCategory(c), nil
		}
	}
	return nil, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.NewsCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*model.NewsCategory, 0, len(r.categories))
	for _, c := range r.categories {
		categories = append(categories, cloneCategory(c))
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[id]; !exists {
		return goerr.Wrap(ErrNotFound, "news category not found", goerr.V("id", id))
	}
	delete(r.categories, id)
	return nil
}
