package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

type vkRepository struct {
	mu          sync.RWMutex
	integration *model.VKIntegration
	imported    map[int64]*model.VKImportedPost
	nextIntID   int64
	nextPostID  int64
}

func newVKRepository() *vkRepository {
	return &vkRepository{
		imported:   make(map[int64]*model.VKImportedPost),
		nextIntID:  1,
		nextPostID: 1,
	}
}

func cloneIntegration(v *model.VKIntegration) *model.VKIntegration {
	c := *v
	if v.HashtagCategoryMap != nil {
		c.HashtagCategoryMap = make(map[string]int64, len(v.HashtagCategoryMap))
		for k, id := range v.HashtagCategoryMap {
			c.HashtagCategoryMap[k] = id
		}
	}
	if v.LastCheckedAt != nil {
		at := *v.LastCheckedAt
		c.LastCheckedAt = &at
	}
	return &c
}

func cloneImported(p *model.VKImportedPost) *model.VKImportedPost {
	c := *p
	if p.VKPostDate != nil {
		at := *p.VKPostDate
		c.VKPostDate = &at
	}
	return &c
}

func (r *vkRepository) GetIntegration(ctx context.Context) (*model.VKIntegration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.integration == nil {
		return nil, nil
	}
	return cloneIntegration(r.integration), nil
}

func (r *vkRepository) PutIntegration(ctx context.Context, v *model.VKIntegration) (*model.VKIntegration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := cloneIntegration(v)
	created.ID = r.nextIntID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextIntID++

	r.integration = created
	return cloneIntegration(created), nil
}

func (r *vkRepository) UpdateIntegration(ctx context.Context, v *model.VKIntegration) (*model.VKIntegration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.integration == nil || r.integration.ID != v.ID {
		return nil, goerr.Wrap(ErrNotFound, "vk integration not found", goerr.V("id", v.ID))
	}

	updated := cloneIntegration(v)
	updated.CreatedAt = r.integration.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.integration = updated
	return cloneIntegration(updated), nil
}

func (r *vkRepository) DeleteIntegration(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.integration == nil {
		return goerr.Wrap(ErrNotFound, "vk integration not found")
	}
	r.integration = nil
	return nil
}

func (r *vkRepository) CreateImported(ctx context.Context, p *model.VKImportedPost) (*model.VKImportedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := cloneImported(p)
	created.ID = r.nextPostID
	created.ImportedAt = time.Now().UTC()
	r.nextPostID++

	r.imported[created.ID] = created
	return cloneImported(created), nil
}

func (r *vkRepository) GetImported(ctx context.Context, integrationID, vkPostID int64) (*model.VKImportedPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.imported {
		if p.IntegrationID == integrationID && p.VKPostID == vkPostID {
			return cloneImported(p), nil
		}
	}
	return nil, nil
}

func (r *vkRepository) DeleteImported(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.imported[id]; !exists {
		return goerr.Wrap(ErrNotFound, "vk imported post not found", goerr.V("id", id))
	}
	delete(r.imported, id)
	return nil
}

func (r *vkRepository) ListImported(ctx context.Context, limit int) ([]*model.VKImportedPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*model.VKImportedPost, 0, len(r.imported))
	for _, p := range r.imported {
		posts = append(posts, cloneImported(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ImportedAt.After(posts[j].ImportedAt)
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (r *vkRepository) DeleteAllImported(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.imported)
	r.imported = make(map[int64]*model.VKImportedPost)
	return count, nil
}

func (r *vkRepository) CountImported(ctx context.Context, integrationID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.imported {
		if p.IntegrationID == integrationID {
			count++
		}
	}
	return count, nil
}
