package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

type fieldRepository struct {
	mu     sync.RWMutex
	fields map[int64]*model.RegistrationField
	nextID int64
}

func newFieldRepository() *fieldRepository {
	return &fieldRepository{
		fields: make(map[int64]*model.RegistrationField),
		nextID: 1,
	}
}

func cloneField(f *model.RegistrationField) *model.RegistrationField {
	c := *f
	if f.Options != nil {
		c.Options = make([]string, len(f.Options))
		copy(c.Options, f.Options)
	}
	return &c
}

func (r *fieldRepository) Create(ctx context.Context, f *model.RegistrationField) (*model.RegistrationField, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := cloneField(f)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.fields[created.ID] = created
	return cloneField(created), nil
}

func (r *fieldRepository) Get(ctx context.Context, id int64) (*model.RegistrationField, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, exists := r.fields[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "registration field not found", goerr.V("id", id))
	}
	return cloneField(f), nil
}

func (r *fieldRepository) ListBySeason(ctx context.Context, seasonID int64) ([]*model.RegistrationField, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fields := make([]*model.RegistrationField, 0)
	for _, f := range r.fields {
		if f.SeasonID == seasonID {
			fields = append(fields, cloneField(f))
		}
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].DisplayOrder < fields[j].DisplayOrder
	})
	return fields, nil
}

func (r *fieldRepository) Update(ctx context.Context, f *model.RegistrationField) (*model.RegistrationField, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.fields[f.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "registration field not found", goerr.V("id", f.ID))
	}

	updated := cloneField(f)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.fields[updated.ID] = updated
	return cloneField(updated), nil
}

func (r *fieldRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fields[id]; !exists {
		return goerr.Wrap(ErrNotFound, "registration field not found", goerr.V("id", id))
	}
	delete(r.fields, id)
	return nil
}
