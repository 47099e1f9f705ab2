package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

type partnerRepository struct {
	mu       sync.RWMutex
	partners map[int64]*model.Partner
	nextID   int64
}

func newPartnerRepository() *partnerRepository {
	return &partnerRepository{
		partners: make(map[int64]*model.Partner),
		nextID:   1,
	}
}

func clonePartner(p *model.Partner) *model.Partner {
	c := *p
	return &c
}

func (r *partnerRepository) Create(ctx context.Context, p *model.Partner) (*model.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := clonePartner(p)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.partners[created.ID] = created
	return clonePartner(created), nil
}

func (r *partnerRepository) Get(ctx context.Context, id int64) (*model.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.partners[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "partner not found", goerr.V("id", id))
	}
	return clonePartner(p), nil
}

func (r *partnerRepository) List(ctx context.Context, activeOnly bool) ([]*model.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	partners := make([]*model.Partner, 0, len(r.partners))
	for _, p := range r.partners {
		if activeOnly && !p.Active {
			continue
		}
		partners = append(partners, clonePartner(p))
	}
	sort.SliceStable(partners, func(i, j int) bool {
		return partners[i].DisplayOrder < partners[j].DisplayOrder
	})
	return partners, nil
}

func (r *partnerRepository) Update(ctx context.Context, p *model.Partner) (*model.Partner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.partners[p.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "partner not found", goerr.V("id", p.ID))
	}

	updated := clonePartner(p)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.partners[updated.ID] = updated
	return clonePartner(updated), nil
}

func (r *partnerRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.partners[id]; !exists {
		return goerr.Wrap(ErrNotFound, "partner not found", goerr.V("id", id))
	}
	delete(r.partners, id)
	return nil
}

func (r *partnerRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.partners), nil
}
