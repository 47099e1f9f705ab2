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

type teamRepository struct {
	mu     sync.RWMutex
	teams  map[int64]*model.Team
	nextID int64
}

func newTeamRepository() *teamRepository {
	return &teamRepository{
		teams:  make(map[int64]*model.Team),
		nextID: 1,
	}
}

func cloneTeam(t *model.Team) *model.Team {
	c := *t
	if t.CustomFields != nil {
		c.CustomFields = make(map[string]any, len(t.CustomFields))
		for k, v := range t.CustomFields {
			c.CustomFields[k] = v
		}
	}
	return &c
}

func matchTeam(t *model.Team, filter interfaces.TeamFilter) bool {
	if filter.SeasonID != 0 && t.SeasonID != filter.SeasonID {
		return false
	}
	if filter.Status != "" && t.Status != filter.Status {
		return false
	}
	if filter.League != "" && t.League != filter.League {
		return false
	}
	return true
}

func (r *teamRepository) Create(ctx context.Context, t *model.Team) (*model.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := cloneTeam(t)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.teams[created.ID] = created
	return cloneTeam(created), nil
}

func (r *teamRepository) Get(ctx context.Context, id int64) (*model.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.teams[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "team not found", goerr.V("id", id))
	}
	return cloneTeam(t), nil
}

func (r *teamRepository) List(ctx context.Context, filter interfaces.TeamFilter) ([]*model.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := make([]*model.Team, 0)
	for _, t := range r.teams {
		if matchTeam(t, filter) {
			teams = append(teams, cloneTeam(t))
		}
	}
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].CreatedAt.After(teams[j].CreatedAt)
	})
	return teams, nil
}

func (r *teamRepository) Update(ctx context.Context, t *model.Team) (*model.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.teams[t.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "team not found", goerr.V("id", t.ID))
	}

	updated := cloneTeam(t)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.teams[updated.ID] = updated
	return cloneTeam(updated), nil
}

func (r *teamRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[id]; !exists {
		return goerr.Wrap(ErrNotFound, "team not found", goerr.V("id", id))
	}
	delete(r.teams, id)
	return nil
}

func (r *teamRepository) Count(ctx context.Context, filter interfaces.TeamFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, t := range r.teams {
		if matchTeam(t, filter) {
			count++
		}
	}
	return count, nil
}

func (r *teamRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, t := range r.teams {
		if !t.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}
