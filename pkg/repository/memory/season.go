package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

type seasonRepository struct {
	mu      sync.RWMutex
	seasons map[int64]*model.Season
	nextID  int64
}

func newSeasonRepository() *seasonRepository {
	return &seasonRepository{
		seasons: make(map[int64]*model.Season),
		nextID:  1,
	}
}

func cloneSeason(s *model.Season) *model.Season {
	c := *s
	return &c
}

func (r *seasonRepository) Create(ctx context.Context, s *model.Season) (*model.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := cloneSeason(s)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.seasons[created.ID] = created
	return cloneSeason(created), nil
}

func (r *seasonRepository) Get(ctx context.Context, id int64) (*model.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.seasons[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "season not found", goerr.V("id", id))
	}
	return cloneSeason(s), nil
}

func (r *seasonRepository) GetCurrent(ctx context.Context) (*model.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.seasons {
		if s.IsCurrent {
			return cloneSeason(s), nil
		}
	}
	return nil, nil
}

func (r *seasonRepository) GetByYear(ctx context.Context, year int) (*model.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.seasons {
		if s.Year == year {
			return cloneSeason(s), nil
		}
	}
	return nil, nil
}

func (r *seasonRepository) List(ctx context.Context, includeArchived bool) ([]*model.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seasons := make([]*model.Season, 0, len(r.seasons))
	for _, s := range r.seasons {
		if !includeArchived && s.IsArchived {
			continue
		}
		seasons = append(seasons, cloneSeason(s))
	}
	sort.Slice(seasons, func(i, j int) bool {
		return seasons[i].Year > seasons[j].Year
	})
	return seasons, nil
}

func (r *seasonRepository) Update(ctx context.Context, s *model.Season) (*model.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.seasons[s.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "season not found", goerr.V("id", s.ID))
	}

	updated := cloneSeason(s)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.seasons[updated.ID] = updated
	return cloneSeason(updated), nil
}

func (r *seasonRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.seasons[id]; !exists {
		return goerr.Wrap(ErrNotFound, "season not found", goerr.V("id", id))
	}
	delete(r.seasons, id)
	return nil
}

func (r *seasonRepository) ClearCurrent(ctx context.Context, exceptID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.seasons {
		if s.ID != exceptID && s.IsCurrent {
			s.IsCurrent = false
			s.UpdatedAt = time.Now().UTC()
		}
	}
	return nil
}

type archiveRepository struct {
	mu       sync.RWMutex
	archives map[int64]*model.ArchiveSeason
	nextID   int64
}

func newArchiveRepository() *archiveRepository {
	return &archiveRepository{
		archives: make(map[int64]*model.ArchiveSeason),
		nextID:   1,
	}
}

func cloneArchive(a *model.ArchiveSeason) *model.ArchiveSeason {
	c := *a
	return &c
}

func (r *archiveRepository) Create(ctx context.Context, a *model.ArchiveSeason) (*model.ArchiveSeason, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := cloneArchive(a)
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	r.nextID++

	r.archives[created.ID] = created
	return cloneArchive(created), nil
}

func (r *archiveRepository) GetByYear(ctx context.Context, year int) (*model.ArchiveSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.archives {
		if a.Year == year {
			return cloneArchive(a), nil
		}
	}
	return nil, nil
}

func (r *archiveRepository) List(ctx context.Context) ([]*model.ArchiveSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	archives := make([]*model.ArchiveSeason, 0, len(r.archives))
	for _, a := range r.archives {
		archives = append(archives, cloneArchive(a))
	}
	sort.Slice(archives, func(i, j int) bool {
		return archives[i].Year > archives[j].Year
	})
	return archives, nil
}

func (r *archiveRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.archives[id]; !exists {
		return goerr.Wrap(ErrNotFound, "archive season not found", goerr.V("id", id))
	}
	delete(r.archives, id)
	return nil
}
