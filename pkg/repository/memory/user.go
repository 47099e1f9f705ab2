package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

type userRepository struct {
	mu     sync.RWMutex
	users  map[int64]*model.AdminUser
	nextID int64
}

func newUserRepository() *userRepository {
	return &userRepository{
		users:  make(map[int64]*model.AdminUser),
		nextID: 1,
	}
}

func cloneUser(u *model.AdminUser) *model.AdminUser {
	c := *u
	if u.LastLogin != nil {
		at := *u.LastLogin
		c.LastLogin = &at
	}
	return &c
}

func (r *userRepository) Create(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := cloneUser(u)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.users[created.ID] = created
	return cloneUser(created), nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}
	return cloneUser(u), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.AdminUser, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, u *model.AdminUser) (*model.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.users[u.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", u.ID))
	}

	updated := cloneUser(u)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.users[updated.ID] = updated
	return cloneUser(updated), nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[id]; !exists {
		return goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}
	delete(r.users, id)
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}
