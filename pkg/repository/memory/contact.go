package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

type contactRepository struct {
	mu       sync.RWMutex
	messages map[int64]*model.ContactMessage
	nextID   int64
}

func newContactRepository() *contactRepository {
	return &contactRepository{
		messages: make(map[int64]*model.ContactMessage),
		nextID:   1,
	}
}

func cloneContact(m *model.ContactMessage) *model.ContactMessage {
	c := *m
	if m.RepliedAt != nil {
		at := *m.RepliedAt
		c.RepliedAt = &at
	}
	return &c
}

func (r *contactRepository) Create(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := cloneContact(m)
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	r.nextID++

	r.messages[created.ID] = created
	return cloneContact(created), nil
}

func (r *contactRepository) Get(ctx context.Context, id int64) (*model.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.messages[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "contact message not found", goerr.V("id", id))
	}
	return cloneContact(m), nil
}

func (r *contactRepository) List(ctx context.Context) ([]*model.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	messages := make([]*model.ContactMessage, 0, len(r.messages))
	for _, m := range r.messages {
		messages = append(messages, cloneContact(m))
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *contactRepository) Update(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.messages[m.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "contact message not found", goerr.V("id", m.ID))
	}

	updated := cloneContact(m)
	updated.CreatedAt = existing.CreatedAt
	r.messages[updated.ID] = updated
	return cloneContact(updated), nil
}

func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.messages[id]; !exists {
		return goerr.Wrap(ErrNotFound, "contact message not found", goerr.V("id", id))
	}
	delete(r.messages, id)
	return nil
}

func (r *contactRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages), nil
}

func (r *contactRepository) CountUnread(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.messages {
		if !m.IsRead {
			count++
		}
	}
	return count, nil
}
