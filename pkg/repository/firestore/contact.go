package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/robofest-ru/robofest/pkg/domain/model"
)

type contactRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newContactRepository(client *firestore.Client) *contactRepository {
	return &contactRepository{client: client}
}

func (r *contactRepository) collection() string {
	return prefixed(r.collectionPrefix, "contact_messages")
}

func (r *contactRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *contactRepository) Create(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "contact_counter")
	if err != nil {
		return nil, err
	}

	created := *m
	created.ID = id
	created.CreatedAt = time.Now().UTC()

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create contact message", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *contactRepository) Get(ctx context.Context, id int64) (*model.ContactMessage, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "contact message not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get contact message", goerr.V("id", id))
	}

	var m model.ContactMessage
	if err := docSnap.DataTo(&m); err != nil {
		return nil, goerr.Wrap(err, "failed to decode contact message", goerr.V("id", id))
	}
	return &m, nil
}

func (r *contactRepository) List(ctx context.Context) ([]*model.ContactMessage, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var messages []*model.ContactMessage
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate contact messages")
		}

		var m model.ContactMessage
		if err := docSnap.DataTo(&m); err != nil {
			return nil, goerr.Wrap(err, "failed to decode contact message", goerr.V("doc_id", docSnap.Ref.ID))
		}
		messages = append(messages, &m)
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *contactRepository) Update(ctx context.Context, m *model.ContactMessage) (*model.ContactMessage, error) {
	docID := fmt.Sprintf("%d", m.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	existing, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "contact message not found", goerr.V("id", m.ID))
		}
		return nil, goerr.Wrap(err, "failed to check message existence", goerr.V("id", m.ID))
	}

	var prev model.ContactMessage
	if err := existing.DataTo(&prev); err != nil {
		return nil, goerr.Wrap(err, "failed to decode contact message", goerr.V("id", m.ID))
	}

	updated := *m
	updated.CreatedAt = prev.CreatedAt

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update contact message", goerr.V("id", m.ID))
	}
	return &updated, nil
}

func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "contact message not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check message existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete contact message", goerr.V("id", id))
	}
	return nil
}

func (r *contactRepository) Count(ctx context.Context) (int, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count contact messages")
		}
		count++
	}
	return count, nil
}

func (r *contactRepository) CountUnread(ctx context.Context) (int, error) {
	iter := r.client.Collection(r.collection()).Where("IsRead", "==", false).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count unread messages")
		}
		count++
	}
	return count, nil
}
