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

type fieldRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFieldRepository(client *firestore.Client) *fieldRepository {
	return &fieldRepository{client: client}
}

func (r *fieldRepository) collection() string {
	return prefixed(r.collectionPrefix, "registration_fields")
}

func (r *fieldRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *fieldRepository) Create(ctx context.Context, f *model.RegistrationField) (*model.RegistrationField, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "field_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *f
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create registration field", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *fieldRepository) Get(ctx context.Context, id int64) (*model.RegistrationField, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "registration field not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get registration field", goerr.V("id", id))
	}

	var f model.RegistrationField
	if err := docSnap.DataTo(&f); err != nil {
		return nil, goerr.Wrap(err, "failed to decode registration field", goerr.V("id", id))
	}
	return &f, nil
}

func (r *fieldRepository) ListBySeason(ctx context.Context, seasonID int64) ([]*model.RegistrationField, error) {
	iter := r.client.Collection(r.collection()).Where("SeasonID", "==", seasonID).Documents(ctx)
	defer iter.Stop()

	var fields []*model.RegistrationField
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate registration fields", goerr.V("season_id", seasonID))
		}

		var f model.RegistrationField
		if err := docSnap.DataTo(&f); err != nil {
			return nil, goerr.Wrap(err, "failed to decode registration field", goerr.V("doc_id", docSnap.Ref.ID))
		}
		fields = append(fields, &f)
	}

	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].DisplayOrder < fields[j].DisplayOrder
	})
	return fields, nil
}

func (r *fieldRepository) Update(ctx context.Context, f *model.RegistrationField) (*model.RegistrationField, error) {
	docID := fmt.Sprintf("%d", f.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	existing, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "registration field not found", goerr.V("id", f.ID))
		}
		return nil, goerr.Wrap(err, "failed to check field existence", goerr.V("id", f.ID))
	}

	var prev model.RegistrationField
	if err := existing.DataTo(&prev); err != nil {
		return nil, goerr.Wrap(err, "failed to decode registration field", goerr.V("id", f.ID))
	}

	updated := *f
	updated.CreatedAt = prev.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update registration field", goerr.V("id", f.ID))
	}
	return &updated, nil
}

func (r *fieldRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "registration field not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check field existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete registration field", goerr.V("id", id))
	}
	return nil
}
