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

type partnerRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPartnerRepository(client *firestore.Client) *partnerRepository {
	return &partnerRepository{client: client}
}

func (r *partnerRepository) collection() string {
	return prefixed(r.collectionPrefix, "partners")
}

func (r *partnerRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *partnerRepository) Create(ctx context.Context, p *model.Partner) (*model.Partner, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "partner_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *p
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create partner", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *partnerRepository) Get(ctx context.Context, id int64) (*model.Partner, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "partner not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get partner", goerr.V("id", id))
	}

	var p model.Partner
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode partner", goerr.V("id", id))
	}
	return &p, nil
}

func (r *partnerRepository) List(ctx context.Context, activeOnly bool) ([]*model.Partner, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var partners []*model.Partner
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate partners")
		}

		var p model.Partner
		if err := docSnap.DataTo(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to decode partner", goerr.V("doc_id", docSnap.Ref.ID))
		}
		if activeOnly && !p.Active {
			continue
		}
		partners = append(partners, &p)
	}

	sort.SliceStable(partners, func(i, j int) bool {
		return partners[i].DisplayOrder < partners[j].DisplayOrder
	})
	return partners, nil
}

func (r *partnerRepository) Update(ctx context.Context, p *model.Partner) (*model.Partner, error) {
	docID := fmt.Sprintf("%d", p.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	existing, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "partner not found", goerr.V("id", p.ID))
		}
		return nil, goerr.Wrap(err, "failed to check partner existence", goerr.V("id", p.ID))
	}

	var prev model.Partner
	if err := existing.DataTo(&prev); err != nil {
		return nil, goerr.Wrap(err, "failed to decode partner", goerr.V("id", p.ID))
	}

	updated := *p
	updated.CreatedAt = prev.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update partner", goerr.V("id", p.ID))
	}
	return &updated, nil
}

func (r *partnerRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "partner not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check partner existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete partner", goerr.V("id", id))
	}
	return nil
}

func (r *partnerRepository) Count(ctx context.Context) (int, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count partners")
		}
		count++
	}
	return count, nil
}
