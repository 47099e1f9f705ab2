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

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
)

type teamRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTeamRepository(client *firestore.Client) *teamRepository {
	return &teamRepository{client: client}
}

func (r *teamRepository) collection() string {
	return prefixed(r.collectionPrefix, "teams")
}

func (r *teamRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *teamRepository) Create(ctx context.Context, t *model.Team) (*model.Team, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "team_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *t
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create team", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *teamRepository) Get(ctx context.Context, id int64) (*model.Team, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "team not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get team", goerr.V("id", id))
	}

	var t model.Team
	if err := docSnap.DataTo(&t); err != nil {
		return nil, goerr.Wrap(err, "failed to decode team", goerr.V("id", id))
	}
	return &t, nil
}

func (r *teamRepository) list(ctx context.Context, filter interfaces.TeamFilter) ([]*model.Team, error) {
	query := r.client.Collection(r.collection()).Query
	if filter.SeasonID != 0 {
		query = query.Where("SeasonID", "==", filter.SeasonID)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var teams []*model.Team
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate teams")
		}

		var t model.Team
		if err := docSnap.DataTo(&t); err != nil {
			return nil, goerr.Wrap(err, "failed to decode team", goerr.V("doc_id", docSnap.Ref.ID))
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.League != "" && t.League != filter.League {
			continue
		}
		teams = append(teams, &t)
	}
	return teams, nil
}

func (r *teamRepository) List(ctx context.Context, filter interfaces.TeamFilter) ([]*model.Team, error) {
	teams, err := r.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].CreatedAt.After(teams[j].CreatedAt)
	})
	return teams, nil
}

func (r *teamRepository) Update(ctx context.Context, t *model.Team) (*model.Team, error) {
	docID := fmt.Sprintf("%d", t.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	existing, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "team not found", goerr.V("id", t.ID))
		}
		return nil, goerr.Wrap(err, "failed to check team existence", goerr.V("id", t.ID))
	}

	var prev model.Team
	if err := existing.DataTo(&prev); err != nil {
		return nil, goerr.Wrap(err, "failed to decode team", goerr.V("id", t.ID))
	}

	updated := *t
	updated.CreatedAt = prev.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update team", goerr.V("id", t.ID))
	}
	return &updated, nil
}

func (r *teamRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "team not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check team existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete team", goerr.V("id", id))
	}
	return nil
}

func (r *teamRepository) Count(ctx context.Context, filter interfaces.TeamFilter) (int, error) {
	teams, err := r.list(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(teams), nil
}

func (r *teamRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	iter := r.client.Collection(r.collection()).Where("CreatedAt", ">=", since).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count recent teams")
		}
		count++
	}
	return count, nil
}
