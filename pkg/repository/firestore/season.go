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

type seasonRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSeasonRepository(client *firestore.Client) *seasonRepository {
	return &seasonRepository{client: client}
}

func (r *seasonRepository) collection() string {
	return prefixed(r.collectionPrefix, "seasons")
}

func (r *seasonRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *seasonRepository) Create(ctx context.Context, s *model.Season) (*model.Season, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "season_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *s
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create season", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *seasonRepository) Get(ctx context.Context, id int64) (*model.Season, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "season not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get season", goerr.V("id", id))
	}

	var s model.Season
	if err := docSnap.DataTo(&s); err != nil {
		return nil, goerr.Wrap(err, "failed to decode season", goerr.V("id", id))
	}
	return &s, nil
}

func (r *seasonRepository) GetCurrent(ctx context.Context) (*model.Season, error) {
	iter := r.client.Collection(r.collection()).Where("IsCurrent", "==", true).Limit(1).Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query current season")
	}

	var s model.Season
	if err := docSnap.DataTo(&s); err != nil {
		return nil, goerr.Wrap(err, "failed to decode season", goerr.V("doc_id", docSnap.Ref.ID))
	}
	return &s, nil
}

func (r *seasonRepository) GetByYear(ctx context.Context, year int) (*model.Season, error) {
	iter := r.client.Collection(r.collection()).Where("Year", "==", year).Limit(1).Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query season by year", goerr.V("year", year))
	}

	var s model.Season
	if err := docSnap.DataTo(&s); err != nil {
		return nil, goerr.Wrap(err, "failed to decode season", goerr.V("doc_id", docSnap.Ref.ID))
	}
	return &s, nil
}

func (r *seasonRepository) List(ctx context.Context, includeArchived bool) ([]*model.Season, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var seasons []*model.Season
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate seasons")
		}

		var s model.Season
		if err := docSnap.DataTo(&s); err != nil {
			return nil, goerr.Wrap(err, "failed to decode season", goerr.V("doc_id", docSnap.Ref.ID))
		}
		if !includeArchived && s.IsArchived {
			continue
		}
		seasons = append(seasons, &s)
	}

	sort.Slice(seasons, func(i, j int) bool {
		return seasons[i].Year > seasons[j].Year
	})
	return seasons, nil
}

func (r *seasonRepository) Update(ctx context.Context, s *model.Season) (*model.Season, error) {
	docID := fmt.Sprintf("%d", s.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	existing, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "season not found", goerr.V("id", s.ID))
		}
		return nil, goerr.Wrap(err, "failed to check season existence", goerr.V("id", s.ID))
	}

	var prev model.Season
	if err := existing.DataTo(&prev); err != nil {
		return nil, goerr.Wrap(err, "failed to decode season", goerr.V("id", s.ID))
	}

	updated := *s
	updated.CreatedAt = prev.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update season", goerr.V("id", s.ID))
	}
	return &updated, nil
}

func (r *seasonRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "season not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check season existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete season", goerr.V("id", id))
	}
	return nil
}

func (r *seasonRepository) ClearCurrent(ctx context.Context, exceptID int64) error {
	iter := r.client.Collection(r.collection()).Where("IsCurrent", "==", true).Documents(ctx)
	defer iter.Stop()

	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate current seasons")
		}

		var s model.Season
		if err := docSnap.DataTo(&s); err != nil {
			return goerr.Wrap(err, "failed to decode season", goerr.V("doc_id", docSnap.Ref.ID))
		}
		if s.ID == exceptID {
			continue
		}

		if _, err := docSnap.Ref.Update(ctx, []firestore.Update{
			{Path: "IsCurrent", Value: false},
			{Path: "UpdatedAt", Value: time.Now().UTC()},
		}); err != nil {
			return goerr.Wrap(err, "failed to clear current flag", goerr.V("id", s.ID))
		}
	}
	return nil
}

type archiveRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newArchiveRepository(client *firestore.Client) *archiveRepository {
	return &archiveRepository{client: client}
}

func (r *archiveRepository) collection() string {
	return prefixed(r.collectionPrefix, "season_archives")
}

func (r *archiveRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *archiveRepository) Create(ctx context.Context, a *model.ArchiveSeason) (*model.ArchiveSeason, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "archive_counter")
	if err != nil {
		return nil, err
	}

	created := *a
	created.ID = id
	created.CreatedAt = time.Now().UTC()

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create archive season", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *archiveRepository) GetByYear(ctx context.Context, year int) (*model.ArchiveSeason, error) {
	iter := r.client.Collection(r.collection()).Where("Year", "==", year).Limit(1).Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query archive by year", goerr.V("year", year))
	}

	var a model.ArchiveSeason
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode archive season", goerr.V("doc_id", docSnap.Ref.ID))
	}
	return &a, nil
}

func (r *archiveRepository) List(ctx context.Context) ([]*model.ArchiveSeason, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var archives []*model.ArchiveSeason
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate archive seasons")
		}

		var a model.ArchiveSeason
		if err := docSnap.DataTo(&a); err != nil {
			return nil, goerr.Wrap(err, "failed to decode archive season", goerr.V("doc_id", docSnap.Ref.ID))
		}
		archives = append(archives, &a)
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].Year > archives[j].Year
	})
	return archives, nil
}

func (r *archiveRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "archive season not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check archive existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete archive season", goerr.V("id", id))
	}
	return nil
}
