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

type newsRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newNewsRepository(client *firestore.Client) *newsRepository {
	return &newsRepository{client: client}
}

func (r *newsRepository) collection() string {
	return prefixed(r.collectionPrefix, "news")
}

func (r *newsRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *newsRepository) Create(ctx context.Context, n *model.News) (*model.News, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "news_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *n
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create news", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *newsRepository) Get(ctx context.Context, id int64) (*model.News, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "news not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get news", goerr.V("id", id))
	}

	var n model.News
	if err := docSnap.DataTo(&n); err != nil {
		return nil, goerr.Wrap(err, "failed to decode news", goerr.V("id", id))
	}
	return &n, nil
}

func (r *newsRepository) GetBySlug(ctx context.Context, slug string) (*model.News, error) {
	iter := r.client.Collection(r.collection()).Where("Slug", "==", slug).Limit(1).Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query news by slug", goerr.V("slug", slug))
	}

	var n model.News
	if err := docSnap.DataTo(&n); err != nil {
		return nil, goerr.Wrap(err, "failed to decode news", goerr.V("doc_id", docSnap.Ref.ID))
	}
	return &n, nil
}

func (r *newsRepository) List(ctx context.Context, filter interfaces.NewsFilter) ([]*model.News, error) {
	query := r.client.Collection(r.collection()).Query
	if filter.PublishedOnly {
		query = query.Where("IsPublished", "==", true)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var news []*model.News
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate news")
		}

		var n model.News
		if err := docSnap.DataTo(&n); err != nil {
			return nil, goerr.Wrap(err, "failed to decode news", goerr.V("doc_id", docSnap.Ref.ID))
		}
		if filter.CategoryID != 0 && n.CategoryID != filter.CategoryID {
			continue
		}
		news = append(news, &n)
	}

	sort.Slice(news, func(i, j int) bool {
		return news[i].CreatedAt.After(news[j].CreatedAt)
	})
	if filter.Limit > 0 && len(news) > filter.Limit {
		news = news[:filter.Limit]
	}
	return news, nil
}

func (r *newsRepository) Update(ctx context.Context, n *model.News) (*model.News, error) {
	docID := fmt.Sprintf("%d", n.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	existing, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "news not found", goerr.V("id", n.ID))
		}
		return nil, goerr.Wrap(err, "failed to check news existence", goerr.V("id", n.ID))
	}

	var prev model.News
	if err := existing.DataTo(&prev); err != nil {
		return nil, goerr.Wrap(err, "failed to decode news", goerr.V("id", n.ID))
	}

	updated := *n
	updated.CreatedAt = prev.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update news", goerr.V("id", n.ID))
	}
	return &updated, nil
}

func (r *newsRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "news not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check news existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete news", goerr.V("id", id))
	}
	return nil
}

func (r *newsRepository) ListScheduledDue(ctx context.Context, now time.Time) ([]*model.News, error) {
	iter := r.client.Collection(r.collection()).Where("IsPublished", "==", false).Documents(ctx)
	defer iter.Stop()

	var due []*model.News
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate scheduled news")
		}

		var n model.News
		if err := docSnap.DataTo(&n); err != nil {
			return nil, goerr.Wrap(err, "failed to decode news", goerr.V("doc_id", docSnap.Ref.ID))
		}
		if n.ScheduledPublishAt == nil || n.ScheduledPublishAt.After(now) {
			continue
		}
		due = append(due, &n)
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].ScheduledPublishAt.Before(*due[j].ScheduledPublishAt)
	})
	return due, nil
}

func (r *newsRepository) Count(ctx context.Context) (int, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count news")
		}
		count++
	}
	return count, nil
}

type categoryRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCategoryRepository(client *firestore.Client) *categoryRepository {
	return &categoryRepository{client: client}
}

func (r *categoryRepository) collection() string {
	return prefixed(r.collectionPrefix, "news_categories")
}

func (r *categoryRepository) counterCollection() string {
	return prefixed(r.collectionPrefix, "counters")
}

func (r *categoryRepository) Create(ctx context.Context, c *model.NewsCategory) (*model.NewsCategory, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "category_counter")
	if err != nil {
		return nil, err
	}

	created := *c
	created.ID = id
	created.CreatedAt = time.Now().UTC()

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create news category", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *categoryRepository) Get(ctx context.Context, id int64) (*model.NewsCategory, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "news category not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get news category", goerr.V("id", id))
	}

	var c model.NewsCategory
	if err := docSnap.DataTo(&c); err != nil {
		return nil, goerr.Wrap(err, "failed to decode news category", goerr.V("id", id))
	}
	return &c, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*model.NewsCategory, error) {
	iter := r.client.Collection(r.collection()).Where("Slug", "==", slug).Limit(1).Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query category by slug", goerr.V("slug", slug))
	}

	var c model.NewsCategory
	if err := docSnap.DataTo(&c); err != nil {
		return nil, goerr.Wrap(err, "failed to decode news category", goerr.V("doc_id", docSnap.Ref.ID))
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.NewsCategory, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var categories []*model.NewsCategory
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate news categories")
		}

		var c model.NewsCategory
		if err := docSnap.DataTo(&c); err != nil {
			return nil, goerr.Wrap(err, "failed to decode news category", goerr.V("doc_id", docSnap.Ref.ID))
		}
		categories = append(categories, &c)
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "news category not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check category existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete news category", goerr.V("id", id))
	}
	return nil
}
