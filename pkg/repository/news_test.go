package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
)

func runNewsRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and GetBySlug", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.News().Create(ctx, &model.News{
			Title: "Season opening",
			Slug:  "season-opening",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(int64(0))

		found, err := repo.News().GetBySlug(ctx, "season-opening")
		gt.NoError(t, err).Required()
		gt.Value(t, found).NotNil()
		gt.Value(t, found.ID).Equal(created.ID)

		missing, err := repo.News().GetBySlug(ctx, "no-such-slug")
		gt.NoError(t, err).Required()
		gt.Value(t, missing).Nil()
	})

	t.Run("List respects published filter and limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.News().Create(ctx, &model.News{Title: "Draft", Slug: "draft"})
		gt.NoError(t, err).Required()
		_, err = repo.News().Create(ctx, &model.News{Title: "Live 1", Slug: "live-1", IsPublished: true})
		gt.NoError(t, err).Required()
		_, err = repo.News().Create(ctx, &model.News{Title: "Live 2", Slug: "live-2", IsPublished: true})
		gt.NoError(t, err).Required()

		published, err := repo.News().List(ctx, interfaces.NewsFilter{PublishedOnly: true})
		gt.NoError(t, err).Required()
		gt.Array(t, published).Length(2)

		limited, err := repo.News().List(ctx, interfaces.NewsFilter{Limit: 1})
		gt.NoError(t, err).Required()
		gt.Array(t, limited).Length(1)
	})

	t.Run("List filters by category", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.News().Create(ctx, &model.News{Title: "Results", Slug: "results", CategoryID: 1})
		gt.NoError(t, err).Required()
		_, err = repo.News().Create(ctx, &model.News{Title: "Announce", Slug: "announce", CategoryID: 2})
		gt.NoError(t, err).Required()

		news, err := repo.News().List(ctx, interfaces.NewsFilter{CategoryID: 2})
		gt.NoError(t, err).Required()
		gt.Array(t, news).Length(1)
		gt.Value(t, news[0].Title).Equal("Announce")
	})

	t.Run("ListScheduledDue picks only past unpublished schedules", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		past := now.Add(-time.Hour)
		future := now.Add(time.Hour)

		_, err := repo.News().Create(ctx, &model.News{
			Title: "Due", Slug: "due", ScheduledPublishAt: &past,
		})
		gt.NoError(t, err).Required()
		_, err = repo.News().Create(ctx, &model.News{
			Title: "Not yet", Slug: "not-yet", ScheduledPublishAt: &future,
		})
		gt.NoError(t, err).Required()
		_, err = repo.News().Create(ctx, &model.News{
			Title: "Already live", Slug: "already-live", IsPublished: true, ScheduledPublishAt: &past,
		})
		gt.NoError(t, err).Required()
		_, err = repo.News().Create(ctx, &model.News{Title: "Plain draft", Slug: "plain-draft"})
		gt.NoError(t, err).Required()

		due, err := repo.News().ListScheduledDue(ctx, now)
		gt.NoError(t, err).Required()
		gt.Array(t, due).Length(1)
		gt.Value(t, due[0].Title).Equal("Due")
	})

	t.Run("Update can clear schedule", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		at := time.Now().Add(time.Hour).UTC()
		created, err := repo.News().Create(ctx, &model.News{
			Title: "Scheduled", Slug: "scheduled", ScheduledPublishAt: &at,
		})
		gt.NoError(t, err).Required()

		created.IsPublished = true
		created.ScheduledPublishAt = nil
		now := time.Now().UTC()
		created.PublishDate = &now

		updated, err := repo.News().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Bool(t, updated.IsPublished).True()
		gt.Value(t, updated.ScheduledPublishAt).Nil()
		gt.Value(t, updated.PublishDate).NotNil()
	})

	t.Run("Delete removes news", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.News().Create(ctx, &model.News{Title: "Gone", Slug: "gone"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.News().Delete(ctx, created.ID)).Required()

		_, err = repo.News().Get(ctx, created.ID)
		gt.Value(t, err).NotNil()
	})
}

func runCategoryRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and GetBySlug", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Category().Create(ctx, &model.NewsCategory{
			Name: "Competitions",
			Slug: "competitions",
		})
		gt.NoError(t, err).Required()

		found, err := repo.Category().GetBySlug(ctx, "competitions")
		gt.NoError(t, err).Required()
		gt.Value(t, found).NotNil()
		gt.Value(t, found.ID).Equal(created.ID)

		missing, err := repo.Category().GetBySlug(ctx, "nothing")
		gt.NoError(t, err).Required()
		gt.Value(t, missing).Nil()
	})

	t.Run("List returns all categories", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Category().Create(ctx, &model.NewsCategory{Name: "Results", Slug: "results"})
		gt.NoError(t, err).Required()
		_, err = repo.Category().Create(ctx, &model.NewsCategory{Name: "Announcements", Slug: "announcements"})
		gt.NoError(t, err).Required()

		categories, err := repo.Category().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, categories).Length(2)
	})
}

func TestNewsRepository_Memory(t *testing.T) {
	runNewsRepositoryTest(t, newMemoryRepo)
}

func TestNewsRepository_Firestore(t *testing.T) {
	runNewsRepositoryTest(t, newFirestoreRepo)
}

func TestCategoryRepository_Memory(t *testing.T) {
	runCategoryRepositoryTest(t, newMemoryRepo)
}

func TestCategoryRepository_Firestore(t *testing.T) {
	runCategoryRepositoryTest(t, newFirestoreRepo)
}
