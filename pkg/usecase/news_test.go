package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/repository/memory"
	"github.com/robofest-ru/robofest/pkg/usecase"
)

func TestNewsCreatePublishStates(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	t.Run("draft", func(t *testing.T) {
		n, err := uc.News.Create(ctx, &usecase.NewsInput{
			Title:  "Draft article",
			Intent: model.PublishIntent{Kind: model.PublishDraft},
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, n.IsPublished).False()
		gt.Value(t, n.ScheduledPublishAt).Nil()
		gt.Value(t, n.PublishDate).Nil()
	})

	t.Run("now", func(t *testing.T) {
		n, err := uc.News.Create(ctx, &usecase.NewsInput{
			Title:  "Published article",
			Intent: model.PublishIntent{Kind: model.PublishNow},
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, n.IsPublished).True()
		gt.Value(t, n.ScheduledPublishAt).Nil()
		gt.Value(t, n.PublishDate).NotNil()
	})

	t.Run("scheduled", func(t *testing.T) {
		at := time.Now().Add(time.Hour).UTC()
		n, err := uc.News.Create(ctx, &usecase.NewsInput{
			Title:  "Scheduled article",
			Intent: model.PublishIntent{Kind: model.PublishScheduled, At: at},
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, n.IsPublished).False()
		gt.Value(t, n.ScheduledPublishAt).NotNil()
		gt.Value(t, n.PublishDate).Nil()
	})

	t.Run("rejected schedule writes nothing", func(t *testing.T) {
		repo := memory.New()
		fresh := usecase.New(repo)
		_, err := fresh.News.Create(ctx, &usecase.NewsInput{
			Title:  "Backdated",
			Intent: model.PublishIntent{Kind: model.PublishScheduled, At: time.Now().Add(-time.Hour)},
		})
		gt.Bool(t, errors.Is(err, model.ErrScheduleNotFuture)).True()

		all, err := repo.News().List(ctx, interfaces.NewsFilter{})
		gt.NoError(t, err)
		gt.Array(t, all).Length(0)
	})
}

func TestNewsPublishDateIdempotent(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	n, err := uc.News.Create(ctx, &usecase.NewsInput{
		Title:  "Launch report",
		Intent: model.PublishIntent{Kind: model.PublishNow},
	})
	gt.NoError(t, err).Required()
	firstDate := *n.PublishDate

	time.Sleep(5 * time.Millisecond)

	// Re-saving with intent Now keeps the original publish date
	updated, err := uc.News.Update(ctx, n.ID, &usecase.NewsInput{
		Title:  "Launch report",
		Intent: model.PublishIntent{Kind: model.PublishNow},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, *updated.PublishDate).Equal(firstDate)

	// Unpublishing clears the date; republishing stamps a fresh one
	updated, err = uc.News.SetPublishState(ctx, n.ID, model.PublishIntent{Kind: model.PublishDraft})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.PublishDate).Nil()

	updated, err = uc.News.SetPublishState(ctx, n.ID, model.PublishIntent{Kind: model.PublishNow})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.PublishDate).NotNil()
}

func TestNewsScheduleRoundTrip(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	at := time.Now().Add(2 * time.Hour).Truncate(time.Minute)
	n, err := uc.News.Create(ctx, &usecase.NewsInput{
		Title:  "Season opener",
		Intent: model.PublishIntent{Kind: model.PublishScheduled, At: at},
	})
	gt.NoError(t, err).Required()

	// The persisted state reads back as the same intent
	intent := n.Intent()
	gt.Value(t, intent.Kind).Equal(model.PublishScheduled)
	gt.Bool(t, intent.At.Equal(at)).True()

	// Switching to draft drops the schedule
	updated, err := uc.News.SetPublishState(ctx, n.ID, model.PublishIntent{Kind: model.PublishDraft})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.ScheduledPublishAt).Nil()
	gt.Value(t, updated.Intent().Kind).Equal(model.PublishDraft)
}

func TestNewsUniqueSlugs(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	first, err := uc.News.Create(ctx, &usecase.NewsInput{
		Title: "Finals Recap", Intent: model.PublishIntent{Kind: model.PublishDraft},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, first.Slug).Equal("finals-recap")

	second, err := uc.News.Create(ctx, &usecase.NewsInput{
		Title: "Finals Recap", Intent: model.PublishIntent{Kind: model.PublishDraft},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, second.Slug).Equal("finals-recap-1")

	// Renaming keeps the slug stable when the title is unchanged
	updated, err := uc.News.Update(ctx, first.ID, &usecase.NewsInput{
		Title: "Finals Recap", Intent: model.PublishIntent{Kind: model.PublishDraft},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Slug).Equal("finals-recap")
}

func TestNewsGetPublishedBySlug(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	draft, err := uc.News.Create(ctx, &usecase.NewsInput{
		Title: "Hidden draft", Intent: model.PublishIntent{Kind: model.PublishDraft},
	})
	gt.NoError(t, err).Required()

	// Unpublished articles are invisible on the public surface
	hidden, err := uc.News.GetPublishedBySlug(ctx, draft.Slug)
	gt.NoError(t, err)
	gt.Value(t, hidden).Nil()

	published, err := uc.News.Create(ctx, &usecase.NewsInput{
		Title: "Visible article", Intent: model.PublishIntent{Kind: model.PublishNow},
	})
	gt.NoError(t, err).Required()

	found, err := uc.News.GetPublishedBySlug(ctx, published.Slug)
	gt.NoError(t, err).Required()
	gt.Value(t, found.ID).Equal(published.ID)
}

func TestNewsCategories(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	cat, err := uc.News.CreateCategory(ctx, "Соревнования")
	gt.NoError(t, err).Required()
	gt.Value(t, cat.Slug).Equal("sorevnovaniya")

	_, err = uc.News.CreateCategory(ctx, "Соревнования")
	gt.Bool(t, errors.Is(err, usecase.ErrSlugTaken)).True()

	cats, err := uc.News.ListCategories(ctx)
	gt.NoError(t, err)
	gt.Array(t, cats).Length(1)
}
