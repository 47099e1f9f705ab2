package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/repository/memory"
	"github.com/robofest-ru/robofest/pkg/service/worker"
)

func TestPublishDue(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	past := time.Now().Add(-10 * time.Minute).UTC()
	future := time.Now().Add(time.Hour).UTC()

	due, err := repo.News().Create(ctx, &model.News{
		Title: "Due article", Slug: "due-article", ScheduledPublishAt: &past,
	})
	gt.NoError(t, err).Required()

	notYet, err := repo.News().Create(ctx, &model.News{
		Title: "Future article", Slug: "future-article", ScheduledPublishAt: &future,
	})
	gt.NoError(t, err).Required()

	w := worker.NewPublisherWorker(repo, worker.DefaultPublishInterval)
	count, err := w.PublishDue(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(1)

	published, err := repo.News().Get(ctx, due.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, published.IsPublished).True()
	gt.Value(t, published.ScheduledPublishAt).Nil()
	gt.Value(t, published.PublishDate).NotNil()
	gt.Bool(t, published.PublishDate.Equal(past)).True()

	untouched, err := repo.News().Get(ctx, notYet.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, untouched.IsPublished).False()
	gt.Value(t, untouched.ScheduledPublishAt).NotNil()
}

func TestPublishDueNothingScheduled(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	_, err := repo.News().Create(ctx, &model.News{Title: "Draft", Slug: "draft"})
	gt.NoError(t, err).Required()

	w := worker.NewPublisherWorker(repo, worker.DefaultPublishInterval)
	count, err := w.PublishDue(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(0)
}

func TestPublisherWorkerStartStop(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	past := time.Now().Add(-time.Minute).UTC()
	created, err := repo.News().Create(ctx, &model.News{
		Title: "Scheduled", Slug: "scheduled", ScheduledPublishAt: &past,
	})
	gt.NoError(t, err).Required()

	w := worker.NewPublisherWorker(repo, 10*time.Millisecond)
	gt.NoError(t, w.Start(ctx)).Required()

	deadline := time.Now().Add(2 * time.Second)
	for {
		n, err := repo.News().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		if n.IsPublished {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("scheduled news was never published")
		}
		time.Sleep(20 * time.Millisecond)
	}

	w.Stop()
}

type fakeImporter struct {
	calls chan struct{}
}

func (f *fakeImporter) AutoImport(ctx context.Context) error {
	select {
	case f.calls <- struct{}{}:
	default:
	}
	return nil
}

func TestVKFetchWorkerTicks(t *testing.T) {
	importer := &fakeImporter{calls: make(chan struct{}, 1)}

	w := worker.NewVKFetchWorker(importer, 10*time.Millisecond)
	gt.NoError(t, w.Start(context.Background())).Required()

	select {
	case <-importer.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("importer was never invoked")
	}

	w.Stop()
}
