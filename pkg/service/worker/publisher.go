package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/interfaces"
	"github.com/robofest-ru/robofest/pkg/utils/logging"
)

// DefaultPublishInterval is how often the publisher checks for due
// scheduled articles.
const DefaultPublishInterval = 30 * time.Second

// PublisherWorker flips scheduled news to published once their
// scheduled time passes. Assumes a single running instance: two
// publishers racing on the same records would double-stamp publish
// dates.
type PublisherWorker struct {
	repo     interfaces.Repository
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewPublisherWorker(repo interfaces.Repository, interval time.Duration) *PublisherWorker {
	if interval <= 0 {
		interval = DefaultPublishInterval
	}
	return &PublisherWorker{
		repo:     repo,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background publish loop. Does not block.
func (w *PublisherWorker) Start(ctx context.Context) error {
	logging.Default().Info("news publisher worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *PublisherWorker) Stop() {
	logging.Default().Info("news publisher worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("news publisher worker stopped")
}

func (w *PublisherWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if count, err := w.PublishDue(ctx); err != nil {
				logging.Default().Error("scheduled publish failed (will retry next interval)",
					"error", err.Error())
			} else if count > 0 {
				logging.Default().Info("published scheduled news", "count", count)
			}

		case <-w.stopCh:
			logging.Default().Info("news publisher worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("news publisher worker context cancelled")
			return
		}
	}
}

// PublishDue publishes every article whose scheduled time has passed
// and returns how many were published. The publish date records the
// scheduled time, not the tick time.
func (w *PublisherWorker) PublishDue(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	due, err := w.repo.News().ListScheduledDue(ctx, now)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list due news")
	}

	published := 0
	for _, n := range due {
		publishAt := *n.ScheduledPublishAt
		n.IsPublished = true
		n.PublishDate = &publishAt
		n.ScheduledPublishAt = nil

		if _, err := w.repo.News().Update(ctx, n); err != nil {
			return published, goerr.Wrap(err, "failed to publish scheduled news", goerr.V("id", n.ID))
		}
		published++
	}
	return published, nil
}
