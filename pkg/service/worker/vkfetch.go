package worker

import (
	"context"
	"time"

	"github.com/robofest-ru/robofest/pkg/utils/logging"
)

// DefaultVKFetchInterval is how often the VK poller wakes up. Whether a
// fetch actually runs depends on the integration's own check interval.
const DefaultVKFetchInterval = time.Minute

// AutoImporter runs one automatic VK import cycle when the integration
// is due.
type AutoImporter interface {
	AutoImport(ctx context.Context) error
}

// VKFetchWorker periodically triggers the automatic VK news import
type VKFetchWorker struct {
	importer AutoImporter
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewVKFetchWorker(importer AutoImporter, interval time.Duration) *VKFetchWorker {
	if interval <= 0 {
		interval = DefaultVKFetchInterval
	}
	return &VKFetchWorker{
		importer: importer,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background fetch loop. Does not block.
func (w *VKFetchWorker) Start(ctx context.Context) error {
	logging.Default().Info("vk fetch worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *VKFetchWorker) Stop() {
	logging.Default().Info("vk fetch worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("vk fetch worker stopped")
}

func (w *VKFetchWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.importer.AutoImport(ctx); err != nil {
				logging.Default().Error("vk auto import failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("vk fetch worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("vk fetch worker context cancelled")
			return
		}
	}
}
