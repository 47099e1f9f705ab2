package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/utils/logging"
)

// Dispatch runs a handler in a new goroutine detached from the request
// lifecycle. The handler gets a background context that keeps the request
// logger. Errors and panics are logged, never propagated.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := context.Background()
	if logger := logging.From(ctx); logger != nil {
		bgCtx = logging.With(bgCtx, logger)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
