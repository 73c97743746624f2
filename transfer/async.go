package transfer

import (
	"context"
	"time"

	"encore.dev/rlog"
)

const asyncTimeout = 5 * time.Second

// runAsync is swapped out by tests to run background work inline.
var runAsync = safeAsync

// safeAsync runs fn detached from the request, bounded by asyncTimeout.
// Failures are only logged.
func safeAsync(op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			rlog.Error("async operation failed", "op", op, "error", err)
		} else {
			rlog.Debug("async operation succeeded", "op", op)
		}
	}()
}
