// internal/runner/retry.go
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/valpere/ProductHarvester/internal/extract"
)

// Retrier calls an extraction attempt up to Attempts times, cooling down
// between attempts. Validation failures are terminal: a URL that is not a
// product page will not become one two seconds later.
type Retrier struct {
	Attempts int
	Cooldown time.Duration

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetrier creates a retrier with the given attempt budget.
func NewRetrier(attempts int, cooldown time.Duration) *Retrier {
	if attempts < 1 {
		attempts = 1
	}
	return &Retrier{
		Attempts: attempts,
		Cooldown: cooldown,
		sleep:    sleepCtx,
	}
}

// Do runs fn until it succeeds, the attempt budget is exhausted, the
// context is cancelled, or fn reports a non-retryable error. onRetry, if
// set, is called before each attempt after the first.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error, onRetry func(attempt int)) error {
	var lastErr error
	for attempt := 1; attempt <= r.Attempts; attempt++ {
		if attempt > 1 {
			if onRetry != nil {
				onRetry(attempt)
			}
			if err := r.sleep(ctx, r.Cooldown); err != nil {
				return err
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, extract.ErrNotProductPage) {
			return lastErr
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
