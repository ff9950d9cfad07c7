// internal/runner/runner.go
// Package runner fans a batch of product URLs out to a bounded pool of
// extraction workers, applies the retry policy, and aggregates results.
package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/valpere/ProductHarvester/internal/extract"
	"github.com/valpere/ProductHarvester/internal/ledger"
	"github.com/valpere/ProductHarvester/internal/monitoring"
	"github.com/valpere/ProductHarvester/internal/utils"
)

// Extractor is the per-URL extraction attempt the runner drives. Satisfied
// by extract.PageExtractor.
type Extractor interface {
	Extract(ctx context.Context, url string) (*extract.ProductRecord, error)
}

// Runner executes a batch of URLs with bounded concurrency. Each URL gets
// its own retry budget and its own rendering session per attempt.
type Runner struct {
	extractor Extractor
	retrier   *Retrier
	processed *ledger.ProcessedSet
	invalid   *ledger.InvalidCache
	metrics   *monitoring.Metrics
	log       utils.Logger
	workers   int

	// inFlightHook observes the worker count as workers start and stop.
	// Used by tests to assert the concurrency bound.
	inFlightHook func(active int)
	hookMu       sync.Mutex
	active       int
}

// NewRunner creates a runner. workers bounds the number of simultaneous
// rendering sessions.
func NewRunner(extractor Extractor, retrier *Retrier, processed *ledger.ProcessedSet, invalid *ledger.InvalidCache, metrics *monitoring.Metrics, log utils.Logger, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		extractor: extractor,
		retrier:   retrier,
		processed: processed,
		invalid:   invalid,
		metrics:   metrics,
		log:       log,
		workers:   workers,
	}
}

// SetInFlightHook installs an observer for the active worker count.
func (r *Runner) SetInFlightHook(hook func(active int)) {
	r.inFlightHook = hook
}

// Run processes urls and returns the aggregated results. Cancelling ctx
// stops scheduling of further URLs, but Run still joins every started
// worker before returning: no unit is left running after the call returns,
// so the caller may persist the collector immediately.
func (r *Runner) Run(ctx context.Context, urls []string) *Collector {
	collector := NewCollector()
	semaphore := make(chan struct{}, r.workers)
	var wg sync.WaitGroup

scheduling:
	for _, url := range urls {
		if ctx.Err() != nil {
			break
		}
		if r.processed != nil && r.processed.Contains(url) {
			r.log.WithField("url", url).Debugf("already scraped, skipping")
			r.metrics.PagesSkipped.Inc()
			continue
		}
		if r.invalid != nil && r.invalid.Contains(url) {
			r.log.WithField("url", url).Debugf("known invalid, skipping")
			r.metrics.PagesSkipped.Inc()
			continue
		}

		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			break scheduling
		}

		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			r.enterWorker()
			defer r.leaveWorker()

			r.processURL(ctx, url, collector)
		}(url)
	}

	wg.Wait()
	return collector
}

func (r *Runner) processURL(ctx context.Context, url string, collector *Collector) {
	log := r.log.WithField("url", url)
	started := time.Now()

	var record *extract.ProductRecord
	err := r.retrier.Do(ctx, func(ctx context.Context) error {
		var attemptErr error
		record, attemptErr = r.extractor.Extract(ctx, url)
		return attemptErr
	}, func(attempt int) {
		log.Warnf("retrying, attempt %d of %d", attempt, r.retrier.Attempts)
		r.metrics.RetryAttempts.Inc()
	})

	if err != nil {
		if errors.Is(err, extract.ErrNotProductPage) {
			if r.invalid != nil {
				r.invalid.Mark(url)
			}
			log.Warnf("not a product page: %v", err)
		} else {
			log.Errorf("extraction failed after %d attempts: %v", r.retrier.Attempts, err)
		}
		r.metrics.PagesFailed.Inc()
		collector.AddFailure(url, err.Error())
		return
	}

	r.metrics.PagesScraped.Inc()
	r.metrics.ExtractionTime.Observe(time.Since(started).Seconds())
	collector.AddRecord(record)
}

func (r *Runner) enterWorker() {
	r.hookMu.Lock()
	r.active++
	active := r.active
	hook := r.inFlightHook
	r.hookMu.Unlock()

	r.metrics.SessionsInFlight.Inc()
	if hook != nil {
		hook(active)
	}
}

func (r *Runner) leaveWorker() {
	r.hookMu.Lock()
	r.active--
	active := r.active
	hook := r.inFlightHook
	r.hookMu.Unlock()

	r.metrics.SessionsInFlight.Dec()
	if hook != nil {
		hook(active)
	}
}
