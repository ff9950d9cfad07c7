// internal/monitoring/metrics.go
// Package monitoring exposes run-time metrics for the scraping pipeline
// over Prometheus, plus the HTTP endpoint that serves them.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for one pipeline run. All collectors live in
// a dedicated registry so repeated constructions in tests never collide
// with the global default registry.
type Metrics struct {
	registry *prometheus.Registry

	PagesScraped     prometheus.Counter
	PagesFailed      prometheus.Counter
	PagesSkipped     prometheus.Counter
	RetryAttempts    prometheus.Counter
	ImagesSaved      prometheus.Counter
	SessionsInFlight prometheus.Gauge
	ExtractionTime   prometheus.Histogram
}

// NewMetrics creates and registers the pipeline collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		PagesScraped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "productharvester",
			Name:      "pages_scraped_total",
			Help:      "Number of product pages scraped successfully.",
		}),
		PagesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "productharvester",
			Name:      "pages_failed_total",
			Help:      "Number of product pages that failed after all retry attempts.",
		}),
		PagesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "productharvester",
			Name:      "pages_skipped_total",
			Help:      "Number of URLs skipped because the ledger or invalid cache already knew them.",
		}),
		RetryAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "productharvester",
			Name:      "retry_attempts_total",
			Help:      "Number of extraction attempts beyond the first per URL.",
		}),
		ImagesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "productharvester",
			Name:      "images_saved_total",
			Help:      "Number of product images written to disk.",
		}),
		SessionsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "productharvester",
			Name:      "sessions_in_flight",
			Help:      "Number of rendering sessions currently active.",
		}),
		ExtractionTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "productharvester",
			Name:      "extraction_duration_seconds",
			Help:      "Wall-clock time of successful page extractions.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	registry.MustRegister(
		m.PagesScraped,
		m.PagesFailed,
		m.PagesSkipped,
		m.RetryAttempts,
		m.ImagesSaved,
		m.SessionsInFlight,
		m.ExtractionTime,
	)

	return m
}

// Registry returns the backing registry for serving over HTTP.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
