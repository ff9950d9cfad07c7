// internal/runner/collector.go
package runner

import (
	"sync"

	"github.com/valpere/ProductHarvester/internal/extract"
)

// Failure records one URL that could not be scraped, with the reason from
// its final attempt.
type Failure struct {
	URL    string
	Reason string
}

// Collector aggregates results from concurrent workers. It guarantees at
// most one entry per URL across both lists: a URL either produced a record
// or a failure, never both and never twice.
type Collector struct {
	mu       sync.Mutex
	records  []*extract.ProductRecord
	failures []Failure
	seen     map[string]struct{}
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[string]struct{})}
}

// AddRecord stores a successful extraction. Duplicate URLs are dropped.
func (c *Collector) AddRecord(record *extract.ProductRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[record.SourceURL]; ok {
		return
	}
	c.seen[record.SourceURL] = struct{}{}
	c.records = append(c.records, record)
}

// AddFailure stores a terminal failure. Duplicate URLs are dropped.
func (c *Collector) AddFailure(url, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[url]; ok {
		return
	}
	c.seen[url] = struct{}{}
	c.failures = append(c.failures, Failure{URL: url, Reason: reason})
}

// Records returns the collected records.
func (c *Collector) Records() []*extract.ProductRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*extract.ProductRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Failures returns the collected failures.
func (c *Collector) Failures() []Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Failure, len(c.failures))
	copy(out, c.failures)
	return out
}
