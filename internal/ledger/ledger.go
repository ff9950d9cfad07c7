// internal/ledger/ledger.go
// Package ledger persists which product URLs have already been scraped so
// repeated runs over the same link workbook skip finished work, and tracks
// URLs that turned out not to be product pages at all.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// ProcessedSet is the durable record of successfully scraped URLs, one URL
// per line in a plain text file. Load is called once at startup; AppendAll
// is called once per batch after results are written, so a run that dies
// mid-batch never marks its URLs as done.
type ProcessedSet struct {
	path string
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewProcessedSet creates a set backed by path. The file does not need to
// exist yet.
func NewProcessedSet(path string) *ProcessedSet {
	return &ProcessedSet{
		path: path,
		seen: make(map[string]struct{}),
	}
}

// Load reads the ledger file into memory. A missing file is an empty
// ledger, not an error.
func (p *ProcessedSet) Load() error {
	file, err := os.Open(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer file.Close()

	p.mu.Lock()
	defer p.mu.Unlock()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		p.seen[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read ledger file: %w", err)
	}
	return nil
}

// Contains reports whether url was scraped in this or a previous run.
func (p *ProcessedSet) Contains(url string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.seen[url]
	return ok
}

// Len returns the number of recorded URLs.
func (p *ProcessedSet) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.seen)
}

// AppendAll records urls as scraped, both in memory and in the backing
// file. URLs already present are not written again.
func (p *ProcessedSet) AppendAll(urls []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	fresh := make([]string, 0, len(urls))
	for _, url := range urls {
		if _, ok := p.seen[url]; ok {
			continue
		}
		fresh = append(fresh, url)
	}
	if len(fresh) == 0 {
		return nil
	}

	file, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open ledger file for append: %w", err)
	}
	defer file.Close()

	for _, url := range fresh {
		if _, err := fmt.Fprintln(file, url); err != nil {
			return fmt.Errorf("failed to append to ledger file: %w", err)
		}
		p.seen[url] = struct{}{}
	}
	return nil
}

// InvalidCache remembers URLs that failed page validation. It is in-memory
// only: a URL that is not a product page today may become one after a site
// change, so the verdict is not persisted across runs.
type InvalidCache struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewInvalidCache creates an empty cache.
func NewInvalidCache() *InvalidCache {
	return &InvalidCache{seen: make(map[string]struct{})}
}

// Mark records url as invalid.
func (c *InvalidCache) Mark(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen[url] = struct{}{}
}

// Contains reports whether url was previously marked invalid.
func (c *InvalidCache) Contains(url string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.seen[url]
	return ok
}

// Len returns the number of cached invalid URLs.
func (c *InvalidCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.seen)
}
