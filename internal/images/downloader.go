// internal/images/downloader.go
package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/valpere/ProductHarvester/internal/utils"
)

// Config controls the image downloader.
type Config struct {
	// Dir is the directory image files are written to. Created on demand.
	Dir string

	// TypeLabel is the trailing label in generated filenames, e.g. "price"
	// produces "abc123-2-price.jpg".
	TypeLabel string

	// Timeout bounds a single download request.
	Timeout time.Duration

	// RequestsPerSecond caps the aggregate download rate across all
	// workers. Zero disables limiting.
	RequestsPerSecond float64

	// OnSaved, if set, is called once per image written to disk.
	OnSaved func()
}

// Downloader fetches product images over plain HTTP and stores them on disk
// under a deterministic per-product filename scheme. It is safe for
// concurrent use; the rate limiter is shared across all callers.
type Downloader struct {
	client  *http.Client
	limiter *rate.Limiter
	config  Config
	log     utils.Logger
}

// NewDownloader creates a downloader. The target directory is created
// eagerly so a misconfigured path fails at startup, not mid-run.
func NewDownloader(config Config, log utils.Logger) (*Downloader, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("image directory is required")
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if err := os.MkdirAll(config.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	return &Downloader{
		client:  &http.Client{Timeout: config.Timeout},
		limiter: limiter,
		config:  config,
		log:     log,
	}, nil
}

// Filename returns the on-disk filename for an image slot. Slot zero is the
// thumbnail and carries no index; later slots are numbered from one. The
// result is lowercased so products whose MPN differs only in case do not
// produce distinct files on case-sensitive filesystems.
func (d *Downloader) Filename(mpn string, slot int) string {
	var name string
	if slot == 0 {
		name = fmt.Sprintf("%s-%s.jpg", mpn, d.config.TypeLabel)
	} else {
		name = fmt.Sprintf("%s-%d-%s.jpg", mpn, slot, d.config.TypeLabel)
	}
	return strings.ToLower(name)
}

// Fetch downloads imageURL into the configured directory and returns the
// filename (not the full path) it was stored under.
func (d *Downloader) Fetch(ctx context.Context, imageURL, mpn string, slot int) (string, error) {
	if imageURL == "" {
		return "", fmt.Errorf("empty image URL")
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait aborted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid image URL %s: %w", imageURL, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image request returned status %d for %s", resp.StatusCode, imageURL)
	}

	filename := d.Filename(mpn, slot)
	path := filepath.Join(d.config.Dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	if d.config.OnSaved != nil {
		d.config.OnSaved()
	}
	d.log.Debugf("saved image %s", filename)
	return filename, nil
}
