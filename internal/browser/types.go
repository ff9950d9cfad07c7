// internal/browser/types.go
package browser

import (
	"context"
	"errors"
	"time"
)

// ErrElementNotFound is returned (wrapped) when a locator does not resolve
// to a present and visible element within its timeout.
var ErrElementNotFound = errors.New("element not found")

// SessionConfig defines rendering session settings.
type SessionConfig struct {
	Headless          bool          `yaml:"headless" json:"headless"`
	ViewportWidth     int           `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight    int           `yaml:"viewport_height" json:"viewport_height"`
	UserAgent         string        `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	DisableImages     bool          `yaml:"disable_images" json:"disable_images"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout" json:"navigation_timeout"`
	ElementTimeout    time.Duration `yaml:"element_timeout" json:"element_timeout"`
}

// DefaultSessionConfig returns default session configuration.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		Headless:          true,
		ViewportWidth:     1920,
		ViewportHeight:    1080,
		NavigationTimeout: 60 * time.Second,
		ElementTimeout:    30 * time.Second,
	}
}

// Session is one single-use browser-automation session. A Session is created
// fresh per extraction attempt and never reused across URLs or retries, so
// no cross-request state (cookies, open overlays, scroll position) leaks
// between attempts. Close is idempotent and must be called on every path.
type Session interface {
	// Navigate loads a URL and waits for the document body to be ready.
	Navigate(ctx context.Context, url string) error

	// WaitVisible blocks until the locator resolves to a present and
	// visible element, or the timeout elapses (ErrElementNotFound).
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// Text returns the rendered text of the first matching element.
	Text(ctx context.Context, selector string) (string, error)

	// TextAll returns the rendered text of every matching element.
	// A locator matching nothing yields an empty slice, not an error.
	TextAll(ctx context.Context, selector string) ([]string, error)

	// Attribute reads an attribute of the first matching element. The
	// boolean reports whether the attribute exists.
	Attribute(ctx context.Context, selector, name string) (string, bool, error)

	// Click dispatches a click on the first matching element.
	Click(ctx context.Context, selector string) error

	// ScrollIntoView scrolls the first matching element into the viewport.
	ScrollIntoView(ctx context.Context, selector string) error

	// Evaluate runs JavaScript in the page and unmarshals the result
	// into out. A nil out discards the result.
	Evaluate(ctx context.Context, script string, out interface{}) error

	// OuterHTML returns the serialized markup of the first matching element.
	OuterHTML(ctx context.Context, selector string) (string, error)

	// HTML returns the full rendered page markup.
	HTML(ctx context.Context) (string, error)

	// Close releases the underlying browser process. Idempotent.
	Close() error
}

// Factory creates a fresh Session. The extraction pipeline takes a Factory
// rather than a Session so every attempt gets its own browser process and
// tests can substitute fakes.
type Factory func(cfg *SessionConfig) (Session, error)

// SessionStats tracks per-session counters.
type SessionStats struct {
	PagesLoaded      int `json:"pages_loaded"`
	Errors           int `json:"errors"`
	TimeoutsOccurred int `json:"timeouts_occurred"`
}
