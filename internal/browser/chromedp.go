// internal/browser/chromedp.go
package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeSession implements Session using chromedp. Each ChromeSession owns
// its own Chrome process via a dedicated exec allocator, torn down on Close.
type ChromeSession struct {
	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
	config      *SessionConfig
	stats       *SessionStats
	closeOnce   sync.Once
}

// NewChromeSession creates a new single-use Chrome session.
func NewChromeSession(config *SessionConfig) (Session, error) {
	if config == nil {
		config = DefaultSessionConfig()
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox, // Required for Docker environments
		chromedp.WindowSize(config.ViewportWidth, config.ViewportHeight),
	}

	if config.Headless {
		opts = append(opts, chromedp.Headless)
	}

	if config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(config.UserAgent))
	}

	// Disable images for faster loading; downloads go over plain HTTP anyway
	if config.DisableImages {
		opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	session := &ChromeSession{
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
		config:      config,
		stats:       &SessionStats{},
	}

	// Start the browser eagerly so a broken Chrome install surfaces here
	// rather than on the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return session, nil
}

// Navigate loads a URL and waits for the document body to be ready.
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	runCtx, cancel := s.deadline(ctx, s.config.NavigationTimeout)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		s.stats.Errors++
		return fmt.Errorf("navigation failed for %s: %w", url, err)
	}

	s.stats.PagesLoaded++
	return nil
}

// WaitVisible blocks until the locator is present and visible.
func (s *ChromeSession) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	runCtx, cancel := s.deadline(ctx, timeout)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.WaitVisible(selector, matchOne(selector))); err != nil {
		s.stats.TimeoutsOccurred++
		return fmt.Errorf("%w: %s: %v", ErrElementNotFound, selector, err)
	}
	return nil
}

// Text returns the rendered text of the first matching element.
func (s *ChromeSession) Text(ctx context.Context, selector string) (string, error) {
	runCtx, cancel := s.deadline(ctx, s.config.ElementTimeout)
	defer cancel()

	var text string
	if err := chromedp.Run(runCtx, chromedp.Text(selector, &text, matchOne(selector))); err != nil {
		s.stats.Errors++
		return "", fmt.Errorf("%w: %s: %v", ErrElementNotFound, selector, err)
	}
	return text, nil
}

// TextAll returns the rendered text of every matching element. Both CSS and
// XPath locators are resolved in page script so that a locator matching
// nothing yields an empty slice instead of blocking until timeout.
func (s *ChromeSession) TextAll(ctx context.Context, selector string) ([]string, error) {
	script := fmt.Sprintf(`(function(sel) {
		var out = [];
		if (sel.charAt(0) === '/' || sel.charAt(0) === '(') {
			var it = document.evaluate(sel, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
			for (var i = 0; i < it.snapshotLength; i++) out.push(it.snapshotItem(i).innerText);
		} else {
			document.querySelectorAll(sel).forEach(function(e) { out.push(e.innerText); });
		}
		return out;
	})(%q)`, selector)

	var texts []string
	if err := s.Evaluate(ctx, script, &texts); err != nil {
		return nil, fmt.Errorf("failed to collect elements for %s: %w", selector, err)
	}
	return texts, nil
}

// Attribute reads an attribute of the first matching element.
func (s *ChromeSession) Attribute(ctx context.Context, selector, name string) (string, bool, error) {
	runCtx, cancel := s.deadline(ctx, s.config.ElementTimeout)
	defer cancel()

	var value string
	var ok bool
	if err := chromedp.Run(runCtx, chromedp.AttributeValue(selector, name, &value, &ok, matchOne(selector))); err != nil {
		s.stats.Errors++
		return "", false, fmt.Errorf("%w: %s: %v", ErrElementNotFound, selector, err)
	}
	return value, ok, nil
}

// Click dispatches a click on the first matching element.
func (s *ChromeSession) Click(ctx context.Context, selector string) error {
	runCtx, cancel := s.deadline(ctx, s.config.ElementTimeout)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.Click(selector, matchOne(selector))); err != nil {
		s.stats.Errors++
		return fmt.Errorf("%w: %s: %v", ErrElementNotFound, selector, err)
	}
	return nil
}

// ScrollIntoView scrolls the first matching element into the viewport.
func (s *ChromeSession) ScrollIntoView(ctx context.Context, selector string) error {
	runCtx, cancel := s.deadline(ctx, s.config.ElementTimeout)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.ScrollIntoView(selector, matchOne(selector))); err != nil {
		s.stats.Errors++
		return fmt.Errorf("%w: %s: %v", ErrElementNotFound, selector, err)
	}
	return nil
}

// Evaluate runs JavaScript in the page.
func (s *ChromeSession) Evaluate(ctx context.Context, script string, out interface{}) error {
	runCtx, cancel := s.deadline(ctx, s.config.ElementTimeout)
	defer cancel()

	if out == nil {
		var sink interface{}
		out = &sink
	}
	if err := chromedp.Run(runCtx, chromedp.Evaluate(script, out)); err != nil {
		s.stats.Errors++
		return fmt.Errorf("script execution failed: %w", err)
	}
	return nil
}

// OuterHTML returns the serialized markup of the first matching element.
func (s *ChromeSession) OuterHTML(ctx context.Context, selector string) (string, error) {
	runCtx, cancel := s.deadline(ctx, s.config.ElementTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML(selector, &html, matchOne(selector))); err != nil {
		s.stats.Errors++
		return "", fmt.Errorf("%w: %s: %v", ErrElementNotFound, selector, err)
	}
	return html, nil
}

// HTML returns the full rendered page markup.
func (s *ChromeSession) HTML(ctx context.Context) (string, error) {
	return s.OuterHTML(ctx, "html")
}

// GetStats returns session statistics.
func (s *ChromeSession) GetStats() *SessionStats {
	return s.stats
}

// Close releases the browser process. Safe to call multiple times.
func (s *ChromeSession) Close() error {
	s.closeOnce.Do(func() {
		if s.cancelCtx != nil {
			s.cancelCtx()
		}
		if s.cancelAlloc != nil {
			s.cancelAlloc()
		}
	})
	return nil
}

// deadline derives a run context bounded by both the caller's context and
// the given timeout.
func (s *ChromeSession) deadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx := s.ctx
	if ctx != nil {
		if done := ctx.Done(); done != nil {
			var cancel context.CancelFunc
			runCtx, cancel = mergeCancel(runCtx, ctx)
			if timeout <= 0 {
				return runCtx, cancel
			}
			tctx, tcancel := context.WithTimeout(runCtx, timeout)
			return tctx, func() { tcancel(); cancel() }
		}
	}
	if timeout <= 0 {
		return runCtx, func() {}
	}
	return context.WithTimeout(runCtx, timeout)
}

// mergeCancel returns a child of parent that is also canceled when other is.
func mergeCancel(parent, other context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-other.Done():
			cancel()
		case <-merged.Done():
		}
	}()
	return merged, cancel
}

// matchOne picks the query option for a locator: XPath expressions are
// routed through the DOM search API, everything else is a CSS query.
func matchOne(selector string) chromedp.QueryOption {
	if isXPath(selector) {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

func isXPath(selector string) bool {
	return strings.HasPrefix(selector, "/") || strings.HasPrefix(selector, "(") || strings.HasPrefix(selector, "./")
}
