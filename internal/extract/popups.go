// internal/extract/popups.go
package extract

import (
	"context"
	"time"

	"github.com/valpere/ProductHarvester/internal/browser"
	"github.com/valpere/ProductHarvester/internal/utils"
)

// PopupPolicy configures the best-effort popup dismissal run right after
// navigation. Both steps swallow their own failures: an absent popup is a
// normal outcome, never an error, and neither step may abort the pipeline.
type PopupPolicy struct {
	AcceptCookies     bool
	CookieTimeout     time.Duration
	DismissNewsletter bool
	NewsletterTimeout time.Duration
}

// DefaultPopupPolicy accepts cookie consent within 10s and dismisses the
// newsletter overlay within 15s.
func DefaultPopupPolicy() PopupPolicy {
	return PopupPolicy{
		AcceptCookies:     true,
		CookieTimeout:     10 * time.Second,
		DismissNewsletter: true,
		NewsletterTimeout: 15 * time.Second,
	}
}

// newsletterDismissScript locates the newsletter overlay's decline control
// and clicks it. The overlay renders inside an isolated subtree that plain
// locators cannot always reach, so the click happens page-side. Returns
// true when a control was clicked.
const newsletterDismissScript = `(function() {
	var roots = [document];
	document.querySelectorAll('*').forEach(function(el) {
		if (el.shadowRoot) roots.push(el.shadowRoot);
	});
	for (var r = 0; r < roots.length; r++) {
		var buttons = roots[r].querySelectorAll('button');
		for (var i = 0; i < buttons.length; i++) {
			if (buttons[i].textContent.indexOf('No thanks') !== -1) {
				buttons[i].click();
				return true;
			}
		}
	}
	return false;
})()`

// DismissPopups runs the configured popup handlers in order: cookie consent
// first, newsletter overlay second. Order matters; the consent banner can
// overlay the newsletter control.
func DismissPopups(ctx context.Context, session browser.Session, loc Locators, policy PopupPolicy, log utils.Logger) {
	if policy.AcceptCookies {
		acceptCookies(ctx, session, loc, policy.CookieTimeout, log)
	}
	if policy.DismissNewsletter {
		dismissNewsletter(ctx, session, policy.NewsletterTimeout, log)
	}
}

func acceptCookies(ctx context.Context, session browser.Session, loc Locators, timeout time.Duration, log utils.Logger) {
	if err := session.WaitVisible(ctx, loc.CookieAccept, timeout); err != nil {
		log.Debug("no cookie popup or already accepted")
		return
	}
	if err := session.Click(ctx, loc.CookieAccept); err != nil {
		log.Warnf("cookie popup present but not clickable: %v", err)
		return
	}
	log.Info("cookie popup accepted")
}

func dismissNewsletter(ctx context.Context, session browser.Session, timeout time.Duration, log utils.Logger) {
	deadline := time.Now().Add(timeout)
	for {
		var clicked bool
		if err := session.Evaluate(ctx, newsletterDismissScript, &clicked); err != nil {
			log.Debugf("newsletter dismissal script failed: %v", err)
			return
		}
		if clicked {
			log.Info("newsletter popup dismissed")
			return
		}
		if time.Now().After(deadline) {
			log.Debug("no newsletter popup appeared")
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(500 * time.Millisecond):
		}
	}
}
