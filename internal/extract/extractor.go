// internal/extract/extractor.go
package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/valpere/ProductHarvester/internal/browser"
	"github.com/valpere/ProductHarvester/internal/utils"
)

// Settle holds the delays inserted after UI actions so client-side
// animations finish before the DOM is queried. Querying the specifications
// accordion before its expansion animation completes reads empty tables.
type Settle struct {
	SpecScroll time.Duration
	SpecExpand time.Duration
	FAQScroll  time.Duration
	FAQExpand  time.Duration
}

// DefaultSettle returns the production settle delays.
func DefaultSettle() Settle {
	return Settle{
		SpecScroll: 1 * time.Second,
		SpecExpand: 2 * time.Second,
		FAQScroll:  2 * time.Second,
		FAQExpand:  1 * time.Second,
	}
}

// PageExtractor drives one rendering session through a product detail page
// and assembles a ProductRecord. One Extract call is one attempt: it opens
// a fresh session, guarantees teardown on every path, and either returns a
// complete record or an error — never a partially populated record mixed
// with a failure signal.
type PageExtractor struct {
	sessions   browser.Factory
	sessionCfg *browser.SessionConfig
	locators   Locators
	fetcher    ImageFetcher
	popups     PopupPolicy
	settle     Settle
	log        utils.Logger
}

// NewPageExtractor creates a page extractor.
func NewPageExtractor(sessions browser.Factory, sessionCfg *browser.SessionConfig, locators Locators, fetcher ImageFetcher, popups PopupPolicy, log utils.Logger) *PageExtractor {
	if sessionCfg == nil {
		sessionCfg = browser.DefaultSessionConfig()
	}
	return &PageExtractor{
		sessions:   sessions,
		sessionCfg: sessionCfg,
		locators:   locators,
		fetcher:    fetcher,
		popups:     popups,
		settle:     DefaultSettle(),
		log:        log,
	}
}

// SetSettle overrides the post-action settle delays.
func (pe *PageExtractor) SetSettle(settle Settle) {
	pe.settle = settle
}

// Extract runs one extraction attempt for url.
//
// Stage order: Navigate, DismissPopups, WaitForCoreFields, then the field
// extractors, then assembly. Failures of the core identity fields fail the
// attempt; every other field group degrades to its sentinel inside its own
// extractor and never aborts the rest.
func (pe *PageExtractor) Extract(ctx context.Context, url string) (record *ProductRecord, err error) {
	log := pe.log.WithField("url", url)
	started := time.Now()

	session, err := pe.sessions(pe.sessionCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open rendering session: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.Warnf("session close failed: %v", closeErr)
		}
	}()

	if err := session.Navigate(ctx, url); err != nil {
		return nil, err
	}
	log.Info("page loaded")

	DismissPopups(ctx, session, pe.locators, pe.popups, log)

	if err := pe.waitForCoreFields(ctx, session, log); err != nil {
		return nil, err
	}

	identity, outcome := ExtractIdentity(ctx, session, pe.locators, log)
	if !outcome.OK() {
		return nil, fmt.Errorf("core field extraction failed: %s", outcome.Reason)
	}

	record = &ProductRecord{
		SourceURL:    url,
		Name:         identity.Name,
		MPN:          identity.MPN,
		CurrentPrice: identity.CurrentPrice,
		ListPrice:    identity.ListPrice,
		Outcomes:     map[string]Outcome{"identity": outcome},
	}

	record.Category, record.Outcomes["category"] = ExtractCategory(ctx, session, pe.locators, log)
	record.Images, record.Outcomes["images"] = ExtractImages(ctx, session, pe.locators, pe.fetcher, identity.MPN, log)
	record.Tags, record.Outcomes["tags"] = ExtractTags(ctx, session, pe.locators, log)
	record.KeyFeatures, record.Outcomes["key_features"] = ExtractKeyFeatures(ctx, session, pe.locators, log)
	record.Specifications, record.Outcomes["specifications"] = ExtractSpecifications(ctx, session, pe.locators, pe.settle, log)
	record.FAQs, record.Outcomes["faqs"] = ExtractFAQs(ctx, session, pe.locators, pe.settle, log)

	log.Infof("extraction finished in %s", time.Since(started).Round(time.Millisecond))
	return record, nil
}

// waitForCoreFields blocks until the required identity fields are visible.
// A page that never renders the product name is not a product detail page
// at all; that case is surfaced as ErrNotProductPage so the runner can
// cache the URL as invalid instead of retrying it.
func (pe *PageExtractor) waitForCoreFields(ctx context.Context, session browser.Session, log utils.Logger) error {
	timeout := pe.sessionCfg.ElementTimeout

	if err := session.WaitVisible(ctx, pe.locators.Name, timeout); err != nil {
		return fmt.Errorf("%w: product name never rendered: %v", ErrNotProductPage, err)
	}

	for _, sel := range []string{pe.locators.MPN, pe.locators.CurrentPrice} {
		if err := session.WaitVisible(ctx, sel, timeout); err != nil {
			return fmt.Errorf("required core field not rendered: %w", err)
		}
	}

	// Optional regions: absence is logged and tolerated, extraction
	// proceeds best-effort.
	for _, sel := range []string{pe.locators.ListPrice, pe.locators.BreadcrumbLinks, pe.locators.Tags} {
		if err := session.WaitVisible(ctx, sel, timeout); err != nil {
			log.Debugf("optional region not rendered: %v", err)
		}
	}

	return nil
}
