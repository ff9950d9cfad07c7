// internal/extract/extractor_test.go
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/valpere/ProductHarvester/internal/browser"
	"github.com/valpere/ProductHarvester/internal/utils"
)

// fakeSession is an in-memory browser.Session backed by selector maps.
type fakeSession struct {
	navErr     error
	notVisible map[string]bool
	texts      map[string]string
	textLists  map[string][]string
	attrs      map[string]map[string]string
	outerHTML  map[string]string
	pageHTML   string
	closed     bool
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	return s.navErr
}

func (s *fakeSession) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if s.notVisible[selector] {
		return fmt.Errorf("%w: %s", browser.ErrElementNotFound, selector)
	}
	return nil
}

func (s *fakeSession) Text(ctx context.Context, selector string) (string, error) {
	text, ok := s.texts[selector]
	if !ok {
		return "", fmt.Errorf("%w: %s", browser.ErrElementNotFound, selector)
	}
	return text, nil
}

func (s *fakeSession) TextAll(ctx context.Context, selector string) ([]string, error) {
	return s.textLists[selector], nil
}

func (s *fakeSession) Attribute(ctx context.Context, selector, name string) (string, bool, error) {
	attrs, ok := s.attrs[selector]
	if !ok {
		return "", false, fmt.Errorf("%w: %s", browser.ErrElementNotFound, selector)
	}
	value, ok := attrs[name]
	return value, ok, nil
}

func (s *fakeSession) Click(ctx context.Context, selector string) error { return nil }

func (s *fakeSession) ScrollIntoView(ctx context.Context, selector string) error { return nil }

func (s *fakeSession) Evaluate(ctx context.Context, script string, out interface{}) error {
	if n, ok := out.(*int); ok {
		*n = 0
	}
	return nil
}

func (s *fakeSession) OuterHTML(ctx context.Context, selector string) (string, error) {
	html, ok := s.outerHTML[selector]
	if !ok {
		return "", fmt.Errorf("%w: %s", browser.ErrElementNotFound, selector)
	}
	return html, nil
}

func (s *fakeSession) HTML(ctx context.Context) (string, error) {
	return s.pageHTML, nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

// fakeFetcher records download requests and fabricates filenames.
type fakeFetcher struct {
	fetched []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, imageURL, mpn string, slot int) (string, error) {
	f.fetched = append(f.fetched, imageURL)
	if slot == 0 {
		return strings.ToLower(mpn) + "-price.jpg", nil
	}
	return fmt.Sprintf("%s-%d-price.jpg", strings.ToLower(mpn), slot), nil
}

func testLogger() utils.Logger {
	return utils.NewLoggerWithLevel(utils.ErrorLevel)
}

func productPageSession(loc Locators) *fakeSession {
	session := &fakeSession{
		notVisible: map[string]bool{},
		texts: map[string]string{
			loc.Name:         "Example Gaming Laptop",
			loc.MPN:          "MPN: GL-42X",
			loc.CurrentPrice: "£1,199.00 INC VAT",
			loc.ListPrice:    "was £1,299.00 SAVE £100",
			loc.SpecHeader:   "Specifications",
		},
		textLists: map[string][]string{
			loc.BreadcrumbLinks: {"Home", "Computing", "Laptops", "Gaming Laptops"},
			loc.Tags:            {"Free Delivery", "In Stock"},
			loc.FeatureItems:    {"16GB RAM", "1TB SSD"},
		},
		attrs: map[string]map[string]string{
			loc.SpecTab: {"aria-expanded": "true"},
		},
		outerHTML: map[string]string{
			loc.SpecContent: `<div><p>General</p><table><tr><td>Weight</td><td>2kg</td></tr></table></div>`,
		},
		pageHTML: `<p-accordiontab>
			<span class="p-accordion-header-text">Does it ship with a charger?</span>
			<div role="region">Yes.</div>
		</p-accordiontab>`,
	}
	for slot := 0; slot < ImageSlots; slot++ {
		session.attrs[loc.ImageSlotSelector(slot)] = map[string]string{
			"src": fmt.Sprintf("https://cdn.example.com/img-%d.jpg", slot),
		}
	}
	return session
}

func newTestExtractor(session *fakeSession, fetcher ImageFetcher) *PageExtractor {
	factory := func(*browser.SessionConfig) (browser.Session, error) {
		return session, nil
	}
	extractor := NewPageExtractor(factory, browser.DefaultSessionConfig(), DefaultLocators(), fetcher,
		PopupPolicy{}, testLogger())
	extractor.SetSettle(Settle{})
	return extractor
}

func TestNewPageExtractorUsesDefaultSettle(t *testing.T) {
	extractor := NewPageExtractor(nil, nil, DefaultLocators(), nil, PopupPolicy{}, testLogger())
	if extractor.settle != DefaultSettle() {
		t.Errorf("settle = %+v, want defaults", extractor.settle)
	}
	if extractor.settle.SpecExpand == 0 || extractor.settle.FAQScroll == 0 {
		t.Error("default settle delays must be non-zero")
	}
}

func TestExtractFullPage(t *testing.T) {
	loc := DefaultLocators()
	session := productPageSession(loc)
	fetcher := &fakeFetcher{}
	extractor := newTestExtractor(session, fetcher)

	record, err := extractor.Extract(context.Background(), "https://shop.example.com/p/gl-42x")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !session.closed {
		t.Error("session was not closed")
	}

	if record.Name != "Example Gaming Laptop" {
		t.Errorf("Name = %q", record.Name)
	}
	if record.MPN != "GL-42X" {
		t.Errorf("MPN = %q", record.MPN)
	}
	if record.CurrentPrice != "£1,199.00" {
		t.Errorf("CurrentPrice = %q", record.CurrentPrice)
	}
	if record.ListPrice != "£1,299.00" {
		t.Errorf("ListPrice = %q", record.ListPrice)
	}
	if record.Category.Top != "Computing" || record.Category.Sub != "Laptops" {
		t.Errorf("Category = %+v", record.Category)
	}
	if record.Images[0] != "gl-42x-price.jpg" || record.Images[3] != "gl-42x-3-price.jpg" {
		t.Errorf("Images = %v", record.Images)
	}
	if len(fetcher.fetched) != ImageSlots {
		t.Errorf("fetched %d images, want %d", len(fetcher.fetched), ImageSlots)
	}
	if len(record.Tags) != 2 || record.Tags[0] != "Free Delivery" {
		t.Errorf("Tags = %v", record.Tags)
	}
	if len(record.KeyFeatures) != 2 {
		t.Errorf("KeyFeatures = %v", record.KeyFeatures)
	}
	if record.Specifications.Sentinel != "" || len(record.Specifications.Tables) != 1 {
		t.Errorf("Specifications = %+v", record.Specifications)
	}
	if len(record.FAQs) != 1 || record.FAQs[0].Question != "Does it ship with a charger?" {
		t.Errorf("FAQs = %+v", record.FAQs)
	}

	for _, group := range []string{"identity", "category", "images", "tags", "key_features", "specifications", "faqs"} {
		outcome, ok := record.Outcomes[group]
		if !ok {
			t.Errorf("missing outcome for %s", group)
			continue
		}
		if outcome.Status != StatusFound {
			t.Errorf("outcome for %s = %+v, want found", group, outcome)
		}
	}
}

func TestExtractNavigateFailure(t *testing.T) {
	session := &fakeSession{navErr: errors.New("net::ERR_CONNECTION_RESET")}
	extractor := newTestExtractor(session, &fakeFetcher{})

	_, err := extractor.Extract(context.Background(), "https://shop.example.com/p/down")
	if err == nil {
		t.Fatal("expected error")
	}
	if !session.closed {
		t.Error("session was not closed on failure")
	}
}

func TestExtractNotProductPage(t *testing.T) {
	loc := DefaultLocators()
	session := &fakeSession{notVisible: map[string]bool{loc.Name: true}}
	extractor := newTestExtractor(session, &fakeFetcher{})

	_, err := extractor.Extract(context.Background(), "https://shop.example.com/category/laptops")
	if !errors.Is(err, ErrNotProductPage) {
		t.Fatalf("expected ErrNotProductPage, got %v", err)
	}
}

func TestExtractDegradedGroups(t *testing.T) {
	loc := DefaultLocators()
	session := productPageSession(loc)
	// No tags, empty key-features list, no FAQ section.
	session.textLists[loc.Tags] = nil
	session.textLists[loc.FeatureItems] = nil
	session.notVisible[loc.FAQSection] = true

	extractor := newTestExtractor(session, &fakeFetcher{})
	record, err := extractor.Extract(context.Background(), "https://shop.example.com/p/gl-42x")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if len(record.Tags) != 1 || record.Tags[0] != SentinelNA {
		t.Errorf("Tags = %v, want sentinel", record.Tags)
	}
	if record.Outcomes["tags"].Status != StatusAbsent {
		t.Errorf("tags outcome = %+v", record.Outcomes["tags"])
	}
	if len(record.KeyFeatures) != 1 || record.KeyFeatures[0] != SentinelNA {
		t.Errorf("KeyFeatures = %v, want sentinel", record.KeyFeatures)
	}
	if record.Outcomes["key_features"].Status != StatusAbsent {
		t.Errorf("key_features outcome = %+v", record.Outcomes["key_features"])
	}
	if len(record.FAQs) != 1 || record.FAQs[0].Answer != SentinelFAQsNotFound {
		t.Errorf("FAQs = %+v, want sentinel pair", record.FAQs)
	}
	if record.Outcomes["faqs"].Status != StatusErrored {
		t.Errorf("faqs outcome = %+v", record.Outcomes["faqs"])
	}
}
