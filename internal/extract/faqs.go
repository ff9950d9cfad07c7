// internal/extract/faqs.go
package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/ProductHarvester/internal/browser"
	"github.com/valpere/ProductHarvester/internal/utils"
)

const faqWaitTimeout = 20 * time.Second

// faqExcludedHeadings names the accordion sections that are accordion-shaped
// but not FAQs.
var faqExcludedHeadings = map[string]struct{}{
	"Product Overview":  {},
	"Specifications":    {},
	"From Manufacturer": {},
}

// expandAccordionsScript clicks every accordion toggle on the page,
// triggering the client-side expansion that materializes answer content
// into the DOM.
const expandAccordionsScript = `(function(sel) {
	var toggles;
	if (sel.charAt(0) === '/' || sel.charAt(0) === '(') {
		toggles = [];
		var it = document.evaluate(sel, document, null, XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null);
		for (var i = 0; i < it.snapshotLength; i++) toggles.push(it.snapshotItem(i));
	} else {
		toggles = Array.prototype.slice.call(document.querySelectorAll(sel));
	}
	toggles.forEach(function(t) { t.click(); });
	return toggles.length;
})(%q)`

// ExtractFAQs scrolls the FAQ section into view, expands every accordion
// tab, then parses question/answer pairs out of the full rendered markup.
// Parsing the markup snapshot instead of live element queries avoids racing
// the expansion animations. An empty result yields one sentinel pair.
func ExtractFAQs(ctx context.Context, session browser.Session, loc Locators, settle Settle, log utils.Logger) ([]FAQ, Outcome) {
	if err := session.WaitVisible(ctx, loc.FAQSection, faqWaitTimeout); err != nil {
		log.Errorf("FAQ section not found: %v", err)
		return []FAQ{{Question: SentinelNA, Answer: SentinelFAQsNotFound}}, Errored("FAQ section not visible")
	}
	if err := session.ScrollIntoView(ctx, loc.FAQSection); err != nil {
		log.Debugf("could not scroll to FAQ section: %v", err)
	}
	sleepCtx(ctx, settle.FAQScroll)

	var clicked int
	script := fmt.Sprintf(expandAccordionsScript, loc.AccordionToggle)
	if err := session.Evaluate(ctx, script, &clicked); err != nil {
		log.Errorf("failed to expand accordion tabs: %v", err)
		return []FAQ{{Question: SentinelNA, Answer: SentinelFAQsNotFound}}, Errored("accordion expansion failed")
	}
	log.Debugf("expanded %d accordion tabs", clicked)
	sleepCtx(ctx, settle.FAQExpand)

	html, err := session.HTML(ctx)
	if err != nil {
		log.Errorf("failed to read page markup: %v", err)
		return []FAQ{{Question: SentinelNA, Answer: SentinelFAQsNotFound}}, Errored("page markup not readable")
	}

	faqs, err := ParseFAQs(html)
	if err != nil {
		log.Errorf("failed to parse FAQs: %v", err)
		return []FAQ{{Question: SentinelNA, Answer: SentinelFAQsNotFound}}, Errored("FAQ markup not parseable")
	}
	if len(faqs) == 0 {
		return []FAQ{{Question: SentinelNA, Answer: SentinelNoFAQs}}, Absent("no FAQs on page")
	}
	return faqs, Found()
}

// ParseFAQs pulls question/answer pairs from every accordion section in the
// markup, excluding the overview/specifications/manufacturer sections.
func ParseFAQs(html string) ([]FAQ, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var faqs []FAQ
	doc.Find("p-accordiontab").Each(func(_ int, tab *goquery.Selection) {
		title := tab.Find("span.p-accordion-header-text").First()
		answer := tab.Find(`div[role="region"]`).First()
		if title.Length() == 0 || answer.Length() == 0 {
			return
		}

		question := strings.TrimSpace(title.Text())
		if _, excluded := faqExcludedHeadings[question]; excluded || question == "" {
			return
		}

		faqs = append(faqs, FAQ{
			Question: question,
			Answer:   strings.TrimSpace(answer.Text()),
		})
	})

	return faqs, nil
}
