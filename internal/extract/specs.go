// internal/extract/specs.go
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

const specWaitTimeout = 20 * time.Second

// ExtractSpecifications runs the three-stage specification extraction:
// open the accordion tab, wait for header and content, then parse the
// tables out of the content container's markup. Failure to open the tab
// terminates early with the tab sentinel; an empty result set yields the
// no-specifications sentinel rather than an empty sequence.
func ExtractSpecifications(ctx context.Context, session browser.Session, loc Locators, settle Settle, log utils.Logger) (Specifications, Outcome) {
	if err := openSpecTab(ctx, session, loc, settle); err != nil {
		log.Errorf("error clicking spec tab: %v", err)
		return Specifications{Sentinel: SentinelSpecsNotClickable}, Errored("spec tab not clickable")
	}

	if err := session.WaitVisible(ctx, loc.SpecHeader, specWaitTimeout); err != nil {
		log.Errorf("spec header did not appear: %v", err)
		return Specifications{Sentinel: SentinelSpecsError}, Errored("spec header not visible")
	}
	if err := session.WaitVisible(ctx, loc.SpecContent, specWaitTimeout); err != nil {
		log.Errorf("spec content did not appear: %v", err)
		return Specifications{Sentinel: SentinelSpecsError}, Errored("spec content not visible")
	}

	header, err := session.Text(ctx, loc.SpecHeader)
	if err != nil {
		log.Errorf("failed to read spec header: %v", err)
		return Specifications{Sentinel: SentinelSpecsError}, Errored("spec header not readable")
	}

	html, err := session.OuterHTML(ctx, loc.SpecContent)
	if err != nil {
		log.Errorf("failed to read spec content markup: %v", err)
		return Specifications{Sentinel: SentinelSpecsError}, Errored("spec content not readable")
	}

	tables, err := ParseSpecTables(html)
	if err != nil {
		log.Errorf("failed to parse spec tables: %v", err)
		return Specifications{Sentinel: SentinelSpecsError}, Errored("spec tables not parseable")
	}
	if len(tables) == 0 {
		return Specifications{MainHeader: strings.TrimSpace(header), Sentinel: SentinelNoSpecs}, Absent("no specification tables")
	}

	return Specifications{
		MainHeader: strings.TrimSpace(header),
		Tables:     tables,
	}, Found()
}

// openSpecTab scrolls the specifications tab into view and expands it if
// the expansion-state attribute says it is collapsed.
func openSpecTab(ctx context.Context, session browser.Session, loc Locators, settle Settle) error {
	if err := session.WaitVisible(ctx, loc.SpecTab, specWaitTimeout); err != nil {
		return err
	}
	if err := session.ScrollIntoView(ctx, loc.SpecTab); err != nil {
		return err
	}
	sleepCtx(ctx, settle.SpecScroll)

	expanded, ok, err := session.Attribute(ctx, loc.SpecTab, "aria-expanded")
	if err != nil {
		return err
	}
	if ok && expanded == "true" {
		return nil
	}

	if err := session.Click(ctx, loc.SpecTab); err != nil {
		return fmt.Errorf("failed to expand spec tab: %w", err)
	}
	sleepCtx(ctx, settle.SpecExpand)
	return nil
}

// ParseSpecTables parses specification tables out of the content
// container's markup. Each table is paired with the preceding label
// paragraph by positional index, falling back to a synthesized "Table N"
// title when labels run out. Rows must have exactly two non-empty cells;
// anything else is dropped as malformed. Tables with no surviving rows are
// dropped entirely.
func ParseSpecTables(html string) ([]SpecTable, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse spec markup: %w", err)
	}

	labels := doc.Find("p").Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})

	var tables []SpecTable
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		title := fmt.Sprintf("Table %d", i+1)
		if i < len(labels) && labels[i] != "" {
			title = labels[i]
		}

		var attrs []SpecAttribute
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() != 2 {
				return
			}
			key := strings.TrimSpace(cells.Eq(0).Text())
			value := strings.TrimSpace(cells.Eq(1).Text())
			if key == "" || value == "" {
				return
			}
			attrs = append(attrs, SpecAttribute{Key: key, Value: value})
		})

		if len(attrs) > 0 {
			tables = append(tables, SpecTable{Header: title, Attributes: attrs})
		}
	})

	return tables, nil
}

// sleepCtx sleeps for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
