// internal/extract/locators.go
package extract

import "fmt"

// Locators is the semantic-field-to-selector table. All DOM navigation in
// the extractors goes through these named entries, so markup drift on the
// target site is a configuration change, not a code change. Values are CSS
// selectors by default; entries starting with "/" or "(" are XPath.
type Locators struct {
	// Core identity and pricing
	Name         string
	MPN          string
	CurrentPrice string
	ListPrice    string

	// Breadcrumb trail links, in document order
	BreadcrumbLinks string

	// ImageSlot is a printf pattern taking the 1-based slot number and
	// yielding the selector for that slot's image element.
	ImageSlot string

	// Tag badges
	Tags string

	// Key features list
	FeaturesContainer string
	FeatureItems      string

	// Specifications accordion
	SpecTab     string
	SpecHeader  string
	SpecContent string

	// FAQ section and accordion controls
	FAQSection      string
	AccordionToggle string

	// Popup controls
	CookieAccept string
}

// Locator table keys accepted as configuration overrides.
const (
	LocatorName              = "name"
	LocatorMPN               = "mpn"
	LocatorCurrentPrice      = "current_price"
	LocatorListPrice         = "list_price"
	LocatorBreadcrumbLinks   = "breadcrumb_links"
	LocatorImageSlot         = "image_slot"
	LocatorTags              = "tags"
	LocatorFeaturesContainer = "features_container"
	LocatorFeatureItems      = "feature_items"
	LocatorSpecTab           = "spec_tab"
	LocatorSpecHeader        = "spec_header"
	LocatorSpecContent       = "spec_content"
	LocatorFAQSection        = "faq_section"
	LocatorAccordionToggle   = "accordion_toggle"
	LocatorCookieAccept      = "cookie_accept"
)

// DefaultLocators returns the locator table for the target site's current
// markup (an Angular product-detail page with PrimeNG accordions).
func DefaultLocators() Locators {
	return Locators{
		Name:         `app-pdp section div.product-info h1`,
		MPN:          `app-pdp section div.product-info div.mpn span`,
		CurrentPrice: `app-pdp section div.product-price span.current-price`,
		ListPrice:    `app-pdp section div.product-price span.list-price`,

		BreadcrumbLinks: `app-pdp app-breadcrumbs a`,

		ImageSlot: `app-custom-pdp-swiper div.swiper-thumbs > div:nth-child(%d) img`,

		Tags: `app-pdp app-product-toast > div > span`,

		FeaturesContainer: `app-pdp div.key-features`,
		FeatureItems:      `app-pdp div.key-features ul li`,

		SpecTab:     `#accordion p-accordion p-accordiontab:nth-of-type(2)`,
		SpecHeader:  `#index-1_header_action span:nth-of-type(2)`,
		SpecContent: `#index-1_content > div > div`,

		FAQSection:      `app-pdp section:nth-of-type(3)`,
		AccordionToggle: `p-accordiontab a`,

		CookieAccept: `#onetrust-accept-btn-handler`,
	}
}

// Merge applies configuration overrides onto the table. Unknown keys are
// rejected so typos in a config file fail loudly.
func (l Locators) Merge(overrides map[string]string) (Locators, error) {
	for key, sel := range overrides {
		switch key {
		case LocatorName:
			l.Name = sel
		case LocatorMPN:
			l.MPN = sel
		case LocatorCurrentPrice:
			l.CurrentPrice = sel
		case LocatorListPrice:
			l.ListPrice = sel
		case LocatorBreadcrumbLinks:
			l.BreadcrumbLinks = sel
		case LocatorImageSlot:
			l.ImageSlot = sel
		case LocatorTags:
			l.Tags = sel
		case LocatorFeaturesContainer:
			l.FeaturesContainer = sel
		case LocatorFeatureItems:
			l.FeatureItems = sel
		case LocatorSpecTab:
			l.SpecTab = sel
		case LocatorSpecHeader:
			l.SpecHeader = sel
		case LocatorSpecContent:
			l.SpecContent = sel
		case LocatorFAQSection:
			l.FAQSection = sel
		case LocatorAccordionToggle:
			l.AccordionToggle = sel
		case LocatorCookieAccept:
			l.CookieAccept = sel
		default:
			return l, fmt.Errorf("unknown locator key: %s", key)
		}
	}
	return l, nil
}

// ImageSlotSelector returns the selector for a 0-based image slot.
func (l Locators) ImageSlotSelector(slot int) string {
	return fmt.Sprintf(l.ImageSlot, slot+1)
}
