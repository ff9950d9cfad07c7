// internal/extract/types.go

// Package extract implements the product-page extraction pipeline: popup
// dismissal, the per-field-group extractors, and the orchestrator that
// drives one rendering session through a product detail page and assembles
// a ProductRecord.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ImageSlots is the fixed number of image slots per product: one thumbnail
// plus three additional images.
const ImageSlots = 4

// Sentinel values stored in place of absent or unextractable field groups.
// They are valid terminal data, not error signals: downstream consumers
// treat them as first-class absent-data markers.
const (
	SentinelNA                = "N/A"
	SentinelTagsError         = "Error retrieving tags"
	SentinelFeaturesError     = "Error retrieving features"
	SentinelSpecsNotClickable = "Specs tab not clickable"
	SentinelNoSpecs           = "No specifications found"
	SentinelSpecsError        = "Error retrieving specifications"
	SentinelNoFAQs            = "No FAQs found"
	SentinelFAQsNotFound      = "FAQ section not found"
)

// ErrNotProductPage marks a URL whose page is not a product detail page.
// The runner caches these so re-encounters are skipped without a session.
var ErrNotProductPage = errors.New("not a product page")

// Category is the breadcrumb-derived category hierarchy: a top and sub
// level plus zero or more leaf labels.
type Category struct {
	Top    string   `json:"top"`
	Sub    string   `json:"sub"`
	Leaves []string `json:"leaves"`
}

// SpecAttribute is one key/value pair from a specification table row.
type SpecAttribute struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// SpecTable is one titled specification table.
type SpecTable struct {
	Header     string          `json:"Header"`
	Attributes []SpecAttribute `json:"Attributes"`
}

// Specifications is the extracted specifications accordion content. When
// Sentinel is non-empty the tables could not be extracted and Sentinel
// holds the terminal marker.
type Specifications struct {
	MainHeader string
	Tables     []SpecTable
	Sentinel   string
}

// MarshalJSON serializes specifications in the established output shape:
// {"MainHeader": ..., "Specs": [...]} on success, {"Specs": "<sentinel>"}
// otherwise.
func (s Specifications) MarshalJSON() ([]byte, error) {
	if s.Sentinel != "" {
		return json.Marshal(map[string]interface{}{"Specs": s.Sentinel})
	}
	return json.Marshal(map[string]interface{}{
		"MainHeader": s.MainHeader,
		"Specs":      s.Tables,
	})
}

// FAQ is one question/answer pair from the FAQ accordion.
type FAQ struct {
	Question string `json:"Question"`
	Answer   string `json:"Answer"`
}

// Identity bundles the core product identity and pricing fields.
type Identity struct {
	Name         string `json:"name"`
	MPN          string `json:"mpn"`
	CurrentPrice string `json:"current_price"`
	ListPrice    string `json:"list_price"`
}

// ProductRecord is the unit of output: one successfully extracted product.
// A record is constructed exactly once per successful attempt and is
// immutable afterwards. Prices are kept exactly as rendered; currency and
// locale formatting must round-trip unchanged.
type ProductRecord struct {
	SourceURL    string
	Name         string
	MPN          string
	CurrentPrice string
	ListPrice    string
	Category     Category

	// Images holds one downloaded-file name per slot, "" where the slot
	// failed to resolve. Never a raw URL.
	Images [ImageSlots]string

	Tags           []string
	KeyFeatures    []string
	Specifications Specifications
	FAQs           []FAQ

	// Outcomes records the per-field-group verdicts keyed by field name.
	Outcomes map[string]Outcome
}

// Columns is the stable column order of the flattened output dataset.
func Columns() []string {
	return []string{
		"Link",
		"Product Name",
		"Product MPN",
		"Product Current Price",
		"Product List Price",
		"Top Category",
		"Sub Category",
		"Leaf Categories",
		"Thumbnail_Image",
		"Additional_Image_1",
		"Additional_Image_2",
		"Additional_Image_3",
		"Tags",
		"Key_Features",
		"Specifications",
		"FAQs",
	}
}

// Row flattens the record into output columns. Nested structures are
// serialized as JSON strings inline in their column.
func (r *ProductRecord) Row() map[string]interface{} {
	row := map[string]interface{}{
		"Link":                  r.SourceURL,
		"Product Name":          r.Name,
		"Product MPN":           r.MPN,
		"Product Current Price": r.CurrentPrice,
		"Product List Price":    r.ListPrice,
		"Top Category":          r.Category.Top,
		"Sub Category":          r.Category.Sub,
		"Leaf Categories":       mustJSON(r.Category.Leaves),
		"Thumbnail_Image":       r.Images[0],
		"Additional_Image_1":    r.Images[1],
		"Additional_Image_2":    r.Images[2],
		"Additional_Image_3":    r.Images[3],
		"Tags":                  mustJSON(map[string]interface{}{"Tags": r.Tags}),
		"Key_Features":          mustJSON(map[string]interface{}{"Key_Feature": r.KeyFeatures}),
		"Specifications":        mustJSON(r.Specifications),
		"FAQs":                  mustJSON(map[string]interface{}{"FAQs": r.FAQs}),
	}
	return row
}

// mustJSON serializes v, falling back to a quoted error string. The record
// types marshal without error by construction.
func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%q", err.Error())
	}
	return string(data)
}
