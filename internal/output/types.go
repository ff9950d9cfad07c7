// internal/output/types.go
// Package output persists scraped product records as Excel, CSV, JSON, or
// SQLite datasets, and writes the failed-links artifact for a run.
package output

import (
	"fmt"

	"github.com/valpere/ProductHarvester/internal/extract"
)

// Writer persists a complete dataset to one destination format.
type Writer interface {
	// Write persists records. Implementations write the full dataset in
	// one shot at the end of a run, not incrementally.
	Write(records []*extract.ProductRecord) error
}

// Config selects and parameterizes the output destination.
type Config struct {
	// Format is one of "excel", "csv", "json", "sqlite".
	Format string

	// File is the dataset destination path.
	File string

	// FailedFile receives the URLs that failed after all retries.
	FailedFile string

	// SheetName names the worksheet for Excel output.
	SheetName string

	// Table names the destination table for SQLite output.
	Table string
}

// cell renders one flattened row value for textual formats.
func cell(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
