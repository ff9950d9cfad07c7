// internal/output/csv.go
package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/valpere/ProductHarvester/internal/extract"
)

// CSVWriter writes the dataset as a single CSV file with a header row.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSV writer targeting path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write persists records as CSV.
func (w *CSVWriter) Write(records []*extract.ProductRecord) error {
	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	columns := extract.Columns()

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	line := make([]string, len(columns))
	for _, record := range records {
		row := record.Row()
		for i, column := range columns {
			line[i] = cell(row[column])
		}
		if err := writer.Write(line); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
