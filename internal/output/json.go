// internal/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/valpere/ProductHarvester/internal/extract"
)

// JSONWriter writes the dataset as an indented JSON array of records.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a JSON writer targeting path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Write persists records as JSON.
func (w *JSONWriter) Write(records []*extract.ProductRecord) error {
	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}
