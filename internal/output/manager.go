// internal/output/manager.go
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/valpere/ProductHarvester/internal/extract"
)

// Manager dispatches dataset writes to the configured format and owns the
// failed-links artifact.
type Manager struct {
	config Config
	writer Writer
}

// NewManager creates a manager for the configured destination. The format
// must be one of the supported constants; config validation catches this
// earlier, but the manager guards it again for direct construction.
func NewManager(config Config) (*Manager, error) {
	var writer Writer
	switch config.Format {
	case "excel":
		writer = NewExcelWriter(config.File, config.SheetName)
	case "csv":
		writer = NewCSVWriter(config.File)
	case "json":
		writer = NewJSONWriter(config.File)
	case "sqlite":
		writer = NewSQLiteWriter(config.File, config.Table)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", config.Format)
	}
	return &Manager{config: config, writer: writer}, nil
}

// WriteDataset persists the scraped records.
func (m *Manager) WriteDataset(records []*extract.ProductRecord) error {
	return m.writer.Write(records)
}

// WriteFailures persists the URLs that failed after all retries. The
// artifact format follows the file extension: .xlsx gets a single-column
// workbook, anything else one URL per line.
func (m *Manager) WriteFailures(urls []string) error {
	if m.config.FailedFile == "" {
		return nil
	}
	if strings.EqualFold(filepath.Ext(m.config.FailedFile), ".xlsx") {
		return writeFailedWorkbook(m.config.FailedFile, urls)
	}
	return writeFailedText(m.config.FailedFile, urls)
}

func writeFailedText(path string, urls []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create failed-links file: %w", err)
	}
	defer file.Close()

	for _, url := range urls {
		if _, err := fmt.Fprintln(file, url); err != nil {
			return fmt.Errorf("failed to write failed link: %w", err)
		}
	}
	return nil
}

func writeFailedWorkbook(path string, urls []string) error {
	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	if err := book.SetCellValue(sheet, "A1", "Failed Links"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, url := range urls {
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell: %w", err)
		}
		if err := book.SetCellValue(sheet, ref, url); err != nil {
			return fmt.Errorf("failed to write failed link: %w", err)
		}
	}

	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save failed-links workbook: %w", err)
	}
	return nil
}
