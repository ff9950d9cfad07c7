// internal/output/excel.go
package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/valpere/ProductHarvester/internal/extract"
)

// ExcelWriter writes the dataset as a single-sheet .xlsx workbook with a
// styled header row and the fixed dataset column order.
type ExcelWriter struct {
	path  string
	sheet string
}

// NewExcelWriter creates an Excel writer targeting path.
func NewExcelWriter(path, sheet string) *ExcelWriter {
	if sheet == "" {
		sheet = "Products"
	}
	return &ExcelWriter{path: path, sheet: sheet}
}

// Write persists records as a workbook.
func (w *ExcelWriter) Write(records []*extract.ProductRecord) error {
	book := excelize.NewFile()
	defer book.Close()

	index, err := book.NewSheet(w.sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	book.SetActiveSheet(index)
	book.DeleteSheet("Sheet1")

	columns := extract.Columns()

	headerStyle, err := book.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, column := range columns {
		ref, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := book.SetCellValue(w.sheet, ref, column); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
		if err := book.SetCellStyle(w.sheet, ref, ref, headerStyle); err != nil {
			return fmt.Errorf("failed to style header cell: %w", err)
		}
	}

	for rowIdx, record := range records {
		row := record.Row()
		for colIdx, column := range columns {
			ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := book.SetCellValue(w.sheet, ref, cell(row[column])); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	if err := book.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
