// internal/input/links.go
// Package input loads the batch of product URLs to scrape from an Excel
// workbook or a plain text file.
package input

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadLinks loads URLs from path. Workbooks (.xlsx) are read via the named
// sheet and column header; any other extension is treated as one URL per
// line. The result is deduplicated in input order, and every URL must be
// absolute http(s).
func ReadLinks(path, sheet, column string) ([]string, error) {
	var raw []string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		raw, err = readWorkbookLinks(path, sheet, column)
	default:
		raw, err = readTextLinks(path)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	links := make([]string, 0, len(raw))
	for _, link := range raw {
		link = strings.TrimSpace(link)
		if link == "" {
			continue
		}
		if err := validateLink(link); err != nil {
			return nil, fmt.Errorf("invalid link %q: %w", link, err)
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}

	if len(links) == 0 {
		return nil, fmt.Errorf("no links found in %s", path)
	}
	return links, nil
}

func readWorkbookLinks(path, sheet, column string) ([]string, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer book.Close()

	if sheet == "" {
		sheet = book.GetSheetName(0)
	}
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	colIdx := -1
	for i, header := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(header), column) {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return nil, fmt.Errorf("column %q not found in sheet %q", column, sheet)
	}

	var links []string
	for _, row := range rows[1:] {
		if colIdx < len(row) {
			links = append(links, row[colIdx])
		}
	}
	return links, nil
}

func readTextLinks(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open links file: %w", err)
	}
	defer file.Close()

	var links []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		links = append(links, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read links file: %w", err)
	}
	return links, nil
}

func validateLink(link string) error {
	parsed, err := url.Parse(link)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
