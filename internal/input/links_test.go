// internal/input/links_test.go
package input

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path, sheet, column string, links []string) {
	t.Helper()
	book := excelize.NewFile()
	defer book.Close()

	name := book.GetSheetName(0)
	if sheet != "" && sheet != name {
		if _, err := book.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet returned error: %v", err)
		}
		name = sheet
	}

	if err := book.SetCellValue(name, "A1", "Product"); err != nil {
		t.Fatal(err)
	}
	if err := book.SetCellValue(name, "B1", column); err != nil {
		t.Fatal(err)
	}
	for i, link := range links {
		ref, err := excelize.CoordinatesToCellName(2, i+2)
		if err != nil {
			t.Fatal(err)
		}
		if err := book.SetCellValue(name, ref, link); err != nil {
			t.Fatal(err)
		}
	}
	if err := book.SaveAs(path); err != nil {
		t.Fatalf("SaveAs returned error: %v", err)
	}
}

func TestReadLinksFromWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.xlsx")
	expected := []string{
		"https://shop.example.com/p/1",
		"https://shop.example.com/p/2",
	}
	writeWorkbook(t, path, "", "Links", expected)

	links, err := ReadLinks(path, "", "Links")
	if err != nil {
		t.Fatalf("ReadLinks returned error: %v", err)
	}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("links = %v, want %v", links, expected)
	}
}

func TestReadLinksMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.xlsx")
	writeWorkbook(t, path, "", "URLs", []string{"https://shop.example.com/p/1"})

	if _, err := ReadLinks(path, "", "Links"); err == nil {
		t.Fatal("expected error for missing column")
	}
}

func TestReadLinksFromTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	content := "https://shop.example.com/p/1\n\nhttps://shop.example.com/p/2\nhttps://shop.example.com/p/1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	links, err := ReadLinks(path, "", "Links")
	if err != nil {
		t.Fatalf("ReadLinks returned error: %v", err)
	}
	// Blank lines dropped, duplicates collapsed in input order.
	expected := []string{
		"https://shop.example.com/p/1",
		"https://shop.example.com/p/2",
	}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("links = %v, want %v", links, expected)
	}
}

func TestReadLinksRejectsInvalidURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	if err := os.WriteFile(path, []byte("ftp://shop.example.com/p/1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadLinks(path, "", "Links"); err == nil {
		t.Fatal("expected error for non-http link")
	}
}

func TestReadLinksRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadLinks(path, "", "Links"); err == nil {
		t.Fatal("expected error for empty link list")
	}
}
