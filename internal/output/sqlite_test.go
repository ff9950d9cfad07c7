// internal/output/sqlite_test.go
package output

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestSQLiteWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.db")
	if err := NewSQLiteWriter(path, "products").Write(sampleRecords()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM "products"`).Scan(&count); err != nil {
		t.Fatalf("count query returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("table holds %d rows, want 2", count)
	}

	var mpn string
	if err := db.QueryRow(`SELECT "Product MPN" FROM "products" WHERE "Link" = ?`,
		"https://shop.example.com/p/1").Scan(&mpn); err != nil {
		t.Fatalf("lookup query returned error: %v", err)
	}
	if mpn != "GL-42X" {
		t.Errorf("stored MPN = %q", mpn)
	}
}
