// internal/images/downloader_test.go
package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/valpere/ProductHarvester/internal/utils"
)

func testDownloader(t *testing.T, dir string) *Downloader {
	t.Helper()
	d, err := NewDownloader(Config{Dir: dir, TypeLabel: "price"}, utils.NewLoggerWithLevel(utils.ErrorLevel))
	if err != nil {
		t.Fatalf("NewDownloader returned error: %v", err)
	}
	return d
}

func TestFilename(t *testing.T) {
	d := testDownloader(t, t.TempDir())

	tests := []struct {
		mpn      string
		slot     int
		expected string
	}{
		{"GL-42X", 0, "gl-42x-price.jpg"},
		{"GL-42X", 1, "gl-42x-1-price.jpg"},
		{"GL-42X", 3, "gl-42x-3-price.jpg"},
		{"abc123", 0, "abc123-price.jpg"},
	}

	for _, tt := range tests {
		if got := d.Filename(tt.mpn, tt.slot); got != tt.expected {
			t.Errorf("Filename(%q, %d) = %q, want %q", tt.mpn, tt.slot, got, tt.expected)
		}
	}
}

func TestFetchSavesImage(t *testing.T) {
	payload := []byte("jpeg-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	d := testDownloader(t, dir)

	name, err := d.Fetch(context.Background(), server.URL+"/img.jpg", "GL-42X", 2)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if name != "gl-42x-2-price.jpg" {
		t.Errorf("filename = %q", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("saved file not readable: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("saved bytes = %q", data)
	}
}

func TestFetchRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dir := t.TempDir()
	d := testDownloader(t, dir)

	if _, err := d.Fetch(context.Background(), server.URL+"/missing.jpg", "GL-42X", 0); err == nil {
		t.Fatal("expected error for 404 response")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("directory not empty after failed fetch: %v", entries)
	}
}

func TestFetchRejectsEmptyURL(t *testing.T) {
	d := testDownloader(t, t.TempDir())
	if _, err := d.Fetch(context.Background(), "", "GL-42X", 0); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestNewDownloaderRequiresDir(t *testing.T) {
	if _, err := NewDownloader(Config{}, utils.NewLoggerWithLevel(utils.ErrorLevel)); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
