// internal/ledger/ledger_test.go
package ledger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProcessedSetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraped_links.txt")

	set := NewProcessedSet(path)
	if err := set.Load(); err != nil {
		t.Fatalf("Load on missing file returned error: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("fresh set has %d entries", set.Len())
	}

	urls := []string{
		"https://shop.example.com/p/1",
		"https://shop.example.com/p/2",
	}
	if err := set.AppendAll(urls); err != nil {
		t.Fatalf("AppendAll returned error: %v", err)
	}

	// A second run loads what the first persisted.
	reloaded := NewProcessedSet(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	for _, url := range urls {
		if !reloaded.Contains(url) {
			t.Errorf("reloaded set missing %s", url)
		}
	}
	if reloaded.Contains("https://shop.example.com/p/3") {
		t.Error("reloaded set contains URL that was never appended")
	}
}

func TestProcessedSetAppendAllDeduplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraped_links.txt")
	set := NewProcessedSet(path)

	if err := set.AppendAll([]string{"https://shop.example.com/p/1"}); err != nil {
		t.Fatalf("AppendAll returned error: %v", err)
	}
	if err := set.AppendAll([]string{"https://shop.example.com/p/1", "https://shop.example.com/p/2"}); err != nil {
		t.Fatalf("AppendAll returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	expected := "https://shop.example.com/p/1\nhttps://shop.example.com/p/2\n"
	if string(data) != expected {
		t.Errorf("ledger file = %q, want %q", data, expected)
	}
}

func TestProcessedSetLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraped_links.txt")
	content := "https://shop.example.com/p/1\n\n  \nhttps://shop.example.com/p/2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	set := NewProcessedSet(path)
	if err := set.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("loaded %d entries, want 2", set.Len())
	}
}

func TestInvalidCache(t *testing.T) {
	cache := NewInvalidCache()
	if cache.Contains("https://shop.example.com/category/laptops") {
		t.Error("fresh cache contains entries")
	}

	cache.Mark("https://shop.example.com/category/laptops")
	if !cache.Contains("https://shop.example.com/category/laptops") {
		t.Error("marked URL not found")
	}
	if cache.Len() != 1 {
		t.Errorf("Len = %d, want 1", cache.Len())
	}
}
