// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
name: test-harvest
input:
  file: links.xlsx
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile returned error: %v", err)
	}

	if cfg.Input.Column != "Links" {
		t.Errorf("Input.Column = %q", cfg.Input.Column)
	}
	if cfg.Output.Format != FormatExcel {
		t.Errorf("Output.Format = %q", cfg.Output.Format)
	}
	if !strings.HasPrefix(cfg.Output.File, "scraped_product_data_") || !strings.HasSuffix(cfg.Output.File, ".xlsx") {
		t.Errorf("Output.File = %q", cfg.Output.File)
	}
	if !strings.HasPrefix(filepath.Base(cfg.Output.FailedFile), "failed_links_") {
		t.Errorf("Output.FailedFile = %q", cfg.Output.FailedFile)
	}
	if cfg.Concurrency.Workers != 5 {
		t.Errorf("Concurrency.Workers = %d", cfg.Concurrency.Workers)
	}
	if cfg.Retry.Attempts != 3 || cfg.Retry.Cooldown != 2*time.Second {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
	if cfg.Browser.ViewportWidth != 1920 || cfg.Browser.ViewportHeight != 1080 {
		t.Errorf("Browser viewport = %dx%d", cfg.Browser.ViewportWidth, cfg.Browser.ViewportHeight)
	}
	if cfg.Images.TypeLabel != "price" {
		t.Errorf("Images.TypeLabel = %q", cfg.Images.TypeLabel)
	}
	if cfg.Ledger.File != "scraped_links.txt" {
		t.Errorf("Ledger.File = %q", cfg.Ledger.File)
	}
}

func TestLoadFromFileExplicitValuesWin(t *testing.T) {
	path := writeConfig(t, `
name: tuned
input:
  file: links.txt
  column: URLs
output:
  format: csv
  file: out/products.csv
concurrency:
  workers: 2
retry:
  attempts: 5
  cooldown: 500ms
browser:
  headless: true
selectors:
  name: h1.product-title
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile returned error: %v", err)
	}

	if cfg.Input.Column != "URLs" {
		t.Errorf("Input.Column = %q", cfg.Input.Column)
	}
	if cfg.Output.Format != FormatCSV || cfg.Output.File != "out/products.csv" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Concurrency.Workers != 2 {
		t.Errorf("Concurrency.Workers = %d", cfg.Concurrency.Workers)
	}
	if cfg.Retry.Attempts != 5 || cfg.Retry.Cooldown != 500*time.Millisecond {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
	if cfg.Selectors["name"] != "h1.product-title" {
		t.Errorf("Selectors = %v", cfg.Selectors)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing input file", `name: x`},
		{"bad format", "input:\n  file: links.xlsx\noutput:\n  format: parquet"},
		{"empty selector", "input:\n  file: links.xlsx\nselectors:\n  name: \"  \""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)
			if _, err := LoadFromFile(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGenerateTemplateIsValid(t *testing.T) {
	cfg := GenerateTemplate()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("template does not validate: %v", err)
	}
	if !cfg.Popups.AcceptCookies || !cfg.Popups.DismissNewsletter {
		t.Error("template should enable popup handling")
	}
	if !cfg.Ledger.Enabled {
		t.Error("template should enable the ledger")
	}
}
