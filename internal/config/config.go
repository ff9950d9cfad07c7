// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatExcel  = "excel"
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// LoadFromFile loads and validates a configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// ApplyDefaults fills unset fields with production defaults: 5 workers,
// 3 attempts with a 2s cooldown, headless Chrome at 1920x1080.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "product-harvest"
	}
	if c.Version == "" {
		c.Version = "1"
	}

	if c.Input.Column == "" {
		c.Input.Column = "Links"
	}

	if c.Output.Format == "" {
		c.Output.Format = FormatExcel
	}
	if c.Output.SheetName == "" {
		c.Output.SheetName = "Products"
	}
	if c.Output.Table == "" {
		c.Output.Table = "products"
	}
	ts := time.Now().Format("2006-01-02_15-04-05")
	if c.Output.File == "" {
		c.Output.File = fmt.Sprintf("scraped_product_data_%s%s", ts, extensionFor(c.Output.Format))
	}
	if c.Output.FailedFile == "" {
		c.Output.FailedFile = filepath.Join(filepath.Dir(c.Output.File), fmt.Sprintf("failed_links_%s.txt", ts))
	}

	if c.Browser.ViewportWidth == 0 {
		c.Browser.ViewportWidth = 1920
	}
	if c.Browser.ViewportHeight == 0 {
		c.Browser.ViewportHeight = 1080
	}
	if c.Browser.NavigationTimeout == 0 {
		c.Browser.NavigationTimeout = 60 * time.Second
	}
	if c.Browser.ElementTimeout == 0 {
		c.Browser.ElementTimeout = 30 * time.Second
	}

	if c.Popups.CookieTimeout == 0 {
		c.Popups.CookieTimeout = 10 * time.Second
	}
	if c.Popups.NewsletterTimeout == 0 {
		c.Popups.NewsletterTimeout = 15 * time.Second
	}

	if c.Concurrency.Workers == 0 {
		c.Concurrency.Workers = 5
	}

	if c.Retry.Attempts == 0 {
		c.Retry.Attempts = 3
	}
	if c.Retry.Cooldown == 0 {
		c.Retry.Cooldown = 2 * time.Second
	}

	if c.Images.Dir == "" {
		c.Images.Dir = "product_images"
	}
	if c.Images.TypeLabel == "" {
		c.Images.TypeLabel = "price"
	}
	if c.Images.Timeout == 0 {
		c.Images.Timeout = 30 * time.Second
	}

	if c.Ledger.File == "" {
		c.Ledger.File = "scraped_links.txt"
	}

	if c.Monitoring.ListenAddress == "" {
		c.Monitoring.ListenAddress = ":9090"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Input.File == "" {
		return fmt.Errorf("input.file is required")
	}

	switch c.Output.Format {
	case FormatExcel, FormatCSV, FormatJSON, FormatSQLite:
	default:
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}

	if c.Concurrency.Workers < 1 {
		return fmt.Errorf("concurrency.workers must be at least 1")
	}
	if c.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be at least 1")
	}
	if c.Retry.Cooldown < 0 {
		return fmt.Errorf("retry.cooldown must not be negative")
	}
	if c.Images.RequestsPerSecond < 0 {
		return fmt.Errorf("images.requests_per_second must not be negative")
	}

	for name, sel := range c.Selectors {
		if strings.TrimSpace(sel) == "" {
			return fmt.Errorf("selector override %q is empty", name)
		}
	}

	return nil
}

// GenerateTemplate returns a ready-to-edit configuration for the target site.
func GenerateTemplate() *Config {
	cfg := &Config{
		Name:        "box-products",
		Description: "Product detail pages harvested from a single retail site",
		Input: InputConfig{
			File:   "Box_Links.xlsx",
			Column: "Links",
		},
		Output: OutputConfig{
			Format: FormatExcel,
		},
		Browser: BrowserConfig{
			Headless: true,
		},
		Popups: PopupsConfig{
			AcceptCookies:     true,
			DismissNewsletter: true,
		},
		Ledger: LedgerConfig{
			Enabled: true,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// extensionFor maps an output format to its file extension.
func extensionFor(format string) string {
	switch format {
	case FormatExcel:
		return ".xlsx"
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	case FormatSQLite:
		return ".db"
	default:
		return ""
	}
}
