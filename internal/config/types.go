// internal/config/types.go

// Package config provides configuration types and loading for ProductHarvester.
// One YAML document describes a full harvesting job: where the link list
// lives, how the browser is driven, which locators identify each product
// field, and where results are written. Headless mode, popup strategy, and
// selector overrides are all configuration inputs, so one binary serves
// every deployment variant.
package config

import (
	"time"
)

// Config is the root configuration for a harvesting run.
type Config struct {
	// Name identifies this configuration
	Name string `yaml:"name" json:"name"`

	// Version of the configuration format
	Version string `yaml:"version" json:"version"`

	// Description provides human-readable information about this config
	Description string `yaml:"description" json:"description"`

	// Input defines where the product link list is read from
	Input InputConfig `yaml:"input" json:"input"`

	// Output defines the dataset and failure artifacts
	Output OutputConfig `yaml:"output" json:"output"`

	// Browser defines rendering session settings
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Popups defines the popup dismissal strategy
	Popups PopupsConfig `yaml:"popups" json:"popups"`

	// Selectors overrides entries of the built-in locator table.
	// Keys are semantic field names, values are CSS or XPath expressions.
	Selectors map[string]string `yaml:"selectors,omitempty" json:"selectors,omitempty"`

	// Concurrency bounds the number of in-flight extractions
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`

	// Retry controls per-URL retry behavior
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Images controls image downloading
	Images ImagesConfig `yaml:"images" json:"images"`

	// Ledger controls the processed-URL ledger for incremental re-runs
	Ledger LedgerConfig `yaml:"ledger" json:"ledger"`

	// Monitoring controls the metrics endpoint
	Monitoring MonitoringConfig `yaml:"monitoring" json:"monitoring"`

	// Logging controls log level and the per-run log file
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// InputConfig defines the link list source.
type InputConfig struct {
	// File is the path to the link list (.xlsx workbook or plain text)
	File string `yaml:"file" json:"file"`

	// Sheet is the worksheet to read; empty means the first sheet
	Sheet string `yaml:"sheet,omitempty" json:"sheet,omitempty"`

	// Column is the header of the column holding URLs
	Column string `yaml:"column" json:"column"`
}

// OutputConfig defines output artifacts.
type OutputConfig struct {
	// Format of the dataset (excel, csv, json, sqlite)
	Format string `yaml:"format" json:"format"`

	// File is the dataset path; empty derives a timestamped name
	File string `yaml:"file,omitempty" json:"file,omitempty"`

	// FailedFile is the failure artifact path; empty derives a
	// timestamped name next to the dataset
	FailedFile string `yaml:"failed_file,omitempty" json:"failed_file,omitempty"`

	// SheetName for Excel output
	SheetName string `yaml:"sheet_name,omitempty" json:"sheet_name,omitempty"`

	// Table for sqlite output
	Table string `yaml:"table,omitempty" json:"table,omitempty"`
}

// BrowserConfig defines rendering session settings.
type BrowserConfig struct {
	// Headless mode
	Headless bool `yaml:"headless" json:"headless"`

	// ViewportWidth and ViewportHeight size the browser window
	ViewportWidth  int `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height" json:"viewport_height"`

	// UserAgent to present; empty keeps the browser default
	UserAgent string `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`

	// DisableImages speeds up page loads; image downloads bypass the
	// browser so the image set extractor is unaffected
	DisableImages bool `yaml:"disable_images" json:"disable_images"`

	// NavigationTimeout bounds page navigation
	NavigationTimeout time.Duration `yaml:"navigation_timeout" json:"navigation_timeout"`

	// ElementTimeout bounds waits for required core fields
	ElementTimeout time.Duration `yaml:"element_timeout" json:"element_timeout"`
}

// PopupsConfig defines the popup dismissal strategy.
type PopupsConfig struct {
	// AcceptCookies enables the cookie-consent accept step
	AcceptCookies bool `yaml:"accept_cookies" json:"accept_cookies"`

	// CookieTimeout bounds the wait for the consent control
	CookieTimeout time.Duration `yaml:"cookie_timeout" json:"cookie_timeout"`

	// DismissNewsletter enables the newsletter overlay dismissal step
	DismissNewsletter bool `yaml:"dismiss_newsletter" json:"dismiss_newsletter"`

	// NewsletterTimeout bounds the wait for the overlay
	NewsletterTimeout time.Duration `yaml:"newsletter_timeout" json:"newsletter_timeout"`
}

// ConcurrencyConfig bounds parallelism.
type ConcurrencyConfig struct {
	// Workers is the maximum number of concurrent rendering sessions
	Workers int `yaml:"workers" json:"workers"`
}

// RetryConfig controls the per-URL retry wrapper.
type RetryConfig struct {
	// Attempts is the total attempt budget per URL
	Attempts int `yaml:"attempts" json:"attempts"`

	// Cooldown is the fixed delay between attempts
	Cooldown time.Duration `yaml:"cooldown" json:"cooldown"`
}

// ImagesConfig controls image downloading.
type ImagesConfig struct {
	// Dir is the local directory receiving image files
	Dir string `yaml:"dir" json:"dir"`

	// TypeLabel is the trailing filename segment ({mpn}-{slot}-{type}.jpg)
	TypeLabel string `yaml:"type_label" json:"type_label"`

	// Timeout bounds a single image fetch
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// RequestsPerSecond paces downloads; zero disables pacing
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty" json:"requests_per_second,omitempty"`
}

// LedgerConfig controls the processed-URL ledger.
type LedgerConfig struct {
	// Enabled turns the ledger on
	Enabled bool `yaml:"enabled" json:"enabled"`

	// File is the newline-delimited ledger path
	File string `yaml:"file" json:"file"`
}

// MonitoringConfig controls the metrics/health endpoint.
type MonitoringConfig struct {
	// Enabled starts an HTTP listener for /metrics and health probes
	Enabled bool `yaml:"enabled" json:"enabled"`

	// ListenAddress for the listener, e.g. ":9090"
	ListenAddress string `yaml:"listen_address,omitempty" json:"listen_address,omitempty"`
}

// LoggingConfig controls logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" json:"level"`

	// Dir receives the timestamped per-run log file
	Dir string `yaml:"dir,omitempty" json:"dir,omitempty"`
}
