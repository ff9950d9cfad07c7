// internal/utils/logger_test.go
package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"ERROR", ErrorLevel},
		{"", InfoLevel},
		{"loud", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewRunLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()

	log, path, closeLog, err := NewRunLogger(dir, InfoLevel)
	if err != nil {
		t.Fatalf("NewRunLogger returned error: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("log path %q not under %q", path, dir)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "scraping_log_") || !strings.HasSuffix(base, ".log") {
		t.Errorf("log file name = %q", base)
	}

	log.Info("run started")
	log.Debug("suppressed at info level")
	if err := closeLog(); err != nil {
		t.Fatalf("close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not readable: %v", err)
	}
	if !strings.Contains(string(data), "run started") {
		t.Errorf("log file missing info line: %q", data)
	}
	if strings.Contains(string(data), "suppressed") {
		t.Errorf("debug line leaked at info level: %q", data)
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	parent := NewLoggerWithLevel(InfoLevel).(*SimpleLogger)
	child := parent.WithField("url", "https://shop.example.com/p/1").(*SimpleLogger)

	if len(parent.fields) != 0 {
		t.Errorf("parent fields mutated: %v", parent.fields)
	}
	if child.fields["url"] != "https://shop.example.com/p/1" {
		t.Errorf("child fields = %v", child.fields)
	}
}
