// internal/extract/identity_test.go
package extract

import "testing"

func TestNormalizeMPN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"labeled", "MPN: ABC-123", "ABC-123"},
		{"labeled no space", "MPN:ABC-123", "ABC-123"},
		{"unlabeled", "ABC-123", "ABC-123"},
		{"surrounding whitespace", "  MPN: XY99  ", "XY99"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMPN(tt.input); got != tt.expected {
				t.Errorf("NormalizeMPN(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"vat suffix", "£1,299.00 INC VAT", "£1,299.00"},
		{"no suffix", "£49.99", "£49.99"},
		{"whitespace", "  £5.00 INC VAT  ", "£5.00"},
		{"formatting preserved", "£1,299.00", "£1,299.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePrice(tt.input); got != tt.expected {
				t.Errorf("NormalizePrice(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeListPrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"was and save", "was £999.00 SAVE £100", "£999.00"},
		{"save only", "£999.00 SAVE £100", "£999.00"},
		{"was only", "was £999.00", "£999.00"},
		{"plain", "£999.00", "£999.00"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeListPrice(tt.input); got != tt.expected {
				t.Errorf("NormalizeListPrice(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
