package errors

import (
	"strings"
	"testing"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "rashi", false},
		{"with dash", "rabbeinu-tam", false},
		{"with underscore", "amoraim_babylonia", false},
		{"with digits", "gen1", false},

		{"empty", "", true},
		{"uppercase", "Rashi", true},
		{"leading dash", "-rashi", true},
		{"space", "rabbeinu tam", true},
		{"slash", "a/b", true},
		{"too long", string(make([]byte, 200)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlug(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative file", "data/people.yaml", false},
		{"absolute file", "/srv/toldot/people.json", false},
		{"dotted name", "people..bak.json", false},
		{"parent directory", "../data/people.yaml", false},

		{"empty", "", true},
		{"null byte", "data\x00.json", true},
		{"newline", "data\n.json", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://example.org/api/timeline/people", false},
		{"http://localhost:8080", false},
		{"", true},
		{"ftp://example.org", true},
		{"example.org", true},
		{"https://", true},
		{"http://[::1", true},
	}

	for _, tt := range tests {
		if err := ValidateURL(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateYearRange(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  int
		wantErr bool
	}{
		{"ordinary", 1000, 1500, false},
		{"negative", -500, 100, false},
		{"single year", 1200, 1200, false},
		{"reversed", 1500, 1000, true},
		{"too early", -20000, 0, true},
		{"too late", 0, 20000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateYearRange(tt.lo, tt.hi)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateYearRange(%d, %d) error = %v, wantErr %v", tt.lo, tt.hi, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFilter) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidFilter)
			}
		})
	}
}
