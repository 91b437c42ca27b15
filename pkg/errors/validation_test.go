package errors

import (
	"strings"
	"testing"
)

func TestValidateCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"numeric", "12", false},
		{"dotted", "1.2.3", false},
		{"alpha", "IND_A", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("9", 300), true},
		{"control char", "1\x01", true},
		{"newline", "1\n2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidArgument) {
				t.Errorf("ValidateCode(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidArgument)
			}
		})
	}
}

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"csv", "description.csv", false},
		{"json", "taxonomy.json", false},

		{"empty", "", true},
		{"with path /", "sub/description.csv", true},
		{"with path \\", "sub\\description.csv", true},
		{"hidden", ".description.csv", true},
		{"null byte", "a\x00.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFileName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
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
		{"relative", "data/2024", false},
		{"absolute", "/srv/taxonomy", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"control", "data\x07", true},
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
