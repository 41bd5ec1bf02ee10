package errors

import (
	"strings"
	"testing"
)

func TestValidateGraphPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "graph.json", false},
		{"valid nested", "testdata/graphs/tree.json", false},
		{"valid upper extension", "GRAPH.JSON", false},
		{"valid absolute", "/tmp/graph.json", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"wrong extension", "graph.yaml", true},
		{"no extension", "graph", true},
		{"too long", strings.Repeat("a", 5000) + ".json", true},
		{"null byte", "gra\x00ph.json", true},
		{"newline", "graph\n.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGraphPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGraphPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateGraphPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid svg", "out.svg", false},
		{"valid nested", "build/out.png", false},

		{"empty", "", true},
		{"directory", "build/", true},
		{"control char", "out\x01.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
