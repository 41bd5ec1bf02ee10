package style

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/graph"
)

func TestPresetsValidate(t *testing.T) {
	for name, s := range map[string]Style{"default": Default(), "layered": Layered()} {
		if err := s.Validate(); err != nil {
			t.Errorf("%s: Validate() error = %v", name, err)
		}
	}
}

func TestDefaultDimensions(t *testing.T) {
	s := Default()
	if s.HorizontalSpacing != 2*s.VertexDiameter {
		t.Errorf("HorizontalSpacing = %g, want 2*diameter", s.HorizontalSpacing)
	}
	if s.VerticalSpacing != s.VertexDiameter {
		t.Errorf("VerticalSpacing = %g, want diameter", s.VerticalSpacing)
	}
	if s.Margin != 0 {
		t.Errorf("Margin = %g, want 0", s.Margin)
	}
	if got := s.LabelHeight(); got != 24 {
		t.Errorf("LabelHeight() = %g, want 24", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Style)
	}{
		{"zero diameter", func(s *Style) { s.VertexDiameter = 0 }},
		{"negative spacing", func(s *Style) { s.HorizontalSpacing = -1 }},
		{"negative margin", func(s *Style) { s.Margin = -4 }},
		{"zero font", func(s *Style) { s.FontSize = 0 }},
		{"nan diameter", func(s *Style) { s.VertexDiameter = math.NaN() }},
		{"infinite diameter", func(s *Style) { s.VertexDiameter = math.Inf(1) }},
		{"nan spacing", func(s *Style) { s.VerticalSpacing = math.NaN() }},
		{"infinite margin", func(s *Style) { s.Margin = math.Inf(1) }},
		{"nan font", func(s *Style) { s.FontSize = math.NaN() }},
		{"unknown placement", func(s *Style) { s.Placement = "spiral" }},
		{"bad vertex color", func(s *Style) { s.Colors.VertexFill = "grey" }},
		{"bad edge color", func(s *Style) { s.Colors.Edges.Red = "#ff" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(&s)
			err := s.Validate()
			if !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("Validate() error = %v, want INVALID_STYLE", err)
			}
		})
	}
}

func TestPalette(t *testing.T) {
	s := Default()
	p, err := s.Palette()
	if err != nil {
		t.Fatalf("Palette() error = %v", err)
	}
	if got := Hex(p.Background); got != "#1e1e1e" {
		t.Errorf("Background = %s, want #1e1e1e", got)
	}
	if got := Hex(p.Edges[graph.Neutral]); got != "#cdcdcd" {
		t.Errorf("Edges[grey] = %s, want #cdcdcd", got)
	}

	s.Colors.Background = "Transparent"
	p, err = s.Palette()
	if err != nil {
		t.Fatalf("Palette() error = %v", err)
	}
	if p.Background != nil {
		t.Errorf("transparent background should be nil, got %v", p.Background)
	}
	if got := Hex(p.Background); got != "none" {
		t.Errorf("Hex(nil) = %s, want none", got)
	}
}

func TestParse(t *testing.T) {
	t.Run("toml overlays defaults", func(t *testing.T) {
		s, err := Parse([]byte("vertex_diameter = 40\nplacement = \"even\"\n\n[colors.edges]\nred = \"#ff5555\"\n"), ".toml")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if s.VertexDiameter != 40 || s.Placement != PlacementEven {
			t.Errorf("got diameter %g placement %s", s.VertexDiameter, s.Placement)
		}
		if s.Colors.Edges.Red != "#ff5555" {
			t.Errorf("Edges.Red = %s", s.Colors.Edges.Red)
		}
		if s.FontSize != 16 || s.Colors.Edges.Blue != Default().Colors.Edges.Blue {
			t.Error("unset keys should keep their defaults")
		}
	})

	t.Run("yaml", func(t *testing.T) {
		s, err := Parse([]byte("margin: 12\nvertical_spacing: 20\n"), ".YML")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if s.Margin != 12 || s.VerticalSpacing != 20 {
			t.Errorf("got margin %g vertical_spacing %g", s.Margin, s.VerticalSpacing)
		}
		if s.VertexDiameter != 48 {
			t.Errorf("VertexDiameter = %g, want default 48", s.VertexDiameter)
		}
	})

	tests := []struct {
		name string
		data string
		ext  string
		code errors.Code
	}{
		{"unknown toml key", "diameter = 3\n", ".toml", errors.ErrCodeInvalidConfig},
		{"bad toml", "vertex_diameter = \n", ".toml", errors.ErrCodeInvalidConfig},
		{"bad yaml", "margin: [\n", ".yaml", errors.ErrCodeInvalidConfig},
		{"unsupported extension", "{}", ".json", errors.ErrCodeInvalidConfig},
		{"invalid value", "vertex_diameter = -1\n", ".toml", errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext)
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "style.toml")
	if err := os.WriteFile(path, []byte("font_size = 12\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.FontSize != 12 {
		t.Errorf("FontSize = %g, want 12", s.FontSize)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}
