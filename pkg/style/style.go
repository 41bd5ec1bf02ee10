package style

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/graph"
)

// Placement selects how vertices are distributed along a column.
type Placement string

const (
	// PlacementCentered stacks a column as a block with fixed vertical
	// spacing and centers the block in the canvas.
	PlacementCentered Placement = "centered"
	// PlacementEven spreads a column over the full canvas height with equal
	// gaps around every vertex.
	PlacementEven Placement = "even"
)

// Placements lists the valid placement modes.
var Placements = []Placement{PlacementCentered, PlacementEven}

// Valid reports whether p is a known placement mode.
func (p Placement) Valid() bool {
	return p == PlacementCentered || p == PlacementEven
}

// Transparent is the color value that leaves a surface uncleared.
const Transparent = "transparent"

// Style is the complete drawing configuration.
type Style struct {
	VertexDiameter    float64   `toml:"vertex_diameter" yaml:"vertex_diameter" json:"vertex_diameter"`
	HorizontalSpacing float64   `toml:"horizontal_spacing" yaml:"horizontal_spacing" json:"horizontal_spacing"`
	VerticalSpacing   float64   `toml:"vertical_spacing" yaml:"vertical_spacing" json:"vertical_spacing"`
	Margin            float64   `toml:"margin" yaml:"margin" json:"margin"`
	Placement         Placement `toml:"placement" yaml:"placement" json:"placement"`

	FontSize          float64 `toml:"font_size" yaml:"font_size" json:"font_size"`
	LabelBorder       float64 `toml:"label_border" yaml:"label_border" json:"label_border"`
	VertexStrokeWidth float64 `toml:"vertex_stroke_width" yaml:"vertex_stroke_width" json:"vertex_stroke_width"`
	EdgeStrokeWidth   float64 `toml:"edge_stroke_width" yaml:"edge_stroke_width" json:"edge_stroke_width"`

	Colors Colors `toml:"colors" yaml:"colors" json:"colors"`
}

// Colors holds hex color strings (#rrggbb). Background also accepts
// "transparent".
type Colors struct {
	Background      string     `toml:"background" yaml:"background" json:"background"`
	VertexFill      string     `toml:"vertex_fill" yaml:"vertex_fill" json:"vertex_fill"`
	VertexStroke    string     `toml:"vertex_stroke" yaml:"vertex_stroke" json:"vertex_stroke"`
	VertexText      string     `toml:"vertex_text" yaml:"vertex_text" json:"vertex_text"`
	LabelBackground string     `toml:"label_background" yaml:"label_background" json:"label_background"`
	LabelText       string     `toml:"label_text" yaml:"label_text" json:"label_text"`
	Edges           EdgeColors `toml:"edges" yaml:"edges" json:"edges"`
}

// EdgeColors holds one stroke color per edge category.
type EdgeColors struct {
	Grey   string `toml:"grey" yaml:"grey" json:"grey"`
	Green  string `toml:"green" yaml:"green" json:"green"`
	Blue   string `toml:"blue" yaml:"blue" json:"blue"`
	Red    string `toml:"red" yaml:"red" json:"red"`
	Yellow string `toml:"yellow" yaml:"yellow" json:"yellow"`
}

// For returns the configured color string for a category.
func (e EdgeColors) For(c graph.Category) string {
	switch c {
	case graph.Green:
		return e.Green
	case graph.Blue:
		return e.Blue
	case graph.Red:
		return e.Red
	case graph.Yellow:
		return e.Yellow
	default:
		return e.Grey
	}
}

const (
	background = "#1e1e1e"
	lightGrey  = "#cdcdcd"
)

// Default returns the classic dark style: 48px vertices, two diameters
// between columns, one diameter between rows, bold 16px labels and no margin.
func Default() Style {
	return Style{
		VertexDiameter:    48,
		HorizontalSpacing: 96,
		VerticalSpacing:   48,
		Margin:            0,
		Placement:         PlacementCentered,
		FontSize:          16,
		LabelBorder:       4,
		VertexStrokeWidth: 4,
		EdgeStrokeWidth:   2,
		Colors: Colors{
			Background:      background,
			VertexFill:      lightGrey,
			VertexStroke:    background,
			VertexText:      "#000000",
			LabelBackground: background,
			LabelText:       "#ffffff",
			Edges: EdgeColors{
				Grey:   lightGrey,
				Green:  "#4caf50",
				Blue:   "#2196f3",
				Red:    "#f44336",
				Yellow: "#ffc107",
			},
		},
	}
}

// Layered returns the style used for category-layered drawings: a padded
// canvas with vertices spread evenly along each column.
func Layered() Style {
	s := Default()
	s.Margin = 64
	s.Placement = PlacementEven
	return s
}

// Validate checks dimensions, placement and every color.
// It returns an INVALID_STYLE error describing the first problem found.
func (s Style) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"vertex_diameter", s.VertexDiameter},
		{"horizontal_spacing", s.HorizontalSpacing},
		{"vertical_spacing", s.VerticalSpacing},
		{"margin", s.Margin},
		{"font_size", s.FontSize},
		{"label_border", s.LabelBorder},
		{"vertex_stroke_width", s.VertexStrokeWidth},
		{"edge_stroke_width", s.EdgeStrokeWidth},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.New(errors.ErrCodeInvalidStyle, "%s must be finite, got %g", f.name, f.value)
		}
	}
	if s.VertexDiameter <= 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "vertex_diameter must be positive, got %g", s.VertexDiameter)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"horizontal_spacing", s.HorizontalSpacing},
		{"vertical_spacing", s.VerticalSpacing},
		{"margin", s.Margin},
		{"label_border", s.LabelBorder},
		{"vertex_stroke_width", s.VertexStrokeWidth},
		{"edge_stroke_width", s.EdgeStrokeWidth},
	} {
		if f.value < 0 {
			return errors.New(errors.ErrCodeInvalidStyle, "%s must not be negative, got %g", f.name, f.value)
		}
	}
	if s.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "font_size must be positive, got %g", s.FontSize)
	}
	if !s.Placement.Valid() {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown placement %q (want %s or %s)", s.Placement, PlacementCentered, PlacementEven)
	}
	_, err := s.Palette()
	return err
}

// LabelHeight is the height of an edge label patch.
func (s Style) LabelHeight() float64 {
	return s.FontSize + 2*s.LabelBorder
}

// Palette is the parsed form of [Colors].
type Palette struct {
	Background      color.Color // nil when transparent
	VertexFill      color.Color
	VertexStroke    color.Color
	VertexText      color.Color
	LabelBackground color.Color
	LabelText       color.Color
	Edges           [graph.NumCategories]color.Color
}

// Palette parses every configured color.
func (s Style) Palette() (Palette, error) {
	var p Palette
	var err error

	if !isTransparent(s.Colors.Background) {
		if p.Background, err = parseColor("background", s.Colors.Background); err != nil {
			return Palette{}, err
		}
	}
	fields := []struct {
		name string
		hex  string
		dst  *color.Color
	}{
		{"vertex_fill", s.Colors.VertexFill, &p.VertexFill},
		{"vertex_stroke", s.Colors.VertexStroke, &p.VertexStroke},
		{"vertex_text", s.Colors.VertexText, &p.VertexText},
		{"label_background", s.Colors.LabelBackground, &p.LabelBackground},
		{"label_text", s.Colors.LabelText, &p.LabelText},
	}
	for _, f := range fields {
		if *f.dst, err = parseColor(f.name, f.hex); err != nil {
			return Palette{}, err
		}
	}
	for _, c := range graph.Categories() {
		if p.Edges[c], err = parseColor("edges."+c.String(), s.Colors.Edges.For(c)); err != nil {
			return Palette{}, err
		}
	}
	return p, nil
}

func isTransparent(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), Transparent)
}

func parseColor(name, hex string) (color.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "colors.%s: invalid color %q", name, hex)
	}
	return c, nil
}

// Hex formats a palette color as #rrggbb. Nil (transparent) yields "none".
func Hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "none"
	}
	return cf.Clamped().Hex()
}
