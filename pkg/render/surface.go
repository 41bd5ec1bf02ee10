package render

import (
	"image/color"

	"github.com/matzehuels/colgraph/pkg/graph"
)

// Paint describes how a shape is filled and stroked. A nil color skips that
// part; a zero stroke width skips the stroke.
type Paint struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
}

// Surface is an immediate-mode 2D drawing context for one layer.
// Angles are in radians; coordinates are canvas pixels with y pointing down.
type Surface interface {
	// ClearRect resets a rectangle to bg, or to fully transparent when bg
	// is nil.
	ClearRect(x, y, w, h float64, bg color.Color)
	// Arc draws the circular arc centered at (cx, cy) from angle a0 to a1.
	Arc(cx, cy, r, a0, a1 float64, p Paint)
	// Line strokes a straight segment.
	Line(x1, y1, x2, y2 float64, p Paint)
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c color.Color)
	// FillText draws s centered horizontally on x with its middle on y.
	FillText(s string, x, y, size float64, c color.Color)
	// MeasureText returns the width of s at the given font size.
	MeasureText(s string, size float64) float64
}

// NumLayers is the number of surfaces in a [Layers] stack.
const NumLayers = graph.NumCategories + 1

// VertexLayer is the index of the topmost, vertex-only surface.
const VertexLayer = graph.NumCategories

// Layers is a fixed, ordered stack of surfaces. Index i < [VertexLayer]
// holds edges of category i; higher indices are drawn above lower ones.
type Layers [NumLayers]Surface

// ForCategory returns the surface for edges of category c.
func (l *Layers) ForCategory(c graph.Category) Surface {
	if !c.Valid() {
		c = graph.Neutral
	}
	return l[c]
}

// Vertices returns the vertex surface.
func (l *Layers) Vertices() Surface { return l[VertexLayer] }

// LayerName returns a stable name for layer i, used for SVG group ids and
// logs.
func LayerName(i int) string {
	if i == VertexLayer {
		return "vertices"
	}
	return graph.Category(i).String()
}
