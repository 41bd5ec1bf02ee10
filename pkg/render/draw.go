package render

import (
	"math"
	"strconv"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/layout"
	"github.com/matzehuels/colgraph/pkg/style"
)

// Draw renders l onto the layer stack.
//
// Every surface is cleared first: the bottom one to the background color,
// the rest to transparent. Edges follow in layout order, each on the surface
// of its category, as a stroked line (a full circle for loops) and an id
// label on an opaque patch. Vertices come last on the vertex surface.
//
// Draw fails only on an invalid style or a missing surface, before anything
// is drawn.
func Draw(l layout.Layout, st style.Style, layers *Layers) error {
	pal, err := st.Palette()
	if err != nil {
		return err
	}
	for i, s := range layers {
		if s == nil {
			return errors.New(errors.ErrCodeInternal, "layer %s has no surface", LayerName(i))
		}
	}

	for i, s := range layers {
		if i == 0 {
			s.ClearRect(0, 0, l.Width, l.Height, pal.Background)
		} else {
			s.ClearRect(0, 0, l.Width, l.Height, nil)
		}
	}

	for _, e := range l.Edges {
		s := layers.ForCategory(e.Category)
		stroke := Paint{Stroke: pal.Edges[e.Category], StrokeWidth: st.EdgeStrokeWidth}
		if e.Loop != nil {
			s.Arc(e.Loop.Center.X, e.Loop.Center.Y, e.Loop.Radius, 0, 2*math.Pi, stroke)
		} else {
			s.Line(e.Start.X, e.Start.Y, e.End.X, e.End.Y, stroke)
		}

		text := strconv.Itoa(e.ID)
		w := s.MeasureText(text, st.FontSize) + 2*st.LabelBorder
		h := st.LabelHeight()
		s.FillRect(e.Label.X-w/2, e.Label.Y-h/2, w, h, pal.LabelBackground)
		s.FillText(text, e.Label.X, e.Label.Y, st.FontSize, pal.LabelText)
	}

	vs := layers.Vertices()
	glyph := Paint{Fill: pal.VertexFill, Stroke: pal.VertexStroke, StrokeWidth: st.VertexStrokeWidth}
	for _, v := range l.Vertices {
		vs.Arc(v.Center.X, v.Center.Y, st.VertexDiameter/2, 0, 2*math.Pi, glyph)
		vs.FillText(strconv.Itoa(v.ID), v.Center.X, v.Center.Y, st.FontSize, pal.VertexText)
	}
	return nil
}
