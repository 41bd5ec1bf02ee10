package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/graph"
	"github.com/matzehuels/colgraph/pkg/layout"
	"github.com/matzehuels/colgraph/pkg/render"
	"github.com/matzehuels/colgraph/pkg/style"
)

func chain(c graph.Category) layout.Layout {
	g := graph.New(
		[]graph.Vertex{graph.NewVertex(0, 0), graph.NewVertex(1, 0, 1), graph.NewVertex(2, 1)},
		[]graph.Edge{graph.NewEdge(0, 0, 1), graph.NewEdge(1, 1, 2, graph.WithCategory(c))},
	)
	l, err := layout.Compute(g, style.Default())
	if err != nil {
		panic(err)
	}
	return l
}

func rgb(c color.Color) [3]uint32 {
	r, g, b, _ := c.RGBA()
	return [3]uint32{r >> 8, g >> 8, b >> 8}
}

func alpha(c color.Color) uint32 {
	_, _, _, a := c.RGBA()
	return a
}

func TestRenderPNG(t *testing.T) {
	data, err := Render(chain(graph.Neutral), style.Default(), 2)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 672 || b.Dy() != 96 {
		t.Errorf("image size = %dx%d, want 672x96", b.Dx(), b.Dy())
	}
}

func TestCanvasLayers(t *testing.T) {
	st := style.Default()
	l := chain(graph.Red)
	c := New(l.Width, l.Height, 1)
	if err := render.Draw(l, st, c.Layers()); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	// Bottom layer is opaque background away from any shape.
	if got := rgb(c.Layer(0).At(96, 2)); got != [3]uint32{0x1e, 0x1e, 0x1e} {
		t.Errorf("background pixel = %x, want 1e1e1e", got)
	}
	// Upper layers stay transparent where nothing is drawn.
	if a := alpha(c.Layer(int(graph.Blue)).At(96, 2)); a != 0 {
		t.Errorf("blue layer alpha = %d, want 0", a)
	}
	// The red edge runs along y=24 between x=168 and x=312.
	if a := alpha(c.Layer(int(graph.Red)).At(200, 24)); a == 0 {
		t.Error("red layer should contain the red edge")
	}
	if a := alpha(c.Layer(int(graph.Neutral)).At(200, 24)); a == 0 {
		t.Error("neutral layer should still be opaque under the red edge")
	}
	// Vertex fill at the center of vertex 0, offset from its label.
	if got := rgb(c.Layer(render.VertexLayer).At(24, 10)); got != [3]uint32{0xcd, 0xcd, 0xcd} {
		t.Errorf("vertex fill = %x, want cdcdcd", got)
	}

	composite := c.Image()
	if got := rgb(composite.At(24, 10)); got != [3]uint32{0xcd, 0xcd, 0xcd} {
		t.Errorf("composited vertex = %x, want cdcdcd", got)
	}
}

func TestTransparentBackground(t *testing.T) {
	st := style.Default()
	st.Colors.Background = style.Transparent
	l := chain(graph.Neutral)
	c := New(l.Width, l.Height, 1)
	if err := render.Draw(l, st, c.Layers()); err != nil {
		t.Fatal(err)
	}
	if a := alpha(c.Image().At(96, 2)); a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

func TestNewMinimumSize(t *testing.T) {
	c := New(0, 0, 0)
	if b := c.Image().Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("empty canvas = %dx%d, want 1x1", b.Dx(), b.Dy())
	}
}

func TestRenderTooLarge(t *testing.T) {
	tests := []struct {
		name  string
		l     layout.Layout
		scale float64
	}{
		{"scale", chain(graph.Neutral), 1000},
		{"canvas", layout.Layout{Width: 8192, Height: 8192}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.l, style.Default(), tt.scale)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Render() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestCanvasFontError(t *testing.T) {
	c := New(10, 10, 1)
	if err := c.Err(); err != nil {
		t.Fatalf("Err() = %v before drawing", err)
	}
	ls := c.Layers()
	ls[render.VertexLayer].FillText("0", 5, 5, 0, color.White)
	if err := c.Err(); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Err() = %v, want INTERNAL_ERROR", err)
	}
}
