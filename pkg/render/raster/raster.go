// Package raster implements render surfaces backed by fogleman/gg.
//
// Every layer is its own RGBA context; [Canvas.Image] composites them in
// layer order. A scale factor renders at higher pixel density while keeping
// layout coordinates unchanged.
package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/fonts"
	"github.com/matzehuels/colgraph/pkg/layout"
	"github.com/matzehuels/colgraph/pkg/render"
	"github.com/matzehuels/colgraph/pkg/style"
)

// MaxPixels bounds the pixel area of one layer. Render refuses larger images
// since every layer holds a full RGBA buffer.
const MaxPixels = 16 << 20

// Canvas is a stack of raster layers.
type Canvas struct {
	width, height int
	scale         float64
	layers        [render.NumLayers]*layer
}

// New creates a canvas for a layout of the given size. Scale values <= 0
// are treated as 1.
func New(width, height, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	c := &Canvas{
		width:  max(1, int(math.Ceil(width*scale))),
		height: max(1, int(math.Ceil(height*scale))),
		scale:  scale,
	}
	for i := range c.layers {
		c.layers[i] = &layer{dc: gg.NewContext(c.width, c.height), scale: scale, faces: map[float64]font.Face{}}
	}
	return c
}

// Err returns the first failure a layer hit while drawing text.
func (c *Canvas) Err() error {
	for _, l := range c.layers {
		if l.err != nil {
			return l.err
		}
	}
	return nil
}

// Layers returns the surface stack backed by this canvas.
func (c *Canvas) Layers() *render.Layers {
	var ls render.Layers
	for i, l := range c.layers {
		ls[i] = l
	}
	return &ls
}

// Layer returns the image of a single layer.
func (c *Canvas) Layer(i int) image.Image {
	return c.layers[i].dc.Image()
}

// Image composites every layer, bottom first.
func (c *Canvas) Image() image.Image {
	out := gg.NewContext(c.width, c.height)
	for _, l := range c.layers {
		out.DrawImage(l.dc.Image(), 0, 0)
	}
	return out.Image()
}

// EncodePNG writes the composited image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	out := gg.NewContextForImage(c.Image())
	if err := out.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// Render draws l at the given scale and returns PNG bytes.
//
// It returns an INVALID_CONFIG error when the scaled canvas exceeds
// [MaxPixels].
func Render(l layout.Layout, st style.Style, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	if px := math.Ceil(l.Width*scale) * math.Ceil(l.Height*scale); !(px <= MaxPixels) {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"png of %gx%g at scale %g exceeds %d pixels", l.Width, l.Height, scale, MaxPixels)
	}
	c := New(l.Width, l.Height, scale)
	if err := render.Draw(l, st, c.Layers()); err != nil {
		return nil, err
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// layer is one gg context. It implements [render.Surface]; coordinates are
// multiplied by scale before drawing.
type layer struct {
	dc    *gg.Context
	scale float64
	faces map[float64]font.Face
	err   error // first font failure
}

func (l *layer) ClearRect(x, y, w, h float64, bg color.Color) {
	s := l.scale
	if bg == nil {
		img, ok := l.dc.Image().(*image.RGBA)
		if !ok {
			return
		}
		r := image.Rect(int(math.Floor(x*s)), int(math.Floor(y*s)), int(math.Ceil((x+w)*s)), int(math.Ceil((y+h)*s)))
		draw.Draw(img, r, image.Transparent, image.Point{}, draw.Src)
		return
	}
	l.dc.Push()
	l.dc.SetColor(bg)
	l.dc.DrawRectangle(x*s, y*s, w*s, h*s)
	l.dc.Fill()
	l.dc.Pop()
}

func (l *layer) Arc(cx, cy, r, a0, a1 float64, p render.Paint) {
	s := l.scale
	l.dc.NewSubPath()
	l.dc.DrawArc(cx*s, cy*s, r*s, a0, a1)
	l.paint(p)
}

func (l *layer) Line(x1, y1, x2, y2 float64, p render.Paint) {
	s := l.scale
	l.dc.SetLineCapRound()
	l.dc.DrawLine(x1*s, y1*s, x2*s, y2*s)
	p.Fill = nil
	l.paint(p)
}

func (l *layer) FillRect(x, y, w, h float64, c color.Color) {
	s := l.scale
	l.dc.DrawRectangle(x*s, y*s, w*s, h*s)
	l.paint(render.Paint{Fill: c})
}

func (l *layer) FillText(text string, x, y, size float64, c color.Color) {
	px := size * l.scale
	face, ok := l.faces[px]
	if !ok {
		var err error
		if face, err = fonts.NewFace(px); err != nil {
			if l.err == nil {
				l.err = errors.Wrap(errors.ErrCodeInternal, err, "label font")
			}
			return
		}
		l.faces[px] = face
	}
	l.dc.SetFontFace(face)
	l.dc.SetColor(c)
	l.dc.DrawStringAnchored(text, x*l.scale, y*l.scale, 0.5, 0.5)
}

func (l *layer) MeasureText(text string, size float64) float64 {
	return fonts.MeasureText(text, size)
}

func (l *layer) paint(p render.Paint) {
	hasStroke := p.Stroke != nil && p.StrokeWidth > 0
	if p.Fill != nil {
		l.dc.SetColor(p.Fill)
		if hasStroke {
			l.dc.FillPreserve()
		} else {
			l.dc.Fill()
		}
	}
	if hasStroke {
		l.dc.SetColor(p.Stroke)
		l.dc.SetLineWidth(p.StrokeWidth * l.scale)
		l.dc.Stroke()
	}
	l.dc.ClearPath()
}
