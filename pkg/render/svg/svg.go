// Package svg implements render surfaces that write an SVG document.
//
// Each layer of the stack becomes a <g> element; groups are emitted in layer
// order so later categories and the vertex layer paint over earlier ones.
//
//	doc, err := svg.Render(l, style.Default(), svg.WithEmbeddedFont())
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/matzehuels/colgraph/pkg/fonts"
	"github.com/matzehuels/colgraph/pkg/layout"
	"github.com/matzehuels/colgraph/pkg/render"
	"github.com/matzehuels/colgraph/pkg/style"
)

// Option configures a Document.
type Option func(*Document)

// WithEmbeddedFont embeds the label font as a data URL so the document
// renders identically without the font installed.
func WithEmbeddedFont() Option { return func(d *Document) { d.embedFont = true } }

// WithTitle sets the document <title>.
func WithTitle(title string) Option { return func(d *Document) { d.title = title } }

// Document is an SVG canvas made of one group per layer.
type Document struct {
	width, height float64
	layers        [render.NumLayers]*layer
	embedFont     bool
	title         string
}

// New creates an empty document of the given size.
func New(width, height float64, opts ...Option) *Document {
	d := &Document{width: width, height: height}
	for i := range d.layers {
		d.layers[i] = &layer{doc: d}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Layers returns the surface stack backed by this document.
func (d *Document) Layers() *render.Layers {
	var ls render.Layers
	for i, l := range d.layers {
		ls[i] = l
	}
	return &ls
}

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(d.width), num(d.height), num(d.width), num(d.height))
	if d.title != "" {
		buf.WriteString("  <title>")
		xml.EscapeText(&buf, []byte(d.title))
		buf.WriteString("</title>\n")
	}
	d.writeStyle(&buf)
	for i, l := range d.layers {
		fmt.Fprintf(&buf, `  <g id="layer-%s">`+"\n", render.LayerName(i))
		buf.Write(l.buf.Bytes())
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (d *Document) writeStyle(buf *bytes.Buffer) {
	buf.WriteString("  <style>\n")
	if d.embedFont {
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; font-weight: bold; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, fonts.BoldTTFBase64())
	}
	fmt.Fprintf(buf, "    text { font-family: %s; font-weight: bold; }\n", fonts.FallbackFontFamily)
	buf.WriteString("  </style>\n")
}

// Render draws l into a new document and returns its bytes.
func Render(l layout.Layout, st style.Style, opts ...Option) ([]byte, error) {
	d := New(l.Width, l.Height, opts...)
	if err := render.Draw(l, st, d.Layers()); err != nil {
		return nil, err
	}
	return d.Bytes(), nil
}

// layer is one <g> group. It implements [render.Surface].
type layer struct {
	doc *Document
	buf bytes.Buffer
}

// ClearRect drops everything drawn so far when the rectangle covers the
// whole canvas. A partial transparent clear has no SVG equivalent and is
// ignored; a colored clear paints the rectangle.
func (l *layer) ClearRect(x, y, w, h float64, bg color.Color) {
	if x <= 0 && y <= 0 && x+w >= l.doc.width && y+h >= l.doc.height {
		l.buf.Reset()
	}
	if bg != nil {
		l.FillRect(x, y, w, h, bg)
	}
}

func (l *layer) Arc(cx, cy, r, a0, a1 float64, p render.Paint) {
	if math.Abs(a1-a0) >= 2*math.Pi {
		fmt.Fprintf(&l.buf, `    <circle cx="%s" cy="%s" r="%s"%s/>`+"\n", num(cx), num(cy), num(r), paint(p))
		return
	}
	x0, y0 := cx+r*math.Cos(a0), cy+r*math.Sin(a0)
	x1, y1 := cx+r*math.Cos(a1), cy+r*math.Sin(a1)
	large, sweep := 0, 1
	if math.Abs(a1-a0) > math.Pi {
		large = 1
	}
	if a1 < a0 {
		sweep = 0
	}
	fmt.Fprintf(&l.buf, `    <path d="M %s %s A %s %s 0 %d %d %s %s"%s/>`+"\n",
		num(x0), num(y0), num(r), num(r), large, sweep, num(x1), num(y1), paint(p))
}

func (l *layer) Line(x1, y1, x2, y2 float64, p render.Paint) {
	p.Fill = nil
	fmt.Fprintf(&l.buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"%s stroke-linecap="round"/>`+"\n",
		num(x1), num(y1), num(x2), num(y2), paint(p))
}

func (l *layer) FillRect(x, y, w, h float64, c color.Color) {
	fmt.Fprintf(&l.buf, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(x), num(y), num(w), num(h), style.Hex(c))
}

func (l *layer) FillText(s string, x, y, size float64, c color.Color) {
	fmt.Fprintf(&l.buf, `    <text x="%s" y="%s" font-size="%s" fill="%s" text-anchor="middle" dominant-baseline="central">`,
		num(x), num(y), num(size), style.Hex(c))
	xml.EscapeText(&l.buf, []byte(s))
	l.buf.WriteString("</text>\n")
}

func (l *layer) MeasureText(s string, size float64) float64 {
	return fonts.MeasureText(s, size)
}

func paint(p render.Paint) string {
	out := fmt.Sprintf(` fill="%s"`, style.Hex(p.Fill))
	if p.Stroke != nil && p.StrokeWidth > 0 {
		out += fmt.Sprintf(` stroke="%s" stroke-width="%s"`, style.Hex(p.Stroke), num(p.StrokeWidth))
	}
	return out
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
