package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/layout"
	"github.com/matzehuels/colgraph/pkg/render"
	"github.com/matzehuels/colgraph/pkg/style"
)

// Options configures DOT generation.
type Options struct {
	// HideEdgeLabels omits the edge id labels.
	HideEdgeLabels bool
}

// ToDOT converts a layout into Graphviz DOT with pinned vertex positions.
// It fails only if the style palette is invalid.
func ToDOT(l layout.Layout, st style.Style, opts Options) (string, error) {
	pal, err := st.Palette()
	if err != nil {
		return "", err
	}

	bg := "transparent"
	if pal.Background != nil {
		bg = style.Hex(pal.Background)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  graph [bgcolor=%q, inputscale=72, splines=line, outputorder=edgesfirst, pad=0];\n", bg)
	fmt.Fprintf(&buf, "  node [shape=circle, fixedsize=true, width=%s, style=filled, fillcolor=%q, color=%q, penwidth=%s, fontname=\"Helvetica-Bold\", fontsize=%s, fontcolor=%q];\n",
		num(st.VertexDiameter/72), style.Hex(pal.VertexFill), style.Hex(pal.VertexStroke), num(st.VertexStrokeWidth), num(st.FontSize), style.Hex(pal.VertexText))
	fmt.Fprintf(&buf, "  edge [penwidth=%s, fontname=\"Helvetica-Bold\", fontsize=%s, fontcolor=%q];\n",
		num(st.EdgeStrokeWidth), num(st.FontSize), style.Hex(pal.LabelText))
	buf.WriteString("\n")

	for _, v := range l.Vertices {
		// Graphviz puts the origin at the bottom left.
		fmt.Fprintf(&buf, "  \"%d\" [pos=\"%s,%s!\"];\n", v.ID, num(v.Center.X), num(l.Height-v.Center.Y))
	}

	buf.WriteString("\n")
	edges := slices.Clone(l.Edges)
	slices.SortStableFunc(edges, func(a, b layout.EdgeShape) int { return cmp.Compare(a.Category, b.Category) })
	for _, e := range edges {
		attrs := fmt.Sprintf("color=%q", style.Hex(pal.Edges[e.Category]))
		if !opts.HideEdgeLabels {
			attrs += fmt.Sprintf(", label=\"%d\"", e.ID)
		}
		fmt.Fprintf(&buf, "  \"%d\" -- \"%d\" [%s];\n", e.From, e.To, attrs)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders DOT to SVG using Graphviz's neato engine, which keeps
// pinned positions as given.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT as PNG via SVG conversion at the given scale.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
