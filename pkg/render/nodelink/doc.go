// Package nodelink hands a computed layout to Graphviz.
//
// # Overview
//
// [ToDOT] exports a [layout.Layout] as undirected Graphviz DOT where every
// vertex is pinned at its computed position (pos="x,y!" with
// inputscale=72, so DOT units equal canvas pixels). Graphviz then only draws:
// it keeps the breadth-first columns and does not lay anything out itself.
//
// # Usage
//
//	dot, err := nodelink.ToDOT(l, style.Default(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// Vertices, edge colors and label colors follow the style palette. Edges
// are emitted in category priority order. Loop-category edges are drawn as
// plain edges between their endpoints.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [layout.Layout]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/layout#Layout
package nodelink
