// Package render draws a computed layout onto layered 2D surfaces.
//
// # Overview
//
// Drawing is the last phase of a layout pass. [Draw] takes a
// [layout.Layout] and a [style.Style] and issues immediate-mode calls
// against a [Layers] stack: one [Surface] per edge category in priority
// order plus a topmost surface for vertices. Only the bottom surface is
// cleared to the background color, so the stack composes into one picture
// with higher-priority categories above lower ones and vertices above
// every edge.
//
// Surface implementations live in subpackages:
//
//   - [svg]: one SVG group per layer, written as a single document
//   - [raster]: one fogleman/gg context per layer, composited into a PNG
//
// The [nodelink] subpackage takes a different route: it exports the layout
// as Graphviz DOT with pinned positions and lets Graphviz draw it.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	doc, err := svg.Render(l, st)
//	pdf, err := render.ToPDF(doc)
//	png, err := render.ToPNG(doc, 2.0)  // 2x scale
//
// [layout.Layout]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/layout#Layout
// [style.Style]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/style#Style
// [svg]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/render/svg
// [raster]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/render/raster
// [nodelink]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/render/nodelink
package render
