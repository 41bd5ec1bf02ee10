// Package style holds the single styling configuration shared by the
// layout engine and the draw phase.
//
// A [Style] bundles every dimension and color the renderer needs: vertex
// diameter, column and row spacing, canvas margin, font size, label border,
// stroke widths, the placement mode and one color per edge category.
// Nothing in colgraph reads global drawing constants; a Style value is
// passed explicitly to [layout.Compute] and [render.Draw], so tests can run
// against alternate configurations.
//
// # Presets
//
// [Default] reproduces the classic dark canvas with no margin, so a single
// vertex yields a canvas exactly one diameter wide. [Layered] adds a margin
// around the drawing and distributes vertices evenly along each column.
//
// # Files
//
// [LoadFile] reads a TOML or YAML file (chosen by extension) on top of
// [Default], so a file only needs the keys it changes:
//
//	vertex_diameter = 40
//	placement = "even"
//
//	[colors.edges]
//	red = "#ff5555"
//
// [layout.Compute]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/layout#Compute
// [render.Draw]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/render#Draw
package style
