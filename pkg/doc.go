// Package pkg holds the colgraph libraries.
//
// # Overview
//
// colgraph draws an undirected, color-coded graph as breadth-first columns:
// the lowest vertex id sits alone in column 0, its neighbours fill column 1,
// and so on. Each column is a vertical stack of circles; edges are straight
// segments with a centered id label, and loop-category edges become small
// circles above their vertex.
//
// # Architecture
//
//	graph JSON
//	     ↓
//	[io] package (decode, validate shape)
//	     ↓
//	[graph] package (vertices, edges, categories)
//	     ↓
//	[layout] package (BFS columns, canvas size, shapes)
//	     ↓
//	[render] package (layered drawing onto surfaces)
//	     ↓
//	SVG / PNG / PDF / layout JSON / DOT
//
// [pipeline] runs these steps with caching for the CLI and the HTTP server.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/colgraph/pkg/io"
//	    "github.com/matzehuels/colgraph/pkg/layout"
//	    "github.com/matzehuels/colgraph/pkg/render/svg"
//	    "github.com/matzehuels/colgraph/pkg/style"
//	)
//
//	g, _ := io.ImportJSON("graph.json")
//	st := style.Default()
//	l, _ := layout.Compute(g, st)
//	data, _ := svg.Render(l, st)
//
// # Main Packages
//
// [graph] - Vertices, edges and the five edge categories (Red, Green, Yellow,
// Grey, Neutral) with their drawing priority.
//
// [layout] - Breadth-first column assignment and the geometry of every
// vertex, edge and label. Supports centered and even placement and a
// traversal filter by category.
//
// [style] - Spacing, stroke, font and color settings loaded from TOML or
// YAML and merged over defaults.
//
// [render] - The layered drawing routine. [render/svg] and [render/raster]
// provide surfaces; [render/nodelink] exports pinned Graphviz DOT.
//
// [pipeline] - Load → layout → render with content-addressed caching and
// observability hooks.
//
// [cache] - File, redis and null cache backends.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./...
//	go test -run Example ./pkg/...
//
// [io]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/io
// [graph]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/layout
// [style]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/style
// [render]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/render/svg
// [render/raster]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/render/raster
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/errors
package pkg
