// Package layout arranges a graph into breadth-first columns and computes
// drawing coordinates for every vertex and edge label.
//
// # Overview
//
// A layout pass runs three phases in strict order:
//
//  1. Traversal ([Traverse]): starting from the first vertex of the id-sorted
//     vertex sequence, group vertices into columns by breadth-first distance.
//     A vertex lands in the column of its first discovery. Vertices that the
//     traversal never reaches are left out of the drawing.
//  2. Sizing ([CanvasSize]): the canvas is wide enough for every column and
//     tall enough for the longest one, plus the style margin on every side.
//  3. Positioning ([Compute]): column k is centered at
//     margin + D/2 + k*(D+H). Within a column, vertices are either stacked as
//     a centered block or spread evenly over the canvas height, depending on
//     [style.Placement]. Edge labels sit at the midpoint of their endpoints;
//     loop-category edges are drawn as a circle above the start vertex with
//     the label above the circle.
//
// # Usage
//
//	l, err := layout.Compute(g, style.Default())
//	if errors.Is(err, errors.ErrCodeReference) {
//	    // an edge names a vertex that does not exist; nothing was laid out
//	}
//
// Layouts are plain values that serialize to JSON and are recomputed on every
// pass; they hold no references back into the graph.
//
// [style.Placement]: https://pkg.go.dev/github.com/matzehuels/colgraph/pkg/style#Placement
package layout
