package layout

import (
	"github.com/matzehuels/colgraph/pkg/graph"
	"github.com/matzehuels/colgraph/pkg/style"
)

// CanvasSize returns the canvas dimensions for the given columns:
//
//	width  = D*n + H*(n-1) + 2*margin
//	height = D*m + V*(m-1) + 2*margin
//
// where n is the column count and m the length of the longest column.
// With no columns both dimensions are 2*margin.
func CanvasSize(columns [][]graph.Vertex, st style.Style) (width, height float64) {
	return span(len(columns), st.VertexDiameter, st.HorizontalSpacing) + 2*st.Margin,
		span(longest(columns), st.VertexDiameter, st.VerticalSpacing) + 2*st.Margin
}

// span is the extent of count glyphs of size d separated by gap.
func span(count int, d, gap float64) float64 {
	if count == 0 {
		return 0
	}
	n := float64(count)
	return d*n + gap*(n-1)
}
