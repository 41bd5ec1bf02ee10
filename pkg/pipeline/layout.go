package pipeline

import (
	"github.com/matzehuels/colgraph/pkg/graph"
	"github.com/matzehuels/colgraph/pkg/layout"
)

// ComputeLayout runs a layout pass for g with the style and traversal
// options in opts. No cache is consulted.
func ComputeLayout(g *graph.Graph, opts Options) (layout.Layout, error) {
	st, err := opts.ResolveStyle()
	if err != nil {
		return layout.Layout{}, err
	}
	layoutOpts, err := opts.LayoutOptions()
	if err != nil {
		return layout.Layout{}, err
	}
	return layout.Compute(g, st, layoutOpts...)
}
