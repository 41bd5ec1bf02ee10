package layout

import "github.com/matzehuels/colgraph/pkg/graph"

// Traverse groups the vertices reachable from the graph root into columns by
// breadth-first distance. Column k holds every vertex first discovered at
// depth k, in discovery order.
//
// The whole current frontier is marked visited before the next one is built.
// A neighbour joins the next frontier when it is neither visited nor already
// queued there, so parallel edges and shared children are queued once.
//
// When filter is non-empty, only edges of those categories connect vertices.
// An empty graph yields no columns. A REFERENCE error is returned if a
// traversed edge names an unknown vertex.
func Traverse(g *graph.Graph, filter ...graph.Category) ([][]graph.Vertex, error) {
	root, ok := g.Root()
	if !ok {
		return nil, nil
	}

	var columns [][]graph.Vertex
	visited := map[int]bool{}
	frontier := []graph.Vertex{root}

	for len(frontier) > 0 {
		columns = append(columns, frontier)
		for _, v := range frontier {
			visited[v.ID] = true
		}

		var next []graph.Vertex
		queued := map[int]bool{}
		for _, v := range frontier {
			neighbours, err := g.Neighbours(v, filter...)
			if err != nil {
				return nil, err
			}
			for _, n := range neighbours {
				if visited[n.ID] || queued[n.ID] {
					continue
				}
				queued[n.ID] = true
				next = append(next, n)
			}
		}
		frontier = next
	}
	return columns, nil
}

// longest returns the length of the longest column.
func longest(columns [][]graph.Vertex) int {
	m := 0
	for _, c := range columns {
		m = max(m, len(c))
	}
	return m
}
