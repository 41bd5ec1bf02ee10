// Package graph provides the vertex/edge model rendered by colgraph.
//
// A [Graph] owns two id-sorted sequences: vertices and edges. Each [Vertex]
// lists the ids of its incident edges; each [Edge] names exactly two vertex
// ids and an optional [Category] used for color-coding. All three types are
// immutable once constructed.
//
// # Construction
//
//	g := graph.New(
//	    []graph.Vertex{graph.NewVertex(0, 0), graph.NewVertex(1, 0, 1), graph.NewVertex(2, 1)},
//	    []graph.Edge{graph.NewEdge(0, 0, 1), graph.NewEdge(1, 1, 2, graph.WithCategory(graph.Red))},
//	)
//
// # Adjacency
//
// [Graph.EdgesOf] resolves a vertex's incident edges in its own edge-id order,
// silently skipping ids with no matching edge. [Graph.VerticesOf] resolves
// both endpoints of an edge and fails with a REFERENCE error when an endpoint
// is unknown. [Graph.Neighbours] returns one far endpoint per qualifying edge
// without deduplication; callers that need a set deduplicate themselves.
//
// Every adjacency query accepts an optional category filter. No filter means
// every edge qualifies.
//
// # Concurrency
//
// A Graph is never mutated after New returns, so it is safe for concurrent
// reads.
package graph
