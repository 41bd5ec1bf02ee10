package graph

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// Vertex is a graph vertex with the ids of its incident edges.
type Vertex struct {
	ID      int
	edgeIDs []int
}

// NewVertex creates a vertex. The edge id list is copied.
func NewVertex(id int, edgeIDs ...int) Vertex {
	return Vertex{ID: id, edgeIDs: slices.Clone(edgeIDs)}
}

// EdgeIDs returns a copy of the incident edge ids in declared order.
func (v Vertex) EdgeIDs() []int { return slices.Clone(v.edgeIDs) }

// Edge connects exactly two vertices and carries a color category.
type Edge struct {
	ID        int
	VertexIDs [2]int
	Category  Category
}

// EdgeOption configures optional edge fields in NewEdge.
type EdgeOption func(*Edge)

// WithCategory sets the edge category. The default is Neutral.
func WithCategory(c Category) EdgeOption {
	return func(e *Edge) { e.Category = c }
}

// NewEdge creates an edge from vertex `from` to vertex `to`.
func NewEdge(id, from, to int, opts ...EdgeOption) Edge {
	e := Edge{ID: id, VertexIDs: [2]int{from, to}, Category: Neutral}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Graph owns id-sorted vertex and edge sequences.
//
// The zero value is an empty graph. Use New to build a populated one.
type Graph struct {
	vertices []Vertex
	edges    []Edge

	vertexIndex map[int]int // vertex id -> first position in vertices
	edgeIndex   map[int]int // edge id -> first position in edges
}

// New creates a Graph from raw vertex and edge lists.
// Both lists are copied and stably sorted by ascending id.
func New(vertices []Vertex, edges []Edge) *Graph {
	g := &Graph{
		vertices: slices.Clone(vertices),
		edges:    slices.Clone(edges),
	}
	slices.SortStableFunc(g.vertices, func(a, b Vertex) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortStableFunc(g.edges, func(a, b Edge) int { return cmp.Compare(a.ID, b.ID) })

	g.vertexIndex = make(map[int]int, len(g.vertices))
	for i, v := range g.vertices {
		if _, dup := g.vertexIndex[v.ID]; !dup {
			g.vertexIndex[v.ID] = i
		}
	}
	g.edgeIndex = make(map[int]int, len(g.edges))
	for i, e := range g.edges {
		if _, dup := g.edgeIndex[e.ID]; !dup {
			g.edgeIndex[e.ID] = i
		}
	}
	return g
}

// Vertices returns the id-sorted vertex sequence. The slice must not be modified.
func (g *Graph) Vertices() []Vertex { return g.vertices }

// Edges returns the id-sorted edge sequence. The slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Root returns the first vertex of the sorted sequence, the traversal root.
func (g *Graph) Root() (Vertex, bool) {
	if len(g.vertices) == 0 {
		return Vertex{}, false
	}
	return g.vertices[0], true
}

// Vertex looks up a vertex by id.
func (g *Graph) Vertex(id int) (Vertex, bool) {
	i, ok := g.vertexIndex[id]
	if !ok {
		return Vertex{}, false
	}
	return g.vertices[i], true
}

// Edge looks up an edge by id.
func (g *Graph) Edge(id int) (Edge, bool) {
	i, ok := g.edgeIndex[id]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// EdgesOf returns the edges incident to v in v's own edge-id order,
// restricted to the given categories when any are passed.
// Edge ids with no matching edge are skipped.
func (g *Graph) EdgesOf(v Vertex, filter ...Category) []Edge {
	result := make([]Edge, 0, len(v.edgeIDs))
	for _, id := range v.edgeIDs {
		e, ok := g.Edge(id)
		if !ok || !matches(e.Category, filter) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// VerticesOf resolves both endpoints of e in declared order.
// It returns a REFERENCE error if either endpoint is unknown.
func (g *Graph) VerticesOf(e Edge) ([2]Vertex, error) {
	var result [2]Vertex
	for i, id := range e.VertexIDs {
		v, ok := g.Vertex(id)
		if !ok {
			return [2]Vertex{}, errors.New(errors.ErrCodeReference, "edge %d references unknown vertex %d", e.ID, id)
		}
		result[i] = v
	}
	return result, nil
}

// Neighbours returns the far endpoint of every qualifying edge incident to v.
// One entry is produced per edge; repeated neighbours are not deduplicated.
// Endpoints equal to v itself (self loops) are left out.
func (g *Graph) Neighbours(v Vertex, filter ...Category) ([]Vertex, error) {
	var result []Vertex
	for _, e := range g.EdgesOf(v, filter...) {
		ends, err := g.VerticesOf(e)
		if err != nil {
			return nil, err
		}
		for _, end := range ends {
			if end.ID != v.ID {
				result = append(result, end)
			}
		}
	}
	return result, nil
}

// Validate checks referential integrity in both directions: every edge id
// listed by a vertex exists, every vertex id named by an edge exists, and
// every edge is listed by both of its endpoints. All problems are reported
// in a single REFERENCE error.
func (g *Graph) Validate() error {
	var problems []string
	for _, v := range g.vertices {
		for _, id := range v.edgeIDs {
			if _, ok := g.Edge(id); !ok {
				problems = append(problems, fmt.Sprintf("vertex %d lists unknown edge %d", v.ID, id))
			}
		}
	}
	for _, e := range g.edges {
		for _, id := range e.VertexIDs {
			v, ok := g.Vertex(id)
			if !ok {
				problems = append(problems, fmt.Sprintf("edge %d references unknown vertex %d", e.ID, id))
				continue
			}
			if !slices.Contains(v.edgeIDs, e.ID) {
				problems = append(problems, fmt.Sprintf("vertex %d does not list edge %d", id, e.ID))
			}
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeReference, "%s", strings.Join(problems, "; "))
}

func matches(c Category, filter []Category) bool {
	return len(filter) == 0 || slices.Contains(filter, c)
}
