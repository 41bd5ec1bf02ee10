package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/graph"
)

type document struct {
	Vertices []vertex `json:"vertices"`
	Edges    []edge   `json:"edges"`
}

type vertex struct {
	ID      int   `json:"id"`
	EdgeIDs []int `json:"edge_ids"`
}

type edge struct {
	ID        int    `json:"id"`
	VertexIDs []int  `json:"vertex_ids"`
	Color     string `json:"color,omitempty"`
}

// ReadJSON decodes a JSON graph from r.
//
// ReadJSON returns an INVALID_INPUT error if:
//   - The JSON is malformed or followed by anything but whitespace
//   - An edge does not list exactly two vertex ids
//   - An edge color is not a known category
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read graph")
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph")
	}

	vertices := make([]graph.Vertex, len(doc.Vertices))
	for i, v := range doc.Vertices {
		vertices[i] = graph.NewVertex(v.ID, v.EdgeIDs...)
	}

	edges := make([]graph.Edge, len(doc.Edges))
	for i, e := range doc.Edges {
		if len(e.VertexIDs) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d: vertex_ids must have exactly 2 entries, got %d", e.ID, len(e.VertexIDs))
		}
		c, err := graph.ParseCategory(e.Color)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %d", e.ID)
		}
		edges[i] = graph.NewEdge(e.ID, e.VertexIDs[0], e.VertexIDs[1], graph.WithCategory(c))
	}

	return graph.New(vertices, edges), nil
}

// ImportJSON reads the JSON file at path and returns the decoded graph.
//
// A missing file yields FILE_NOT_FOUND; any other open failure and every
// decoding failure yields INVALID_INPUT. The error names the path.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	g, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return g, nil
}
