package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/colgraph/pkg/graph"
)

// WriteJSON encodes g in the input JSON format and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := document{
		Vertices: make([]vertex, len(g.Vertices())),
		Edges:    make([]edge, len(g.Edges())),
	}

	for i, v := range g.Vertices() {
		edgeIDs := v.EdgeIDs()
		if edgeIDs == nil {
			edgeIDs = []int{}
		}
		out.Vertices[i] = vertex{ID: v.ID, EdgeIDs: edgeIDs}
	}
	for i, e := range g.Edges() {
		ed := edge{ID: e.ID, VertexIDs: []int{e.VertexIDs[0], e.VertexIDs[1]}}
		if e.Category != graph.Neutral {
			ed.Color = e.Category.String()
		}
		out.Edges[i] = ed
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the canonical JSON encoding of g.
// Equal graphs always produce identical bytes, which makes the result
// suitable for content hashing.
func MarshalJSON(g *graph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return closeFile(f, WriteJSON(g, f))
}

// closeFile closes c and returns err, or the close error when err is nil.
func closeFile(c io.Closer, err error) error {
	if cerr := c.Close(); err == nil && cerr != nil {
		return fmt.Errorf("close: %w", cerr)
	}
	return err
}
