package io

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/graph"
)

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantVertices []int
		wantEdges    []int
		wantErr      errors.Code
		check        func(t *testing.T, g *graph.Graph)
	}{
		{
			name:  "missing arrays default to empty",
			input: `{}`,
		},
		{
			name:         "sorted by id",
			input:        `{"vertices":[{"id":2,"edge_ids":[1]},{"id":0,"edge_ids":[0]},{"id":1,"edge_ids":[1,0]}],"edges":[{"id":1,"vertex_ids":[1,2]},{"id":0,"vertex_ids":[0,1]}]}`,
			wantVertices: []int{0, 1, 2},
			wantEdges:    []int{0, 1},
			check: func(t *testing.T, g *graph.Graph) {
				v, _ := g.Vertex(1)
				if got := v.EdgeIDs(); len(got) != 2 || got[0] != 1 || got[1] != 0 {
					t.Errorf("vertex 1 EdgeIDs = %v, want [1 0] (declared order)", got)
				}
			},
		},
		{
			name:         "colors are case-insensitive with legacy spelling",
			input:        `{"vertices":[{"id":0}],"edges":[{"id":0,"vertex_ids":[0,0],"color":"GRAY"},{"id":1,"vertex_ids":[0,0],"color":"Red"}]}`,
			wantVertices: []int{0},
			wantEdges:    []int{0, 1},
			check: func(t *testing.T, g *graph.Graph) {
				e0, _ := g.Edge(0)
				e1, _ := g.Edge(1)
				if e0.Category != graph.Neutral || e1.Category != graph.Red {
					t.Errorf("categories = %v, %v, want grey, red", e0.Category, e1.Category)
				}
			},
		},
		{
			name:         "unknown fields ignored",
			input:        `{"title":"x","vertices":[{"id":0,"label":"root"}]}`,
			wantVertices: []int{0},
		},
		{
			name:    "invalid json",
			input:   `{"vertices":[`,
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "trailing data",
			input:   `{"vertices":[{"id":0}]} this is not json`,
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "second document",
			input:   `{"vertices":[{"id":0}]}{"vertices":[]}`,
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:         "trailing whitespace",
			input:        "{\"vertices\":[{\"id\":0}]}\n\t ",
			wantVertices: []int{0},
		},
		{
			name:    "unknown color",
			input:   `{"edges":[{"id":0,"vertex_ids":[0,1],"color":"purple"}]}`,
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "wrong vertex_ids arity",
			input:   `{"edges":[{"id":0,"vertex_ids":[0]}]}`,
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:         "dangling references are accepted at read time",
			input:        `{"vertices":[{"id":0,"edge_ids":[0]}],"edges":[{"id":0,"vertex_ids":[0,99]}]}`,
			wantVertices: []int{0},
			wantEdges:    []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadJSON(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadJSON() error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadJSON() error = %v", err)
			}
			if g.VertexCount() != len(tt.wantVertices) {
				t.Fatalf("VertexCount() = %d, want %d", g.VertexCount(), len(tt.wantVertices))
			}
			for i, v := range g.Vertices() {
				if v.ID != tt.wantVertices[i] {
					t.Errorf("vertex[%d] = %d, want %d", i, v.ID, tt.wantVertices[i])
				}
			}
			if g.EdgeCount() != len(tt.wantEdges) {
				t.Fatalf("EdgeCount() = %d, want %d", g.EdgeCount(), len(tt.wantEdges))
			}
			for i, e := range g.Edges() {
				if e.ID != tt.wantEdges[i] {
					t.Errorf("edge[%d] = %d, want %d", i, e.ID, tt.wantEdges[i])
				}
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	src := graph.New(
		[]graph.Vertex{graph.NewVertex(1, 0, 1), graph.NewVertex(0, 0), graph.NewVertex(2, 1), graph.NewVertex(3)},
		[]graph.Edge{
			graph.NewEdge(1, 1, 2, graph.WithCategory(graph.Yellow)),
			graph.NewEdge(0, 0, 1),
		},
	)

	var buf bytes.Buffer
	if err := WriteJSON(src, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if got.VertexCount() != src.VertexCount() || got.EdgeCount() != src.EdgeCount() {
		t.Fatalf("counts = %d/%d, want %d/%d", got.VertexCount(), got.EdgeCount(), src.VertexCount(), src.EdgeCount())
	}
	for i, e := range got.Edges() {
		want := src.Edges()[i]
		if e != want {
			t.Errorf("edge[%d] = %+v, want %+v", i, e, want)
		}
	}

	a, _ := MarshalJSON(src)
	b, _ := MarshalJSON(got)
	if !bytes.Equal(a, b) {
		t.Error("MarshalJSON should be stable across a round trip")
	}
}

func TestImportJSON(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "graph.json")
	if err := os.WriteFile(path, []byte(`{"vertices":[{"id":0}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if g.VertexCount() != 1 {
		t.Errorf("VertexCount() = %d, want 1", g.VertexCount())
	}

	_, err = ImportJSON(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`not json`), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = ImportJSON(bad)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ImportJSON(bad) error = %v, want INVALID_INPUT", err)
	}
	if !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	g := graph.New([]graph.Vertex{graph.NewVertex(0)}, nil)
	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"edge_ids": []`) {
		t.Errorf("isolated vertex should export an empty edge_ids array:\n%s", data)
	}
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestCloseFile(t *testing.T) {
	closeErr := stderrors.New("disk full")
	writeErr := stderrors.New("short write")
	tests := []struct {
		name    string
		closer  failingCloser
		err     error
		wantErr error
	}{
		{name: "both succeed"},
		{name: "close fails", closer: failingCloser{closeErr}, wantErr: closeErr},
		{name: "write error wins", closer: failingCloser{closeErr}, err: writeErr, wantErr: writeErr},
		{name: "write fails", err: writeErr, wantErr: writeErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := closeFile(tt.closer, tt.err)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("closeFile() error = %v", err)
				}
				return
			}
			if !stderrors.Is(err, tt.wantErr) {
				t.Errorf("closeFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
