package layout

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/colgraph/pkg/graph"
	"github.com/matzehuels/colgraph/pkg/style"
)

func TestMarshalLayoutRoundTrip(t *testing.T) {
	g := graph.New(
		[]graph.Vertex{graph.NewVertex(0, 0, 1), graph.NewVertex(1, 0)},
		[]graph.Edge{
			graph.NewEdge(0, 0, 1, graph.WithCategory(graph.Red)),
			graph.NewEdge(1, 0, 0, graph.WithCategory(graph.Yellow)),
		},
	)
	l, err := Compute(g, style.Default())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout() error = %v", err)
	}
	if !strings.Contains(string(data), `"category": "red"`) {
		t.Errorf("categories should serialize by name:\n%s", data)
	}

	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error = %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, l)
	}
}

func TestUnmarshalLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"columns": [`},
		{"dangling edge", `{"vertices": [{"id": 0}], "edges": [{"id": 0, "from": 0, "to": 7, "category": "grey"}]}`},
		{"bad category", `{"edges": [{"id": 0, "category": "purple"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestUnmarshalLayoutDefaults(t *testing.T) {
	l, err := UnmarshalLayout([]byte(`{"width": 10, "height": 10}`))
	if err != nil {
		t.Fatalf("UnmarshalLayout() error = %v", err)
	}
	if l.Placement != style.PlacementCentered {
		t.Errorf("Placement = %q, want %q", l.Placement, style.PlacementCentered)
	}
	if l.Vertices == nil || l.Edges == nil {
		t.Error("shape slices should be non-nil")
	}
}
