package layout

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/colgraph/pkg/style"
)

// MarshalLayout serializes l to indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Every edge must reference a vertex present in the layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Placement == "" {
		l.Placement = style.PlacementCentered
	}
	if l.Vertices == nil {
		l.Vertices = []VertexShape{}
	}
	if l.Edges == nil {
		l.Edges = []EdgeShape{}
	}
	for _, e := range l.Edges {
		if _, ok := l.Vertex(e.From); !ok {
			return Layout{}, fmt.Errorf("edge %d: vertex %d not in layout", e.ID, e.From)
		}
		if _, ok := l.Vertex(e.To); !ok {
			return Layout{}, fmt.Errorf("edge %d: vertex %d not in layout", e.ID, e.To)
		}
	}
	return l, nil
}
