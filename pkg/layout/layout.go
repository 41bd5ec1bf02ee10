package layout

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/graph"
	"github.com/matzehuels/colgraph/pkg/style"
)

// Layout is the result of one layout pass.
type Layout struct {
	Columns   [][]int         `json:"columns"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Placement style.Placement `json:"placement"`
	Vertices  []VertexShape   `json:"vertices"`
	Edges     []EdgeShape     `json:"edges"`
}

// VertexShape is a placed vertex glyph.
type VertexShape struct {
	ID     int    `json:"id"`
	Column int    `json:"column"`
	Row    int    `json:"row"`
	Center r2.Vec `json:"center"`
}

// EdgeShape is a placed edge with its label position.
type EdgeShape struct {
	ID       int            `json:"id"`
	From     int            `json:"from"`
	To       int            `json:"to"`
	Category graph.Category `json:"category"`
	Start    r2.Vec         `json:"start"`
	End      r2.Vec         `json:"end"`
	Label    r2.Vec         `json:"label"`
	Loop     *Loop          `json:"loop,omitempty"`
}

// Loop is the circle drawn for a loop-category edge.
type Loop struct {
	Center r2.Vec  `json:"center"`
	Radius float64 `json:"radius"`
}

// Vertex returns the shape of the vertex with the given id.
func (l Layout) Vertex(id int) (VertexShape, bool) {
	for _, v := range l.Vertices {
		if v.ID == id {
			return v, true
		}
	}
	return VertexShape{}, false
}

// Option configures a layout pass.
type Option func(*options)

type options struct {
	filter    []graph.Category
	placement style.Placement
}

// WithTraversalFilter restricts traversal adjacency to edges of the given
// categories. Edges of other categories are still positioned when both of
// their endpoints were reached.
func WithTraversalFilter(categories ...graph.Category) Option {
	return func(o *options) { o.filter = categories }
}

// WithPlacement overrides the placement mode of the style.
func WithPlacement(p style.Placement) Option {
	return func(o *options) { o.placement = p }
}

// Compute runs traversal, sizing and positioning for g.
//
// It returns a REFERENCE error, and no layout, when an edge names a vertex
// that does not exist. Edges between existing vertices that the traversal
// never reached are left out. An empty graph produces an empty layout of
// size 2*margin. When a loop edge is placed, the canvas grows at the top so
// the loop circle and its label stay inside it.
func Compute(g *graph.Graph, st style.Style, opts ...Option) (Layout, error) {
	o := options{placement: st.Placement}
	for _, opt := range opts {
		opt(&o)
	}
	if o.placement == "" {
		o.placement = style.PlacementCentered
	}
	if !o.placement.Valid() {
		return Layout{}, errors.New(errors.ErrCodeInvalidStyle, "unknown placement %q", o.placement)
	}

	columns, err := Traverse(g, o.filter...)
	if err != nil {
		return Layout{}, err
	}

	w, h := CanvasSize(columns, st)
	var top float64
	if hasPlacedLoop(g, columns) {
		top = LoopPadding(st)
		h += top
	}
	l := Layout{
		Columns:   make([][]int, len(columns)),
		Width:     w,
		Height:    h,
		Placement: o.placement,
		Vertices:  []VertexShape{},
		Edges:     []EdgeShape{},
	}

	centers := map[int]r2.Vec{}
	for k, column := range columns {
		ids := make([]int, len(column))
		x := columnX(k, st)
		for i, v := range column {
			ids[i] = v.ID
			c := r2.Vec{X: x, Y: top + rowY(i, len(column), h-top, st, o.placement)}
			centers[v.ID] = c
			l.Vertices = append(l.Vertices, VertexShape{ID: v.ID, Column: k, Row: i, Center: c})
		}
		l.Columns[k] = ids
	}

	for _, e := range g.Edges() {
		if _, err := g.VerticesOf(e); err != nil {
			return Layout{}, err
		}
		start, ok1 := centers[e.VertexIDs[0]]
		end, ok2 := centers[e.VertexIDs[1]]
		if !ok1 || !ok2 {
			continue
		}
		l.Edges = append(l.Edges, edgeShape(e, start, end, st))
	}
	return l, nil
}

// LoopPadding is the space added above the margin when a loop edge is drawn.
// The loop circle and its label rise D + LabelHeight above a vertex centre.
func LoopPadding(st style.Style) float64 {
	return max(0, st.VertexDiameter+st.LabelHeight()-st.Margin)
}

// hasPlacedLoop reports whether a loop-category edge joins two traversed
// vertices.
func hasPlacedLoop(g *graph.Graph, columns [][]graph.Vertex) bool {
	placed := map[int]bool{}
	for _, column := range columns {
		for _, v := range column {
			placed[v.ID] = true
		}
	}
	for _, e := range g.Edges() {
		if e.Category.IsLoop() && placed[e.VertexIDs[0]] && placed[e.VertexIDs[1]] {
			return true
		}
	}
	return false
}

func columnX(k int, st style.Style) float64 {
	return st.Margin + st.VertexDiameter/2 + float64(k)*(st.VertexDiameter+st.HorizontalSpacing)
}

func rowY(i, count int, height float64, st style.Style, p style.Placement) float64 {
	d := st.VertexDiameter
	inner := height - 2*st.Margin
	if p == style.PlacementEven {
		gap := (inner - float64(count)*d) / float64(count+1)
		return st.Margin + gap*float64(i+1) + d*float64(i) + d/2
	}
	top := (inner - span(count, d, st.VerticalSpacing)) / 2
	return st.Margin + top + d/2 + float64(i)*(d+st.VerticalSpacing)
}

func edgeShape(e graph.Edge, start, end r2.Vec, st style.Style) EdgeShape {
	s := EdgeShape{
		ID:       e.ID,
		From:     e.VertexIDs[0],
		To:       e.VertexIDs[1],
		Category: e.Category,
		Start:    start,
		End:      end,
	}
	if e.Category.IsLoop() {
		r := st.VertexDiameter / 2
		s.Loop = &Loop{Center: r2.Add(start, r2.Vec{Y: -r}), Radius: r}
		s.Label = r2.Add(start, r2.Vec{Y: -st.VertexDiameter - st.LabelHeight()/2})
		return s
	}
	s.Label = r2.Scale(0.5, r2.Add(start, end))
	return s
}
