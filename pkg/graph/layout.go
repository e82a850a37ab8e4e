package graph

import (
	"time"

	"github.com/matzehuels/radialtree/pkg/core/grid"
	"github.com/matzehuels/radialtree/pkg/core/polar"
	"github.com/matzehuels/radialtree/pkg/core/radial"
)

// =============================================================================
// Layout - Computed Radial Layout
// =============================================================================

// Layout is the serialization format for a computed layout, used for files,
// API responses, the cache and the layout store.
//
// All x/y coordinates are in frame space: the frame center plus the
// projected polar position.
type Layout struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty" bson:"_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty" bson:"created_at,omitempty"`

	Width  float64     `json:"width" yaml:"width" bson:"width"`
	Height float64     `json:"height" yaml:"height" bson:"height"`
	Center polar.Point `json:"center" yaml:"center" bson:"center"`

	Geometry Geometry    `json:"geometry" yaml:"geometry" bson:"geometry"`
	Rings    []grid.Ring `json:"rings" yaml:"rings" bson:"rings"`
	Slots    []Slot      `json:"slots" yaml:"slots" bson:"slots"`
	Nodes    []Node      `json:"nodes" yaml:"nodes" bson:"nodes"`
	Paths    []Path      `json:"paths" yaml:"paths" bson:"paths"`
	Issues   []Issue     `json:"issues,omitempty" yaml:"issues,omitempty" bson:"issues,omitempty"`
}

// Geometry echoes the configuration that produced the layout.
type Geometry struct {
	InnerRadius   float64    `json:"inner_radius" yaml:"inner_radius" bson:"inner_radius"`
	OuterRadius   float64    `json:"outer_radius" yaml:"outer_radius" bson:"outer_radius"`
	RadiusMinStep float64    `json:"radius_min_step" yaml:"radius_min_step" bson:"radius_min_step"`
	AngleMinStep  float64    `json:"angle_min_step" yaml:"angle_min_step" bson:"angle_min_step"`
	RadiusStep    float64    `json:"radius_step" yaml:"radius_step" bson:"radius_step"`
	RadiusDomain  [2]float64 `json:"radius_domain" yaml:"radius_domain" bson:"radius_domain"`
	AngleDomain   [2]float64 `json:"angle_domain" yaml:"angle_domain" bson:"angle_domain"`
	Capacity      int        `json:"capacity" yaml:"capacity" bson:"capacity"`
}

// Slot is a grid slot with its frame position.
type Slot struct {
	Index    int     `json:"index" yaml:"index" bson:"index"`
	Ring     int     `json:"ring" yaml:"ring" bson:"ring"`
	R        float64 `json:"r" yaml:"r" bson:"r"`
	A        float64 `json:"a" yaml:"a" bson:"a"`
	X        float64 `json:"x" yaml:"x" bson:"x"`
	Y        float64 `json:"y" yaml:"y" bson:"y"`
	Occupied bool    `json:"occupied" yaml:"occupied" bson:"occupied"`
}

// Node is an input node and where it landed. Slot, X and Y are nil for a
// node left without a slot.
type Node struct {
	ID    string         `json:"id" yaml:"id" bson:"id"`
	Label string         `json:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"`
	R     float64        `json:"r" yaml:"r" bson:"r"`
	A     float64        `json:"a" yaml:"a" bson:"a"`
	Slot  *int           `json:"slot" yaml:"slot" bson:"slot"`
	X     *float64       `json:"x" yaml:"x" bson:"x"`
	Y     *float64       `json:"y" yaml:"y" bson:"y"`
	Meta  map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" bson:"meta,omitempty"`
}

// Placed reports whether the node received a slot.
func (n Node) Placed() bool { return n.Slot != nil }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Path is a routed edge.
type Path struct {
	From       string     `json:"from" yaml:"from" bson:"from"`
	To         string     `json:"to" yaml:"to" bson:"to"`
	Reversed   bool       `json:"reversed,omitempty" yaml:"reversed,omitempty" bson:"reversed,omitempty"`
	Wraps      bool       `json:"wraps,omitempty" yaml:"wraps,omitempty" bson:"wraps,omitempty"`
	Degenerate bool       `json:"degenerate,omitempty" yaml:"degenerate,omitempty" bson:"degenerate,omitempty"`
	Waypoints  []Waypoint `json:"waypoints" yaml:"waypoints" bson:"waypoints"`
	D          string     `json:"d" yaml:"d" bson:"d"` // Smoothed SVG path data
}

// Waypoint is one path sample, ordered from From to To.
type Waypoint struct {
	A float64 `json:"a" yaml:"a" bson:"a"`
	R float64 `json:"r" yaml:"r" bson:"r"`
	X float64 `json:"x" yaml:"x" bson:"x"`
	Y float64 `json:"y" yaml:"y" bson:"y"`
}

// Issue is a non-fatal layout problem.
type Issue struct {
	Kind   string `json:"kind" yaml:"kind" bson:"kind"`
	Node   string `json:"node,omitempty" yaml:"node,omitempty" bson:"node,omitempty"`
	From   string `json:"from,omitempty" yaml:"from,omitempty" bson:"from,omitempty"`
	To     string `json:"to,omitempty" yaml:"to,omitempty" bson:"to,omitempty"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty" bson:"detail,omitempty"`
}

// Partial reports whether any node or edge was dropped.
func (l *Layout) Partial() bool {
	for _, i := range l.Issues {
		if i.Kind != string(radial.IssueDegenerateAngularTie) {
			return true
		}
	}
	return false
}

// Node returns the node with the given ID.
func (l *Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// radial.Result → Layout Conversion
// =============================================================================

// FromResult converts a computed layout into its serialization format.
// g supplies labels and metadata; its node records must be the ones the
// result was computed from, in the same order.
func FromResult(g Graph, res *radial.Result) Layout {
	cfg := res.Config
	l := Layout{
		Width:  cfg.Width,
		Height: cfg.Height,
		Center: cfg.Center(),
		Geometry: Geometry{
			InnerRadius:   cfg.InnerRadius,
			OuterRadius:   cfg.Outer(),
			RadiusMinStep: cfg.RadiusMinStep,
			AngleMinStep:  cfg.AngleMinStep,
			RadiusStep:    res.Grid.RadiusStep,
			RadiusDomain:  radiusDomain(res.Projector.Radius),
			AngleDomain:   res.Grid.AngleDomain,
			Capacity:      res.Grid.Capacity(),
		},
		Rings: res.Grid.Rings,
		Slots: make([]Slot, res.Grid.Len()),
		Nodes: make([]Node, len(res.Nodes)),
		Paths: make([]Path, len(res.Paths)),
	}

	for i, s := range res.Grid.Slots() {
		p := res.Point(s.Waypoint())
		l.Slots[i] = Slot{Index: s.Index, Ring: s.Ring, R: s.Radius, A: s.Angle, X: p.X, Y: p.Y, Occupied: s.Occupied}
	}

	for i, n := range res.Nodes {
		out := Node{ID: n.ID, R: n.Radius, A: n.Angle}
		if i < len(g.Nodes) {
			out.Label = label(g.Nodes[i])
			out.Meta = meta(g.Nodes[i])
		}
		if s, p, ok := res.NodePosition(n.ID); ok {
			idx, x, y := s.Index, p.X, p.Y
			out.Slot, out.X, out.Y = &idx, &x, &y
		}
		l.Nodes[i] = out
	}

	for i, p := range res.Paths {
		ws := p.Directed()
		pts := res.PathPoints(p)
		out := Path{
			From:       p.Edge.From,
			To:         p.Edge.To,
			Reversed:   p.Reversed,
			Wraps:      p.Wraps,
			Degenerate: p.Degenerate,
			Waypoints:  make([]Waypoint, len(ws)),
			D:          res.PathData(p),
		}
		for j, w := range ws {
			out.Waypoints[j] = Waypoint{A: w.Angle, R: w.Radius, X: pts[j].X, Y: pts[j].Y}
		}
		l.Paths[i] = out
	}

	for _, is := range res.Issues {
		out := Issue{Kind: string(is.Kind), Node: is.NodeID, Detail: is.Detail}
		if is.Edge != nil {
			out.From, out.To = is.Edge.From, is.Edge.To
		}
		l.Issues = append(l.Issues, out)
	}

	return l
}

func radiusDomain(s polar.Scale) [2]float64 {
	if ls, ok := s.(polar.LinearScale); ok {
		return ls.Domain
	}
	return [2]float64{}
}
