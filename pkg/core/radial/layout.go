package radial

import (
	"fmt"
	"math"

	"github.com/matzehuels/radialtree/pkg/core/assign"
	"github.com/matzehuels/radialtree/pkg/core/grid"
	"github.com/matzehuels/radialtree/pkg/core/polar"
	"github.com/matzehuels/radialtree/pkg/core/route"
)

const fullCircle = 2 * math.Pi

// Node is a node in data-domain polar coordinates.
type Node = assign.Node

// Edge connects two node identifiers.
type Edge = route.Edge

// IssueKind classifies a non-fatal layout problem.
type IssueKind string

const (
	// IssueCapacityExhausted: the grid ran out of free slots before the node
	// was processed. The node has no position and its edges are skipped.
	IssueCapacityExhausted IssueKind = "capacity_exhausted"
	// IssueUnresolvedEdgeEndpoint: an edge names an unknown node or one
	// without a slot. The edge has no path.
	IssueUnresolvedEdgeEndpoint IssueKind = "unresolved_edge_endpoint"
	// IssueDegenerateAngularTie: both endpoints of an edge landed on the same
	// angle, so the arc is purely radial.
	IssueDegenerateAngularTie IssueKind = "degenerate_angular_tie"
)

// Issue is a problem that left the layout partial but usable.
type Issue struct {
	Kind   IssueKind
	NodeID string // Set for node issues and for the failing edge endpoint
	Edge   *Edge  // Set for edge issues
	Detail string
}

func (i Issue) String() string {
	if i.Edge != nil {
		return fmt.Sprintf("%s: %s -> %s: %s", i.Kind, i.Edge.From, i.Edge.To, i.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", i.Kind, i.NodeID, i.Detail)
}

// Result is a computed layout. Grid occupancy reflects the assignment.
type Result struct {
	Config     Config
	Projector  polar.Projector
	Grid       *grid.Grid
	Nodes      []Node // Input order
	Assignment assign.Result
	Paths      []route.Path
	Issues     []Issue
}

// Compute lays out nodes on a fresh grid and routes edges between them.
//
// Invalid configuration and malformed nodes are errors. Capacity exhaustion
// and unroutable edges are not: they produce a partial Result whose Issues
// describe what was dropped.
func Compute(nodes []Node, edges []Edge, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateNodes(nodes); err != nil {
		return nil, err
	}

	proj := cfg.Projector(nodes)
	g, err := grid.Build(cfg.GridOptions(), proj)
	if err != nil {
		return nil, err
	}

	a := assign.Assign(nodes, g, proj)
	routed := route.NewRouter(g, a).Route(edges)

	res := &Result{
		Config:     cfg,
		Projector:  proj,
		Grid:       g,
		Nodes:      nodes,
		Assignment: a,
		Paths:      routed.Paths,
	}

	for _, id := range a.Unassigned {
		res.Issues = append(res.Issues, Issue{
			Kind:   IssueCapacityExhausted,
			NodeID: id,
			Detail: fmt.Sprintf("no free slot left (capacity %d)", g.Capacity()),
		})
	}
	for _, u := range routed.Unroutable {
		e := u.Edge
		res.Issues = append(res.Issues, Issue{
			Kind:   IssueUnresolvedEdgeEndpoint,
			NodeID: u.Endpoint,
			Edge:   &e,
			Detail: string(u.Reason),
		})
	}
	for _, p := range routed.Paths {
		if p.Degenerate {
			e := p.Edge
			res.Issues = append(res.Issues, Issue{
				Kind:   IssueDegenerateAngularTie,
				Edge:   &e,
				Detail: fmt.Sprintf("both endpoints at %v", g.Slot(p.FromSlot).Angle),
			})
		}
	}

	return res, nil
}

// ComputeRecords ingests raw records with cfg's accessors and computes the layout.
func ComputeRecords(records []Record, edges []Edge, cfg Config) (*Result, error) {
	nodes, err := Ingest(records, cfg.Accessors())
	if err != nil {
		return nil, err
	}
	return Compute(nodes, edges, cfg)
}

// Partial reports whether any node or edge was dropped.
func (r *Result) Partial() bool {
	for _, i := range r.Issues {
		if i.Kind != IssueDegenerateAngularTie {
			return true
		}
	}
	return false
}

// NodeSlot returns the slot assigned to id.
func (r *Result) NodeSlot(id string) (grid.Slot, bool) {
	i, ok := r.Assignment.Slot(id)
	if !ok {
		return grid.Slot{}, false
	}
	return r.Grid.Slot(i), true
}

// NodePosition returns id's slot and its frame position.
func (r *Result) NodePosition(id string) (grid.Slot, polar.Point, bool) {
	s, ok := r.NodeSlot(id)
	if !ok {
		return grid.Slot{}, polar.Point{}, false
	}
	return s, r.Point(s.Waypoint()), true
}

// Point projects w into frame coordinates.
func (r *Result) Point(w polar.Waypoint) polar.Point {
	c := r.Config.Center()
	return r.Projector.ProjectWaypoint(w).Offset(c.X, c.Y)
}

// PathPoints projects p's waypoints into frame coordinates, from Edge.From
// to Edge.To.
func (r *Result) PathPoints(p route.Path) []polar.Point {
	ws := p.Directed()
	out := make([]polar.Point, len(ws))
	for i, w := range ws {
		out[i] = r.Point(w)
	}
	return out
}

// PathData returns p as a smoothed SVG path "d" attribute.
func (r *Result) PathData(p route.Path) string {
	return route.PathData(route.CatmullRom(r.PathPoints(p), route.DefaultAlpha))
}
