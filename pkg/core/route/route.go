// Package route computes curved connections between assigned grid slots.
//
// Every edge is drawn as an arc that takes the shorter angular direction
// around the circle, interpolating angle and radius linearly between its
// endpoints. The waypoint count scales with the arc's outer circumference
// so longer arcs stay smooth once projected and curved with [CatmullRom].
//
// Edges whose endpoints are unknown or were left without a slot cannot be
// routed; [Router.Route] skips them and reports them in
// [Result.Unroutable] instead of failing.
package route

import (
	"slices"

	"github.com/matzehuels/radialtree/pkg/core/assign"
	"github.com/matzehuels/radialtree/pkg/core/grid"
	"github.com/matzehuels/radialtree/pkg/core/polar"
)

// Edge connects two node identifiers.
type Edge struct {
	From string `json:"from" yaml:"from" bson:"from"`
	To   string `json:"to" yaml:"to" bson:"to"`
}

// Reason explains why an edge could not be routed.
type Reason string

const (
	// ReasonUnknownEndpoint means the endpoint is not in the node set.
	ReasonUnknownEndpoint Reason = "unknown_endpoint"
	// ReasonUnassignedEndpoint means the endpoint exists but received no slot.
	ReasonUnassignedEndpoint Reason = "unassigned_endpoint"
)

// Unroutable records an edge that was skipped.
type Unroutable struct {
	Edge     Edge
	Endpoint string // The first endpoint that failed to resolve
	Reason   Reason
}

// Path is the routed arc for one edge.
type Path struct {
	Edge      Edge
	FromSlot  int
	ToSlot    int
	Waypoints []polar.Waypoint // Ordered by increasing angle

	Wraps      bool // The arc crosses the circle origin
	Reversed   bool // Waypoints run from Edge.To to Edge.From
	Degenerate bool // Both endpoints share one angle
}

// Directed returns the waypoints ordered from Edge.From to Edge.To.
func (p Path) Directed() []polar.Waypoint {
	out := slices.Clone(p.Waypoints)
	if p.Reversed {
		slices.Reverse(out)
	}
	return out
}

// Result holds routed paths and skipped edges, both in input edge order.
type Result struct {
	Paths      []Path
	Unroutable []Unroutable
}

// Router resolves edge endpoints against one assignment run.
type Router struct {
	grid   *grid.Grid
	circle Circle
	slots  map[string]int
	known  map[string]struct{}
}

// NewRouter returns a router over g and the assignment made on it.
func NewRouter(g *grid.Grid, a assign.Result) *Router {
	known := make(map[string]struct{}, len(a.Order))
	for _, id := range a.Order {
		known[id] = struct{}{}
	}
	circle := Circle{Origin: g.AngleDomain[0], Turn: g.AngleDomain[1] - g.AngleDomain[0]}
	return &Router{grid: g, circle: circle, slots: a.Assignment, known: known}
}

// Route routes every edge, skipping and reporting the ones it cannot resolve.
func (r *Router) Route(edges []Edge) Result {
	var res Result
	for _, e := range edges {
		p, skip, ok := r.routeOne(e)
		if !ok {
			res.Unroutable = append(res.Unroutable, skip)
			continue
		}
		res.Paths = append(res.Paths, p)
	}
	return res
}

func (r *Router) resolve(id string) (int, Reason, bool) {
	if _, ok := r.known[id]; !ok {
		return 0, ReasonUnknownEndpoint, false
	}
	slot, ok := r.slots[id]
	if !ok {
		return 0, ReasonUnassignedEndpoint, false
	}
	return slot, "", true
}

func (r *Router) routeOne(e Edge) (Path, Unroutable, bool) {
	from, reason, ok := r.resolve(e.From)
	if !ok {
		return Path{}, Unroutable{Edge: e, Endpoint: e.From, Reason: reason}, false
	}
	to, reason, ok := r.resolve(e.To)
	if !ok {
		return Path{}, Unroutable{Edge: e, Endpoint: e.To, Reason: reason}, false
	}

	a := r.grid.Slot(from).Waypoint()
	b := r.grid.Slot(to).Waypoint()
	span := r.circle.ShortestSpan(a, b)

	return Path{
		Edge:       e,
		FromSlot:   from,
		ToSlot:     to,
		Waypoints:  span.Interpolate(StepCount(a, b)),
		Wraps:      span.Wraps,
		Reversed:   span.Swapped,
		Degenerate: span.Degenerate,
	}, Unroutable{}, true
}
