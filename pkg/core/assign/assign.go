// Package assign snaps nodes onto grid slots.
//
// Assignment is a greedy approximation of minimum-total-distance bipartite
// matching. Nodes are processed in priority order (angle ascending, then
// radius ascending) and each claims the nearest slot that is still free.
// Processing in angular order resolves angular neighbours consecutively,
// which lowers the chance that an unrelated node takes a slot a nearby one
// needed. It is a heuristic, not a guarantee of global optimality.
//
// # Complexity
//
// Each node measures its distance to every slot and sorts the candidates:
// O(N·S log S) for N nodes and S slots. No spatial index is used, so this
// is the scalability ceiling of the whole layout.
//
// # Determinism
//
// Both sorts are stable: nodes with equal (angle, radius) keep their input
// order, and slots at equal distance keep generation order. Given the same
// input order and grid, Assign always produces the same result.
package assign

import (
	"cmp"
	"slices"

	"github.com/matzehuels/radialtree/pkg/core/grid"
	"github.com/matzehuels/radialtree/pkg/core/polar"
)

// Node is a node in data-domain polar coordinates.
type Node struct {
	ID     string
	Radius float64
	Angle  float64
}

// Result is the outcome of one assignment pass.
type Result struct {
	// Assignment maps node ID to slot index. Each index appears at most once.
	Assignment map[string]int
	// Order lists node IDs in the priority order they were processed.
	Order []string
	// Unassigned lists, in priority order, nodes that found no free slot.
	Unassigned []string
}

// Slot returns the slot index assigned to id.
func (r Result) Slot(id string) (int, bool) {
	i, ok := r.Assignment[id]
	return i, ok
}

// candidate is a slot index paired with its distance to the current node.
type candidate struct {
	slot int
	dist float64
}

// SortNodes returns a copy of nodes in assignment priority order:
// angle ascending, ties broken by radius ascending, remaining ties by input order.
func SortNodes(nodes []Node) []Node {
	sorted := slices.Clone(nodes)
	slices.SortStableFunc(sorted, func(a, b Node) int {
		if c := cmp.Compare(a.Angle, b.Angle); c != 0 {
			return c
		}
		return cmp.Compare(a.Radius, b.Radius)
	})
	return sorted
}

// Assign claims one free slot of g for each node, nearest first.
//
// Slots claimed here stay claimed in g. Nodes left without a slot once g is
// full are reported in Result.Unassigned; this is a valid outcome, not an error.
func Assign(nodes []Node, g *grid.Grid, p polar.Projector) Result {
	res := Result{
		Assignment: make(map[string]int, len(nodes)),
		Order:      make([]string, 0, len(nodes)),
	}

	// Slot positions do not depend on the node, so project them once.
	slotPts := make([]polar.Point, g.Len())
	for i := range slotPts {
		s := g.Slot(i)
		slotPts[i] = p.Project(s.Radius, s.Angle)
	}

	cands := make([]candidate, len(slotPts))
	for _, n := range SortNodes(nodes) {
		res.Order = append(res.Order, n.ID)

		at := p.Project(n.Radius, n.Angle)
		for i, sp := range slotPts {
			cands[i] = candidate{slot: i, dist: polar.Distance(at, sp)}
		}
		slices.SortStableFunc(cands, func(a, b candidate) int {
			return cmp.Compare(a.dist, b.dist)
		})

		claimed := false
		for _, c := range cands {
			if g.Claim(c.slot) {
				res.Assignment[n.ID] = c.slot
				claimed = true
				break
			}
		}
		if !claimed {
			res.Unassigned = append(res.Unassigned, n.ID)
		}
	}

	return res
}
