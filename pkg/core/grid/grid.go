// Package grid builds the discretized polar grid of candidate node slots.
//
// Rings are spaced evenly in screen space between the inner and outer
// radius, and each ring holds as many slots as fit at roughly AngleMinStep
// pixels apart along its circumference. Outer rings therefore hold more
// slots than inner ones, keeping neighbouring slots about equidistant on
// screen instead of bunching them near the center.
//
// The [Grid] owns its slots in a single index-addressed slice. Consumers
// refer to slots by index and change occupancy only through [Grid.Claim],
// so every slot moves from free to claimed at most once per layout run.
package grid

import (
	"math"

	"github.com/matzehuels/radialtree/pkg/core/polar"
	"github.com/matzehuels/radialtree/pkg/errors"
)

// Options configures grid geometry in screen units.
type Options struct {
	InnerRadius   float64 // Screen radius of the innermost ring
	OuterRadius   float64 // Screen radius of the outermost ring
	RadiusMinStep float64 // Minimum screen distance between rings
	AngleMinStep  float64 // Minimum arc length between slots on a ring
}

// Slot is one candidate placement on the grid.
type Slot struct {
	Index    int     `json:"index"`
	Ring     int     `json:"ring"`
	Radius   float64 `json:"r"` // Data-domain radius (inverse of the ring's screen radius)
	Angle    float64 `json:"a"` // Angle-domain units in [AngleDomain[0], AngleDomain[1])
	Occupied bool    `json:"occupied"`
}

// Waypoint returns the slot position as a polar waypoint.
func (s Slot) Waypoint() polar.Waypoint {
	return polar.Waypoint{Angle: s.Angle, Radius: s.Radius}
}

// Ring describes one concentric ring of the grid.
type Ring struct {
	Index        int     `json:"index" yaml:"index" bson:"index"`
	ScreenRadius float64 `json:"screen_radius" yaml:"screen_radius" bson:"screen_radius"`
	SlotCount    int     `json:"slot_count" yaml:"slot_count" bson:"slot_count"`
	FirstSlot    int     `json:"first_slot" yaml:"first_slot" bson:"first_slot"` // Index of the ring's first slot in Grid.Slots
}

// Grid is the generated set of rings and slots for one layout run.
type Grid struct {
	Options     Options
	RadiusStep  float64
	Rings       []Ring
	AngleDomain [2]float64 // One full turn in angle-domain units, low to high
	slots       []Slot
	occupied    int
}

// Validate checks that the options describe a grid with at least two rings.
func (o Options) Validate() error {
	if err := errors.ValidateFinite("innerRadius", o.InnerRadius); err != nil {
		return err
	}
	if o.InnerRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "innerRadius must not be negative, got %v", o.InnerRadius)
	}
	if err := errors.ValidateFinite("outerRadius", o.OuterRadius); err != nil {
		return err
	}
	if o.OuterRadius <= o.InnerRadius {
		return errors.New(errors.ErrCodeInvalidConfig,
			"outerRadius (%v) must be greater than innerRadius (%v)", o.OuterRadius, o.InnerRadius)
	}
	if err := errors.ValidatePositive("radiusMinStep", o.RadiusMinStep); err != nil {
		return err
	}
	if err := errors.ValidatePositive("angleMinStep", o.AngleMinStep); err != nil {
		return err
	}
	if n := o.RingCount(); n < 2 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"radius span %v yields %d ring(s) at radiusMinStep %v; need at least 2 (span >= 2*radiusMinStep)",
			o.OuterRadius-o.InnerRadius, n, o.RadiusMinStep)
	}
	return nil
}

// RingCount returns floor((outer - inner) / radiusMinStep).
func (o Options) RingCount() int {
	return int(math.Floor((o.OuterRadius - o.InnerRadius) / o.RadiusMinStep))
}

// Build generates the grid. The projector's radius scale maps data radii
// onto screen radii; inverting it expresses each ring's screen radius in node
// units. The angle scale is inverted the same way so slot angles share the
// units of node angles.
//
// Build returns an INVALID_CONFIG error for degenerate geometry instead of
// producing NaN or negative rings.
func Build(opts Options, p polar.Projector) (*Grid, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ringCount := opts.RingCount()
	step := (opts.OuterRadius - opts.InnerRadius) / float64(ringCount-1)

	a0, a1 := p.Angle.Invert(0), p.Angle.Invert(2*math.Pi)
	if a1 < a0 {
		a0, a1 = a1, a0
	}
	turn := a1 - a0

	g := &Grid{
		Options:     opts,
		RadiusStep:  step,
		Rings:       make([]Ring, ringCount),
		AngleDomain: [2]float64{a0, a1},
	}

	for i := range ringCount {
		screen := opts.InnerRadius + float64(i)*step
		n := int(math.Floor(2 * math.Pi * screen / opts.AngleMinStep))
		g.Rings[i] = Ring{Index: i, ScreenRadius: screen, SlotCount: n, FirstSlot: len(g.slots)}

		r := p.Radius.Invert(screen)
		for k := range n {
			g.slots = append(g.slots, Slot{
				Index:  len(g.slots),
				Ring:   i,
				Radius: r,
				Angle:  a0 + turn/float64(n)*float64(k),
			})
		}
	}

	return g, nil
}

// Len returns the number of slots.
func (g *Grid) Len() int { return len(g.slots) }

// Slot returns the slot at index i. It panics if i is out of range.
func (g *Grid) Slot(i int) Slot { return g.slots[i] }

// Slots returns a copy of all slots in generation order.
func (g *Grid) Slots() []Slot {
	out := make([]Slot, len(g.slots))
	copy(out, g.slots)
	return out
}

// Claim marks slot i occupied. It reports false if i is out of range or the
// slot was already claimed; a claimed slot is never released by Claim.
func (g *Grid) Claim(i int) bool {
	if i < 0 || i >= len(g.slots) || g.slots[i].Occupied {
		return false
	}
	g.slots[i].Occupied = true
	g.occupied++
	return true
}

// Free reports whether slot i exists and is unclaimed.
func (g *Grid) Free(i int) bool {
	return i >= 0 && i < len(g.slots) && !g.slots[i].Occupied
}

// Capacity returns the total number of slots.
func (g *Grid) Capacity() int { return len(g.slots) }

// Occupied returns the number of claimed slots.
func (g *Grid) Occupied() int { return g.occupied }

// Reset releases every slot, starting a fresh assignment run on the same geometry.
func (g *Grid) Reset() {
	for i := range g.slots {
		g.slots[i].Occupied = false
	}
	g.occupied = 0
}
