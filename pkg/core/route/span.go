package route

import (
	"math"

	"github.com/matzehuels/radialtree/pkg/core/polar"
)

// FullTurn is one revolution in degrees.
const FullTurn = 360.0

// Circle is the angle domain covering one revolution, starting at Origin.
type Circle struct {
	Origin float64
	Turn   float64
}

// Degrees is the default circle: [0, 360).
var Degrees = Circle{Origin: 0, Turn: FullTurn}

// arcStepLength is the arc length covered by one interpolation step.
const arcStepLength = 10.0

// Span is the shorter angular sweep between two waypoints, with the
// endpoints arranged so that the angle increases from Start to Target.
type Span struct {
	Start  polar.Waypoint
	Target polar.Waypoint

	// Direct and Wrap are the two candidate sweeps in degrees.
	Direct float64
	Wrap   float64

	// Wraps is true when the sweep passes through the circle origin.
	// Target.Angle is then lifted by a full turn so interpolation stays
	// monotonic.
	Wraps bool

	// Swapped is true when Start is the second argument of ShortestSpan.
	Swapped bool

	// Degenerate is true when both endpoints share the same angle. The
	// sweep is then purely radial, and which endpoint comes first is
	// decided by argument order rather than by angle.
	Degenerate bool
}

// Sweep returns the chosen angular sweep in degrees.
func (s Span) Sweep() float64 {
	if s.Wraps {
		return s.Wrap
	}
	return s.Direct
}

// ShortestSpan picks the shorter way around the degree circle from a to b.
//
// The endpoint with the smaller angle is t1, the other t2; on equal angles
// t1 is b. The direct sweep is |t2 - t1| and the wraparound sweep is
// |360 - t2| + t1. The direct sweep wins only when strictly shorter, so a
// half-turn tie wraps. Angles are expected in [0, 360).
func ShortestSpan(a, b polar.Waypoint) Span {
	return Degrees.ShortestSpan(a, b)
}

// ShortestSpan is the package-level ShortestSpan on circle c. Angles are
// expected in [c.Origin, c.Origin+c.Turn).
func (c Circle) ShortestSpan(a, b polar.Waypoint) Span {
	t1, t2 := b, a
	aFirst := b.Angle > a.Angle
	if aFirst {
		t1, t2 = a, b
	}

	s := Span{
		Direct:     math.Abs(t2.Angle - t1.Angle),
		Wrap:       math.Abs(c.Origin+c.Turn-t2.Angle) + (t1.Angle - c.Origin),
		Degenerate: a.Angle == b.Angle,
	}

	if s.Direct < s.Wrap {
		s.Start, s.Target = t1, t2
		s.Swapped = !aFirst
		return s
	}

	s.Wraps = true
	s.Start = t2
	s.Target = polar.Waypoint{Angle: c.Turn + t1.Angle, Radius: t1.Radius}
	s.Swapped = aFirst
	return s
}

// StepCount returns the number of interpolation steps for an arc drawn at
// the larger of the two radii: one step per 10 units of circumference,
// never fewer than one.
func StepCount(a, b polar.Waypoint) int {
	r := math.Max(math.Abs(a.Radius), math.Abs(b.Radius))
	return max(int(math.Ceil(2*math.Pi*r/arcStepLength)), 1)
}

// Interpolate returns steps linearly spaced waypoints from s.Start towards
// s.Target, followed by s.Target itself: steps+1 points in total.
func (s Span) Interpolate(steps int) []polar.Waypoint {
	steps = max(steps, 1)
	da := (s.Target.Angle - s.Start.Angle) / float64(steps)
	dr := (s.Target.Radius - s.Start.Radius) / float64(steps)

	out := make([]polar.Waypoint, 0, steps+1)
	for i := range steps {
		out = append(out, polar.Waypoint{
			Angle:  s.Start.Angle + da*float64(i),
			Radius: s.Start.Radius + dr*float64(i),
		})
	}
	return append(out, s.Target)
}

// Arc returns the waypoints of the shorter arc between a and b, ordered by
// increasing angle (not necessarily a→b). See [ShortestSpan].
func Arc(a, b polar.Waypoint) []polar.Waypoint {
	return Degrees.Arc(a, b)
}

// Arc is the package-level Arc on circle c.
func (c Circle) Arc(a, b polar.Waypoint) []polar.Waypoint {
	return c.ShortestSpan(a, b).Interpolate(StepCount(a, b))
}
