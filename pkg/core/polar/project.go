package polar

import "math"

// Point is a Cartesian position relative to the frame center.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Offset returns p translated by (dx, dy).
func (p Point) Offset(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Waypoint is a position in data-domain polar coordinates.
// Angle is expressed in the units of the angle scale's domain (degrees by default).
type Waypoint struct {
	Angle  float64 `json:"a" bson:"a"`
	Radius float64 `json:"r" bson:"r"`
}

// Projector converts data-domain polar coordinates to Cartesian points.
type Projector struct {
	Radius Scale
	Angle  Scale
}

// NewProjector returns a projector using the given radius and angle scales.
func NewProjector(radius, angle Scale) Projector {
	return Projector{Radius: radius, Angle: angle}
}

// Project maps (radius, angle) onto a center-relative point.
func (p Projector) Project(radius, angle float64) Point {
	r := p.Radius.Apply(radius)
	theta := p.Angle.Apply(angle)
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// ProjectWaypoint is Project for a Waypoint.
func (p Projector) ProjectWaypoint(w Waypoint) Point {
	return p.Project(w.Radius, w.Angle)
}

// ProjectAll projects every waypoint in order.
func (p Projector) ProjectAll(ws []Waypoint) []Point {
	out := make([]Point, len(ws))
	for i, w := range ws {
		out[i] = p.ProjectWaypoint(w)
	}
	return out
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
