// Package polar maps (radius, angle) pairs onto Cartesian coordinates.
//
// # Overview
//
// Radial layouts describe every position twice: once in the data domain
// (the radius and angle values carried by nodes) and once on screen (pixels
// measured from the center of the frame). A [Projector] holds two [Scale]
// values that bridge the domains:
//
//   - Radius scale: data radius → screen radius (e.g. [innerRadius, outerRadius])
//   - Angle scale: data angle → radians in [0, 2π)
//
// Projection is then the usual polar → Cartesian conversion:
//
//	x = Radius(r) · cos(Angle(a))
//	y = Radius(r) · sin(Angle(a))
//
// The resulting [Point] is relative to the frame center. Use [Point.Offset]
// to move it into frame coordinates.
//
// # Scales
//
// [LinearScale] follows the semantics of a d3 linear scale: values outside
// the domain extrapolate, and [LinearScale.Invert] maps screen values back
// into the data domain. The grid builder relies on Invert to express slot
// radii in the same units as node radii.
//
// # Performance
//
// Projection and distance are O(1) and allocation-free; the slot assigner
// calls them once per (node, slot) pair.
package polar
