package polar

import (
	"math"
	"slices"
)

// Scale maps values from a data domain onto a screen range and back.
type Scale interface {
	// Apply maps a domain value onto the range.
	Apply(v float64) float64
	// Invert maps a range value back onto the domain.
	Invert(v float64) float64
}

// LinearScale is a continuous linear mapping from Domain to Range.
//
// A degenerate domain (both ends equal) maps every value onto the midpoint
// of the range, and inverts every value onto the domain start.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinearScale returns a scale mapping [d0, d1] onto [r0, r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// AngleScale returns the scale that maps [d0, d1] onto one full turn in radians.
func AngleScale(d0, d1 float64) LinearScale {
	return NewLinearScale(d0, d1, 0, 2*math.Pi)
}

// Apply maps v from the domain onto the range.
func (s LinearScale) Apply(v float64) float64 {
	d := s.Domain[1] - s.Domain[0]
	if d == 0 {
		return (s.Range[0] + s.Range[1]) / 2
	}
	t := (v - s.Domain[0]) / d
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// Invert maps v from the range back onto the domain.
func (s LinearScale) Invert(v float64) float64 {
	r := s.Range[1] - s.Range[0]
	if r == 0 || s.Domain[1] == s.Domain[0] {
		return s.Domain[0]
	}
	t := (v - s.Range[0]) / r
	return s.Domain[0] + t*(s.Domain[1]-s.Domain[0])
}

// WithDomain returns a copy of s with a new domain.
func (s LinearScale) WithDomain(d0, d1 float64) LinearScale {
	s.Domain = [2]float64{d0, d1}
	return s
}

// WithRange returns a copy of s with a new range.
func (s LinearScale) WithRange(r0, r1 float64) LinearScale {
	s.Range = [2]float64{r0, r1}
	return s
}

// Extent returns the minimum and maximum of values.
// It returns ok=false for an empty slice.
func Extent(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	return slices.Min(values), slices.Max(values), true
}
