package route

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/radialtree/pkg/core/polar"
)

// DefaultAlpha selects the centripetal Catmull-Rom parameterization.
const DefaultAlpha = 0.5

const smoothEpsilon = 1e-12

// Bezier is one cubic Bézier segment.
type Bezier struct {
	From polar.Point `json:"from"`
	C1   polar.Point `json:"c1"`
	C2   polar.Point `json:"c2"`
	To   polar.Point `json:"to"`
}

// CatmullRom converts a polyline into cubic Bézier segments of a
// Catmull-Rom spline passing through every point. alpha is clamped to
// [0, 1]: 0 is uniform, 0.5 centripetal, 1 chordal. The first and last
// points are duplicated as outer control points, so the curve starts and
// ends exactly at the polyline ends.
//
// Fewer than two points yield no segments.
func CatmullRom(pts []polar.Point, alpha float64) []Bezier {
	if len(pts) < 2 {
		return nil
	}
	alpha = math.Min(math.Max(alpha, 0), 1)

	out := make([]Bezier, 0, len(pts)-1)
	last := len(pts) - 1
	for i := 0; i < last; i++ {
		p0, p1, p2, p3 := pts[max(i-1, 0)], pts[i], pts[i+1], pts[min(i+2, last)]

		d01, d12, d23 := polar.Distance(p0, p1), polar.Distance(p1, p2), polar.Distance(p2, p3)
		l12a, l12a2 := math.Pow(d12, alpha), math.Pow(d12, 2*alpha)

		c1, c2 := p1, p2
		if d01 > smoothEpsilon {
			l01a, l01a2 := math.Pow(d01, alpha), math.Pow(d01, 2*alpha)
			a := 2*l01a2 + 3*l01a*l12a + l12a2
			n := 3 * l01a * (l01a + l12a)
			c1 = polar.Point{
				X: (p1.X*a - p0.X*l12a2 + p2.X*l01a2) / n,
				Y: (p1.Y*a - p0.Y*l12a2 + p2.Y*l01a2) / n,
			}
		}
		if d23 > smoothEpsilon {
			l23a, l23a2 := math.Pow(d23, alpha), math.Pow(d23, 2*alpha)
			b := 2*l23a2 + 3*l23a*l12a + l12a2
			m := 3 * l23a * (l23a + l12a)
			c2 = polar.Point{
				X: (p2.X*b + p1.X*l23a2 - p3.X*l12a2) / m,
				Y: (p2.Y*b + p1.Y*l23a2 - p3.Y*l12a2) / m,
			}
		}

		out = append(out, Bezier{From: p1, C1: c1, C2: c2, To: p2})
	}
	return out
}

// PathData formats segments as an SVG path "d" attribute.
// Coordinates are rounded to two decimals.
func PathData(segs []Bezier) string {
	if len(segs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M")
	writePoint(&b, segs[0].From)
	for _, s := range segs {
		b.WriteString("C")
		writePoint(&b, s.C1)
		b.WriteByte(',')
		writePoint(&b, s.C2)
		b.WriteByte(',')
		writePoint(&b, s.To)
	}
	return b.String()
}

func writePoint(b *strings.Builder, p polar.Point) {
	b.WriteString(strconv.FormatFloat(p.X, 'f', 2, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(p.Y, 'f', 2, 64))
}
