package polar

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestLinearScale(t *testing.T) {
	s := NewLinearScale(1, 2, 10, 20)

	tests := []struct {
		in, want float64
	}{
		{1, 10},
		{2, 20},
		{1.5, 15},
		{3, 30}, // extrapolates
	}
	for _, tt := range tests {
		if got := s.Apply(tt.in); !near(got, tt.want) {
			t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got := s.Invert(tt.want); !near(got, tt.in) {
			t.Errorf("Invert(%v) = %v, want %v", tt.want, got, tt.in)
		}
	}
}

func TestLinearScaleDegenerateDomain(t *testing.T) {
	s := NewLinearScale(5, 5, 10, 20)

	if got := s.Apply(5); got != 15 {
		t.Errorf("Apply on degenerate domain = %v, want range midpoint 15", got)
	}
	if got := s.Invert(12); got != 5 {
		t.Errorf("Invert on degenerate domain = %v, want 5", got)
	}
}

func TestLinearScaleWith(t *testing.T) {
	s := AngleScale(0, 360).WithDomain(0, 180).WithRange(0, math.Pi)
	if got := s.Apply(90); !near(got, math.Pi/2) {
		t.Errorf("Apply(90) = %v, want π/2", got)
	}
}

func TestProject(t *testing.T) {
	p := NewProjector(NewLinearScale(0, 1, 0, 10), AngleScale(0, 360))

	tests := []struct {
		name  string
		r, a  float64
		wantX float64
		wantY float64
	}{
		{"zero angle", 1, 0, 10, 0},
		{"quarter turn", 1, 90, 0, 10},
		{"half turn", 1, 180, -10, 0},
		{"center", 0, 45, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Project(tt.r, tt.a)
			if !near(got.X, tt.wantX) || !near(got.Y, tt.wantY) {
				t.Errorf("Project(%v, %v) = %+v, want (%v, %v)", tt.r, tt.a, got, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestProjectAll(t *testing.T) {
	p := NewProjector(NewLinearScale(0, 1, 0, 1), AngleScale(0, 360))
	pts := p.ProjectAll([]Waypoint{{Angle: 0, Radius: 1}, {Angle: 270, Radius: 1}})
	if len(pts) != 2 {
		t.Fatalf("ProjectAll returned %d points, want 2", len(pts))
	}
	if !near(pts[1].Y, -1) {
		t.Errorf("pts[1].Y = %v, want -1", pts[1].Y)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(Point{0, 0}, Point{3, 4}); !near(got, 5) {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := (Point{1, 2}).Offset(10, 20); got != (Point{11, 22}) {
		t.Errorf("Offset = %+v", got)
	}
}

func TestExtent(t *testing.T) {
	lo, hi, ok := Extent([]float64{3, -1, 7})
	if !ok || lo != -1 || hi != 7 {
		t.Errorf("Extent = (%v, %v, %v), want (-1, 7, true)", lo, hi, ok)
	}
	if _, _, ok := Extent(nil); ok {
		t.Error("Extent(nil) should report ok=false")
	}
}
