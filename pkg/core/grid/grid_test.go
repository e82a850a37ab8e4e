package grid

import (
	"math"
	"testing"

	"github.com/matzehuels/radialtree/pkg/core/polar"
	"github.com/matzehuels/radialtree/pkg/errors"
)

func degrees(radius polar.Scale) polar.Projector {
	return polar.NewProjector(radius, polar.AngleScale(0, 360))
}

func exampleOptions() Options {
	return Options{InnerRadius: 10, OuterRadius: 20, RadiusMinStep: 5, AngleMinStep: 10}
}

func TestBuildTwoRings(t *testing.T) {
	g, err := Build(exampleOptions(), degrees(polar.NewLinearScale(1, 2, 10, 20)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(g.Rings) != 2 {
		t.Fatalf("ring count = %d, want 2", len(g.Rings))
	}
	if g.RadiusStep != 10 {
		t.Errorf("RadiusStep = %v, want 10", g.RadiusStep)
	}

	// floor(2π·10/10) = 6, floor(2π·20/10) = 12
	wantCounts := []int{6, 12}
	for i, want := range wantCounts {
		if got := g.Rings[i].SlotCount; got != want {
			t.Errorf("ring %d slot count = %d, want %d", i, got, want)
		}
	}
	if g.Len() != 18 || g.Capacity() != 18 {
		t.Errorf("Len() = %d, Capacity() = %d, want 18", g.Len(), g.Capacity())
	}

	// Slot radii are expressed in the data domain.
	if r := g.Slot(0).Radius; r != 1 {
		t.Errorf("inner slot radius = %v, want 1", r)
	}
	if r := g.Slot(6).Radius; r != 2 {
		t.Errorf("outer slot radius = %v, want 2", r)
	}
	if g.Rings[1].FirstSlot != 6 {
		t.Errorf("ring 1 FirstSlot = %d, want 6", g.Rings[1].FirstSlot)
	}
}

func TestBuildSlotOrder(t *testing.T) {
	g, err := Build(exampleOptions(), degrees(polar.NewLinearScale(1, 2, 10, 20)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	slots := g.Slots()
	for i, s := range slots {
		if s.Index != i {
			t.Fatalf("slot %d has Index %d", i, s.Index)
		}
		if s.Occupied {
			t.Errorf("slot %d starts occupied", i)
		}
		if i > 0 && s.Ring < slots[i-1].Ring {
			t.Errorf("slot %d ring %d precedes ring %d", i, s.Ring, slots[i-1].Ring)
		}
	}

	// Inner ring: 6 slots at 60° spacing.
	for k := 0; k < 6; k++ {
		if got, want := slots[k].Angle, 60*float64(k); math.Abs(got-want) > 1e-9 {
			t.Errorf("slot %d angle = %v, want %v", k, got, want)
		}
	}
}

func TestBuildMonotonicRings(t *testing.T) {
	opts := Options{InnerRadius: 125, OuterRadius: 250, RadiusMinStep: 15, AngleMinStep: 35}
	g, err := Build(opts, degrees(polar.NewLinearScale(0, 1, 125, 250)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if got := len(g.Rings); got != 8 {
		t.Fatalf("ring count = %d, want 8", got)
	}
	for i := 1; i < len(g.Rings); i++ {
		diff := g.Rings[i].ScreenRadius - g.Rings[i-1].ScreenRadius
		if math.Abs(diff-g.RadiusStep) > 1e-9 {
			t.Errorf("ring %d - ring %d = %v, want %v", i, i-1, diff, g.RadiusStep)
		}
		if g.Rings[i].SlotCount < g.Rings[i-1].SlotCount {
			t.Errorf("ring %d has fewer slots than ring %d", i, i-1)
		}
	}
	last := g.Rings[len(g.Rings)-1]
	if math.Abs(last.ScreenRadius-250) > 1e-9 {
		t.Errorf("outermost ring radius = %v, want 250", last.ScreenRadius)
	}
}

func TestBuildEmptyInnerRing(t *testing.T) {
	opts := Options{InnerRadius: 0, OuterRadius: 20, RadiusMinStep: 10, AngleMinStep: 10}
	g, err := Build(opts, degrees(polar.NewLinearScale(0, 1, 0, 20)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.Rings[0].SlotCount != 0 {
		t.Errorf("center ring slot count = %d, want 0", g.Rings[0].SlotCount)
	}
	if g.Slot(0).Ring == 0 {
		t.Error("first slot should belong to a ring with capacity")
	}
}

func TestBuildAngleDomain(t *testing.T) {
	// Angles measured in quarter turns.
	p := polar.NewProjector(polar.NewLinearScale(1, 2, 10, 20), polar.AngleScale(0, 4))
	g, err := Build(exampleOptions(), p)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.AngleDomain != [2]float64{0, 4} {
		t.Errorf("AngleDomain = %v, want [0 4]", g.AngleDomain)
	}
	inner := g.Rings[0]
	for k := range inner.SlotCount {
		s := g.Slot(inner.FirstSlot + k)
		if want := 4 / float64(inner.SlotCount) * float64(k); s.Angle != want {
			t.Errorf("slot %d angle = %v, want %v", s.Index, s.Angle, want)
		}
	}
}

func TestBuildInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"outer equals inner", Options{InnerRadius: 10, OuterRadius: 10, RadiusMinStep: 1, AngleMinStep: 1}},
		{"outer below inner", Options{InnerRadius: 20, OuterRadius: 10, RadiusMinStep: 1, AngleMinStep: 1}},
		{"negative inner", Options{InnerRadius: -1, OuterRadius: 10, RadiusMinStep: 1, AngleMinStep: 1}},
		{"zero radius step", Options{InnerRadius: 0, OuterRadius: 10, RadiusMinStep: 0, AngleMinStep: 1}},
		{"negative angle step", Options{InnerRadius: 0, OuterRadius: 10, RadiusMinStep: 1, AngleMinStep: -3}},
		{"single ring", Options{InnerRadius: 10, OuterRadius: 20, RadiusMinStep: 6, AngleMinStep: 1}},
		{"nan outer", Options{InnerRadius: 0, OuterRadius: math.NaN(), RadiusMinStep: 1, AngleMinStep: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.opts, degrees(polar.NewLinearScale(0, 1, 0, 1)))
			if err == nil {
				t.Fatal("Build() should fail")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestClaim(t *testing.T) {
	g, err := Build(exampleOptions(), degrees(polar.NewLinearScale(1, 2, 10, 20)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if !g.Claim(3) {
		t.Fatal("first Claim(3) should succeed")
	}
	if g.Claim(3) {
		t.Error("second Claim(3) should fail")
	}
	if g.Free(3) {
		t.Error("Free(3) should be false after claim")
	}
	if g.Claim(-1) || g.Claim(g.Len()) {
		t.Error("out-of-range Claim should fail")
	}
	if g.Occupied() != 1 {
		t.Errorf("Occupied() = %d, want 1", g.Occupied())
	}
	if !g.Slot(3).Occupied {
		t.Error("slot 3 should be occupied")
	}

	// Slots returns a copy.
	s := g.Slots()
	s[4].Occupied = true
	if g.Slot(4).Occupied {
		t.Error("mutating Slots() result should not affect the grid")
	}

	g.Reset()
	if g.Occupied() != 0 || !g.Free(3) {
		t.Error("Reset should release all slots")
	}
}
