package model

import (
	"math"
	"testing"
)

func TestUnitConversions(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"emu to inches full slide width", EMUToInches(9144000), 10.0},
		{"emu to inches full slide height", EMUToInches(6858000), 7.5},
		{"emu to points", EMUToPoints(12700), 1.0},
		{"inches to points", InchesToPoints(1.0), 72.0},
		{"points to inches", PointsToInches(36), 0.5},
		{"inches to pixels", InchesToPixels(2.0), 144.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestInchesToEMURoundTrip(t *testing.T) {
	for _, in := range []float64{0, 0.5, 1, 7.5, 10, 13.333} {
		emu := InchesToEMU(in)
		back := EMUToInches(emu)
		if math.Abs(back-in) > 1e-4 {
			t.Errorf("InchesToEMU(%v) = %d, round-trips to %v", in, emu, back)
		}
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(1, 2, 3, 4)

	if b.Left() != 1 || b.Right() != 4 {
		t.Errorf("horizontal edges = %v, %v; want 1, 4", b.Left(), b.Right())
	}
	if b.Top() != 2 || b.Bottom() != 6 {
		t.Errorf("vertical edges = %v, %v; want 2, 6", b.Top(), b.Bottom())
	}
	if c := b.Center(); c.X != 2.5 || c.Y != 4 {
		t.Errorf("Center() = %v; want {2.5 4}", c)
	}
}

func TestBoxFromEMU(t *testing.T) {
	b := BoxFromEMU(914400, 1828800, 4572000, 914400)

	want := Box{X: 1, Y: 2, Width: 5, Height: 1}
	if b != want {
		t.Errorf("BoxFromEMU = %+v, want %+v", b, want)
	}
}

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
		want bool
	}{
		{"overlapping", NewBox(0, 0, 2, 2), NewBox(1, 1, 2, 2), true},
		{"disjoint horizontal", NewBox(0, 0, 1, 1), NewBox(2, 0, 1, 1), false},
		{"disjoint vertical", NewBox(0, 0, 1, 1), NewBox(0, 2, 1, 1), false},
		{"touching edges", NewBox(0, 0, 1, 1), NewBox(1, 0, 1, 1), true},
		{"contained", NewBox(0, 0, 4, 4), NewBox(1, 1, 1, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxIntersection(t *testing.T) {
	a := NewBox(0, 0, 2, 2)
	b := NewBox(1, 1, 2, 2)

	got := a.Intersection(b)
	want := Box{X: 1, Y: 1, Width: 1, Height: 1}
	if got != want {
		t.Errorf("Intersection = %+v, want %+v", got, want)
	}

	// Disjoint boxes intersect in the zero box.
	c := NewBox(5, 5, 1, 1)
	if got := a.Intersection(c); !got.IsEmpty() {
		t.Errorf("disjoint Intersection = %+v, want empty", got)
	}
}

func TestBoxOverlapRatio(t *testing.T) {
	a := NewBox(0, 0, 2, 2)

	// Identical boxes overlap fully.
	if r := a.OverlapRatio(a); r != 1 {
		t.Errorf("self overlap = %v, want 1", r)
	}

	// Half-overlapping equal boxes.
	b := NewBox(1, 0, 2, 2)
	if r := a.OverlapRatio(b); math.Abs(r-0.5) > 1e-9 {
		t.Errorf("half overlap = %v, want 0.5", r)
	}

	// Disjoint boxes do not overlap.
	c := NewBox(10, 10, 1, 1)
	if r := a.OverlapRatio(c); r != 0 {
		t.Errorf("disjoint overlap = %v, want 0", r)
	}
}

func TestBoxContainsBox(t *testing.T) {
	outer := NewBox(0, 0, 10, 7.5)

	if !outer.ContainsBox(NewBox(1, 1, 8, 5)) {
		t.Error("inner box should be contained")
	}
	if outer.ContainsBox(NewBox(9, 7, 2, 1)) {
		t.Error("box extending past the edge should not be contained")
	}
}

func TestBoxValidity(t *testing.T) {
	if !NewBox(0, 0, 1, 1).IsValid() {
		t.Error("positive box should be valid")
	}
	if NewBox(0, 0, 0, 1).IsValid() {
		t.Error("zero-width box should not be valid")
	}
	if !NewBox(0, 0, -1, 1).IsEmpty() {
		t.Error("negative-width box should be empty")
	}
}
