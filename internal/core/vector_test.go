package core

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add() = %v, expected (4, 2)", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub() = %v, expected (2, 6)", got)
	}
	if got := a.Scale(0.5); got != V(1.5, 2) {
		t.Errorf("Scale() = %v, expected (1.5, 2)", got)
	}
	if a.Len() != 5 {
		t.Errorf("Len() = %f, expected 5", a.Len())
	}
	// Receiver is unchanged
	if a != V(3, 4) {
		t.Errorf("arithmetic mutated receiver: %v", a)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := V(3, 4).Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("Normalize() length = %f, expected 1", n.Len())
	}

	z := Vec2{}.Normalize()
	if z != (Vec2{}) {
		t.Errorf("Normalize() of zero vector = %v, expected zero", z)
	}
	if math.IsNaN(z.X) || math.IsNaN(z.Y) {
		t.Error("Normalize() of zero vector produced NaN")
	}
}

func TestVec2Floor(t *testing.T) {
	x, y := V(2.9, -0.5).Floor()
	if x != 2 || y != -1 {
		t.Errorf("Floor() = (%d, %d), expected (2, -1)", x, y)
	}
}
