package core

import "math"

// Vec2 is a 2D vector of real values. It is passed and returned by value;
// arithmetic never mutates the receiver.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Floor returns the integer cell coordinates containing v.
func (v Vec2) Floor() (int, int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y))
}
