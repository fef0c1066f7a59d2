// Package core provides fundamental types and utilities for the runner engine.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB collision detection.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Intersection returns the overlapping region of two rectangles.
// The result is empty when they do not intersect.
func (r Rect) Intersection(other Rect) Rect {
	x0 := Max(r.X, other.X)
	y0 := Max(r.Y, other.Y)
	x1 := Min(r.Right(), other.Right())
	y1 := Min(r.Bottom(), other.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Size is a width/height pair in cells.
type Size struct {
	W, H int
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Letterbox fits a playfield of at most maxW x maxH into outer and centres
// it. Non-positive limits leave that axis unconstrained. The returned rect
// is the playfield placed inside outer.
func Letterbox(outer Size, maxW, maxH int) Rect {
	w, h := outer.W, outer.H
	if maxW > 0 {
		w = Min(w, maxW)
	}
	if maxH > 0 {
		h = Min(h, maxH)
	}
	return NewRect((outer.W-w)/2, (outer.H-h)/2, w, h)
}
