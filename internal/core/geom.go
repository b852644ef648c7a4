// Package core provides fundamental types shared by the engine and the
// terminal front-ends. It has no UI dependencies so board logic stays pure
// and testable.
package core

import "math"

// Vec is a point in board space, measured in pixels from the top-left of
// the board.
type Vec struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Near reports whether o lies strictly within threshold of v on both axes.
// This is a box test, not a radius test.
func (v Vec) Near(o Vec, threshold float64) bool {
	return math.Abs(v.X-o.X) < threshold && math.Abs(v.Y-o.Y) < threshold
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Bounds is an axis-aligned box in board space. The zero value is empty.
type Bounds struct {
	Min, Max Vec
	set      bool
}

// Extend grows b to include p.
func (b Bounds) Extend(p Vec) Bounds {
	if !b.set {
		return Bounds{Min: p, Max: p, set: true}
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	return b
}

// Empty reports whether nothing has been added to b.
func (b Bounds) Empty() bool {
	return !b.set
}

// Size returns the width and height of b.
func (b Bounds) Size() (float64, float64) {
	return b.Max.X - b.Min.X, b.Max.Y - b.Min.Y
}
