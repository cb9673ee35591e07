// Package core provides fundamental types and utilities shared by the
// simulation and the terminal front end. It contains no external
// dependencies (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Rect is an axis-aligned box in screen cells.
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

// RectF is an axis-aligned bounding box in field units used for collision
// detection. Y is the lower edge on the vertical axis; the orientation of
// that axis does not matter to any method below.
type RectF struct {
	X, Y float64
	W, H float64
}

// NewRectF creates a new rectangle with the given position and dimensions.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Top returns the y-coordinate of the edge opposite to Y.
func (r RectF) Top() float64 {
	return r.Y + r.H
}

// Inset shrinks the rectangle by pad on all four sides.
// A pad larger than half a side yields an inverted rectangle, which is kept
// as-is so that overlap tests compare the same edges the unpadded box would.
func (r RectF) Inset(pad float64) RectF {
	return RectF{X: r.X + pad, Y: r.Y + pad, W: r.W - 2*pad, H: r.H - 2*pad}
}

// Intersects returns true if this rectangle strictly overlaps another.
// Rectangles that only share an edge do not intersect.
func (r RectF) Intersects(other RectF) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Top() || other.Y >= r.Top() {
		return false
	}
	return true
}

// Collides reports whether a and b overlap after both are shrunk by pad.
func Collides(a, b RectF, pad float64) bool {
	return a.Inset(pad).Intersects(b.Inset(pad))
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
