// Package geometry provides the axis-aligned CSS-pixel primitives shared by
// every view transform and the render-command protocol.
package geometry

import "math"

// Point is a location in CSS pixels.
type Point struct {
	X float32
	Y float32
}

// Rect is an axis-aligned rectangle in CSS pixels, anchored at its top-left
// corner with a non-negative width and height.
type Rect struct {
	X float32
	Y float32
	W float32
	H float32
}

// Right returns the rectangle's right edge.
func (r Rect) Right() float32 { return r.X + r.W }

// Bottom returns the rectangle's bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.H }

// Contains reports whether p lies within r (inclusive of the top-left edge,
// exclusive of the bottom-right edge).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersects reports whether r and other overlap on a positive area.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Intersect returns the overlapping region of r and other. The result has
// zero width/height if the rectangles do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := maxF(r.X, other.X)
	y0 := maxF(r.Y, other.Y)
	x1 := minF(r.Right(), other.Right())
	y1 := minF(r.Bottom(), other.Bottom())
	if x1 < x0 || y1 < y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// SnapX returns r with its X coordinate snapped to the nearest device pixel,
// used by the time-order transform to guarantee crisp span edges.
func (r Rect) SnapX() Rect {
	r.X = float32(math.Round(float64(r.X)))
	return r
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
