// Package geom provides the rectangle and point primitives shared by the
// flow layout engine and the orthogonal router.
//
// All types are plain value structs in a shared 2-D coordinate space with
// the origin at the top-left and Y increasing downward. Nothing in this
// package allocates beyond its return values, and nothing holds state
// between calls.
package geom

import "math"

// Point is a position in the diagram coordinate space.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Manhattan returns the L1 distance between two points.
// It is the natural cost metric for orthogonal routes, where every
// segment is axis-aligned.
func Manhattan(a, b Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// Rect is an axis-aligned rectangle identified by its top-left corner.
// Zero-size rectangles are legal inputs everywhere in this module; callers
// never need to normalize before passing them in.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Expand returns the rectangle grown by pad on every side.
// A negative pad shrinks it; no clamping is applied.
func (r Rect) Expand(pad float64) Rect {
	return Rect{
		X:      r.X - pad,
		Y:      r.Y - pad,
		Width:  r.Width + 2*pad,
		Height: r.Height + 2*pad,
	}
}

// ContainsStrict reports whether p lies strictly inside the rectangle.
// Points on the boundary are not contained, so grid points that sit
// exactly on a padded obstacle edge remain usable for routing.
func (r Rect) ContainsStrict(p Point) bool {
	return p.X > r.X && p.X < r.Right() && p.Y > r.Y && p.Y < r.Bottom()
}

// AnchorToward returns the point where the ray from the rectangle's center
// toward the given point exits the rectangle boundary.
//
// The ray is scaled by the smaller of the two axis-aligned factors needed
// to reach an edge, so the anchor is direction-sensitive rather than pinned
// to a fixed port. When toward coincides with the center (including any
// zero-size rectangle around its own center), the center itself is returned.
func (r Rect) AnchorToward(toward Point) Point {
	c := r.Center()
	dx := toward.X - c.X
	dy := toward.Y - c.Y
	if dx == 0 && dy == 0 {
		return c
	}

	scale := math.Inf(1)
	if dx != 0 {
		scale = (r.Width / 2) / math.Abs(dx)
	}
	if dy != 0 {
		if s := (r.Height / 2) / math.Abs(dy); s < scale {
			scale = s
		}
	}
	if math.IsInf(scale, 1) {
		return c
	}
	return Point{X: c.X + dx*scale, Y: c.Y + dy*scale}
}

// SegmentCrossesRect reports whether the axis-aligned segment from a to b
// passes through the interior of the rectangle. Segments that merely touch
// the boundary do not cross. Non-axis-aligned input falls back to a
// bounding-box overlap test, which is conservative but never misses a hit
// for the orthogonal segments this module produces.
func SegmentCrossesRect(a, b Point, r Rect) bool {
	minX := math.Min(a.X, b.X)
	maxX := math.Max(a.X, b.X)
	minY := math.Min(a.Y, b.Y)
	maxY := math.Max(a.Y, b.Y)

	if maxX <= r.X || minX >= r.Right() || maxY <= r.Y || minY >= r.Bottom() {
		return false
	}

	if a.X == b.X {
		// Vertical segment at X: it crosses only if X is strictly inside
		// the horizontal span and the Y range overlaps the interior.
		return a.X > r.X && a.X < r.Right() && maxY > r.Y && minY < r.Bottom()
	}
	if a.Y == b.Y {
		return a.Y > r.Y && a.Y < r.Bottom() && maxX > r.X && minX < r.Right()
	}
	return true
}
