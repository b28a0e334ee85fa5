// Package geom provides the float vector and rectangle types used by the
// simulation. Rectangles are axis-aligned with the origin at the top-left
// corner; +Y points down, matching screen space.
package geom

import "math"

// Vec2 is a two-component float vector.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the vector magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns a unit-length copy of v. The zero vector normalizes
// to itself.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rect is an axis-aligned rectangle. X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the rectangle's center point.
func (r Rect) Center() Vec2 {
	return Vec2{r.CenterX(), r.CenterY()}
}

// MidBottom returns the bottom-center point.
func (r Rect) MidBottom() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H}
}

// SetLeft moves the rectangle so its left edge sits at x.
func (r *Rect) SetLeft(x float64) { r.X = x }

// SetRight moves the rectangle so its right edge sits at x.
func (r *Rect) SetRight(x float64) { r.X = x - r.W }

// SetTop moves the rectangle so its top edge sits at y.
func (r *Rect) SetTop(y float64) { r.Y = y }

// SetBottom moves the rectangle so its bottom edge sits at y.
func (r *Rect) SetBottom(y float64) { r.Y = y - r.H }

// SetMidBottom moves the rectangle so its bottom-center sits at (x, y).
func (r *Rect) SetMidBottom(x, y float64) {
	r.X = x - r.W/2
	r.Y = y - r.H
}

// Overlaps reports whether r and o overlap. Edge-adjacent rectangles do
// not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// ContainsPoint reports whether p lies inside r. The left and top edges
// are inclusive, the right and bottom edges exclusive.
func (r Rect) ContainsPoint(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}
