package geom

import "math"

// Rect is an axis-aligned bounding box. Min is always component-wise
// less than or equal to Max.
type Rect struct {
	Min, Max Vec2
}

// NewRect creates a rectangle from two opposite corners in any order.
func NewRect(a, b Vec2) Rect {
	return Rect{
		Min: Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// RectFromCenter creates a rectangle of the given full size around center.
// Negative sizes are treated as their absolute value.
func RectFromCenter(center, size Vec2) Rect {
	half := Vec2{math.Abs(size.X) / 2, math.Abs(size.Y) / 2}
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Max).Scale(0.5)
}

// Size returns the width and height of the rectangle.
func (r Rect) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

// Corners returns the four corners in counter-clockwise order starting
// at Min.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		r.Min,
		{r.Max.X, r.Min.Y},
		r.Max,
		{r.Min.X, r.Max.Y},
	}
}

// Translate returns r moved by delta.
func (r Rect) Translate(delta Vec2) Rect {
	return Rect{Min: r.Min.Add(delta), Max: r.Max.Add(delta)}
}

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether r and o overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	if r.Min.X >= o.Max.X || o.Min.X >= r.Max.X {
		return false
	}
	if r.Min.Y >= o.Max.Y || o.Min.Y >= r.Max.Y {
		return false
	}
	return true
}

// Bounds returns the smallest Rect enclosing all points.
func Bounds(points ...Vec2) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}
