// Package geom provides the 2D math used by the simulation: vectors,
// axis-aligned rectangles, normalized angles and oriented box colliders.
// It has no external dependencies so game logic stays pure and testable.
package geom

import "math"

// Vec2 is a 2D vector in world units. Y points up.
type Vec2 struct {
	X float64 `yaml:"x" json:"x" msgpack:"x"`
	Y float64 `yaml:"y" json:"y" msgpack:"y"`
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector
// when v has zero length. It never produces NaN.
func (v Vec2) NormalizeOrZero() Vec2 {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns v rotated counter-clockwise by radians.
func (v Vec2) Rotate(radians float64) Vec2 {
	sin, cos := math.Sincos(radians)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Rotate90 returns v rotated counter-clockwise by a quarter turn.
func (v Vec2) Rotate90() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Arg returns the angle of v measured from the positive X axis.
// The zero vector has angle 0.
func (v Vec2) Arg() float64 {
	return math.Atan2(v.Y, v.X)
}

// ClampLen limits the length of v to max while keeping its direction.
func (v Vec2) ClampLen(max float64) Vec2 {
	if max <= 0 {
		return Vec2{}
	}
	l := v.Len()
	if l <= max {
		return v
	}
	return v.Scale(max / l)
}

// Lerp linearly interpolates between v and o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return v.Add(o.Sub(v).Scale(t))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// SmoothStep maps t in [0, 1] onto a smooth ease-in/ease-out curve.
func SmoothStep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}
