package geom

import "math"

// separationEpsilon keeps shapes that only touch after resolution from
// being reported as overlapping due to rounding.
const separationEpsilon = 1e-9

// Collider is an oriented rectangle: an axis-aligned box rotated around
// its own center.
type Collider struct {
	aabb     Rect
	Rotation Angle
}

// Collision describes how two overlapping colliders intersect.
// Normal points from the first collider toward the second; translating
// the first collider by -Normal*Penetration separates the pair.
type Collision struct {
	Point       Vec2
	Normal      Vec2
	Penetration float64
}

// NewCollider creates an unrotated collider covering r.
func NewCollider(r Rect) Collider {
	return Collider{aabb: NewRect(r.Min, r.Max)}
}

// NewColliderAt creates a collider with the given center, size and rotation.
func NewColliderAt(center, size Vec2, rotation Angle) Collider {
	return Collider{aabb: RectFromCenter(center, size), Rotation: rotation}
}

// DefaultCollider returns a 2x2 box at the origin.
func DefaultCollider() Collider {
	return NewColliderAt(Vec2{}, V(2, 2), Angle{})
}

// Raw returns the unrotated bounding box.
func (c Collider) Raw() Rect {
	return c.aabb
}

// Pos returns the center of the collider.
func (c Collider) Pos() Vec2 {
	return c.aabb.Center()
}

// Size returns the unrotated width and height.
func (c Collider) Size() Vec2 {
	return c.aabb.Size()
}

// Teleport moves the collider so its center is at pos.
func (c *Collider) Teleport(pos Vec2) {
	c.Translate(pos.Sub(c.Pos()))
}

// Translate moves the collider by delta.
func (c *Collider) Translate(delta Vec2) {
	c.aabb = c.aabb.Translate(delta)
}

// Vertices returns the rotated corners in counter-clockwise order.
func (c Collider) Vertices() [4]Vec2 {
	center := c.aabb.Center()
	corners := c.aabb.Corners()
	for i, p := range corners {
		corners[i] = p.Sub(center).Rotate(c.Rotation.rad).Add(center)
	}
	return corners
}

// Bounds returns the axis-aligned box enclosing the rotated shape.
func (c Collider) Bounds() Rect {
	vs := c.Vertices()
	return Bounds(vs[:]...)
}

// ContainsPoint reports whether p lies inside the rotated rectangle.
func (c Collider) ContainsPoint(p Vec2) bool {
	center := c.aabb.Center()
	local := p.Sub(center).Rotate(-c.Rotation.rad).Add(center)
	return c.aabb.Contains(local)
}

// axes returns the two edge normals of the collider.
func (c Collider) axes() [2]Vec2 {
	u := c.Rotation.UnitDirection()
	return [2]Vec2{u, u.Rotate90()}
}

// Check reports whether the two rotated rectangles overlap.
func (c Collider) Check(other Collider) bool {
	_, ok := c.Collide(other)
	return ok
}

// Collide runs a separating-axis test between c and other. When they
// overlap it returns the minimum translation along the axis of least
// penetration. Axes of c are tested before axes of other, and on each
// axis the positive direction wins ties.
func (c Collider) Collide(other Collider) (Collision, bool) {
	a, b := c.Vertices(), other.Vertices()
	ca, cb := c.axes(), other.axes()
	candidates := [4]Vec2{ca[0], ca[1], cb[0], cb[1]}

	best := Collision{Penetration: math.Inf(1)}
	for _, axis := range candidates {
		minA, maxA := project(a, axis)
		minB, maxB := project(b, axis)

		// Distance c must move against the axis, or along it, to separate.
		back := maxA - minB
		forward := maxB - minA
		if back <= separationEpsilon || forward <= separationEpsilon {
			return Collision{}, false
		}

		if back <= forward {
			if back < best.Penetration {
				best.Normal, best.Penetration = axis, back
			}
		} else if forward < best.Penetration {
			best.Normal, best.Penetration = axis.Neg(), forward
		}
	}

	best.Point = contactPoint(c, other, a, b)
	return best, true
}

func project(vs [4]Vec2, axis Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		d := v.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// contactPoint averages the vertices of each shape that lie inside the
// other. Edge-on-edge crossings with no contained vertex fall back to the
// midpoint between centers.
func contactPoint(c, other Collider, a, b [4]Vec2) Vec2 {
	var sum Vec2
	n := 0
	for _, v := range a {
		if other.ContainsPoint(v) {
			sum = sum.Add(v)
			n++
		}
	}
	for _, v := range b {
		if c.ContainsPoint(v) {
			sum = sum.Add(v)
			n++
		}
	}
	if n == 0 {
		return c.Pos().Lerp(other.Pos(), 0.5)
	}
	return sum.Scale(1 / float64(n))
}

// IntersectsSegment reports whether the segment from a to b crosses or
// touches the rotated rectangle.
func (c Collider) IntersectsSegment(a, b Vec2) bool {
	center := c.aabb.Center()
	toLocal := func(p Vec2) Vec2 {
		return p.Sub(center).Rotate(-c.Rotation.rad).Add(center)
	}
	return segmentHitsRect(toLocal(a), toLocal(b), c.aabb)
}

// segmentHitsRect clips the segment against r (Liang-Barsky).
func segmentHitsRect(a, b Vec2, r Rect) bool {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = math.Min(t1, t)
		}
		return true
	}
	return clip(-d.X, a.X-r.Min.X) &&
		clip(d.X, r.Max.X-a.X) &&
		clip(-d.Y, a.Y-r.Min.Y) &&
		clip(d.Y, r.Max.Y-a.Y)
}
