package geom

import "math"

// Angle is a rotation normalized to the range (-π, π].
// Every constructor and arithmetic method re-normalizes, so an Angle
// can never hold an out-of-range value. The zero value is 0 radians.
type Angle struct {
	rad float64
}

// FromRadians creates a normalized angle.
func FromRadians(r float64) Angle {
	return Angle{rad: NormalizeRadians(r)}
}

// FromDegrees creates a normalized angle from degrees.
func FromDegrees(d float64) Angle {
	return FromRadians(d / 180 * math.Pi)
}

// NormalizeRadians wraps r into (-π, π].
func NormalizeRadians(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	} else if r > math.Pi {
		r -= 2 * math.Pi
	}
	return r
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 {
	return a.rad
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	return a.rad / math.Pi * 180
}

// Add returns a + b.
func (a Angle) Add(b Angle) Angle {
	return FromRadians(a.rad + b.rad)
}

// Sub returns a - b.
func (a Angle) Sub(b Angle) Angle {
	return FromRadians(a.rad - b.rad)
}

// Neg returns -a.
func (a Angle) Neg() Angle {
	return FromRadians(-a.rad)
}

// AngleTo returns the signed shortest rotation from a to target, so that
// a.Add(a.AngleTo(target)) equals target.
func (a Angle) AngleTo(target Angle) Angle {
	return FromRadians(target.rad - a.rad)
}

// ClampAbs limits the magnitude of a to max radians, keeping its sign.
// max is a plain scalar so per-tick limits larger than π stay meaningful.
func (a Angle) ClampAbs(max float64) Angle {
	max = math.Abs(max)
	switch {
	case a.rad > max:
		return Angle{rad: max}
	case a.rad < -max:
		return Angle{rad: -max}
	}
	return a
}

// UnitDirection returns the unit vector pointing along a.
func (a Angle) UnitDirection() Vec2 {
	sin, cos := math.Sincos(a.rad)
	return Vec2{cos, sin}
}
