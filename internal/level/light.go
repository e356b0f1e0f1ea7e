package level

import (
	"math"

	"github.com/vovakirdan/shadow-delivery/internal/geom"
)

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R float64 `yaml:"r" json:"r" msgpack:"r"`
	G float64 `yaml:"g" json:"g" msgpack:"g"`
	B float64 `yaml:"b" json:"b" msgpack:"b"`
	A float64 `yaml:"a" json:"a" msgpack:"a"`
}

// White is the default light color.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Luminance returns the perceived brightness of c, scaled by alpha.
func (c Color) Luminance() float64 {
	return (0.2126*c.R + 0.7152*c.G + 0.0722*c.B) * c.A
}

// GlobalLight is the ambient light applied to the whole level.
type GlobalLight struct {
	Color     Color
	Intensity float64
}

// DefaultGlobalLight returns full-intensity white light.
func DefaultGlobalLight() GlobalLight {
	return GlobalLight{Color: White, Intensity: 1}
}

// Spotlight is a cone of light. Position and Angle are relative to the
// entity that carries it.
type Spotlight struct {
	Position         geom.Vec2
	Angle            float64 // radians
	AngleRange       float64 // half-width of the cone, radians
	AngleGradient    float64
	Color            Color
	Intensity        float64
	MaxDistance      float64
	DistanceGradient float64
	Volume           float64
}

// DefaultSpotlight returns the light used when a file omits fields.
func DefaultSpotlight() Spotlight {
	return Spotlight{
		AngleRange:       1,
		AngleGradient:    1,
		Color:            White,
		Intensity:        0.5,
		MaxDistance:      5,
		DistanceGradient: 1,
		Volume:           0.5,
	}
}

// InWorld transforms a local spotlight into world space for an entity
// centered at pos with the given rotation.
func (s Spotlight) InWorld(pos geom.Vec2, rotation geom.Angle) Spotlight {
	s.Position = s.Position.Rotate(rotation.Radians()).Add(pos)
	s.Angle = geom.NormalizeRadians(s.Angle + rotation.Radians())
	return s
}

// LevelAt returns the light intensity the spotlight casts on p, ignoring
// occlusion. The cone fades towards its edge and the light fades with
// distance; the gradients control how sharp each falloff is.
func (s Spotlight) LevelAt(p geom.Vec2) float64 {
	if s.MaxDistance <= 0 || s.Intensity <= 0 {
		return 0
	}
	delta := p.Sub(s.Position)
	dist := delta.Len()
	if dist >= s.MaxDistance {
		return 0
	}

	angular := 1.0
	if dist > 0 {
		off := math.Abs(geom.NormalizeRadians(delta.Arg() - s.Angle))
		if off > s.AngleRange {
			return 0
		}
		angular = falloff(off/s.AngleRange, s.AngleGradient)
	}
	radial := falloff(dist/s.MaxDistance, s.DistanceGradient)
	return s.Intensity * angular * radial
}

// falloff maps t in [0, 1] to a brightness in [0, 1]. A gradient of 0
// gives a hard edge; larger values fade earlier.
func falloff(t, gradient float64) float64 {
	if gradient <= 0 {
		return 1
	}
	t = geom.Clamp(t, 0, 1)
	return math.Pow(1-t, gradient)
}
