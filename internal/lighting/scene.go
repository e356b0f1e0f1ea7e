// Package lighting estimates how exposed the player is. It stands in for
// a pixel renderer: spotlights are evaluated analytically at sample points
// and blocked by obstacles that lie between the light and the point.
package lighting

import (
	"github.com/vovakirdan/shadow-delivery/internal/geom"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/sim"
)

// NoOwner marks a light that is not mounted on an occluder.
const NoOwner = -1

// Sampling grid over the player box and the light level a sample must
// reach to count as seen.
const (
	SamplesX  = 5
	SamplesY  = 3
	Threshold = 0.1
)

type source struct {
	light level.Spotlight // world space
	owner int
}

// Scene is every light and occluder of a world at one instant.
type Scene struct {
	ambient   float64
	lights    []source
	occluders []geom.Collider
}

// NewScene creates an empty scene lit by global.
func NewScene(global level.GlobalLight) *Scene {
	return &Scene{ambient: global.Intensity * global.Color.Luminance()}
}

// AddOccluder registers a shape that blocks light and returns its index
// for use as a light owner.
func (s *Scene) AddOccluder(c geom.Collider) int {
	s.occluders = append(s.occluders, c)
	return len(s.occluders) - 1
}

// AddLight registers a world-space spotlight. The occluder at owner never
// blocks it, so headlights can sit inside their car.
func (s *Scene) AddLight(l level.Spotlight, owner int) {
	s.lights = append(s.lights, source{light: l, owner: owner})
}

// Lights returns the number of light sources in the scene.
func (s *Scene) Lights() int {
	return len(s.lights)
}

// Capture builds the scene the player currently sees: active obstacles
// with their headlights, lit lamps and the global light.
func Capture(w *sim.World) *Scene {
	s := NewScene(w.Level.GlobalLight)
	for _, o := range w.Obstacles.All() {
		addObstacle(s, *o)
	}
	for _, lamp := range w.Level.Lamps.All() {
		if lamp.State.IsUp() {
			s.AddLight(lamp.Light.InWorld(lamp.Collider.Pos(), lamp.Collider.Rotation), NoOwner)
		}
	}
	return s
}

// CaptureLevel builds a preview of a level with every obstacle present and
// every lamp lit.
func CaptureLevel(l *level.Level) *Scene {
	s := NewScene(l.GlobalLight)
	for _, o := range l.Obstacles.All() {
		addObstacle(s, *o)
	}
	for _, lamp := range l.Lamps.All() {
		s.AddLight(lamp.Light.InWorld(lamp.Collider.Pos(), lamp.Collider.Rotation), NoOwner)
	}
	return s
}

func addObstacle(s *Scene, o level.Obstacle) {
	owner := s.AddOccluder(o.Collider)
	for _, l := range o.Lights {
		s.AddLight(l.InWorld(o.Collider.Pos(), o.Collider.Rotation), owner)
	}
}

// LightAt returns the light level at p in [0, 1].
func (s *Scene) LightAt(p geom.Vec2) float64 {
	total := s.ambient
	for _, src := range s.lights {
		if total >= 1 {
			break
		}
		v := src.light.LevelAt(p) * src.light.Color.Luminance()
		if v <= 0 || s.blocked(src, p) {
			continue
		}
		total += v
	}
	return geom.Clamp(total, 0, 1)
}

// Lit reports whether p is bright enough to be seen.
func (s *Scene) Lit(p geom.Vec2) bool {
	return s.LightAt(p) >= Threshold
}

func (s *Scene) blocked(src source, p geom.Vec2) bool {
	for i, c := range s.occluders {
		if i == src.owner {
			continue
		}
		if c.IntersectsSegment(src.light.Position, p) {
			return true
		}
	}
	return false
}

// Visibility returns the fraction of sample points on c that are lit.
// Samples sit at the centers of a SamplesX by SamplesY grid laid over the
// rotated box.
func (s *Scene) Visibility(c geom.Collider) float64 {
	size := c.Size()
	center := c.Pos()
	rad := c.Rotation.Radians()

	seen := 0
	for iy := range SamplesY {
		for ix := range SamplesX {
			local := geom.V(
				(float64(ix)+0.5)/SamplesX*size.X-size.X/2,
				(float64(iy)+0.5)/SamplesY*size.Y-size.Y/2,
			)
			if s.Lit(local.Rotate(rad).Add(center)) {
				seen++
			}
		}
	}
	return float64(seen) / (SamplesX * SamplesY)
}

// Visibility measures the player's exposure in w.
func Visibility(w *sim.World) float64 {
	return Capture(w).Visibility(w.Player.Collider)
}
