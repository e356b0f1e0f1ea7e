package level

import (
	_ "embed"

	"github.com/vovakirdan/shadow-delivery/internal/geom"
)

//go:embed defaults/town.yaml
var defaultTownYAML []byte

// DefaultYAML returns the embedded default level file.
func DefaultYAML() []byte {
	return defaultTownYAML
}

// Default returns the built-in level. It falls back to a minimal
// two-waypoint level if the embedded file cannot be parsed.
func Default() *Level {
	l, err := Parse(defaultTownYAML, FormatYAML)
	if err != nil {
		return fallbackLevel()
	}
	return l
}

func fallbackLevel() *Level {
	l := New("fallback")
	l.GlobalLight.Intensity = 0.05
	for _, x := range []float64{-8, 8} {
		l.Waypoints.Insert(Waypoint{Collider: geom.NewColliderAt(geom.V(x, 0), geom.V(2, 2), geom.Angle{})})
	}
	return l
}
