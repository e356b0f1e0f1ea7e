package config

import (
	_ "embed"
)

//go:embed defaults/shadow.yaml
var defaultShadowYAML []byte

// DefaultShadowConfig returns the default game configuration.
func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		Player: PlayerConfig{
			Drag:         0.2,
			MaxSpeed:     5,
			TurnSpeed:    3,
			Acceleration: 10,
			Bounciness:   0.8,
			MaxHealth:    100,
			HalfWidth:    0.6,
			HalfHeight:   0.2,
		},
		Scoring: ScoringConfig{
			DeliverScore: 500,
			ShadowBonus:  1000,
		},
		Stealth: StealthConfig{
			MaxVisibility: 0.05,
			DamageRate:    200,
		},
		Spawning: SpawningConfig{
			ObstacleMinDistance: 15,
			WaypointMinDistance: 5,
			WaypointMaxDistance: 20,
		},
		Camera: CameraConfig{
			Interpolation: 0.5,
			AliveFOV:      30,
			DeadFOV:       15,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultShadowYAML
}
