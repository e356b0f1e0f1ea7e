// Package config provides YAML-based tuning for the delivery game and the
// difficulty presets selectable from the command line.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid config")

// ShadowConfig contains every tunable constant of the simulation.
type ShadowConfig struct {
	Player   PlayerConfig   `yaml:"player"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Stealth  StealthConfig  `yaml:"stealth"`
	Spawning SpawningConfig `yaml:"spawning"`
	Camera   CameraConfig   `yaml:"camera"`
}

// PlayerConfig defines the car handling.
type PlayerConfig struct {
	Drag         float64 `yaml:"drag"`         // Speed decays by (1 - drag) of itself per second
	MaxSpeed     float64 `yaml:"max_speed"`    // Units per second
	TurnSpeed    float64 `yaml:"turn_speed"`   // Radians per second at full turn input
	Acceleration float64 `yaml:"acceleration"` // Units per second squared
	Bounciness   float64 `yaml:"bounciness"`   // Restitution when hitting obstacles
	MaxHealth    float64 `yaml:"max_health"`   // Health at spawn
	HalfWidth    float64 `yaml:"half_width"`   // Half of the car length
	HalfHeight   float64 `yaml:"half_height"`  // Half of the car width
}

// ScoringConfig defines delivery rewards.
type ScoringConfig struct {
	DeliverScore uint64 `yaml:"deliver_score"` // Points per delivery
	ShadowBonus  uint64 `yaml:"shadow_bonus"`  // Extra points for an unseen delivery
}

// StealthConfig defines how light hurts the player.
type StealthConfig struct {
	MaxVisibility float64 `yaml:"max_visibility"` // Below this visibility the player is hidden
	DamageRate    float64 `yaml:"damage_rate"`    // Health lost per second at full visibility
}

// SpawningConfig defines distance constraints for obstacles and waypoints.
type SpawningConfig struct {
	ObstacleMinDistance float64 `yaml:"obstacle_min_distance"` // Late obstacles appear no closer than this
	WaypointMinDistance float64 `yaml:"waypoint_min_distance"`
	WaypointMaxDistance float64 `yaml:"waypoint_max_distance"`
}

// CameraConfig defines how the camera follows the player.
type CameraConfig struct {
	Interpolation float64 `yaml:"interpolation"` // Time constant of the follow, seconds
	AliveFOV      float64 `yaml:"alive_fov"`     // Visible world height while driving
	DeadFOV       float64 `yaml:"dead_fov"`      // Visible world height after death
}

// Validate rejects values the simulation cannot run with.
func (c ShadowConfig) Validate() error {
	switch {
	case c.Player.MaxHealth <= 0:
		return fmt.Errorf("%w: player.max_health must be positive, got %g", ErrInvalidConfig, c.Player.MaxHealth)
	case c.Player.HalfWidth <= 0 || c.Player.HalfHeight <= 0:
		return fmt.Errorf("%w: player.half_width and player.half_height must be positive", ErrInvalidConfig)
	case c.Player.MaxSpeed < 0 || c.Stealth.DamageRate < 0:
		return fmt.Errorf("%w: player.max_speed and stealth.damage_rate must not be negative", ErrInvalidConfig)
	case c.Spawning.WaypointMinDistance > c.Spawning.WaypointMaxDistance:
		return fmt.Errorf("%w: spawning.waypoint_min_distance %g exceeds waypoint_max_distance %g",
			ErrInvalidConfig, c.Spawning.WaypointMinDistance, c.Spawning.WaypointMaxDistance)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset.
// An empty or unknown name returns ok == false.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name), true
	default:
		return "", false
	}
}

// DamageRateForPreset returns the damage rate for a difficulty preset.
// The second result is false for presets that keep the configured value.
func DamageRateForPreset(preset DifficultyPreset) (float64, bool) {
	switch preset {
	case DifficultyEasy:
		return 120, true
	case DifficultyNormal:
		return 200, true
	case DifficultyHard:
		return 280, true
	default:
		return 0, false
	}
}

// IsFixedPreset returns true if the preset keeps file values untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
