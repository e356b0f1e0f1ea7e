package sim

import (
	"github.com/vovakirdan/shadow-delivery/internal/config"
	"github.com/vovakirdan/shadow-delivery/internal/geom"
)

// Tuning holds every constant the update pipeline uses.
type Tuning struct {
	Drag         float64
	MaxSpeed     float64
	TurnSpeed    float64
	Acceleration float64
	Bounciness   float64
	MaxHealth    float64
	PlayerHalf   geom.Vec2 // half extents of the player box

	DeliverScore uint64
	ShadowBonus  uint64

	ShadowMaxVisibility float64
	DamageRate          float64

	ObstacleSpawnDistance float64
	WaypointMinDistance   float64
	WaypointMaxDistance   float64

	CameraInterpolation float64
	AliveFOV            float64
	DeadFOV             float64
}

// DefaultTuning returns the stock game constants.
func DefaultTuning() Tuning {
	return TuningFrom(config.DefaultShadowConfig())
}

// TuningFrom converts a loaded configuration.
func TuningFrom(cfg config.ShadowConfig) Tuning {
	return Tuning{
		Drag:         cfg.Player.Drag,
		MaxSpeed:     cfg.Player.MaxSpeed,
		TurnSpeed:    cfg.Player.TurnSpeed,
		Acceleration: cfg.Player.Acceleration,
		Bounciness:   cfg.Player.Bounciness,
		MaxHealth:    cfg.Player.MaxHealth,
		PlayerHalf:   geom.V(cfg.Player.HalfWidth, cfg.Player.HalfHeight),

		DeliverScore: cfg.Scoring.DeliverScore,
		ShadowBonus:  cfg.Scoring.ShadowBonus,

		ShadowMaxVisibility: cfg.Stealth.MaxVisibility,
		DamageRate:          cfg.Stealth.DamageRate,

		ObstacleSpawnDistance: cfg.Spawning.ObstacleMinDistance,
		WaypointMinDistance:   cfg.Spawning.WaypointMinDistance,
		WaypointMaxDistance:   cfg.Spawning.WaypointMaxDistance,

		CameraInterpolation: cfg.Camera.Interpolation,
		AliveFOV:            cfg.Camera.AliveFOV,
		DeadFOV:             cfg.Camera.DeadFOV,
	}
}
