// Package sim implements the delivery game simulation: the live World and
// its fixed-order per-tick update. It has no platform dependencies; the
// renderer feeds back a visibility scalar each tick and reads the World to
// draw the next frame.
package sim

import (
	"math/rand"

	"github.com/vovakirdan/shadow-delivery/internal/geom"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/store"
)

// Player is the delivery car.
type Player struct {
	Collider    geom.Collider
	Velocity    geom.Vec2
	Health      float64
	Score       uint64
	ShadowBonus bool // unseen since the last delivery
	Deliveries  int
}

// PlayerControl is the input for one tick. Both axes are in [-1, 1].
type PlayerControl struct {
	Accelerate float64
	Turn       float64
}

// Particle is a short-lived visual effect.
type Particle struct {
	Position geom.Vec2
	Velocity geom.Vec2
	Lifetime float64
	Radius   float64
	Color    level.Color
	Text     string
}

// Camera is the view the renderer should use. FOV is the visible world
// height.
type Camera struct {
	Center geom.Vec2
	FOV    float64
}

// World is the live simulation state. Level holds the map being played;
// its Obstacles store is the pool of obstacles that have not appeared yet.
// Obstacles holds the ones in play.
type World struct {
	Level          *level.Level
	Obstacles      *store.Store[level.Obstacle]
	Player         Player
	ActiveWaypoint store.ID
	Particles      *store.Store[Particle]
	Camera         Camera
	Time           float64

	tuning      Tuning
	source      *level.Level
	rng         *rand.Rand
	dead        bool
	deathTime   float64
	bounced     bool
	hurtTimeout float64
	events      []Event
}

// NewWorld starts a run on a copy of lvl. The level passed in is never
// mutated; Reset returns to it.
func NewWorld(lvl *level.Level, tuning Tuning, seed int64) *World {
	w := &World{
		source: lvl.Clone(),
		tuning: tuning,
		rng:    rand.New(rand.NewSource(seed)),
	}
	w.Reset()
	return w
}

// Reset starts a new run on the original level.
func (w *World) Reset() {
	w.Level = w.source.Clone()
	w.Obstacles = store.New[level.Obstacle]()
	w.Particles = store.New[Particle]()

	spawn := w.Level.SpawnPoint
	w.Player = Player{
		Collider:    geom.NewCollider(geom.NewRect(spawn.Sub(w.tuning.PlayerHalf), spawn.Add(w.tuning.PlayerHalf))),
		Health:      w.tuning.MaxHealth,
		ShadowBonus: true,
	}
	w.ActiveWaypoint = 0
	w.Camera = Camera{Center: spawn, FOV: w.tuning.DeadFOV}
	w.Time = 0

	w.dead = false
	w.deathTime = 0
	w.bounced = false
	w.hurtTimeout = 0
	w.events = w.events[:0]

	w.revealObstacles()
}

// Tuning returns the constants the world runs with.
func (w *World) Tuning() Tuning {
	return w.tuning
}

// DeathTime returns when the player died. ok is false while alive.
func (w *World) DeathTime() (t float64, ok bool) {
	return w.deathTime, w.dead
}

// Dead reports whether the player has died this run or has no health
// left.
func (w *World) Dead() bool {
	return !w.alive()
}

// Events returns the cues emitted by the last Update.
// The slice is reused by the next Update.
func (w *World) Events() []Event {
	return w.events
}

// Target returns the active waypoint, if it exists.
func (w *World) Target() (level.Waypoint, bool) {
	return w.Level.Waypoints.Get(w.ActiveWaypoint)
}

// PendingObstacles returns how many obstacles have not appeared yet.
func (w *World) PendingObstacles() int {
	return w.Level.Obstacles.Len()
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}
