package sim

import (
	"fmt"
	"hash/fnv"

	"github.com/vovakirdan/shadow-delivery/internal/geom"
	"github.com/vovakirdan/shadow-delivery/internal/store"
)

// Snapshot is a read-only summary of the world for HUDs, run history and
// determinism checks.
type Snapshot struct {
	Time        float64
	Health      float64
	Score       uint64
	ShadowBonus bool
	Deliveries  int
	Position    geom.Vec2
	Rotation    float64
	Velocity    geom.Vec2
	Dead        bool
	DeathTime   float64

	ActiveWaypoint store.ID
	HasTarget      bool
	Target         geom.Vec2

	ActiveObstacles  int
	PendingObstacles int
	Particles        int
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Time:        w.Time,
		Health:      w.Player.Health,
		Score:       w.Player.Score,
		ShadowBonus: w.Player.ShadowBonus,
		Deliveries:  w.Player.Deliveries,
		Position:    w.Player.Collider.Pos(),
		Rotation:    w.Player.Collider.Rotation.Radians(),
		Velocity:    w.Player.Velocity,
		Dead:        w.dead,
		DeathTime:   w.deathTime,

		ActiveWaypoint: w.ActiveWaypoint,

		ActiveObstacles:  w.Obstacles.Len(),
		PendingObstacles: w.Level.Obstacles.Len(),
		Particles:        w.Particles.Len(),
	}
	if t, ok := w.Target(); ok {
		s.HasTarget = true
		s.Target = t.Collider.Pos()
	}
	return s
}

// Hash returns a hash of the snapshot for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "T:%x;H:%x;S:%d;B:%v;D:%d;", s.Time, s.Health, s.Score, s.ShadowBonus, s.Deliveries)
	fmt.Fprintf(h, "P:%x,%x;R:%x;V:%x,%x;", s.Position.X, s.Position.Y, s.Rotation, s.Velocity.X, s.Velocity.Y)
	fmt.Fprintf(h, "X:%v:%x;W:%d:%v;", s.Dead, s.DeathTime, s.ActiveWaypoint, s.HasTarget)
	fmt.Fprintf(h, "O:%d:%d;Q:%d", s.ActiveObstacles, s.PendingObstacles, s.Particles)
	return h.Sum64()
}
