package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/shadow-delivery/internal/geom"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/store"
)

// deliver scores the active waypoint when the player touches it. A
// missing target is replaced instead.
func (w *World) deliver() {
	if !w.alive() {
		return
	}

	active, ok := w.Target()
	if !ok {
		w.ActiveWaypoint = w.nextWaypoint()
		return
	}
	if !w.Player.Collider.Check(active.Collider) {
		return
	}

	score := w.tuning.DeliverScore
	if w.Player.ShadowBonus {
		score += w.tuning.ShadowBonus
	}
	w.Player.Score += score
	w.Player.ShadowBonus = true
	w.Player.Deliveries++

	pos := active.Collider.Pos()
	w.emit(Event{Kind: EventDeliver, Position: pos, Score: score})

	// Score popups float upward, within about ten degrees of vertical.
	angle := math.Pi/2 + (w.rng.Float64()*2-1)*0.15
	w.Particles.Insert(Particle{
		Position: pos,
		Velocity: geom.FromRadians(angle).UnitDirection().Scale(0.5),
		Lifetime: 1,
		Radius:   0.5,
		Color:    level.Color{R: 0, G: 0.8, B: 0.7, A: 0.7},
		Text:     fmt.Sprintf("+%d", score),
	})

	w.ActiveWaypoint = w.nextWaypoint()
}

// nextWaypoint picks a random waypoint between the configured minimum
// and maximum distance from the current one. When none qualifies, or the
// current one no longer exists, any waypoint may be chosen. With no
// waypoints at all it returns 0, which callers treat as no target.
func (w *World) nextWaypoint() store.ID {
	var candidates []store.ID

	if last, ok := w.Target(); ok {
		from := last.Collider.Pos()
		for id, wp := range w.Level.Waypoints.All() {
			if id == w.ActiveWaypoint {
				continue
			}
			d := wp.Collider.Pos().Dist(from)
			if d >= w.tuning.WaypointMinDistance && d <= w.tuning.WaypointMaxDistance {
				candidates = append(candidates, id)
			}
		}
	}

	if len(candidates) == 0 {
		candidates = w.Level.Waypoints.IDs()
	}
	if len(candidates) == 0 {
		return 0
	}
	return candidates[w.rng.Intn(len(candidates))]
}
