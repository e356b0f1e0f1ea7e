package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/shadow-delivery/internal/geom"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/store"
)

const tick = 1.0 / 60

func box(x, y, w, h float64) geom.Collider {
	return geom.NewColliderAt(geom.V(x, y), geom.V(w, h), geom.Angle{})
}

func newTestWorld(t *testing.T, build func(l *level.Level)) *World {
	t.Helper()
	l := level.New("test")
	if build != nil {
		build(l)
	}
	return NewWorld(l, DefaultTuning(), 42)
}

func countEvents(w *World, kind EventKind) int {
	n := 0
	for _, e := range w.Events() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewWorldInitialState(t *testing.T) {
	w := newTestWorld(t, func(l *level.Level) {
		l.SpawnPoint = geom.V(3, 4)
	})

	if w.Player.Health != 100 {
		t.Errorf("Health = %g, expected 100", w.Player.Health)
	}
	if !w.Player.ShadowBonus {
		t.Error("ShadowBonus should start armed")
	}
	if got := w.Player.Collider.Pos(); got.Dist(geom.V(3, 4)) > 1e-9 {
		t.Errorf("player position = %v, expected spawn {3 4}", got)
	}
	if got := w.Player.Collider.Size(); math.Abs(got.X-1.2) > 1e-9 || math.Abs(got.Y-0.4) > 1e-9 {
		t.Errorf("player size = %v, expected {1.2 0.4}", got)
	}
	if _, dead := w.DeathTime(); dead {
		t.Error("new world should not be dead")
	}
	if w.Camera.Center.Dist(geom.V(3, 4)) > 1e-9 {
		t.Errorf("camera center = %v, expected spawn", w.Camera.Center)
	}
}

func TestParticleLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		steps   int
		present bool
	}{
		{"exact lifetime removes", 4, false},
		{"shorter keeps", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			id := w.Particles.Insert(Particle{Velocity: geom.V(1, 0), Lifetime: 1})

			for range tt.steps {
				w.Update(PlayerControl{}, 0, 0.25)
			}

			p, ok := w.Particles.Get(id)
			if ok != tt.present {
				t.Fatalf("particle present = %v, expected %v", ok, tt.present)
			}
			if ok {
				if p.Lifetime <= 0 {
					t.Errorf("Lifetime = %g, expected > 0", p.Lifetime)
				}
				if math.Abs(p.Position.X-0.75) > 1e-9 {
					t.Errorf("Position.X = %g, expected 0.75", p.Position.X)
				}
			}
		})
	}
}

func TestWaypointDeliveryScoring(t *testing.T) {
	var first, second store.ID
	w := newTestWorld(t, func(l *level.Level) {
		first = l.Waypoints.Insert(level.Waypoint{Collider: box(0, 0, 2, 2)})
		second = l.Waypoints.Insert(level.Waypoint{Collider: box(10, 0, 2, 2)})
	})
	if w.ActiveWaypoint != first {
		t.Fatalf("ActiveWaypoint = %d, expected %d", w.ActiveWaypoint, first)
	}

	w.Update(PlayerControl{}, 0, tick)

	if w.Player.Score != 1500 {
		t.Errorf("Score = %d, expected 1500", w.Player.Score)
	}
	if !w.Player.ShadowBonus {
		t.Error("ShadowBonus should be re-armed after delivery")
	}
	if w.ActiveWaypoint != second {
		t.Errorf("ActiveWaypoint = %d, expected %d", w.ActiveWaypoint, second)
	}
	if w.Player.Deliveries != 1 {
		t.Errorf("Deliveries = %d, expected 1", w.Player.Deliveries)
	}
	if countEvents(w, EventDeliver) != 1 {
		t.Errorf("expected one deliver event, got %v", w.Events())
	}

	popup := false
	for _, p := range w.Particles.All() {
		if p.Text == "+1500" {
			popup = true
		}
	}
	if !popup {
		t.Error("delivery should spawn a +1500 popup")
	}
}

func TestDeliveryWithoutShadowBonus(t *testing.T) {
	w := newTestWorld(t, func(l *level.Level) {
		l.Waypoints.Insert(level.Waypoint{Collider: box(0, 0, 2, 2)})
		l.Waypoints.Insert(level.Waypoint{Collider: box(10, 0, 2, 2)})
	})

	// Seen this tick: the bonus is lost before delivery is scored.
	w.Update(PlayerControl{}, 0.5, tick)

	if w.Player.Score != 500 {
		t.Errorf("Score = %d, expected 500", w.Player.Score)
	}
	if !w.Player.ShadowBonus {
		t.Error("ShadowBonus should be re-armed after delivery")
	}
}

func TestDeathGating(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Player.Health = 100
	w.Player.Velocity = geom.V(1, 0)
	start := w.Player.Collider.Pos()

	w.Update(PlayerControl{Accelerate: 1}, 1, 0.5)

	deathTime, dead := w.DeathTime()
	if !dead {
		t.Fatal("player should be dead")
	}
	if deathTime != w.Time {
		t.Errorf("DeathTime = %g, expected %g", deathTime, w.Time)
	}
	if w.Player.Health != 0 {
		t.Errorf("Health = %g, expected 0", w.Player.Health)
	}
	if countEvents(w, EventDeath) != 1 {
		t.Errorf("expected one death event, got %v", w.Events())
	}
	if w.Player.Collider.Pos() != start {
		t.Errorf("dead player moved to %v", w.Player.Collider.Pos())
	}

	pos, vel := w.Player.Collider.Pos(), w.Player.Velocity
	w.Update(PlayerControl{Accelerate: 1, Turn: 1}, 1, 0.5)

	if again, _ := w.DeathTime(); again != deathTime {
		t.Errorf("DeathTime changed from %g to %g", deathTime, again)
	}
	if w.Player.Collider.Pos() != pos || w.Player.Velocity != vel {
		t.Error("dead player state should be frozen")
	}
	if countEvents(w, EventDeath) != 0 {
		t.Error("death event should fire only once")
	}
}

func TestZeroHealthPlayerIsInert(t *testing.T) {
	w := newTestWorld(t, func(l *level.Level) {
		l.Waypoints.Insert(level.Waypoint{Collider: box(0, 0, 2, 2)})
	})
	w.Player.Health = 0
	w.Player.Velocity = geom.V(1, 0)
	start := w.Player.Collider.Pos()

	if !w.Dead() {
		t.Error("Dead() = false with zero health, expected true")
	}

	// Hidden, so no damage step would catch the empty health bar.
	w.Update(PlayerControl{Accelerate: 1}, 0, 0.5)

	if got := w.Player.Collider.Pos(); got != start {
		t.Errorf("player moved to %v, expected %v", got, start)
	}
	if w.Player.Score != 0 {
		t.Errorf("Score = %d, expected 0", w.Player.Score)
	}
	deathTime, dead := w.DeathTime()
	if !dead || deathTime != w.Time {
		t.Errorf("DeathTime() = %g, %v, expected %g, true", deathTime, dead, w.Time)
	}
	if countEvents(w, EventDeath) != 1 {
		t.Errorf("expected one death event, got %v", w.Events())
	}
}

func TestHiddenPlayerTakesNoDamage(t *testing.T) {
	w := newTestWorld(t, nil)

	for range 60 {
		w.Update(PlayerControl{}, 0.04, tick)
	}
	if w.Player.Health != 100 {
		t.Errorf("Health = %g, expected 100 below the visibility threshold", w.Player.Health)
	}
	if !w.Player.ShadowBonus {
		t.Error("ShadowBonus should stay armed while hidden")
	}

	w.Update(PlayerControl{}, 0.5, 0.1)
	if w.Player.Health != 90 {
		t.Errorf("Health = %g, expected 90", w.Player.Health)
	}
	if w.Player.ShadowBonus {
		t.Error("ShadowBonus should be cleared when seen")
	}
}

func TestHurtCueCooldown(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Player.Health = 1e9

	hurts := 0
	for range 600 {
		w.Update(PlayerControl{}, 1, 0.001)
		hurts += countEvents(w, EventHurt)
	}
	// 0.6s of exposure with a cooldown of at least 0.1s.
	if hurts == 0 || hurts > 7 {
		t.Errorf("hurt cues = %d, expected between 1 and 7", hurts)
	}
}

func TestObstaclePatrolWraparound(t *testing.T) {
	var id store.ID
	w := newTestWorld(t, func(l *level.Level) {
		path := level.NewPath(geom.V(0, 20), geom.V(10, 20))
		path.NextPoint = 1
		l.Obstacles.Insert(level.Obstacle{Collider: box(0, 20, 1, 1), Path: &path})
	})
	id = w.Obstacles.IDs()[0]

	for i := 0; i < 1000; i++ {
		w.Update(PlayerControl{}, 0, 0.05)
		if o, _ := w.Obstacles.Get(id); o.Path.NextPoint != 1 {
			break
		}
	}

	o, _ := w.Obstacles.Get(id)
	if o.Path.NextPoint != 0 {
		t.Fatalf("NextPoint = %d, expected 0", o.Path.NextPoint)
	}
	if d := o.Collider.Pos().Dist(geom.V(10, 20)); d > 0.2 {
		t.Errorf("obstacle is %g away from the point it reached", d)
	}
}

func TestObstaclePatrolInvalidIndex(t *testing.T) {
	w := newTestWorld(t, func(l *level.Level) {
		path := level.NewPath(geom.V(5, 20))
		path.NextPoint = 4
		l.Obstacles.Insert(level.Obstacle{Collider: box(0, 20, 1, 1), Path: &path})

		empty := level.NewPath()
		l.Obstacles.Insert(level.Obstacle{Collider: box(0, -20, 1, 1), Path: &empty})
	})

	w.Update(PlayerControl{}, 0, tick)

	for _, o := range w.Obstacles.All() {
		if o.Path.NextPoint != 0 {
			t.Errorf("NextPoint = %d, expected reset to 0", o.Path.NextPoint)
		}
	}
}

func TestObstacleTurnRateLimited(t *testing.T) {
	w := newTestWorld(t, func(l *level.Level) {
		path := level.NewPath(geom.V(0, 30))
		l.Obstacles.Insert(level.Obstacle{Collider: box(0, 20, 1, 1), Path: &path})
	})

	w.Update(PlayerControl{}, 0, 0.1)

	o := w.Obstacles.Values()[0]
	// Target is straight up; at 3 rad/s the car turns only 0.3 rad.
	if got := o.Collider.Rotation.Radians(); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("rotation = %g, expected 0.3", got)
	}
}

func TestWaypointSelectionDistance(t *testing.T) {
	var active, near, mid, far store.ID
	w := newTestWorld(t, func(l *level.Level) {
		l.SpawnPoint = geom.V(100, 100)
		active = l.Waypoints.Insert(level.Waypoint{Collider: box(0, 0, 2, 2)})
		near = l.Waypoints.Insert(level.Waypoint{Collider: box(3, 0, 2, 2)})
		mid = l.Waypoints.Insert(level.Waypoint{Collider: box(0, 10, 2, 2)})
		far = l.Waypoints.Insert(level.Waypoint{Collider: box(-30, 0, 2, 2)})
	})
	w.ActiveWaypoint = active

	for range 1000 {
		got := w.nextWaypoint()
		if got == near || got == far || got == active {
			t.Fatalf("nextWaypoint() = %d, expected only %d", got, mid)
		}
	}
}

func TestWaypointSelectionFallbacks(t *testing.T) {
	t.Run("none in range picks any", func(t *testing.T) {
		w := newTestWorld(t, func(l *level.Level) {
			l.SpawnPoint = geom.V(100, 100)
			l.Waypoints.Insert(level.Waypoint{Collider: box(0, 0, 2, 2)})
			l.Waypoints.Insert(level.Waypoint{Collider: box(1, 0, 2, 2)})
		})
		seen := make(map[store.ID]bool)
		for range 200 {
			seen[w.nextWaypoint()] = true
		}
		if len(seen) != 2 {
			t.Errorf("fallback visited %v, expected both waypoints", seen)
		}
	})

	t.Run("missing active picks any", func(t *testing.T) {
		w := newTestWorld(t, func(l *level.Level) {
			l.SpawnPoint = geom.V(100, 100)
			l.Waypoints.Insert(level.Waypoint{Collider: box(0, 0, 2, 2)})
			l.Waypoints.Insert(level.Waypoint{Collider: box(10, 0, 2, 2)})
		})
		w.Level.Waypoints.Remove(w.ActiveWaypoint)

		w.Update(PlayerControl{}, 0, tick)
		if _, ok := w.Target(); !ok {
			t.Errorf("ActiveWaypoint = %d should be reselected", w.ActiveWaypoint)
		}
	})

	t.Run("no waypoints", func(t *testing.T) {
		w := newTestWorld(t, nil)
		if got := w.nextWaypoint(); got != 0 {
			t.Errorf("nextWaypoint() = %d, expected 0", got)
		}
		w.Update(PlayerControl{Accelerate: 1}, 0, tick)
		if _, ok := w.Target(); ok {
			t.Error("empty level should have no target")
		}
	})
}

func TestDifficultyReveal(t *testing.T) {
	var farID, nearID store.ID
	l := level.New("reveal")
	l.Obstacles.Insert(level.Obstacle{Collider: box(0, 5, 1, 1)})
	farID = l.Obstacles.Insert(level.Obstacle{Collider: box(0, 20, 1, 1), Difficulty: 1000})
	nearID = l.Obstacles.Insert(level.Obstacle{Collider: box(0, -5, 1, 1), Difficulty: 1000})
	w := NewWorld(l, DefaultTuning(), 1)

	if w.Obstacles.Len() != 1 || w.PendingObstacles() != 2 {
		t.Fatalf("active/pending = %d/%d, expected 1/2", w.Obstacles.Len(), w.PendingObstacles())
	}

	w.Update(PlayerControl{}, 0, tick)
	if w.Obstacles.Len() != 1 {
		t.Errorf("obstacles revealed before reaching the score")
	}

	w.Player.Score = 1000
	w.Update(PlayerControl{}, 0, tick)
	if w.Obstacles.Len() != 2 {
		t.Errorf("active = %d, expected 2", w.Obstacles.Len())
	}
	if !w.Level.Obstacles.Contains(nearID) || w.Level.Obstacles.Contains(farID) {
		t.Error("only the far obstacle should be revealed")
	}

	for range 10 {
		w.Update(PlayerControl{}, 0, tick)
	}
	if w.Obstacles.Len() != 2 || w.PendingObstacles() != 1 {
		t.Errorf("reveal is not stable: active/pending = %d/%d", w.Obstacles.Len(), w.PendingObstacles())
	}

	if l.Obstacles.Len() != 3 {
		t.Error("source level must not be mutated")
	}
}

func TestCollisionBounce(t *testing.T) {
	w := newTestWorld(t, func(l *level.Level) {
		l.Obstacles.Insert(level.Obstacle{Collider: box(2, 0, 2, 2)})
	})
	w.Player.Velocity = geom.V(5, 0)

	w.Update(PlayerControl{}, 0, 0.1)

	if w.Player.Velocity.X >= 0 {
		t.Errorf("velocity = %v, expected to bounce back", w.Player.Velocity)
	}
	obstacle := w.Obstacles.Values()[0]
	if w.Player.Collider.Check(obstacle.Collider) {
		t.Error("player should be pushed out of the obstacle")
	}
	if countEvents(w, EventBounce) != 1 {
		t.Errorf("bounce events = %d, expected 1", countEvents(w, EventBounce))
	}
	if w.Particles.Len() != 3 {
		t.Errorf("particles = %d, expected 3 sparks", w.Particles.Len())
	}
}

func TestBounceCueOncePerContact(t *testing.T) {
	// Wedged between two buildings: both overlap on the first tick.
	w := newTestWorld(t, func(l *level.Level) {
		l.Obstacles.Insert(level.Obstacle{Collider: box(1.5, 0, 2, 2)})
		l.Obstacles.Insert(level.Obstacle{Collider: box(-1.5, 0, 2, 2)})
	})

	w.Update(PlayerControl{}, 0, tick)
	if got := countEvents(w, EventBounce); got != 1 {
		t.Fatalf("first tick bounce events = %d, expected 1", got)
	}

	for range 5 {
		w.Update(PlayerControl{}, 0, tick)
		if got := countEvents(w, EventBounce); got != 0 {
			t.Fatalf("bounce cue repeated while wedged")
		}
	}
}

func TestLampTimersRunInWorld(t *testing.T) {
	w := newTestWorld(t, func(l *level.Level) {
		lamp := level.NewLamp(geom.V(5, 5))
		lamp.UpTime = 2
		lamp.DownTime = 1
		l.Lamps.Insert(lamp)
	})

	w.Update(PlayerControl{}, 0, 0.1)
	lamp := w.Level.Lamps.Values()[0]
	if !lamp.State.IsUp() || math.Abs(lamp.State.Remaining-2) > 1e-9 {
		t.Fatalf("State = %+v, expected Up(2)", lamp.State)
	}

	w.Update(PlayerControl{}, 0, 2)
	lamp = w.Level.Lamps.Values()[0]
	if lamp.State.IsUp() || math.Abs(lamp.State.Remaining-1) > 1e-9 {
		t.Errorf("State = %+v, expected Down(1)", lamp.State)
	}
}

func TestPlayerControl(t *testing.T) {
	w := newTestWorld(t, nil)

	for range 600 {
		w.Update(PlayerControl{Accelerate: 1}, 0, tick)
		if s := w.Player.Velocity.Len(); s > w.Tuning().MaxSpeed+1e-9 {
			t.Fatalf("speed %g exceeds max", s)
		}
	}
	if s := w.Player.Velocity.Len(); s < w.Tuning().MaxSpeed*0.9 {
		t.Errorf("speed = %g, expected close to max", s)
	}
	if w.Player.Collider.Pos().X <= 0 {
		t.Error("player should drive along +X at rotation 0")
	}

	w.Update(PlayerControl{Turn: 1}, 0, 0.1)
	if got := w.Player.Collider.Rotation.Radians(); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("rotation = %g, expected 0.3", got)
	}

	for range 600 {
		w.Update(PlayerControl{Accelerate: -1}, 0, tick)
	}
	if s := w.Player.Velocity.Len(); s > 1e-6 {
		t.Errorf("braking should stop the car, speed = %g", s)
	}
}

func TestLargeTimeStepStaysFinite(t *testing.T) {
	w := newTestWorld(t, func(l *level.Level) {
		l.Waypoints.Insert(level.Waypoint{Collider: box(40, 0, 2, 2)})
		path := level.NewPath(geom.V(0, 30), geom.V(30, 30))
		l.Obstacles.Insert(level.Obstacle{Collider: box(0, 20, 1, 1), Path: &path})
	})

	for _, dt := range []float64{10, 1000, 1e6} {
		w.Update(PlayerControl{Accelerate: 1, Turn: 1}, 0, dt)
	}

	p := w.Player
	if s := p.Velocity.Len(); math.IsNaN(s) || s > w.Tuning().MaxSpeed+1e-9 {
		t.Errorf("speed = %g, expected finite and <= max", s)
	}
	for _, v := range []float64{p.Collider.Pos().X, p.Collider.Pos().Y, w.Camera.Center.X, w.Camera.Center.Y, w.Camera.FOV} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("state is not finite: %v", v)
		}
	}
	if w.Camera.Center.Dist(p.Collider.Pos()) > 1e-3 {
		t.Errorf("camera %v should snap to player %v on a long frame", w.Camera.Center, p.Collider.Pos())
	}
}

func TestInfiniteTimeStepIgnored(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Player.Velocity = geom.V(1, 0)
	start := w.Player.Collider.Pos()

	for _, dt := range []float64{math.Inf(1), math.Inf(-1)} {
		w.Update(PlayerControl{Accelerate: 1}, 1, dt)
	}
	w.Update(PlayerControl{}, 0, tick)

	if w.Time != tick {
		t.Errorf("Time = %g, expected %g", w.Time, tick)
	}
	p := w.Player.Collider.Pos()
	for _, v := range []float64{p.X, p.Y, w.Camera.Center.X, w.Camera.Center.Y, w.Player.Health} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("state is not finite: pos %v camera %v", p, w.Camera.Center)
		}
	}
	if p.Dist(start) > 1 {
		t.Errorf("player moved to %v on an infinite frame", p)
	}
}

func TestInvalidInputsIgnored(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Update(PlayerControl{Accelerate: math.NaN(), Turn: 50}, math.NaN(), -1)

	if w.Time != 0 {
		t.Errorf("Time = %g, expected 0 after negative dt", w.Time)
	}
	if w.Player.Health != 100 {
		t.Errorf("Health = %g, expected 100", w.Player.Health)
	}
}

func TestCameraFOV(t *testing.T) {
	w := newTestWorld(t, nil)
	tuning := w.Tuning()

	if w.Camera.FOV != tuning.DeadFOV {
		t.Errorf("initial FOV = %g, expected %g", w.Camera.FOV, tuning.DeadFOV)
	}

	w.Update(PlayerControl{}, 0, 0.5)
	mid := w.Camera.FOV
	if mid <= tuning.DeadFOV || mid >= tuning.AliveFOV {
		t.Errorf("FOV at 0.5s = %g, expected between %g and %g", mid, tuning.DeadFOV, tuning.AliveFOV)
	}

	w.Update(PlayerControl{}, 0, 1)
	if w.Camera.FOV != tuning.AliveFOV {
		t.Errorf("FOV after 1.5s = %g, expected %g", w.Camera.FOV, tuning.AliveFOV)
	}

	w.Update(PlayerControl{}, 1, 1) // dies
	w.Update(PlayerControl{}, 0, 1)
	if w.Camera.FOV != tuning.DeadFOV {
		t.Errorf("FOV a second after death = %g, expected %g", w.Camera.FOV, tuning.DeadFOV)
	}
}

func TestReset(t *testing.T) {
	w := newTestWorld(t, func(l *level.Level) {
		l.Waypoints.Insert(level.Waypoint{Collider: box(0, 0, 2, 2)})
		l.Waypoints.Insert(level.Waypoint{Collider: box(10, 0, 2, 2)})
		l.Obstacles.Insert(level.Obstacle{Collider: box(0, 40, 1, 1), Difficulty: 500})
	})

	w.Update(PlayerControl{}, 0, tick) // delivers
	w.Update(PlayerControl{}, 1, 1)    // reveals the late obstacle, then dies
	if !w.Dead() || w.Obstacles.Len() != 1 {
		t.Fatalf("setup failed: dead=%v active=%d", w.Dead(), w.Obstacles.Len())
	}

	w.Reset()

	if w.Dead() || w.Player.Health != 100 || w.Player.Score != 0 || w.Time != 0 {
		t.Errorf("Reset did not restore the player: %+v", w.Snapshot())
	}
	if w.Obstacles.Len() != 0 || w.PendingObstacles() != 1 {
		t.Errorf("Reset active/pending = %d/%d, expected 0/1", w.Obstacles.Len(), w.PendingObstacles())
	}
	if w.Particles.Len() != 0 {
		t.Errorf("Reset left %d particles", w.Particles.Len())
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		w := NewWorld(level.Default(), DefaultTuning(), 12345)
		for i := range 2000 {
			control := PlayerControl{Accelerate: 1, Turn: math.Sin(float64(i) / 40)}
			visibility := 0.5 + 0.5*math.Sin(float64(i)/17)
			w.Update(control, visibility*0.3, tick)
		}
		return w.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", a.Hash(), b.Hash())
	}
	if a.Score != b.Score || a.Position != b.Position {
		t.Errorf("Determinism failed: %+v vs %+v", a, b)
	}
}

func TestSnapshot(t *testing.T) {
	w := newTestWorld(t, func(l *level.Level) {
		l.Waypoints.Insert(level.Waypoint{Collider: box(10, 0, 2, 2)})
	})

	s := w.Snapshot()
	if !s.HasTarget || s.Target != geom.V(10, 0) {
		t.Errorf("snapshot target = %v/%v, expected {10 0}", s.HasTarget, s.Target)
	}
	if s.Health != 100 || s.Dead {
		t.Errorf("snapshot = %+v", s)
	}

	w.Update(PlayerControl{Accelerate: 1}, 0, tick)
	if w.Snapshot().Hash() == s.Hash() {
		t.Error("hash should change when the world changes")
	}
}

func TestTuningFromConfig(t *testing.T) {
	tuning := DefaultTuning()
	checks := []struct {
		name     string
		got, exp float64
	}{
		{"drag", tuning.Drag, 0.2},
		{"max speed", tuning.MaxSpeed, 5},
		{"turn speed", tuning.TurnSpeed, 3},
		{"acceleration", tuning.Acceleration, 10},
		{"bounciness", tuning.Bounciness, 0.8},
		{"shadow max vis", tuning.ShadowMaxVisibility, 0.05},
		{"damage rate", tuning.DamageRate, 200},
		{"spawn distance", tuning.ObstacleSpawnDistance, 15},
		{"waypoint min", tuning.WaypointMinDistance, 5},
		{"waypoint max", tuning.WaypointMaxDistance, 20},
		{"camera interpolation", tuning.CameraInterpolation, 0.5},
	}
	for _, c := range checks {
		if c.got != c.exp {
			t.Errorf("%s = %g, expected %g", c.name, c.got, c.exp)
		}
	}
	if tuning.DeliverScore != 500 || tuning.ShadowBonus != 1000 {
		t.Errorf("scores = %d/%d, expected 500/1000", tuning.DeliverScore, tuning.ShadowBonus)
	}
}
