package sim

import (
	"math"

	"github.com/vovakirdan/shadow-delivery/internal/geom"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/store"
)

// Update advances the world by dt seconds. visibility is the fraction of
// the player exposed to light, as measured on the previous frame.
//
// Every step clamps its results, so arbitrary dt (including large frame
// hitches) keeps the state finite. Negative or non-finite dt and NaN
// inputs are treated as zero.
func (w *World) Update(control PlayerControl, visibility, dt float64) {
	w.events = w.events[:0]

	if math.IsInf(dt, 0) {
		dt = 0
	}
	dt = sanitize(dt, 0, math.MaxFloat64)
	visibility = sanitize(visibility, 0, 1)
	control.Accelerate = sanitize(control.Accelerate, -1, 1)
	control.Turn = sanitize(control.Turn, -1, 1)

	w.Time += dt

	w.revealObstacles()
	w.updateParticles(dt)
	w.updatePlayer(visibility, dt)
	w.controlPlayer(control, dt)
	w.moveObstacles(dt)
	w.movePlayer(dt)
	w.resolveCollisions()
	w.deliver()
	w.updateLamps(dt)
	w.updateCamera(dt)
}

// revealObstacles moves pending obstacles into play once the score has
// reached their difficulty and they are far enough from the player not
// to appear on top of them.
func (w *World) revealObstacles() {
	var ready []store.ID
	pos := w.Player.Collider.Pos()
	for id, o := range w.Level.Obstacles.All() {
		if o.Difficulty == 0 ||
			o.Difficulty <= w.Player.Score && o.Collider.Pos().Dist(pos) > w.tuning.ObstacleSpawnDistance {
			ready = append(ready, id)
		}
	}
	for _, id := range ready {
		if o, ok := w.Level.Obstacles.Remove(id); ok {
			w.Obstacles.Insert(o)
		}
	}
}

func (w *World) updateParticles(dt float64) {
	var expired []store.ID
	for id, p := range w.Particles.All() {
		p.Lifetime -= dt
		if p.Lifetime <= 0 {
			expired = append(expired, id)
			continue
		}
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
	}
	w.Particles.RemoveAll(expired)
}

// updatePlayer applies light damage. A player entering the tick with no
// health dies here, before anything else can move it.
func (w *World) updatePlayer(visibility, dt float64) {
	if w.Player.Health <= 0 {
		w.kill()
	}
	if !w.alive() {
		return
	}
	if visibility < w.tuning.ShadowMaxVisibility {
		return
	}
	w.Player.ShadowBonus = false

	pos := w.Player.Collider.Pos()
	if w.rng.Float64() < visibility*0.5 {
		dir := geom.FromRadians(w.rng.Float64() * 2 * math.Pi).UnitDirection()
		w.Particles.Insert(Particle{
			Position: w.randomInCircle(pos, 0.1),
			Velocity: dir,
			Lifetime: 0.5,
			Radius:   0.15,
			Color:    level.Color{R: 0.2, G: 0.8, B: 0.9, A: 1},
		})

		if w.hurtTimeout <= 0 {
			w.hurtTimeout = 0.1 + w.rng.Float64()*0.1
			w.emit(Event{Kind: EventHurt, Position: pos})
		}
	}
	w.hurtTimeout -= dt

	w.Player.Health = math.Max(w.Player.Health-visibility*w.tuning.DamageRate*dt, 0)
	if w.Player.Health <= 0 {
		w.kill()
	}
}

// alive reports whether the player still responds to control.
func (w *World) alive() bool {
	return !w.dead && w.Player.Health > 0
}

func (w *World) kill() {
	if w.dead {
		return
	}
	w.dead = true
	w.deathTime = w.Time
	w.emit(Event{Kind: EventDeath, Position: w.Player.Collider.Pos()})
}

// controlPlayer turns the car and steers its velocity toward the heading.
func (w *World) controlPlayer(control PlayerControl, dt float64) {
	if !w.alive() {
		return
	}
	t := w.tuning
	p := &w.Player

	p.Collider.Rotation = p.Collider.Rotation.Add(geom.FromRadians(control.Turn * t.TurnSpeed * dt))

	speed := p.Velocity.Len()
	speed -= speed * (1 - t.Drag) * dt
	speed += control.Accelerate * t.Acceleration * dt
	speed = geom.Clamp(speed, 0, t.MaxSpeed)

	target := p.Collider.Rotation.UnitDirection().Scale(speed)
	p.Velocity = p.Velocity.Add(target.Sub(p.Velocity).ClampLen(t.Acceleration * dt))
}

// moveObstacles drives patrolling obstacles along their paths. The
// arrival check uses the distance before moving, so an obstacle may pass
// its target slightly before turning to the next one.
func (w *World) moveObstacles(dt float64) {
	for _, o := range w.Obstacles.All() {
		if o.Path == nil {
			continue
		}
		path := o.Path
		target, ok := path.Target()
		if !ok {
			path.NextPoint = 0
			continue
		}

		step := path.MoveSpeed * dt
		delta := target.Sub(o.Collider.Pos())
		if delta.Len() < step {
			path.Advance()
		}

		bearing := geom.FromRadians(delta.Arg())
		turn := o.Collider.Rotation.AngleTo(bearing).ClampAbs(path.AngularSpeed * dt)
		o.Collider.Rotation = o.Collider.Rotation.Add(turn)
		o.Collider.Translate(o.Collider.Rotation.UnitDirection().Scale(step))
	}
}

func (w *World) movePlayer(dt float64) {
	if !w.alive() {
		return
	}
	w.Player.Collider.Translate(w.Player.Velocity.Scale(dt))
}

// resolveCollisions pushes the player out of every obstacle it overlaps
// and bounces its velocity. One bounce cue fires per contiguous contact.
func (w *World) resolveCollisions() {
	if !w.alive() {
		return
	}
	wasBounced := w.bounced
	w.bounced = false

	p := &w.Player
	for _, o := range w.Obstacles.All() {
		col, ok := p.Collider.Collide(o.Collider)
		if !ok {
			continue
		}
		p.Collider.Translate(col.Normal.Scale(-col.Penetration))
		p.Velocity = p.Velocity.Sub(col.Normal.Scale(p.Velocity.Dot(col.Normal) * (1 + w.tuning.Bounciness)))

		if !wasBounced && !w.bounced {
			w.emit(Event{Kind: EventBounce, Position: col.Point})
			for range 3 {
				spread := w.rng.Float64()*2 - 1
				w.Particles.Insert(Particle{
					Position: col.Point,
					Velocity: col.Normal.Rotate(spread).Neg(),
					Lifetime: 0.5,
					Radius:   0.1,
					Color:    level.White,
				})
			}
		}
		w.bounced = true
	}
}

func (w *World) updateLamps(dt float64) {
	for _, lamp := range w.Level.Lamps.All() {
		lamp.State = lamp.State.Advance(dt, lamp.UpTime, lamp.DownTime)
	}
}

// updateCamera follows the player and eases the zoom between the alive
// and dead field of view over one second.
func (w *World) updateCamera(dt float64) {
	t := w.tuning
	factor := 1.0
	if t.CameraInterpolation > 0 {
		factor = math.Min(dt/t.CameraInterpolation, 1)
	}
	target := w.Player.Collider.Pos()
	w.Camera.Center = w.Camera.Center.Add(target.Sub(w.Camera.Center).Scale(factor))

	elapsed, from, to := w.Time, t.DeadFOV, t.AliveFOV
	if w.dead {
		elapsed, from, to = w.Time-w.deathTime, t.AliveFOV, t.DeadFOV
	}
	w.Camera.FOV = from + (to-from)*geom.SmoothStep(math.Min(elapsed, 1))
}

func (w *World) randomInCircle(center geom.Vec2, radius float64) geom.Vec2 {
	r := radius * math.Sqrt(w.rng.Float64())
	dir := geom.FromRadians(w.rng.Float64() * 2 * math.Pi).UnitDirection()
	return center.Add(dir.Scale(r))
}

// sanitize clamps v to [lo, hi]. NaN is treated as 0.
func sanitize(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	return geom.Clamp(v, lo, hi)
}
