package level

import (
	"fmt"
	"math"

	"github.com/vovakirdan/shadow-delivery/internal/geom"
	"github.com/vovakirdan/shadow-delivery/internal/store"
)

// ValidationError contains details about a level problem.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate reports problems that make a level unplayable or odd.
// The simulation tolerates all of them; this is a tool for level authors.
// Checks:
//   - at least one waypoint
//   - finite coordinates and positive collider sizes
//   - patrol routes with points and non-negative speeds
//   - non-negative lamp timers and light ranges
//   - spawn point not inside an always-present obstacle
func Validate(l *Level) []ValidationError {
	var errs []ValidationError
	add := func(code, format string, args ...any) {
		errs = append(errs, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if !finite(l.SpawnPoint) {
		add("BAD_SPAWN", "spawn point %v is not finite", l.SpawnPoint)
	}
	if l.GlobalLight.Intensity < 0 {
		add("BAD_LIGHT", "global light intensity %g is negative", l.GlobalLight.Intensity)
	}
	if l.Waypoints.Len() == 0 {
		add("NO_WAYPOINTS", "level has no waypoints")
	}

	checkColliders(l.Waypoints, "waypoint", func(w *Waypoint) geom.Collider { return w.Collider }, add)
	checkColliders(l.Obstacles, "obstacle", func(o *Obstacle) geom.Collider { return o.Collider }, add)
	checkColliders(l.Lamps, "lamp", func(lp *Lamp) geom.Collider { return lp.Collider }, add)
	checkColliders(l.Props, "prop", func(p *Prop) geom.Collider { return p.Collider }, add)

	for id, o := range l.Obstacles.All() {
		for i, s := range o.Lights {
			if s.Intensity < 0 || s.MaxDistance < 0 {
				add("BAD_LIGHT", "obstacle %d light %d has negative intensity or range", id, i)
			}
		}
		if o.Path != nil {
			if len(o.Path.Points) == 0 {
				add("BAD_PATH", "obstacle %d has a path with no points", id)
			} else if o.Path.NextPoint < 0 || o.Path.NextPoint >= len(o.Path.Points) {
				add("BAD_PATH", "obstacle %d next point %d out of range", id, o.Path.NextPoint)
			}
			if o.Path.MoveSpeed < 0 || o.Path.AngularSpeed < 0 {
				add("BAD_PATH", "obstacle %d has negative path speed", id)
			}
		}
		if o.Difficulty == 0 && o.Collider.ContainsPoint(l.SpawnPoint) {
			add("SPAWN_BLOCKED", "spawn point is inside obstacle %d", id)
		}
	}

	for id, lamp := range l.Lamps.All() {
		if lamp.UpTime < 0 || lamp.DownTime < 0 {
			add("BAD_LAMP", "lamp %d has a negative timer", id)
		}
		if lamp.Light.Intensity < 0 || lamp.Light.MaxDistance < 0 {
			add("BAD_LIGHT", "lamp %d has negative intensity or range", id)
		}
	}

	return errs
}

func checkColliders[T any](s *store.Store[T], kind string, collider func(*T) geom.Collider, add func(code, format string, args ...any)) {
	for id, v := range s.All() {
		c := collider(v)
		size := c.Size()
		if !finite(c.Pos()) || !finite(size) {
			add("BAD_COLLIDER", "%s %d has non-finite geometry", kind, id)
			continue
		}
		if size.X <= 0 || size.Y <= 0 {
			add("BAD_COLLIDER", "%s %d has empty size %gx%g", kind, id, size.X, size.Y)
		}
	}
}

func finite(v geom.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
