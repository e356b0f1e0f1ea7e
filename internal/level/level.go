// Package level describes the static content of a delivery map: where the
// player spawns, the ambient light and the waypoints, obstacles, lamps and
// props placed on it. Levels are loaded from and saved to flat files in
// which every entity store is a plain ordered list.
package level

import (
	"slices"

	"github.com/vovakirdan/shadow-delivery/internal/geom"
	"github.com/vovakirdan/shadow-delivery/internal/store"
)

// Path defaults used when a file does not specify speeds.
const (
	DefaultMoveSpeed    = 2.0
	DefaultAngularSpeed = 3.0
)

// Level is the static description of a map.
type Level struct {
	Name        string
	SpawnPoint  geom.Vec2
	GlobalLight GlobalLight
	Waypoints   *store.Store[Waypoint]
	Obstacles   *store.Store[Obstacle]
	Lamps       *store.Store[Lamp]
	Props       *store.Store[Prop]
}

// New creates an empty level with default lighting.
func New(name string) *Level {
	return &Level{
		Name:        name,
		GlobalLight: DefaultGlobalLight(),
		Waypoints:   store.New[Waypoint](),
		Obstacles:   store.New[Obstacle](),
		Lamps:       store.New[Lamp](),
		Props:       store.New[Prop](),
	}
}

// Clone returns a deep copy of the level that keeps entity ids.
func (l *Level) Clone() *Level {
	return &Level{
		Name:        l.Name,
		SpawnPoint:  l.SpawnPoint,
		GlobalLight: l.GlobalLight,
		Waypoints:   l.Waypoints.Clone(nil),
		Obstacles:   l.Obstacles.Clone(Obstacle.Clone),
		Lamps:       l.Lamps.Clone(nil),
		Props:       l.Props.Clone(nil),
	}
}

// Waypoint is a delivery target.
type Waypoint struct {
	Collider geom.Collider
}

// Obstacle is a level hazard. With lights it is a car, without it is a
// building. A non-nil Path makes it patrol.
type Obstacle struct {
	Collider geom.Collider
	Lights   []Spotlight // relative to the collider
	Path     *Path
	// Difficulty is the score at which the obstacle appears. Zero means
	// it is present from the start.
	Difficulty uint64
}

// IsCar reports whether the obstacle carries headlights.
func (o Obstacle) IsCar() bool {
	return len(o.Lights) > 0
}

// Clone returns a copy that shares no slices with o.
func (o Obstacle) Clone() Obstacle {
	o.Lights = slices.Clone(o.Lights)
	if o.Path != nil {
		p := o.Path.Clone()
		o.Path = &p
	}
	return o
}

// Path is a cyclic patrol route.
type Path struct {
	Points       []geom.Vec2
	NextPoint    int
	MoveSpeed    float64
	AngularSpeed float64
}

// NewPath creates a patrol route over points with default speeds.
func NewPath(points ...geom.Vec2) Path {
	return Path{
		Points:       points,
		MoveSpeed:    DefaultMoveSpeed,
		AngularSpeed: DefaultAngularSpeed,
	}
}

// Clone returns a copy that shares no slices with p.
func (p Path) Clone() Path {
	p.Points = slices.Clone(p.Points)
	return p
}

// Target returns the point the path is heading to.
// ok is false when NextPoint is out of range.
func (p Path) Target() (pt geom.Vec2, ok bool) {
	if p.NextPoint < 0 || p.NextPoint >= len(p.Points) {
		return geom.Vec2{}, false
	}
	return p.Points[p.NextPoint], true
}

// Advance moves to the following point, wrapping to the first one.
func (p *Path) Advance() {
	if len(p.Points) == 0 {
		p.NextPoint = 0
		return
	}
	p.NextPoint = (p.NextPoint + 1) % len(p.Points)
}

// Phase tells whether a lamp is lit.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseUp
)

// String returns the phase name used in level files.
func (p Phase) String() string {
	if p == PhaseUp {
		return "up"
	}
	return "down"
}

// LampState is a lamp timer: the current phase and the seconds left in it.
type LampState struct {
	Phase     Phase
	Remaining float64
}

// Up returns a lit state with t seconds remaining.
func Up(t float64) LampState { return LampState{Phase: PhaseUp, Remaining: t} }

// Down returns an unlit state with t seconds remaining.
func Down(t float64) LampState { return LampState{Phase: PhaseDown, Remaining: t} }

// IsUp reports whether the lamp is lit.
func (s LampState) IsUp() bool {
	return s.Phase == PhaseUp
}

// Advance runs the timer for dt seconds and returns the new state.
// When the timer expires the lamp switches phase and loads that phase's
// duration. An expiring Up with no down time stays Up(0).
func (s LampState) Advance(dt, upTime, downTime float64) LampState {
	s.Remaining -= dt
	if s.Remaining > 0 {
		return s
	}
	if s.Phase == PhaseUp {
		if downTime > 0 {
			return Down(downTime)
		}
		return Up(0)
	}
	return Up(upTime)
}

// Lamp is a blinking light source.
type Lamp struct {
	Collider geom.Collider
	Light    Spotlight // relative to the collider
	State    LampState
	UpTime   float64
	DownTime float64
}

// NewLamp creates a lamp at pos with default timers: lit for one second
// after its first trigger and never switched off.
func NewLamp(pos geom.Vec2) Lamp {
	c := geom.DefaultCollider()
	c.Teleport(pos)
	return Lamp{
		Collider: c,
		Light:    DefaultSpotlight(),
		State:    Down(0),
		UpTime:   1,
	}
}

// Prop is decoration with a free-form type tag.
type Prop struct {
	Collider geom.Collider
	Kind     string
}
