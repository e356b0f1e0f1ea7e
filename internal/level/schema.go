package level

import (
	"github.com/vovakirdan/shadow-delivery/internal/geom"
)

// File is the on-disk shape of a level. Every entity store is a plain
// list; ids are not stored and are reassigned in list order on load.
// Pointer fields are optional and fall back to defaults when absent.
type File struct {
	Name        string           `yaml:"name,omitempty" json:"name,omitempty" msgpack:"name,omitempty"`
	SpawnPoint  geom.Vec2        `yaml:"spawn_point" json:"spawn_point" msgpack:"spawn_point"`
	GlobalLight *GlobalLightFile `yaml:"global_light,omitempty" json:"global_light,omitempty" msgpack:"global_light,omitempty"`
	Waypoints   []WaypointFile   `yaml:"waypoints,omitempty" json:"waypoints,omitempty" msgpack:"waypoints,omitempty"`
	Obstacles   []ObstacleFile   `yaml:"obstacles,omitempty" json:"obstacles,omitempty" msgpack:"obstacles,omitempty"`
	Lamps       []LampFile       `yaml:"lamps,omitempty" json:"lamps,omitempty" msgpack:"lamps,omitempty"`
	Props       []PropFile       `yaml:"props,omitempty" json:"props,omitempty" msgpack:"props,omitempty"`
}

// ColorFile is a color whose alpha defaults to opaque.
type ColorFile struct {
	R float64  `yaml:"r" json:"r" msgpack:"r"`
	G float64  `yaml:"g" json:"g" msgpack:"g"`
	B float64  `yaml:"b" json:"b" msgpack:"b"`
	A *float64 `yaml:"a,omitempty" json:"a,omitempty" msgpack:"a,omitempty"`
}

// GlobalLightFile is the stored ambient light.
type GlobalLightFile struct {
	Color     *ColorFile `yaml:"color,omitempty" json:"color,omitempty" msgpack:"color,omitempty"`
	Intensity *float64   `yaml:"intensity,omitempty" json:"intensity,omitempty" msgpack:"intensity,omitempty"`
}

// ColliderFile stores a collider as center, size and rotation in radians.
type ColliderFile struct {
	Position geom.Vec2  `yaml:"position" json:"position" msgpack:"position"`
	Size     *geom.Vec2 `yaml:"size,omitempty" json:"size,omitempty" msgpack:"size,omitempty"`
	Rotation float64    `yaml:"rotation,omitempty" json:"rotation,omitempty" msgpack:"rotation,omitempty"`
}

// SpotlightFile is a stored spotlight.
type SpotlightFile struct {
	Position         geom.Vec2  `yaml:"position" json:"position" msgpack:"position"`
	Angle            float64    `yaml:"angle,omitempty" json:"angle,omitempty" msgpack:"angle,omitempty"`
	AngleRange       *float64   `yaml:"angle_range,omitempty" json:"angle_range,omitempty" msgpack:"angle_range,omitempty"`
	AngleGradient    *float64   `yaml:"angle_gradient,omitempty" json:"angle_gradient,omitempty" msgpack:"angle_gradient,omitempty"`
	Color            *ColorFile `yaml:"color,omitempty" json:"color,omitempty" msgpack:"color,omitempty"`
	Intensity        *float64   `yaml:"intensity,omitempty" json:"intensity,omitempty" msgpack:"intensity,omitempty"`
	MaxDistance      *float64   `yaml:"max_distance,omitempty" json:"max_distance,omitempty" msgpack:"max_distance,omitempty"`
	DistanceGradient *float64   `yaml:"distance_gradient,omitempty" json:"distance_gradient,omitempty" msgpack:"distance_gradient,omitempty"`
	Volume           *float64   `yaml:"volume,omitempty" json:"volume,omitempty" msgpack:"volume,omitempty"`
}

// WaypointFile is a stored waypoint.
type WaypointFile struct {
	Collider *ColliderFile `yaml:"collider,omitempty" json:"collider,omitempty" msgpack:"collider,omitempty"`
}

// PathFile is a stored patrol route.
type PathFile struct {
	Points       []geom.Vec2 `yaml:"points,omitempty" json:"points,omitempty" msgpack:"points,omitempty"`
	NextPoint    int         `yaml:"next_point,omitempty" json:"next_point,omitempty" msgpack:"next_point,omitempty"`
	MoveSpeed    *float64    `yaml:"move_speed,omitempty" json:"move_speed,omitempty" msgpack:"move_speed,omitempty"`
	AngularSpeed *float64    `yaml:"angular_speed,omitempty" json:"angular_speed,omitempty" msgpack:"angular_speed,omitempty"`
}

// ObstacleFile is a stored obstacle.
type ObstacleFile struct {
	Collider   *ColliderFile   `yaml:"collider,omitempty" json:"collider,omitempty" msgpack:"collider,omitempty"`
	Lights     []SpotlightFile `yaml:"lights,omitempty" json:"lights,omitempty" msgpack:"lights,omitempty"`
	Path       *PathFile       `yaml:"path,omitempty" json:"path,omitempty" msgpack:"path,omitempty"`
	Difficulty uint64          `yaml:"difficulty,omitempty" json:"difficulty,omitempty" msgpack:"difficulty,omitempty"`
}

// LampStateFile is a stored lamp timer. Phase is "up" or "down".
type LampStateFile struct {
	Phase     string  `yaml:"phase" json:"phase" msgpack:"phase"`
	Remaining float64 `yaml:"remaining" json:"remaining" msgpack:"remaining"`
}

// LampFile is a stored lamp.
type LampFile struct {
	Collider *ColliderFile  `yaml:"collider,omitempty" json:"collider,omitempty" msgpack:"collider,omitempty"`
	Light    *SpotlightFile `yaml:"light,omitempty" json:"light,omitempty" msgpack:"light,omitempty"`
	State    *LampStateFile `yaml:"state,omitempty" json:"state,omitempty" msgpack:"state,omitempty"`
	UpTime   *float64       `yaml:"up_time,omitempty" json:"up_time,omitempty" msgpack:"up_time,omitempty"`
	DownTime *float64       `yaml:"down_time,omitempty" json:"down_time,omitempty" msgpack:"down_time,omitempty"`
}

// PropFile is a stored prop.
type PropFile struct {
	Collider *ColliderFile `yaml:"collider,omitempty" json:"collider,omitempty" msgpack:"collider,omitempty"`
	Prop     string        `yaml:"prop" json:"prop" msgpack:"prop"`
}

// FromFile builds a level, filling defaults for every missing field.
func FromFile(f File) *Level {
	l := New(f.Name)
	l.SpawnPoint = f.SpawnPoint
	if f.GlobalLight != nil {
		def := DefaultGlobalLight()
		l.GlobalLight = GlobalLight{
			Color:     colorOr(f.GlobalLight.Color, def.Color),
			Intensity: valueOr(f.GlobalLight.Intensity, def.Intensity),
		}
	}

	for _, w := range f.Waypoints {
		l.Waypoints.Insert(Waypoint{Collider: colliderFromFile(w.Collider)})
	}
	for _, o := range f.Obstacles {
		obs := Obstacle{
			Collider:   colliderFromFile(o.Collider),
			Difficulty: o.Difficulty,
		}
		for _, s := range o.Lights {
			obs.Lights = append(obs.Lights, spotlightFromFile(&s))
		}
		if o.Path != nil {
			p := NewPath(o.Path.Points...)
			p.NextPoint = o.Path.NextPoint
			p.MoveSpeed = valueOr(o.Path.MoveSpeed, DefaultMoveSpeed)
			p.AngularSpeed = valueOr(o.Path.AngularSpeed, DefaultAngularSpeed)
			obs.Path = &p
		}
		l.Obstacles.Insert(obs)
	}
	for _, lf := range f.Lamps {
		lamp := Lamp{
			Collider: colliderFromFile(lf.Collider),
			Light:    spotlightFromFile(lf.Light),
			State:    Down(0),
			UpTime:   valueOr(lf.UpTime, 1),
			DownTime: valueOr(lf.DownTime, 0),
		}
		if lf.State != nil {
			lamp.State = LampState{Phase: parsePhase(lf.State.Phase), Remaining: lf.State.Remaining}
		}
		l.Lamps.Insert(lamp)
	}
	for _, p := range f.Props {
		l.Props.Insert(Prop{Collider: colliderFromFile(p.Collider), Kind: p.Prop})
	}
	return l
}

// ToFile flattens the level into its stored shape, writing every field.
func ToFile(l *Level) File {
	f := File{
		Name:       l.Name,
		SpawnPoint: l.SpawnPoint,
		GlobalLight: &GlobalLightFile{
			Color:     colorToFile(l.GlobalLight.Color),
			Intensity: ptr(l.GlobalLight.Intensity),
		},
	}

	for _, w := range l.Waypoints.All() {
		f.Waypoints = append(f.Waypoints, WaypointFile{Collider: colliderToFile(w.Collider)})
	}
	for _, o := range l.Obstacles.All() {
		of := ObstacleFile{
			Collider:   colliderToFile(o.Collider),
			Difficulty: o.Difficulty,
		}
		for _, s := range o.Lights {
			of.Lights = append(of.Lights, *spotlightToFile(s))
		}
		if o.Path != nil {
			of.Path = &PathFile{
				Points:       o.Path.Points,
				NextPoint:    o.Path.NextPoint,
				MoveSpeed:    ptr(o.Path.MoveSpeed),
				AngularSpeed: ptr(o.Path.AngularSpeed),
			}
		}
		f.Obstacles = append(f.Obstacles, of)
	}
	for _, lamp := range l.Lamps.All() {
		f.Lamps = append(f.Lamps, LampFile{
			Collider: colliderToFile(lamp.Collider),
			Light:    spotlightToFile(lamp.Light),
			State:    &LampStateFile{Phase: lamp.State.Phase.String(), Remaining: lamp.State.Remaining},
			UpTime:   ptr(lamp.UpTime),
			DownTime: ptr(lamp.DownTime),
		})
	}
	for _, p := range l.Props.All() {
		f.Props = append(f.Props, PropFile{Collider: colliderToFile(p.Collider), Prop: p.Kind})
	}
	return f
}

func colliderFromFile(c *ColliderFile) geom.Collider {
	if c == nil {
		return geom.DefaultCollider()
	}
	size := valueOr(c.Size, geom.V(2, 2))
	return geom.NewColliderAt(c.Position, size, geom.FromRadians(c.Rotation))
}

func colliderToFile(c geom.Collider) *ColliderFile {
	return &ColliderFile{
		Position: c.Pos(),
		Size:     ptr(c.Size()),
		Rotation: c.Rotation.Radians(),
	}
}

func spotlightFromFile(s *SpotlightFile) Spotlight {
	def := DefaultSpotlight()
	if s == nil {
		return def
	}
	return Spotlight{
		Position:         s.Position,
		Angle:            s.Angle,
		AngleRange:       valueOr(s.AngleRange, def.AngleRange),
		AngleGradient:    valueOr(s.AngleGradient, def.AngleGradient),
		Color:            colorOr(s.Color, def.Color),
		Intensity:        valueOr(s.Intensity, def.Intensity),
		MaxDistance:      valueOr(s.MaxDistance, def.MaxDistance),
		DistanceGradient: valueOr(s.DistanceGradient, def.DistanceGradient),
		Volume:           valueOr(s.Volume, def.Volume),
	}
}

func spotlightToFile(s Spotlight) *SpotlightFile {
	return &SpotlightFile{
		Position:         s.Position,
		Angle:            s.Angle,
		AngleRange:       ptr(s.AngleRange),
		AngleGradient:    ptr(s.AngleGradient),
		Color:            colorToFile(s.Color),
		Intensity:        ptr(s.Intensity),
		MaxDistance:      ptr(s.MaxDistance),
		DistanceGradient: ptr(s.DistanceGradient),
		Volume:           ptr(s.Volume),
	}
}

func colorOr(c *ColorFile, def Color) Color {
	if c == nil {
		return def
	}
	return Color{R: c.R, G: c.G, B: c.B, A: valueOr(c.A, 1)}
}

func colorToFile(c Color) *ColorFile {
	return &ColorFile{R: c.R, G: c.G, B: c.B, A: ptr(c.A)}
}

func parsePhase(s string) Phase {
	if s == "up" || s == "Up" {
		return PhaseUp
	}
	return PhaseDown
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func ptr[T any](v T) *T {
	return &v
}
