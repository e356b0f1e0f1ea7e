// Package editor implements the level editor as plain state transitions
// over a level.Level. The terminal front end maps keys onto these calls
// and draws the result with the render package.
package editor

import (
	"fmt"
	"math"

	"github.com/vovakirdan/shadow-delivery/internal/geom"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/store"
)

// Mode decides what Place creates.
type Mode int

const (
	ModeSpawn Mode = iota
	ModeWaypoint
	ModeObstacle
	ModeLamp
	ModeProp
	modeCount
)

// String returns the mode name shown in the status line.
func (m Mode) String() string {
	switch m {
	case ModeSpawn:
		return "spawn"
	case ModeWaypoint:
		return "waypoint"
	case ModeObstacle:
		return "obstacle"
	case ModeLamp:
		return "lamp"
	case ModeProp:
		return "prop"
	default:
		return "unknown"
	}
}

// Next returns the following mode, wrapping around.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// Kind names the type of a selected entity.
type Kind int

const (
	KindNone Kind = iota
	KindWaypoint
	KindObstacle
	KindLamp
	KindProp
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindWaypoint:
		return "waypoint"
	case KindObstacle:
		return "obstacle"
	case KindLamp:
		return "lamp"
	case KindProp:
		return "prop"
	default:
		return "none"
	}
}

// Selection refers to one entity of the level.
type Selection struct {
	Kind Kind
	ID   store.ID
}

// Editing defaults.
const (
	DefaultStep       = 0.5
	DefaultDifficulty = 500
	RotateStep        = math.Pi / 12
)

// PropKinds lists the prop tags the editor cycles through.
var PropKinds = []string{"tree", "bush", "crate", "bench"}

// Editor holds the level being edited and the cursor state.
type Editor struct {
	Level  *level.Level
	Path   string
	Mode   Mode
	Cursor geom.Vec2
	Step   float64

	held     Selection
	grabAt   geom.Vec2 // held entity center minus cursor
	propKind int
	dirty    bool
}

// New starts editing l with the cursor on the spawn point. path is where
// Save writes; its extension picks the file format.
func New(l *level.Level, path string) *Editor {
	return &Editor{
		Level:  l,
		Path:   path,
		Cursor: l.SpawnPoint,
		Step:   DefaultStep,
	}
}

// Dirty reports whether the level changed since the last save.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// PropKind returns the tag new props get.
func (e *Editor) PropKind() string {
	return PropKinds[e.propKind]
}

// CycleMode switches to the next placement mode.
func (e *Editor) CycleMode() {
	e.Mode = e.Mode.Next()
}

// CyclePropKind switches the tag for new props.
func (e *Editor) CyclePropKind() {
	e.propKind = (e.propKind + 1) % len(PropKinds)
}

// MoveCursor moves the cursor by (dx, dy) steps. A held entity follows.
func (e *Editor) MoveCursor(dx, dy float64) {
	e.Cursor = e.Cursor.Add(geom.V(dx, dy).Scale(e.Step))
	if e.held.Kind != KindNone {
		e.moveTo(e.held, e.Cursor.Add(e.grabAt))
	}
}

// Pick returns the entity under the cursor. Small entities drawn on top
// win over large ones: lamps, then props, waypoints and obstacles.
func (e *Editor) Pick() (Selection, bool) {
	p := e.Cursor
	for id, lamp := range e.Level.Lamps.All() {
		if lamp.Collider.ContainsPoint(p) {
			return Selection{KindLamp, id}, true
		}
	}
	for id, prop := range e.Level.Props.All() {
		if prop.Collider.ContainsPoint(p) {
			return Selection{KindProp, id}, true
		}
	}
	for id, wp := range e.Level.Waypoints.All() {
		if wp.Collider.ContainsPoint(p) {
			return Selection{KindWaypoint, id}, true
		}
	}
	for id, o := range e.Level.Obstacles.All() {
		if o.Collider.ContainsPoint(p) {
			return Selection{KindObstacle, id}, true
		}
	}
	return Selection{}, false
}

// Holding returns the grabbed entity, if any.
func (e *Editor) Holding() (Selection, bool) {
	return e.held, e.held.Kind != KindNone
}

// Grab picks up the entity under the cursor so it moves with it.
func (e *Editor) Grab() bool {
	sel, ok := e.Pick()
	if !ok {
		return false
	}
	c, _ := e.collider(sel)
	e.held = sel
	e.grabAt = c.Pos().Sub(e.Cursor)
	return true
}

// Drop releases the held entity where it is.
func (e *Editor) Drop() {
	e.held = Selection{}
	e.grabAt = geom.Vec2{}
}

// ToggleGrab grabs the entity under the cursor or drops the held one.
func (e *Editor) ToggleGrab() bool {
	if e.held.Kind != KindNone {
		e.Drop()
		return false
	}
	return e.Grab()
}

// target is the held entity, or else the one under the cursor.
func (e *Editor) target() (Selection, bool) {
	if e.held.Kind != KindNone {
		return e.held, true
	}
	return e.Pick()
}

// Place creates an entity of the current mode at the cursor. In spawn
// mode it moves the spawn point instead.
func (e *Editor) Place() Selection {
	at := func(size geom.Vec2) geom.Collider {
		return geom.NewColliderAt(e.Cursor, size, geom.Angle{})
	}

	var sel Selection
	switch e.Mode {
	case ModeSpawn:
		e.Level.SpawnPoint = e.Cursor
	case ModeWaypoint:
		sel = Selection{KindWaypoint, e.Level.Waypoints.Insert(level.Waypoint{Collider: at(geom.V(2, 2))})}
	case ModeObstacle:
		sel = Selection{KindObstacle, e.Level.Obstacles.Insert(level.Obstacle{Collider: at(geom.V(2, 2))})}
	case ModeLamp:
		sel = Selection{KindLamp, e.Level.Lamps.Insert(level.NewLamp(e.Cursor))}
	case ModeProp:
		sel = Selection{KindProp, e.Level.Props.Insert(level.Prop{Collider: at(geom.V(1, 1)), Kind: e.PropKind()})}
	}
	e.dirty = true
	return sel
}

// Delete removes the held entity or the one under the cursor.
func (e *Editor) Delete() bool {
	sel, ok := e.target()
	if !ok {
		return false
	}
	switch sel.Kind {
	case KindWaypoint:
		_, ok = e.Level.Waypoints.Remove(sel.ID)
	case KindObstacle:
		_, ok = e.Level.Obstacles.Remove(sel.ID)
	case KindLamp:
		_, ok = e.Level.Lamps.Remove(sel.ID)
	case KindProp:
		_, ok = e.Level.Props.Remove(sel.ID)
	}
	if sel == e.held {
		e.Drop()
	}
	e.dirty = e.dirty || ok
	return ok
}

// Rotate turns the target entity by radians.
func (e *Editor) Rotate(radians float64) bool {
	return e.edit(func(c *geom.Collider) {
		c.Rotation = c.Rotation.Add(geom.FromRadians(radians))
	})
}

// Resize grows the target entity by (dw, dh) steps, keeping its center.
// Sizes never shrink below one step.
func (e *Editor) Resize(dw, dh float64) bool {
	return e.edit(func(c *geom.Collider) {
		size := c.Size().Add(geom.V(dw, dh).Scale(e.Step))
		size = geom.V(max(size.X, e.Step), max(size.Y, e.Step))
		*c = geom.NewColliderAt(c.Pos(), size, c.Rotation)
	})
}

// AdjustDifficulty changes the score at which the target obstacle
// appears by delta, not going below zero.
func (e *Editor) AdjustDifficulty(delta int64) bool {
	sel, ok := e.target()
	if !ok || sel.Kind != KindObstacle {
		return false
	}
	o := e.Level.Obstacles.Ptr(sel.ID)
	o.Difficulty = uint64(max(int64(o.Difficulty)+delta, 0))
	e.dirty = true
	return true
}

// ToggleHeadlights turns the target obstacle into a car or back into a
// building.
func (e *Editor) ToggleHeadlights() bool {
	sel, ok := e.target()
	if !ok || sel.Kind != KindObstacle {
		return false
	}
	o := e.Level.Obstacles.Ptr(sel.ID)
	if o.IsCar() {
		o.Lights = nil
	} else {
		o.Lights = []level.Spotlight{level.DefaultSpotlight()}
	}
	e.dirty = true
	return true
}

// AddPathPoint appends the cursor to the patrol path of the held
// obstacle, creating the path if needed.
func (e *Editor) AddPathPoint() bool {
	if e.held.Kind != KindObstacle {
		return false
	}
	o := e.Level.Obstacles.Ptr(e.held.ID)
	if o.Path == nil {
		p := level.NewPath()
		o.Path = &p
	}
	o.Path.Points = append(o.Path.Points, e.Cursor)
	e.dirty = true
	return true
}

// ClearPath removes the patrol path of the target obstacle.
func (e *Editor) ClearPath() bool {
	sel, ok := e.target()
	if !ok || sel.Kind != KindObstacle {
		return false
	}
	e.Level.Obstacles.Ptr(sel.ID).Path = nil
	e.dirty = true
	return true
}

// Save validates the level and writes it to Path. Validation problems do
// not prevent saving; they are returned so the caller can show them.
func (e *Editor) Save() ([]level.ValidationError, error) {
	if e.Path == "" {
		return nil, fmt.Errorf("editor: no file to save to")
	}
	issues := level.Validate(e.Level)
	if err := level.SaveFile(e.Path, e.Level); err != nil {
		return issues, fmt.Errorf("editor: %w", err)
	}
	e.dirty = false
	return issues, nil
}

// Status describes the editor state in one line.
func (e *Editor) Status() string {
	s := fmt.Sprintf("%s  mode:%s  cursor:(%.1f, %.1f)", e.Level.Name, e.Mode, e.Cursor.X, e.Cursor.Y)
	if e.Mode == ModeProp {
		s += "  prop:" + e.PropKind()
	}
	if sel, ok := e.Holding(); ok {
		s += fmt.Sprintf("  holding %s #%d", sel.Kind, sel.ID)
	} else if sel, ok := e.Pick(); ok {
		s += fmt.Sprintf("  over %s #%d", sel.Kind, sel.ID)
	}
	if e.dirty {
		s += "  [modified]"
	}
	return s
}

// edit applies fn to the collider of the target entity.
func (e *Editor) edit(fn func(c *geom.Collider)) bool {
	sel, ok := e.target()
	if !ok {
		return false
	}
	c := e.colliderPtr(sel)
	if c == nil {
		return false
	}
	fn(c)
	e.dirty = true
	return true
}

func (e *Editor) moveTo(sel Selection, pos geom.Vec2) {
	if c := e.colliderPtr(sel); c != nil {
		c.Teleport(pos)
		e.dirty = true
	}
}

func (e *Editor) collider(sel Selection) (geom.Collider, bool) {
	if c := e.colliderPtr(sel); c != nil {
		return *c, true
	}
	return geom.Collider{}, false
}

func (e *Editor) colliderPtr(sel Selection) *geom.Collider {
	switch sel.Kind {
	case KindWaypoint:
		if wp := e.Level.Waypoints.Ptr(sel.ID); wp != nil {
			return &wp.Collider
		}
	case KindObstacle:
		if o := e.Level.Obstacles.Ptr(sel.ID); o != nil {
			return &o.Collider
		}
	case KindLamp:
		if l := e.Level.Lamps.Ptr(sel.ID); l != nil {
			return &l.Collider
		}
	case KindProp:
		if p := e.Level.Props.Ptr(sel.ID); p != nil {
			return &p.Collider
		}
	}
	return nil
}
