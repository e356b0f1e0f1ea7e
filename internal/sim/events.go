package sim

import "github.com/vovakirdan/shadow-delivery/internal/geom"

// EventKind names a sound cue raised by the simulation.
type EventKind int

const (
	EventBounce EventKind = iota // player hit an obstacle
	EventHurt                    // player is being seen
	EventDeliver                 // waypoint reached
	EventDeath                   // health ran out
)

// String returns a human-readable name for the event.
func (k EventKind) String() string {
	switch k {
	case EventBounce:
		return "bounce"
	case EventHurt:
		return "hurt"
	case EventDeliver:
		return "deliver"
	case EventDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Event is a cue for the platform layer, which may play a sound or log it.
type Event struct {
	Kind     EventKind
	Position geom.Vec2
	Score    uint64 // points awarded, for EventDeliver
}
