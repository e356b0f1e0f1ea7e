package core

import "time"

// Action is a semantic input, abstracted from physical keys.
type Action int

const (
	ActionNone       Action = iota
	ActionAccelerate        // W, Up
	ActionBrake             // S, Down
	ActionLeft              // A, Left
	ActionRight             // D, Right
	ActionPause             // P, Esc
	ActionRestart           // R
	ActionQuit              // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAccelerate:
		return "Accelerate"
	case ActionBrake:
		return "Brake"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions active during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the action is active this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Axis folds two opposing actions into -1, 0 or 1.
func (f InputFrame) Axis(negative, positive Action) float64 {
	v := 0.0
	if f.Has(negative) {
		v--
	}
	if f.Has(positive) {
		v++
	}
	return v
}

// HoldTime is how long a single key press counts as held. Terminals
// report key repeats but never releases, so holding a key arrives as a
// stream of presses that must bridge the gap before the repeat starts.
const HoldTime = 150 * time.Millisecond

// InputLatch turns key presses into held actions.
type InputLatch struct {
	hold  time.Duration
	now   time.Duration
	until map[Action]time.Duration
}

// NewInputLatch creates a latch that keeps each press active for hold.
// A non-positive hold uses HoldTime.
func NewInputLatch(hold time.Duration) *InputLatch {
	if hold <= 0 {
		hold = HoldTime
	}
	return &InputLatch{hold: hold, until: make(map[Action]time.Duration)}
}

// Press activates a for the hold duration, extending an earlier press.
func (l *InputLatch) Press(a Action) {
	if a == ActionNone {
		return
	}
	l.until[a] = l.now + l.hold
}

// Advance moves the latch clock forward and drops expired actions.
func (l *InputLatch) Advance(dt time.Duration) {
	l.now += max(dt, 0)
	for a, t := range l.until {
		if t <= l.now {
			delete(l.until, a)
		}
	}
}

// Held reports whether a is currently active.
func (l *InputLatch) Held(a Action) bool {
	_, ok := l.until[a]
	return ok
}

// Frame returns the active actions.
func (l *InputLatch) Frame() InputFrame {
	f := NewInputFrame()
	for a := range l.until {
		f.Set(a)
	}
	return f
}

// Release drops every held action.
func (l *InputLatch) Release() {
	clear(l.until)
}
