// Package tui runs the delivery game and the level editor in the terminal
// with Bubble Tea, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// maxStep bounds the time one tick may simulate, so a stalled terminal
// does not fling the car through buildings.
const maxStep = 250 * time.Millisecond

// stepDuration returns the time elapsed between two ticks. The first tick
// and clock jumps backwards fall back to one nominal frame.
func stepDuration(last, now time.Time, tickRate int) time.Duration {
	nominal := time.Second / time.Duration(max(tickRate, 1))
	if last.IsZero() {
		return nominal
	}
	dt := now.Sub(last)
	if dt <= 0 {
		return nominal
	}
	return min(dt, maxStep)
}
