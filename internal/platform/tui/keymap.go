package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shadow-delivery/internal/core"
)

// GameKeyMap defines the key bindings used while driving.
type GameKeyMap struct {
	Accelerate key.Binding
	Brake      key.Binding
	Left       key.Binding
	Right      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accelerate, k.Brake, k.Left, k.Right, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Accelerate, k.Brake, k.Left, k.Right},
		{k.Pause, k.Restart, k.Quit},
	}
}

// DefaultGameKeyMap returns the default driving key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Accelerate: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "accelerate"),
		),
		Brake: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "brake"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "steer left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "steer right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
func (k GameKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Accelerate):
		return core.ActionAccelerate
	case key.Matches(msg, k.Brake):
		return core.ActionBrake
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// EditorKeyMap defines the key bindings of the level editor.
type EditorKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Mode      key.Binding
	PropKind  key.Binding
	Place     key.Binding
	Grab      key.Binding
	Delete    key.Binding
	RotateCCW key.Binding
	RotateCW  key.Binding
	Wider     key.Binding
	Narrower  key.Binding
	Taller    key.Binding
	Shorter   key.Binding
	Harder    key.Binding
	Easier    key.Binding
	Lights    key.Binding
	PathPoint key.Binding
	ClearPath key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Place, k.Grab, k.Delete, k.Save, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.ZoomIn, k.ZoomOut},
		{k.Mode, k.PropKind, k.Place, k.Grab, k.Delete},
		{k.RotateCCW, k.RotateCW, k.Wider, k.Narrower, k.Taller, k.Shorter},
		{k.Harder, k.Easier, k.Lights, k.PathPoint, k.ClearPath},
		{k.Save, k.Help, k.Quit},
	}
}

// DefaultEditorKeyMap returns the default editor key bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Mode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "mode"),
		),
		PropKind: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "prop kind"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "place"),
		),
		Grab: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "grab/drop"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete", "backspace"),
			key.WithHelp("x", "delete"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "rotate left"),
		),
		RotateCW: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "rotate right"),
		),
		Wider: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "wider"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "narrower"),
		),
		Taller: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "taller"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "shorter"),
		),
		Harder: key.NewBinding(
			key.WithKeys("pgup", "}"),
			key.WithHelp("}", "later reveal"),
		),
		Easier: key.NewBinding(
			key.WithKeys("pgdown", "{"),
			key.WithHelp("{", "earlier reveal"),
		),
		Lights: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "headlights"),
		),
		PathPoint: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "path point"),
		),
		ClearPath: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "clear path"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("Z"),
			key.WithHelp("Z", "zoom out"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
