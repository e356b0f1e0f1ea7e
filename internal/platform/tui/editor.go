package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shadow-delivery/internal/core"
	"github.com/vovakirdan/shadow-delivery/internal/editor"
	"github.com/vovakirdan/shadow-delivery/internal/lighting"
	"github.com/vovakirdan/shadow-delivery/internal/render"
)

// Editor zoom limits, in world units across the screen height.
const (
	DefaultEditorFOV = 30
	minEditorFOV     = 5
	maxEditorFOV     = 120
)

// CursorChar marks the editor cursor.
const CursorChar = '✛'

// EditorModel is the Bubble Tea model for the level editor.
type EditorModel struct {
	editor   *editor.Editor
	screen   *core.Screen
	scene    *lighting.Scene
	logger   *log.Logger
	keys     EditorKeyMap
	help     help.Model
	fov      float64
	message  string
	width    int
	height   int
	quitting bool
}

// NewEditorModel creates an editor view of ed sized to the terminal.
func NewEditorModel(ed *editor.Editor, width, height int, logger *log.Logger) EditorModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := EditorModel{
		editor: ed,
		screen: core.NewScreen(width, max(height-2, 0)),
		logger: logger,
		keys:   DefaultEditorKeyMap(),
		help:   help.New(),
		fov:    DefaultEditorFOV,
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.relight()
	return m
}

// Init initializes the editor model.
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the editor.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-2, 0))
		m.help.Width = msg.Width
	}
	return m, nil
}

// handleKey maps one key press onto an editor operation.
func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ed := m.editor
	m.message = ""
	changed := false

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if ed.Dirty() {
			m.logger.Warn("editor closed with unsaved changes", "path", ed.Path)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Wider):
		changed = ed.Resize(1, 0)
	case key.Matches(msg, m.keys.Narrower):
		changed = ed.Resize(-1, 0)
	case key.Matches(msg, m.keys.Taller):
		changed = ed.Resize(0, 1)
	case key.Matches(msg, m.keys.Shorter):
		changed = ed.Resize(0, -1)

	case key.Matches(msg, m.keys.Up):
		ed.MoveCursor(0, 1)
		_, changed = ed.Holding()
	case key.Matches(msg, m.keys.Down):
		ed.MoveCursor(0, -1)
		_, changed = ed.Holding()
	case key.Matches(msg, m.keys.Left):
		ed.MoveCursor(-1, 0)
		_, changed = ed.Holding()
	case key.Matches(msg, m.keys.Right):
		ed.MoveCursor(1, 0)
		_, changed = ed.Holding()

	case key.Matches(msg, m.keys.Mode):
		ed.CycleMode()
	case key.Matches(msg, m.keys.PropKind):
		ed.CyclePropKind()

	case key.Matches(msg, m.keys.Place):
		sel := ed.Place()
		changed = true
		if sel.Kind == editor.KindNone {
			m.message = "spawn point moved"
		} else {
			m.message = fmt.Sprintf("placed %s #%d", sel.Kind, sel.ID)
		}
	case key.Matches(msg, m.keys.Grab):
		if ed.ToggleGrab() {
			sel, _ := ed.Holding()
			m.message = fmt.Sprintf("holding %s #%d", sel.Kind, sel.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		changed = ed.Delete()
		if !changed {
			m.message = "nothing to delete"
		}

	case key.Matches(msg, m.keys.RotateCCW):
		changed = ed.Rotate(editor.RotateStep)
	case key.Matches(msg, m.keys.RotateCW):
		changed = ed.Rotate(-editor.RotateStep)

	case key.Matches(msg, m.keys.Harder):
		changed = ed.AdjustDifficulty(editor.DefaultDifficulty)
	case key.Matches(msg, m.keys.Easier):
		changed = ed.AdjustDifficulty(-editor.DefaultDifficulty)
	case key.Matches(msg, m.keys.Lights):
		changed = ed.ToggleHeadlights()
	case key.Matches(msg, m.keys.PathPoint):
		changed = ed.AddPathPoint()
		if !changed {
			m.message = "grab an obstacle to edit its path"
		}
	case key.Matches(msg, m.keys.ClearPath):
		changed = ed.ClearPath()

	case key.Matches(msg, m.keys.ZoomIn):
		m.fov = max(m.fov/1.25, minEditorFOV)
	case key.Matches(msg, m.keys.ZoomOut):
		m.fov = min(m.fov*1.25, maxEditorFOV)
	}

	if changed {
		m.relight()
	}
	return m, nil
}

// save writes the level and reports validation problems in the status line.
func (m *EditorModel) save() {
	issues, err := m.editor.Save()
	if err != nil {
		m.message = err.Error()
		m.logger.Error("could not save level", "path", m.editor.Path, "error", err)
		return
	}
	m.logger.Info("level saved", "path", m.editor.Path, "issues", len(issues))
	if len(issues) == 0 {
		m.message = "saved " + m.editor.Path
		return
	}
	m.message = fmt.Sprintf("saved with %d issue(s): %s", len(issues), issues[0].Message)
}

// relight rebuilds the lighting preview after the level changed.
func (m *EditorModel) relight() {
	m.scene = lighting.CaptureLevel(m.editor.Level)
}

// viewport returns the view centered on the cursor.
func (m EditorModel) viewport() render.Viewport {
	area := core.NewRect(0, 0, m.screen.Width(), m.screen.Height())
	return render.NewViewport(area, m.editor.Cursor, m.fov)
}

// View renders the level, the status line and the key help.
func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	vp := m.viewport()
	render.Editor(m.screen, m.editor.Level, vp, m.scene)
	x, y := vp.ToScreen(m.editor.Cursor)
	m.screen.SetColor(x, y, CursorChar, core.ColorBrightYellow)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	status := m.editor.Status()
	if m.message != "" {
		status += "  " + m.message
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Message returns the last status message.
func (m EditorModel) Message() string {
	return m.message
}

// RunEditor starts the editor program on ed.
func RunEditor(ed *editor.Editor, width, height int, logger *log.Logger) error {
	p := tea.NewProgram(
		NewEditorModel(ed, width, height, logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
