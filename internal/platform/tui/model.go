package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shadow-delivery/internal/core"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/lighting"
	"github.com/vovakirdan/shadow-delivery/internal/render"
	"github.com/vovakirdan/shadow-delivery/internal/sim"
	"github.com/vovakirdan/shadow-delivery/internal/storage"
)

// GameOptions configures a game session.
type GameOptions struct {
	Level   *level.Level
	Tuning  sim.Tuning
	Runtime core.RuntimeConfig
	Store   *storage.Store // optional run history
	Logger  *log.Logger    // optional
	Player  string         // recorded with each run
}

// Model is the Bubble Tea model for one driving session.
type Model struct {
	world      *sim.World
	scene      *lighting.Scene
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	player     string
	keys       GameKeyMap
	help       help.Model
	latch      *core.InputLatch
	lastTick   time.Time
	visibility float64 // measured after the previous tick
	highScore  uint64
	paused     bool
	quitting   bool
	runSaved   bool // whether the current run has been recorded
}

// NewModel creates a game session on opts.Level.
func NewModel(opts GameOptions) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		world:  sim.NewWorld(opts.Level, opts.Tuning, cfg.Seed),
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  opts.Store,
		logger: logger,
		config: cfg,
		player: opts.Player,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		latch:  core.NewInputLatch(core.HoldTime),
	}
	m.measure()
	m.loadHighScore()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("run started", "level", m.world.Level.Name, "seed", m.config.Seed, "player", m.player)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionPause:
		if !m.world.Dead() {
			m.paused = !m.paused
			m.latch.Release()
		}
	case core.ActionRestart:
		if m.world.Dead() {
			m.restart()
		}
	case core.ActionNone:
		if msg.String() == "ctrl+p" {
			m.saveScreenshot()
		}
	default:
		if !m.paused {
			m.latch.Press(action)
		}
	}
	return m, nil
}

// handleTick advances the world by the real time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := stepDuration(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	if m.paused {
		return m, tickCmd(m.config.TickRate)
	}

	m.latch.Advance(dt)
	m.step(m.latch.Frame(), dt.Seconds())
	return m, tickCmd(m.config.TickRate)
}

// step runs one simulation update. The visibility fed in is the one
// measured after the previous update.
func (m *Model) step(input core.InputFrame, dt float64) {
	control := sim.PlayerControl{
		Accelerate: input.Axis(core.ActionBrake, core.ActionAccelerate),
		Turn:       input.Axis(core.ActionRight, core.ActionLeft),
	}
	m.world.Update(control, m.visibility, dt)
	m.measure()

	for _, e := range m.world.Events() {
		m.logEvent(e)
	}

	if m.world.Dead() && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}
}

// measure captures the lights of the current world and the exposure of
// the player in them.
func (m *Model) measure() {
	m.scene = lighting.Capture(m.world)
	m.visibility = m.scene.Visibility(m.world.Player.Collider)
}

func (m *Model) logEvent(e sim.Event) {
	switch e.Kind {
	case sim.EventDeliver:
		m.logger.Debug("delivered", "score", e.Score, "total", m.world.Player.Score, "x", e.Position.X, "y", e.Position.Y)
	case sim.EventDeath:
		m.logger.Info("player died", "score", m.world.Player.Score, "deliveries", m.world.Player.Deliveries, "time", m.world.Time)
	default:
		m.logger.Debug("cue", "event", e.Kind)
	}
}

// restart begins a new run on the same level.
func (m *Model) restart() {
	m.world.Reset()
	m.latch.Release()
	m.runSaved = false
	m.paused = false
	m.measure()
	m.logger.Info("run restarted", "level", m.world.Level.Name)
}

// saveRun records the finished run. Storage failures are logged and the
// game continues.
func (m *Model) saveRun() {
	survived, _ := m.world.DeathTime()
	p := m.world.Player
	if p.Score > m.highScore {
		m.highScore = p.Score
	}
	if m.store == nil {
		return
	}

	run, err := m.store.SaveRun(storage.Run{
		Level:      m.world.Level.Name,
		Player:     m.player,
		Score:      p.Score,
		Deliveries: p.Deliveries,
		Survived:   time.Duration(survived * float64(time.Second)),
		Seed:       m.config.Seed,
	})
	if err != nil {
		m.logger.Error("could not save run", "error", err)
		return
	}
	m.logger.Info("run saved", "id", run.ID, "score", run.Score, "deliveries", run.Deliveries)
}

func (m *Model) loadHighScore() {
	if m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.world.Level.Name)
	if err != nil {
		m.logger.Warn("could not read high score", "error", err)
		return
	}
	m.highScore = best
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	render.Frame(m.screen, m.world, m.scene, m.options())

	dir := filepath.Join(os.Getenv("HOME"), ".shadow", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.world.Level.Name, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m Model) options() render.Options {
	return render.Options{
		Visibility: m.visibility,
		Paused:     m.paused,
		HighScore:  m.highScore,
		Level:      m.world.Level.Name,
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	render.Frame(m.screen, m.world, m.scene, m.options())
	out := RenderScreen(m.screen)

	// The key help replaces the bottom row while paused.
	if m.paused && m.screen.Height() > 1 {
		if i := strings.LastIndexByte(out, '\n'); i >= 0 {
			helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
			out = out[:i+1] + helpStyle.Render(m.help.View(m.keys))
		}
	}
	return out
}

// World returns the running simulation.
func (m Model) World() *sim.World {
	return m.world
}

// Paused reports whether the simulation is paused.
func (m Model) Paused() bool {
	return m.paused
}

// Visibility returns the exposure measured after the last tick.
func (m Model) Visibility() float64 {
	return m.visibility
}

// HighScore returns the best score known for the level.
func (m Model) HighScore() uint64 {
	return m.highScore
}

// Run starts the Bubble Tea program with a new game session.
func Run(opts GameOptions) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
