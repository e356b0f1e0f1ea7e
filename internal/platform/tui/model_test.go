package tui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shadow-delivery/internal/core"
	"github.com/vovakirdan/shadow-delivery/internal/editor"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/sim"
	"github.com/vovakirdan/shadow-delivery/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newGame(t *testing.T, intensity float64, store *storage.Store) Model {
	t.Helper()
	l := level.New("yard")
	l.GlobalLight.Intensity = intensity
	return NewModel(GameOptions{
		Level:   l,
		Tuning:  sim.DefaultTuning(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7},
		Store:   store,
		Player:  "tester",
	})
}

// send feeds one message to m and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return got, cmd
}

// ticks sends n ticks spaced by step.
func ticks(t *testing.T, m Model, start time.Time, n int, step time.Duration) (Model, time.Time) {
	t.Helper()
	now := start
	for range n {
		now = now.Add(step)
		m, _ = send(t, m, TickMsg(now))
	}
	return m, now
}

func TestGameKeyMapAction(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"w", runes("w"), core.ActionAccelerate},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionAccelerate},
		{"s", runes("s"), core.ActionBrake},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"d", runes("d"), core.ActionRight},
		{"p", runes("p"), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"r", runes("r"), core.ActionRestart},
		{"q", runes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runes("x"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.expected {
				t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
			}
		})
	}
}

func TestStepDuration(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	nominal := time.Second / 30

	tests := []struct {
		name      string
		last, now time.Time
		expected  time.Duration
	}{
		{"first tick", time.Time{}, t0, nominal},
		{"real gap", t0, t0.Add(50 * time.Millisecond), 50 * time.Millisecond},
		{"stall is capped", t0, t0.Add(3 * time.Second), maxStep},
		{"clock went back", t0, t0.Add(-time.Second), nominal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stepDuration(tt.last, tt.now, 30); got != tt.expected {
				t.Errorf("stepDuration() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestModelDrives(t *testing.T) {
	m := newGame(t, 0, nil)
	if m.Visibility() != 0 {
		t.Fatalf("Visibility() in the dark = %g, expected 0", m.Visibility())
	}

	m, _ = send(t, m, runes("w"))
	m, _ = ticks(t, m, time.Now(), 3, 40*time.Millisecond)

	if speed := m.World().Player.Velocity.Len(); speed <= 0 {
		t.Errorf("speed after accelerating = %g, expected > 0", speed)
	}
	if m.World().Dead() {
		t.Error("player died in the dark")
	}
}

func TestModelSteersLeft(t *testing.T) {
	m := newGame(t, 0, nil)
	m, _ = send(t, m, runes("a"))
	m, _ = ticks(t, m, time.Now(), 2, 40*time.Millisecond)

	if r := m.World().Player.Collider.Rotation.Radians(); r <= 0 {
		t.Errorf("rotation after steering left = %g, expected > 0", r)
	}
}

func TestModelPause(t *testing.T) {
	m := newGame(t, 1, nil)
	m, _ = send(t, m, runes("p"))
	if !m.Paused() {
		t.Fatal("Paused() = false after pressing p")
	}

	m, _ = ticks(t, m, time.Now(), 5, 100*time.Millisecond)
	if m.World().Time != 0 {
		t.Errorf("world time while paused = %g, expected 0", m.World().Time)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() while paused does not show PAUSED")
	}

	m, _ = send(t, m, runes("p"))
	m, _ = ticks(t, m, time.Now(), 1, 100*time.Millisecond)
	if m.World().Time == 0 {
		t.Error("world did not advance after unpausing")
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store := openStore(t)
	m := newGame(t, 1, store)
	if m.Visibility() != 1 {
		t.Fatalf("Visibility() in daylight = %g, expected 1", m.Visibility())
	}

	// Full exposure drains 200 health per second.
	m, now := ticks(t, m, time.Now(), 10, 100*time.Millisecond)
	if !m.World().Dead() {
		t.Fatalf("player alive after a second in daylight, health %g", m.World().Player.Health)
	}
	m, now = ticks(t, m, now, 5, 100*time.Millisecond)

	runs, err := store.TopRuns("yard", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved runs = %d, expected 1", len(runs))
	}
	if runs[0].Player != "tester" || runs[0].Seed != 7 {
		t.Errorf("saved run = %+v", runs[0])
	}
	if runs[0].Survived < 400*time.Millisecond || runs[0].Survived > 700*time.Millisecond {
		t.Errorf("Survived = %v, expected about 500ms", runs[0].Survived)
	}

	m, _ = send(t, m, runes("r"))
	if m.World().Dead() || m.World().Player.Health != sim.DefaultTuning().MaxHealth {
		t.Fatal("restart did not start a fresh run")
	}

	m, _ = ticks(t, m, now, 10, 100*time.Millisecond)
	if n, _ := store.RunCount("yard"); n != 2 {
		t.Errorf("RunCount() after second death = %d, expected 2", n)
	}
}

func TestModelRestartOnlyWhenDead(t *testing.T) {
	m := newGame(t, 0, nil)
	m, _ = send(t, m, runes("w"))
	m, _ = ticks(t, m, time.Now(), 3, 40*time.Millisecond)
	before := m.World().Time

	m, _ = send(t, m, runes("r"))
	if m.World().Time != before {
		t.Errorf("restart while alive reset the world")
	}
}

func TestModelHighScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveRun(storage.Run{Level: "yard", Score: 2500}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := newGame(t, 0, store)
	if m.HighScore() != 2500 {
		t.Errorf("HighScore() = %d, expected 2500", m.HighScore())
	}
	if !strings.Contains(m.View(), "best $2,500") {
		t.Error("View() does not show the best score")
	}
}

func TestModelQuit(t *testing.T) {
	m := newGame(t, 0, nil)
	m, cmd := send(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if m.View() != "" {
		t.Error("View() after quit is not empty")
	}
}

func newEditorModel(t *testing.T) (EditorModel, *editor.Editor, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yard.yaml")
	ed := editor.New(level.New("yard"), path)
	return NewEditorModel(ed, 80, 24, nil), ed, path
}

func sendEditor(t *testing.T, m EditorModel, msg tea.Msg) (EditorModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(EditorModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected EditorModel", next)
	}
	return got, cmd
}

func TestEditorModelPlaceAndSave(t *testing.T) {
	m, ed, path := newEditorModel(t)

	m, _ = sendEditor(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if ed.Mode != editor.ModeWaypoint {
		t.Fatalf("Mode after tab = %v, expected waypoint", ed.Mode)
	}

	m, _ = sendEditor(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if ed.Level.Waypoints.Len() != 1 {
		t.Fatalf("waypoints after enter = %d, expected 1", ed.Level.Waypoints.Len())
	}
	if !strings.HasPrefix(m.Message(), "placed waypoint") {
		t.Errorf("Message() = %q, expected placed waypoint", m.Message())
	}

	m, _ = sendEditor(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.Message(), "saved") {
		t.Errorf("Message() after save = %q", m.Message())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("level file not written: %v", err)
	}
	if ed.Dirty() {
		t.Error("Dirty() after save = true")
	}

	loaded, err := level.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if loaded.Waypoints.Len() != 1 {
		t.Errorf("saved waypoints = %d, expected 1", loaded.Waypoints.Len())
	}
}

func obstacleWidth(ed *editor.Editor) float64 {
	for _, o := range ed.Level.Obstacles.All() {
		return o.Collider.Size().X
	}
	return 0
}

func TestEditorModelCursorAndResize(t *testing.T) {
	m, ed, _ := newEditorModel(t)
	start := ed.Cursor

	m, _ = sendEditor(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := ed.Cursor.X - start.X; got != ed.Step {
		t.Errorf("cursor moved %g, expected %g", got, ed.Step)
	}

	ed.Mode = editor.ModeObstacle
	m, _ = sendEditor(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	before := obstacleWidth(ed)

	m, _ = sendEditor(t, m, tea.KeyMsg{Type: tea.KeyShiftRight})
	if got := obstacleWidth(ed); got != before+ed.Step {
		t.Errorf("width after shift+right = %g, expected %g", got, before+ed.Step)
	}

	m, _ = sendEditor(t, m, runes("x"))
	if ed.Level.Obstacles.Len() != 0 {
		t.Errorf("obstacles after delete = %d, expected 0", ed.Level.Obstacles.Len())
	}
	m, _ = sendEditor(t, m, runes("x"))
	if m.Message() != "nothing to delete" {
		t.Errorf("Message() = %q, expected nothing to delete", m.Message())
	}
}

func TestEditorModelView(t *testing.T) {
	m, _, _ := newEditorModel(t)
	view := m.View()

	if !strings.ContainsRune(view, CursorChar) {
		t.Error("View() does not show the cursor")
	}
	if !strings.Contains(view, "mode:spawn") {
		t.Error("View() does not show the status line")
	}

	m, cmd := sendEditor(t, m, runes("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q did not quit the editor")
	}
}

func TestRunRows(t *testing.T) {
	rows := RunRows([]storage.Run{
		{Level: "town", Score: 12345, Deliveries: 3, Survived: 1500 * time.Millisecond, CreatedAt: time.Now()},
		{Level: "docks", Player: "ana", Score: 500},
	})

	if len(rows) != 2 {
		t.Fatalf("RunRows() = %d rows, expected 2", len(rows))
	}
	expected := []string{"#1", "12,345", "town", "-", "3", "1.5s"}
	for i, want := range expected {
		if rows[0][i] != want {
			t.Errorf("rows[0][%d] = %q, expected %q", i, rows[0][i], want)
		}
	}
	if rows[1][0] != "#2" || rows[1][3] != "ana" {
		t.Errorf("rows[1] = %v", rows[1])
	}
}

func TestScoreboardLevels(t *testing.T) {
	store := openStore(t)
	for _, r := range []storage.Run{{Level: "town", Score: 900}, {Level: "docks", Score: 400}, {Level: "town", Score: 100}} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "town", 120, 30)
	if got := strings.Join(m.levels, ","); got != AllLevels+",docks,town" {
		t.Fatalf("levels = %q", got)
	}
	if m.cursor != 2 || len(m.runs) != 2 {
		t.Fatalf("cursor = %d, runs = %d, expected 2 and 2", m.cursor, len(m.runs))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.cursor != 0 || len(m.runs) != 3 {
		t.Errorf("after tab cursor = %d, runs = %d, expected 0 and 3", m.cursor, len(m.runs))
	}
	if m.stats.HighScore != 900 {
		t.Errorf("all levels HighScore = %d, expected 900", m.stats.HighScore)
	}
	if !strings.Contains(m.View(), "DELIVERY LOG") {
		t.Error("View() does not show the title")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "", 60, 20)
	if len(m.levels) != 1 || len(m.runs) != 0 {
		t.Fatalf("levels = %v, runs = %d", m.levels, len(m.runs))
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("View() does not show the empty message")
	}
}

func TestSessionOptions(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	srv := &SSHServer{config: cfg, logger: log.New(io.Discard)}

	opts := srv.sessionOptions("ana", 100, 40)
	if opts.Player != "ana" || opts.Runtime.ScreenW != 100 || opts.Runtime.ScreenH != 40 {
		t.Errorf("sessionOptions() = %+v", opts)
	}
	if opts.Level != cfg.Level || opts.Runtime.TickRate != cfg.TickRate {
		t.Error("sessionOptions() does not carry the server level and tick rate")
	}

	// Sessions share the level but never mutate it.
	m := NewModel(opts)
	m.World().Level.Name = "changed"
	if cfg.Level.Name == "changed" {
		t.Error("session mutated the shared level")
	}
}

func TestSSHServerServeStops(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "runs.db")
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.Serve(ctx); err != nil {
		t.Errorf("Serve() = %v, expected nil after cancel", err)
	}
	if srv.Active() != 0 {
		t.Errorf("Active() = %d, expected 0", srv.Active())
	}
}

func TestNewSSHServerNeedsLevel(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Level = nil
	if _, err := NewSSHServer(cfg); err == nil {
		t.Error("NewSSHServer() without a level should fail")
	}
}
