package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/shadow-delivery/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show level list sidebar
	sidebarWidth       = 20  // Width of level list sidebar
	maxRuns            = 100 // Max runs to load
)

// AllLevels is the scoreboard tab that lists runs of every level.
const AllLevels = "all levels"

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLevel, k.PrevLevel},
		{k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
type ScoreboardModel struct {
	levels      []string // AllLevels followed by every level with runs
	cursor      int      // Currently selected level index
	store       *storage.Store
	runs        []storage.Run
	stats       storage.LevelStats
	err         error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard opened on level, or on every
// level when level is empty.
func NewScoreboardModel(store *storage.Store, level string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		levels:      []string{AllLevels},
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		if names, err := store.Levels(); err == nil {
			m.levels = append(m.levels, names...)
		}
	}
	for i, name := range m.levels {
		if name == level {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 10},
		{Title: "Level", Width: 12},
		{Title: "Player", Width: 10},
		{Title: "Drops", Width: 6},
		{Title: "Survived", Width: 9},
		{Title: "When", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, stats, help and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// selected returns the level filter for storage queries.
func (m ScoreboardModel) selected() string {
	if m.levels[m.cursor] == AllLevels {
		return ""
	}
	return m.levels[m.cursor]
}

// loadRuns loads the best runs of the selected level.
func (m *ScoreboardModel) loadRuns() {
	m.runs, m.stats, m.err = nil, storage.LevelStats{}, nil
	if m.store != nil {
		m.runs, m.err = m.store.TopRuns(m.selected(), maxRuns)
		if m.err == nil && len(m.runs) > 0 {
			m.stats, m.err = m.store.Stats(m.selected())
		}
	}
	m.table.SetRows(RunRows(m.runs))

	// Reset cursor to top
	m.table.GotoTop()
}

// RunRows formats runs as scoreboard table rows, ranked in order.
func RunRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			humanize.Comma(int64(r.Score)),
			r.Level,
			player,
			fmt.Sprintf("%d", r.Deliveries),
			fmt.Sprintf("%.1fs", r.Survived.Seconds()),
			humanize.Time(r.CreatedAt),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel):
			m.cursor = (m.cursor + 1) % len(m.levels)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			m.cursor = (m.cursor + len(m.levels) - 1) % len(m.levels)
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(RunRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("DELIVERY LOG - %s", m.levels[m.cursor])
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with a sidebar for level selection.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Levels\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, name := range m.levels {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(name, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the scoreboard with level tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabLine := fmt.Sprintf("< %s >", m.levels[m.cursor])
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table, a stats line or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not read run history:\n" + m.err.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nDeliver something to set a high score!")
	}

	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return m.table.View() + "\n" + statsStyle.Render(StatsLine(m.stats))
}

// StatsLine summarizes a level's history in one line.
func StatsLine(s storage.LevelStats) string {
	return fmt.Sprintf("%s runs · best $%s · avg $%s · %s deliveries · longest %.0fs · last %s",
		humanize.Comma(int64(s.Runs)),
		humanize.Comma(int64(s.HighScore)),
		humanize.Comma(int64(s.AvgScore)),
		humanize.Comma(int64(s.TotalDeliveries)),
		s.LongestSurvival.Seconds(),
		humanize.Time(s.LastPlayed),
	)
}

// IsQuitting returns true if the user closed the scoreboard.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(store *storage.Store, level string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, level, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
