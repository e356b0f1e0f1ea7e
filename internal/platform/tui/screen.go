package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shadow-delivery/internal/core"
)

// ansi holds the 256-color foreground code of each screen color.
var ansi = [...]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorDarkGray:      "240",
	core.ColorNight:         "235",
	core.ColorDusk:          "239",
	core.ColorDim:           "180",
	core.ColorLit:           "222",
	core.ColorGlare:         "229",
}

// Lit ground also tints the cell background, stepping up the grayscale
// ramp from glowFloor by glowStep per shade.
const (
	glowFloor = 232
	glowStep  = 3
)

var styles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	m := make(map[core.Color]lipgloss.Style, len(ansi))
	for c, code := range ansi {
		st := lipgloss.NewStyle()
		if code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		m[core.Color(c)] = st
	}
	// The darkest shade is unlit road and keeps the terminal background.
	for i, c := range core.Shades[1:] {
		m[c] = m[c].Background(lipgloss.Color(strconv.Itoa(glowFloor + glowStep*(i+1))))
	}
	return m
}

// styleFor returns the style of a screen color, plain for unknown ones.
func styleFor(c core.Color) lipgloss.Style {
	if st, ok := styles[c]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// RenderScreen turns a screen into terminal text. Each run of cells
// sharing a color is styled once.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	run := make([]rune, 0, s.Width())
	for y := range rows {
		var sb strings.Builder
		color := core.ColorDefault
		flush := func() {
			if len(run) > 0 {
				sb.WriteString(styleFor(color).Render(string(run)))
				run = run[:0]
			}
		}
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				flush()
				color = cell.Color
			}
			run = append(run, cell.Rune)
		}
		flush()
		rows[y] = sb.String()
	}
	return strings.Join(rows, "\n")
}
