package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a 2D character buffer. Renderers draw into it with rune and
// color operations and the platform turns it into terminal output.
type Screen struct {
	width  int
	height int
	cells  []Cell
}

// NewScreen creates a blank screen with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving the top-left content.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height && s.cells != nil {
		return
	}

	old, oldW, oldH := s.cells, s.width, s.height
	s.width, s.height = width, height
	s.cells = make([]Cell, width*height)
	s.Clear()

	for y := range min(oldH, height) {
		copy(s.cells[y*width:y*width+min(oldW, width)], old[y*oldW:])
	}
}

// Clear fills the screen with blank cells.
func (s *Screen) Clear() {
	s.Fill(blank)
}

// Fill sets every cell to c.
func (s *Screen) Fill(c Cell) {
	for i := range s.cells {
		s.cells[i] = c
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// SetCell places c at the given position. Out-of-bounds writes are ignored.
func (s *Screen) SetCell(x, y int, c Cell) {
	if s.inside(x, y) {
		s.cells[y*s.width+x] = c
	}
}

// GetCell returns the cell at the given position, or a blank cell when
// out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blank
	}
	return s.cells[y*s.width+x]
}

// Set places a rune in the default color.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, Cell{Rune: r})
}

// SetColor places a rune in the given color.
func (s *Screen) SetColor(x, y int, r rune, c Color) {
	s.SetCell(x, y, Cell{Rune: r, Color: c})
}

// Get returns the rune at the given position.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// DrawText writes text horizontally from (x, y), one cell per rune.
// Runes beyond the screen edge are clipped.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColor(x, y, r, c)
		x++
	}
}

// DrawTextCentered draws text centered horizontally on row y.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	s.DrawText((s.width-utf8.RuneCountInString(text))/2, y, text, c)
}

// DrawRect fills r with the given rune and color.
func (s *Screen) DrawRect(r Rect, fill rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetColor(x, y, fill, c)
		}
	}
}

// DrawBox draws the outline of r with box-drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		s.SetColor(x, r.Y, '─', c)
		s.SetColor(x, bottom, '─', c)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetColor(r.X, y, '│', c)
		s.SetColor(right, y, '│', c)
	}
	s.SetColor(r.X, r.Y, '┌', c)
	s.SetColor(right, r.Y, '┐', c)
	s.SetColor(r.X, bottom, '└', c)
	s.SetColor(right, bottom, '┘', c)
}

// DrawHLine draws a horizontal line of length cells starting at (x, y).
func (s *Screen) DrawHLine(x, y, length int, r rune, c Color) {
	for i := range length {
		s.SetColor(x+i, y, r, c)
	}
}

// String returns the screen text without colors, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)
	for y := range s.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns row y as a string. Out-of-range rows are blank.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
