// Package core holds the platform-neutral pieces shared by the renderer,
// the editor and the terminal front end: a character screen, its color
// palette, semantic input actions and runtime settings. It has no Bubble
// Tea dependency so everything drawn into it stays testable.
package core

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int // top-left corner
	W, H int
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}
