// Package render draws the game world and the level editor onto a
// core.Screen as top-down ASCII art.
package render

import (
	"math"

	"github.com/vovakirdan/shadow-delivery/internal/core"
	"github.com/vovakirdan/shadow-delivery/internal/geom"
)

// CellAspect is how many columns make up one row's worth of world
// distance. Terminal cells are about twice as tall as they are wide.
const CellAspect = 2.0

// Viewport maps world coordinates onto a region of the screen. World Y
// grows upward; screen rows grow downward.
type Viewport struct {
	Area   core.Rect
	Center geom.Vec2
	FOV    float64 // world units spanned by the area's height
}

// NewViewport creates a viewport showing fov world units vertically
// around center. A non-positive fov shows one unit per row.
func NewViewport(area core.Rect, center geom.Vec2, fov float64) Viewport {
	if fov <= 0 {
		fov = float64(area.H)
	}
	return Viewport{Area: area, Center: center, FOV: fov}
}

// rowScale returns screen rows per world unit.
func (v Viewport) rowScale() float64 {
	if v.FOV <= 0 || v.Area.H <= 0 {
		return 1
	}
	return float64(v.Area.H) / v.FOV
}

// ToScreen returns the cell containing world point p.
func (v Viewport) ToScreen(p geom.Vec2) (x, y int) {
	s := v.rowScale()
	cx, cy := v.Area.Center()
	x = cx + int(math.Floor((p.X-v.Center.X)*s*CellAspect+0.5))
	y = cy - int(math.Floor((p.Y-v.Center.Y)*s+0.5))
	return x, y
}

// ToWorld returns the world position at the center of cell (x, y).
func (v Viewport) ToWorld(x, y int) geom.Vec2 {
	s := v.rowScale()
	cx, cy := v.Area.Center()
	return geom.V(
		v.Center.X+float64(x-cx)/(s*CellAspect),
		v.Center.Y-float64(y-cy)/s,
	)
}

// Visible reports whether world point p falls inside the area.
func (v Viewport) Visible(p geom.Vec2) bool {
	return v.Area.Contains(v.ToScreen(p))
}

// fillCollider paints every cell whose center lies inside c. Shapes too
// small to cover a cell center still get their center cell.
func fillCollider(dst *core.Screen, v Viewport, c geom.Collider, r rune, color core.Color) {
	b := c.Bounds()
	x0, y0 := v.ToScreen(geom.V(b.Min.X, b.Max.Y))
	x1, y1 := v.ToScreen(geom.V(b.Max.X, b.Min.Y))
	x0, y0 = max(x0, v.Area.X), max(y0, v.Area.Y)
	x1, y1 = min(x1, v.Area.Right()-1), min(y1, v.Area.Bottom()-1)

	painted := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if c.ContainsPoint(v.ToWorld(x, y)) {
				dst.SetColor(x, y, r, color)
				painted = true
			}
		}
	}
	if !painted {
		setVisible(dst, v, c.Pos(), r, color)
	}
}

// setVisible draws a single rune at world point p if it is on screen.
func setVisible(dst *core.Screen, v Viewport, p geom.Vec2, r rune, color core.Color) {
	x, y := v.ToScreen(p)
	if v.Area.Contains(x, y) {
		dst.SetColor(x, y, r, color)
	}
}

var arrows = []rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// Arrow returns the arrow glyph closest to the direction of angle, in
// radians counter-clockwise from +X.
func Arrow(angle float64) rune {
	i := int(math.Round(angle / (math.Pi / 4)))
	return arrows[((i%8)+8)%8]
}
