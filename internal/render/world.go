package render

import (
	"math"

	"github.com/vovakirdan/shadow-delivery/internal/core"
	"github.com/vovakirdan/shadow-delivery/internal/level"
	"github.com/vovakirdan/shadow-delivery/internal/lighting"
	"github.com/vovakirdan/shadow-delivery/internal/sim"
)

// Visual characters for rendering
const (
	BuildingChar = '█'
	CarChar      = '▓'
	LampChar     = 'o'
	WaypointChar = '◎'
	ParticleChar = '∙'
	SpawnChar    = 'S'
	PathChar     = '·'
)

// groundRunes shades the floor from dark to bright.
var groundRunes = []rune{' ', '·', '∙', '░', '▒'}

// propRunes maps known prop kinds to glyphs.
var propRunes = map[string]rune{
	"tree":  '♣',
	"bush":  '♠',
	"crate": '■',
	"bench": '≡',
}

// Options controls the overlays drawn on top of the world.
type Options struct {
	Visibility float64 // last measured exposure, shown in the HUD
	Paused     bool
	HighScore  uint64
	Level      string
}

// Frame draws the full game view: lit ground, level entities, the
// player, particles, the HUD and the pause or death overlay. scene may be
// nil, which skips ground shading.
func Frame(dst *core.Screen, w *sim.World, scene *lighting.Scene, opts Options) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() < 3 {
		return
	}

	area := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	vp := NewViewport(area, w.Camera.Center, w.Camera.FOV)

	if scene != nil {
		Ground(dst, vp, scene)
	}
	drawProps(dst, vp, w.Level)
	if wp, ok := w.Target(); ok {
		fillCollider(dst, vp, wp.Collider, '░', core.ColorBrightGreen)
		setVisible(dst, vp, wp.Collider.Pos(), WaypointChar, core.ColorBrightGreen)
	}
	drawLamps(dst, vp, w.Level, false)
	for _, o := range w.Obstacles.All() {
		drawObstacle(dst, vp, *o)
	}
	drawPlayer(dst, vp, w)
	drawParticles(dst, vp, w)

	HUD(dst, w, opts)

	switch {
	case w.Dead():
		drawDeath(dst, w, opts)
	case opts.Paused:
		drawCenteredMessage(dst, core.ColorBrightWhite, "PAUSED", "Press P to resume")
	}
}

// Ground shades every cell of the viewport by the light falling on it.
func Ground(dst *core.Screen, vp Viewport, scene *lighting.Scene) {
	for y := vp.Area.Y; y < vp.Area.Bottom(); y++ {
		for x := vp.Area.X; x < vp.Area.Right(); x++ {
			light := scene.LightAt(vp.ToWorld(x, y))
			if light < lighting.Threshold {
				continue
			}
			i := int(light * float64(len(groundRunes)))
			r := groundRunes[max(1, min(i, len(groundRunes)-1))]
			dst.SetColor(x, y, r, core.ShadeFor(light))
		}
	}
}

func drawProps(dst *core.Screen, vp Viewport, l *level.Level) {
	for _, p := range l.Props.All() {
		r, ok := propRunes[p.Kind]
		if !ok {
			r = '*'
		}
		setVisible(dst, vp, p.Collider.Pos(), r, core.ColorGreen)
	}
}

// drawLamps draws each lamp, bright when lit. allLit draws every lamp as
// lit, for the editor.
func drawLamps(dst *core.Screen, vp Viewport, l *level.Level, allLit bool) {
	for _, lamp := range l.Lamps.All() {
		color := core.ColorDarkGray
		if allLit || lamp.State.IsUp() {
			color = core.ColorBrightYellow
		}
		setVisible(dst, vp, lamp.Collider.Pos(), LampChar, color)
	}
}

func drawObstacle(dst *core.Screen, vp Viewport, o level.Obstacle) {
	if !o.IsCar() {
		fillCollider(dst, vp, o.Collider, BuildingChar, core.ColorGray)
		return
	}
	fillCollider(dst, vp, o.Collider, CarChar, core.ColorRed)
	setVisible(dst, vp, o.Collider.Pos(), Arrow(o.Collider.Rotation.Radians()), core.ColorBrightRed)
}

func drawPlayer(dst *core.Screen, vp Viewport, w *sim.World) {
	color := core.ColorBrightCyan
	if w.Dead() {
		color = core.ColorDarkGray
	}
	c := w.Player.Collider
	fillCollider(dst, vp, c, '▪', color)
	setVisible(dst, vp, c.Pos(), Arrow(c.Rotation.Radians()), color)
}

func drawParticles(dst *core.Screen, vp Viewport, w *sim.World) {
	for _, p := range w.Particles.All() {
		color := paletteColor(p.Color)
		if p.Text == "" {
			setVisible(dst, vp, p.Position, ParticleChar, color)
			continue
		}
		x, y := vp.ToScreen(p.Position)
		if vp.Area.Contains(x, y) {
			dst.DrawText(x-len(p.Text)/2, y, p.Text, color)
		}
	}
}

// paletteColor maps a light color to the nearest terminal color by hue.
func paletteColor(c level.Color) core.Color {
	hi := math.Max(c.R, math.Max(c.G, c.B))
	lo := math.Min(c.R, math.Min(c.G, c.B))
	if hi-lo < 0.15 {
		if hi < 0.5 {
			return core.ColorGray
		}
		return core.ColorBrightWhite
	}
	switch {
	case c.R >= c.G && c.R >= c.B:
		if c.G > 0.5*c.R {
			return core.ColorYellow
		}
		return core.ColorRed
	case c.G >= c.B:
		if c.B > 0.6*c.G {
			return core.ColorCyan
		}
		return core.ColorGreen
	default:
		if c.G > 0.6*c.B {
			return core.ColorCyan
		}
		return core.ColorBlue
	}
}

// Editor draws a whole level for editing: every obstacle regardless of
// difficulty, every waypoint, patrol paths and the spawn point.
func Editor(dst *core.Screen, l *level.Level, vp Viewport, scene *lighting.Scene) {
	if scene != nil {
		Ground(dst, vp, scene)
	}
	drawProps(dst, vp, l)
	for _, wp := range l.Waypoints.All() {
		fillCollider(dst, vp, wp.Collider, '░', core.ColorGreen)
		setVisible(dst, vp, wp.Collider.Pos(), WaypointChar, core.ColorBrightGreen)
	}
	for _, o := range l.Obstacles.All() {
		if o.Path != nil {
			drawPath(dst, vp, *o.Path)
		}
	}
	drawLamps(dst, vp, l, true)
	for _, o := range l.Obstacles.All() {
		drawObstacle(dst, vp, *o)
		if o.Difficulty > 0 {
			x, y := vp.ToScreen(o.Collider.Pos())
			dst.SetColor(x+1, y, '+', core.ColorMagenta)
		}
	}
	setVisible(dst, vp, l.SpawnPoint, SpawnChar, core.ColorBrightCyan)
}

func drawPath(dst *core.Screen, vp Viewport, p level.Path) {
	n := len(p.Points)
	for i, a := range p.Points {
		b := p.Points[(i+1)%n]
		steps := max(1, int(a.Dist(b)*vp.rowScale()*CellAspect))
		for s := 0; s <= steps; s++ {
			setVisible(dst, vp, a.Lerp(b, float64(s)/float64(steps)), PathChar, core.ColorMagenta)
		}
	}
	for _, pt := range p.Points {
		setVisible(dst, vp, pt, '◇', core.ColorMagenta)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, color core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW, boxH := width+4, len(lines)+2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i, l, color)
	}
}

// targetArrow returns the direction glyph and distance from the player to
// the active waypoint.
func targetArrow(w *sim.World) (rune, float64, bool) {
	wp, ok := w.Target()
	if !ok {
		return 0, 0, false
	}
	delta := wp.Collider.Pos().Sub(w.Player.Collider.Pos())
	return Arrow(delta.Arg()), delta.Len(), true
}
