package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/vovakirdan/shadow-delivery/internal/core"
	"github.com/vovakirdan/shadow-delivery/internal/sim"
)

// HealthBarWidth is the number of cells in the HUD health bar.
const HealthBarWidth = 10

// HealthBar renders health out of maxHealth as filled and empty blocks.
func HealthBar(health, maxHealth float64) string {
	filled := 0
	if maxHealth > 0 {
		filled = int(math.Ceil(health / maxHealth * HealthBarWidth))
	}
	filled = min(max(filled, 0), HealthBarWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", HealthBarWidth-filled)
}

// HUD draws the status line on the top row.
func HUD(dst *core.Screen, w *sim.World, opts Options) {
	p := w.Player
	x := 1

	put := func(text string, color core.Color) {
		dst.DrawText(x, 0, text, color)
		x += len([]rune(text)) + 1
	}

	healthColor := core.ColorBrightGreen
	switch {
	case p.Health < 30:
		healthColor = core.ColorBrightRed
	case p.Health < 60:
		healthColor = core.ColorYellow
	}
	put("♥", core.ColorBrightRed)
	put(HealthBar(p.Health, w.Tuning().MaxHealth), healthColor)
	put(fmt.Sprintf("%3.0f", p.Health), healthColor)

	put("$"+humanize.Comma(int64(p.Score)), core.ColorBrightWhite)
	if p.ShadowBonus {
		put("☾ bonus", core.ColorBrightMagenta)
	}
	if r, dist, ok := targetArrow(w); ok {
		put(fmt.Sprintf("%c %.0fm", r, dist), core.ColorBrightGreen)
	}

	seenColor := core.ColorGray
	if opts.Visibility >= w.Tuning().ShadowMaxVisibility {
		seenColor = core.ColorOrange
	}
	put(fmt.Sprintf("seen %2.0f%%", opts.Visibility*100), seenColor)

	if opts.HighScore > 0 {
		right := "best $" + humanize.Comma(int64(opts.HighScore))
		dst.DrawText(dst.Width()-len(right)-1, 0, right, core.ColorGray)
	}
}

func drawDeath(dst *core.Screen, w *sim.World, opts Options) {
	survived, _ := w.DeathTime()
	lines := []string{
		"DELIVERY FAILED",
		"",
		fmt.Sprintf("$%s  ·  %s  ·  %.0fs", humanize.Comma(int64(w.Player.Score)),
			deliveries(w.Player.Deliveries), survived),
	}
	if opts.HighScore > 0 && w.Player.Score > opts.HighScore {
		lines = append(lines, "new best!")
	}
	lines = append(lines, "", "R restart  ·  Q quit")
	drawCenteredMessage(dst, core.ColorBrightRed, lines...)
}

func deliveries(n int) string {
	return english.Plural(n, "delivery", "deliveries")
}
