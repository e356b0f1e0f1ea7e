package core

// Color is the foreground color of a screen cell. The platform maps each
// value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray

	// Ground shades, used only for lit road.
	ColorNight // barely visible ground
	ColorDusk
	ColorDim
	ColorLit
	ColorGlare
)

// Shades orders ground colors from darkest to brightest.
var Shades = []Color{ColorNight, ColorDusk, ColorDim, ColorLit, ColorGlare}

// ShadeFor picks the ground color for a light level in [0, 1].
func ShadeFor(level float64) Color {
	i := int(level * float64(len(Shades)))
	return Shades[max(0, min(i, len(Shades)-1))]
}
