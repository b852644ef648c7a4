package core

// Color represents a foreground color for a screen cell.
// The platform layer maps these to ANSI 256-color codes.
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
	ColorPink
	ColorBrown
	ColorPurple
)

// IconColors cycles through distinguishable foreground colors, one per
// palette slot. Index with IconColor rather than directly.
var IconColors = []Color{
	ColorWhite,        // sheep
	ColorBrightWhite,  // cow
	ColorPink,         // pig
	ColorYellow,       // chicken
	ColorBrown,        // horse
	ColorBrightCyan,   // rabbit
	ColorOrange,       // fox
	ColorRed,          // bear
	ColorBrightYellow, // sunflower
	ColorBrightMagenta,
	ColorBrightRed,
	ColorOrange,
	ColorOrange,
	ColorYellow,
	ColorPurple,
	ColorRed,
}

// IconColor returns the display color for palette slot i.
func IconColor(i int) Color {
	if i < 0 {
		return ColorDefault
	}
	return IconColors[i%len(IconColors)]
}
