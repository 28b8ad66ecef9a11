package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
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
)

// ansiCodes maps ANSI 256-color codes to the predefined colors.
var ansiCodes = map[string]Color{
	"1":   ColorRed,
	"2":   ColorGreen,
	"3":   ColorYellow,
	"4":   ColorBlue,
	"5":   ColorMagenta,
	"6":   ColorCyan,
	"7":   ColorWhite,
	"9":   ColorBrightRed,
	"10":  ColorBrightGreen,
	"11":  ColorBrightYellow,
	"12":  ColorBrightBlue,
	"13":  ColorBrightMagenta,
	"14":  ColorBrightCyan,
	"15":  ColorBrightWhite,
	"208": ColorOrange,
	"245": ColorGray,
}

// ParseColor maps a theme color string (an ANSI code such as "14") to a
// Color. Unknown codes yield fallback.
func ParseColor(code string, fallback Color) Color {
	if c, ok := ansiCodes[code]; ok {
		return c
	}
	return fallback
}
