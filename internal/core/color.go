package core

// Color represents a foreground color for a screen cell.
type Color uint8

// Cell colours. ColorDefault leaves the terminal's own foreground.
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

	numColors
)

// ANSI 256-colour codes, indexed by Color.
var ansiCodes = [numColors]string{
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorBlue:          "4",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
	ColorOrange:        "208",
	ColorGray:          "245",
}

// ANSI returns the 256-colour code for c. It reports false for
// ColorDefault and for values outside the palette.
func (c Color) ANSI() (string, bool) {
	if c == ColorDefault || c >= numColors {
		return "", false
	}
	return ansiCodes[c], true
}

// Colors returns every palette colour except ColorDefault.
func Colors() []Color {
	out := make([]Color, 0, numColors-1)
	for c := ColorRed; c < numColors; c++ {
		out = append(out, c)
	}
	return out
}
