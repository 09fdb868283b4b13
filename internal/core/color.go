package core

// Color is the foreground of a screen cell. The terminal front end draws it
// with the ANSI 256-color code returned by Code.
type Color uint8

// Piece colors, one per tetromino kind, followed by the interface grays.
const (
	ColorDefault Color = iota
	ColorCyan          // I
	ColorYellow        // O
	ColorPurple        // T
	ColorGreen         // S
	ColorRed           // Z
	ColorBlue          // J
	ColorOrange        // L
	ColorWhite
	ColorGray

	colorCount
)

// Roles of the play screen.
const (
	ColorGhost = ColorGray
	ColorFrame = ColorGray
	ColorDim   = ColorGray
	ColorText  = ColorWhite
	ColorCombo = ColorYellow
	ColorB2B   = ColorPurple
	ColorClear = ColorCyan
)

var colorCodes = [colorCount]string{
	ColorCyan:   "14",
	ColorYellow: "11",
	ColorPurple: "13",
	ColorGreen:  "10",
	ColorRed:    "9",
	ColorBlue:   "12",
	ColorOrange: "208",
	ColorWhite:  "15",
	ColorGray:   "245",
}

// Code returns the ANSI 256-color code of c, or "" for ColorDefault and
// values outside the palette.
func (c Color) Code() string {
	if c >= colorCount {
		return ""
	}
	return colorCodes[c]
}

// Palette returns every drawable color, excluding ColorDefault.
func Palette() []Color {
	colors := make([]Color, 0, colorCount-1)
	for c := ColorDefault + 1; c < colorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}
