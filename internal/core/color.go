package core

// Color represents a foreground color for a screen cell.
// The terminal front end maps each value to an ANSI 256-color style.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorGray
	ColorBrightWhite
	ColorBrightGreen
)
