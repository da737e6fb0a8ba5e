package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lc-tui/lc/internal/models"
)

// TokyoNight color palette
var (
	ColorBg          = tcell.NewRGBColor(0x1a, 0x1b, 0x26) // #1a1b26
	ColorBgDark      = tcell.NewRGBColor(0x16, 0x16, 0x1e) // #16161e
	ColorBgHighlight = tcell.NewRGBColor(0x29, 0x2e, 0x42) // #292e42

	ColorFg       = tcell.NewRGBColor(0xc0, 0xca, 0xf5) // #c0caf5
	ColorFgDark   = tcell.NewRGBColor(0x56, 0x5f, 0x89) // #565f89
	ColorFgGutter = tcell.NewRGBColor(0x3b, 0x42, 0x61) // #3b4261

	ColorBlue    = tcell.NewRGBColor(0x7a, 0xa2, 0xf7) // #7aa2f7
	ColorCyan    = tcell.NewRGBColor(0x7d, 0xcf, 0xff) // #7dcfff
	ColorGreen   = tcell.NewRGBColor(0x9e, 0xce, 0x6a) // #9ece6a
	ColorMagenta = tcell.NewRGBColor(0xbb, 0x9a, 0xf7) // #bb9af7
	ColorOrange  = tcell.NewRGBColor(0xff, 0x9e, 0x64) // #ff9e64
	ColorRed     = tcell.NewRGBColor(0xf7, 0x76, 0x8e) // #f7768e
	ColorYellow  = tcell.NewRGBColor(0xe0, 0xaf, 0x68) // #e0af68

	ColorComment = tcell.NewRGBColor(0x56, 0x5f, 0x89) // #565f89

	ColorSelection = ColorBgHighlight
	ColorHeader    = ColorBlue
	ColorHighlight = ColorYellow // search highlights
	ColorError     = ColorRed
	ColorSuccess   = ColorGreen
	ColorDimmed    = ColorFgDark
	ColorBright    = ColorFg
	ColorPaidOnly  = ColorMagenta
)

// DifficultyColor is the color a difficulty label is drawn in
func DifficultyColor(d models.Difficulty) tcell.Color {
	switch d {
	case models.Easy:
		return ColorGreen
	case models.Medium:
		return ColorYellow
	case models.Hard:
		return ColorRed
	default:
		return ColorFg
	}
}

// StatusColor is the color of a problem's status symbol
func StatusColor(s models.Status) tcell.Color {
	switch s {
	case models.Accepted:
		return ColorSuccess
	case models.Attempted:
		return ColorOrange
	default:
		return ColorFgGutter
	}
}
