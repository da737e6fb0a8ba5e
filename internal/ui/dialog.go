package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// box is the centered, bordered frame shared by the dialogs
type box struct {
	x, y, w, h int
}

func centeredBox(s tcell.Screen, w, h int) box {
	sw, sh := s.Size()
	w = min(w, sw)
	h = min(h, sh)
	return box{x: max((sw-w)/2, 0), y: max((sh-h)/2, 0), w: w, h: h}
}

func (b box) draw(s tcell.Screen, style tcell.Style) {
	for y := b.y; y < b.y+b.h; y++ {
		for x := b.x; x < b.x+b.w; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
	if b.w < 2 || b.h < 2 {
		return
	}
	right, bottom := b.x+b.w-1, b.y+b.h-1
	for x := b.x + 1; x < right; x++ {
		s.SetContent(x, b.y, '─', nil, style)
		s.SetContent(x, bottom, '─', nil, style)
	}
	for y := b.y + 1; y < bottom; y++ {
		s.SetContent(b.x, y, '│', nil, style)
		s.SetContent(right, y, '│', nil, style)
	}
	s.SetContent(b.x, b.y, '┌', nil, style)
	s.SetContent(right, b.y, '┐', nil, style)
	s.SetContent(b.x, bottom, '└', nil, style)
	s.SetContent(right, bottom, '┘', nil, style)
}

func (b box) title(s tcell.Screen, style tcell.Style, title string) {
	x := max(b.x+(b.w-runewidth.StringWidth(title))/2, b.x+2)
	drawText(s, x, b.y+1, style, title)
}

// wrapPlain word-wraps a plain message, hard-breaking overlong words
func wrapPlain(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var out []string
	for _, line := range strings.Split(wordwrap.String(text, width), "\n") {
		for runewidth.StringWidth(line) > width {
			head, rest := splitWidth(line, width)
			out = append(out, head)
			line = rest
		}
		out = append(out, line)
	}
	return out
}

// ConfirmationDialog asks a yes/no question and runs a callback
type ConfirmationDialog struct {
	visible bool
	title   string
	message string
	onYes   func()
	onNo    func()
}

func NewConfirmationDialog() *ConfirmationDialog {
	return &ConfirmationDialog{}
}

func (c *ConfirmationDialog) Show(title, message string, onYes, onNo func()) {
	c.visible = true
	c.title = title
	c.message = message
	c.onYes = onYes
	c.onNo = onNo
}

func (c *ConfirmationDialog) Hide() {
	*c = ConfirmationDialog{}
}

func (c *ConfirmationDialog) IsVisible() bool {
	return c.visible
}

func (c *ConfirmationDialog) Draw(s tcell.Screen) {
	if !c.visible {
		return
	}

	const width = 56
	lines := wrapPlain(c.message, width-4)
	b := centeredBox(s, width, len(lines)+6)

	style := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFg)
	b.draw(s, style)
	b.title(s, style.Foreground(ColorYellow).Bold(true), c.title)

	for i, line := range lines {
		if 3+i >= b.h-2 {
			break
		}
		drawText(s, b.x+2, b.y+3+i, style, line)
	}

	buttons := style.Bold(true)
	drawText(s, b.x+b.w/2-6, b.y+b.h-2, buttons.Foreground(ColorGreen), "[Y]es")
	drawText(s, b.x+b.w/2+2, b.y+b.h-2, buttons.Foreground(ColorRed), "[N]o")
}

// HandleKey consumes every key while the dialog is visible
func (c *ConfirmationDialog) HandleKey(ev *tcell.EventKey) bool {
	if !c.visible {
		return false
	}

	var cb func()
	switch {
	case ev.Key() == tcell.KeyEscape:
		cb = c.onNo
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y'):
		cb = c.onYes
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'n' || ev.Rune() == 'N'):
		cb = c.onNo
	default:
		return true
	}

	c.Hide()
	if cb != nil {
		cb()
	}
	return true
}
