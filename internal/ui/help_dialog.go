package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var helpLines = []string{
	"",
	"Navigation:",
	"  j / k            Move down/up in the problem list",
	"  Ctrl+F / Ctrl+B  Page down/up (also PgDn/PgUp)",
	"  g / G            Go to top/bottom of the list",
	"  Alt+j / Alt+k    Scroll the description",
	"",
	"Problems:",
	"  s                Toggle description / starter code",
	"  d                Fetch details for the selected problem",
	"  n                Create a workspace for the selected problem",
	"  e                Open the selected problem's solution in $EDITOR",
	"  r                Refresh the problem list from LeetCode",
	"",
	"Search:",
	"  /                Fuzzy search titles, tags and descriptions",
	"  Ctrl+T           Cycle the match threshold while searching",
	"  Enter / Esc      Leave search mode, keeping the filter",
	"  Esc              Clear the filter (normal mode)",
	"",
	"Commands:",
	"  :new <link>      Create a workspace from a problem link",
	"  :sync            Same as r",
	"  :q               Quit",
	"",
	"Other:",
	"  ?                Show this help dialog",
	"  Q                Quit application",
}

// HelpDialog is the scrollable keybinding overlay
type HelpDialog struct {
	visible      bool
	scrollOffset int
	// visibleLines is recorded on every draw so scrolling can clamp
	visibleLines int
}

func NewHelpDialog() *HelpDialog {
	return &HelpDialog{visibleLines: 15}
}

func (h *HelpDialog) Show() {
	h.visible = true
	h.scrollOffset = 0
}

func (h *HelpDialog) Hide() {
	h.visible = false
}

func (h *HelpDialog) IsVisible() bool {
	return h.visible
}

func (h *HelpDialog) Draw(s tcell.Screen) {
	if !h.visible {
		return
	}

	sw, sh := s.Size()
	width := 0
	for _, line := range helpLines {
		width = max(width, runewidth.StringWidth(line))
	}
	width = max(min(width+4, sw-4), 40)
	height := max(min(len(helpLines)+6, sh-4), 10)
	b := centeredBox(s, width, height)

	style := tcell.StyleDefault.Background(ColorBgDark).Foreground(ColorFg)
	b.draw(s, style.Foreground(ColorBlue))
	b.title(s, style.Foreground(ColorYellow).Bold(true), "Help - Keybindings")

	h.visibleLines = max(b.h-5, 1)
	h.scrollOffset = min(h.scrollOffset, h.maxScroll())
	for i := 0; i < h.visibleLines && i+h.scrollOffset < len(helpLines); i++ {
		line := runewidth.Truncate(helpLines[i+h.scrollOffset], b.w-4, "...")
		drawText(s, b.x+2, b.y+3+i, style, line)
	}

	footer := "Press Esc or ? to close this help dialog"
	if h.maxScroll() > 0 {
		footer = "↑↓ Use j/k or Up/Down to scroll, Esc to close"
	}
	fx := max(b.x+(b.w-runewidth.StringWidth(footer))/2, b.x+2)
	drawText(s, fx, b.y+b.h-2, style.Foreground(ColorComment), footer)
}

// HandleKey consumes every key while the dialog is visible
func (h *HelpDialog) HandleKey(ev *tcell.EventKey) bool {
	if !h.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		h.Hide()
	case tcell.KeyUp:
		h.scrollOffset = max(h.scrollOffset-1, 0)
	case tcell.KeyDown:
		h.scrollOffset = min(h.scrollOffset+1, h.maxScroll())
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?':
			h.Hide()
		case 'j':
			h.scrollOffset = min(h.scrollOffset+1, h.maxScroll())
		case 'k':
			h.scrollOffset = max(h.scrollOffset-1, 0)
		case 'g':
			h.scrollOffset = 0
		case 'G':
			h.scrollOffset = h.maxScroll()
		}
	}
	return true
}

func (h *HelpDialog) maxScroll() int {
	return max(len(helpLines)-h.visibleLines, 0)
}
