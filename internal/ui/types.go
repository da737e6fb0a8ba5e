package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lc-tui/lc/internal/markup"
)

// GetTcellStyle layers a rendered span's style over base
func GetTcellStyle(base tcell.Style, st markup.Style) tcell.Style {
	out := base
	if st.Modifiers.Has(markup.Bold) {
		out = out.Bold(true)
	}
	if st.Modifiers.Has(markup.Italic) {
		out = out.Italic(true)
	}
	if st.Modifiers.Has(markup.Underline) {
		out = out.Underline(true)
	}
	if st.Modifiers.Has(markup.Strikethrough) {
		out = out.StrikeThrough(true)
	}
	if st.Foreground.Valid {
		out = out.Foreground(tcellColor(st.Foreground))
	}
	if st.Background.Valid {
		out = out.Background(tcellColor(st.Background))
	}
	return out
}

func tcellColor(c markup.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// View is a full-screen component the app delegates to
type View interface {
	Draw(s tcell.Screen)
	HandleKey(ev *tcell.EventKey) bool
}
