package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"github.com/lc-tui/lc/internal/markup"
	"github.com/lc-tui/lc/internal/models"
	"github.com/lc-tui/lc/internal/tags"
)

const (
	defaultWidth = 80
	maxWidth     = 100
)

var (
	titleColor = color.New(color.Bold)
	dimColor   = color.New(color.Faint)
	matchColor = color.New(color.FgYellow, color.Bold)
)

func difficultyColor(d models.Difficulty) *color.Color {
	switch d {
	case models.Easy:
		return color.New(color.FgGreen)
	case models.Medium:
		return color.New(color.FgYellow)
	case models.Hard:
		return color.New(color.FgRed)
	default:
		return color.New(color.Reset)
	}
}

func statusColor(s models.Status) *color.Color {
	switch s {
	case models.Accepted:
		return color.New(color.FgGreen)
	case models.Attempted:
		return color.New(color.FgHiYellow)
	default:
		return color.New(color.Faint)
	}
}

// termWidth is the width of w if it is a terminal, else a default
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return min(width, maxWidth)
		}
	}
	return defaultWidth
}

// ansiText renders styled text with SGR escapes, honouring color.NoColor
func ansiText(t markup.Text) string {
	rows := make([]string, len(t))
	for i, line := range t {
		var b strings.Builder
		for _, span := range line {
			b.WriteString(ansiSpan(span))
		}
		rows[i] = b.String()
	}
	return strings.Join(rows, "\n")
}

func ansiSpan(s markup.Span) string {
	st := s.Style
	var attrs []color.Attribute
	if st.Modifiers.Has(markup.Bold) {
		attrs = append(attrs, color.Bold)
	}
	if st.Modifiers.Has(markup.Italic) {
		attrs = append(attrs, color.Italic)
	}
	if st.Modifiers.Has(markup.Underline) {
		attrs = append(attrs, color.Underline)
	}
	if st.Modifiers.Has(markup.Strikethrough) {
		attrs = append(attrs, color.CrossedOut)
	}
	if len(attrs) == 0 && !st.Foreground.Valid && !st.Background.Valid {
		return s.Text
	}

	c := color.New(attrs...)
	if fg := st.Foreground; fg.Valid {
		c.AddRGB(int(fg.R), int(fg.G), int(fg.B))
	}
	if bg := st.Background; bg.Valid {
		c.AddBgRGB(int(bg.R), int(bg.G), int(bg.B))
	}
	return c.Sprint(s.Text)
}

// highlightRunes marks the given rune positions of s
func highlightRunes(s string, positions []int) string {
	if len(positions) == 0 {
		return s
	}
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}
	var b strings.Builder
	for i, r := range []rune(s) {
		if marked[i] {
			b.WriteString(matchColor.Sprint(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// printProblemLine writes a one-line summary; positions index into "<id>. <title>"
func printProblemLine(w io.Writer, p *models.Problem, positions []int) {
	label := highlightRunes(p.ID+". "+p.Title, positions)
	fmt.Fprintf(w, "%s %s %s\n",
		statusColor(p.Status).Sprint(p.Status.Symbol()),
		label,
		difficultyColor(p.Difficulty).Sprintf("(%s)", p.Difficulty),
	)
}

// printProblem writes the full description block used by `info`
func printProblem(w io.Writer, p *models.Problem, text markup.Text, local bool) {
	width := termWidth(w)

	title := titleColor.Sprintf("%s. %s", p.ID, p.Title)
	fmt.Fprintln(w, title)

	meta := []string{difficultyColor(p.Difficulty).Sprint(p.Difficulty)}
	if p.AcceptanceRate > 0 {
		meta = append(meta, fmt.Sprintf("%.1f%% accepted", p.AcceptanceRate))
	}
	meta = append(meta, statusColor(p.Status).Sprintf("%s %s", p.Status.Symbol(), p.Status))
	if p.PaidOnly {
		meta = append(meta, "premium")
	}
	if local {
		meta = append(meta, "local")
	}
	fmt.Fprintln(w, strings.Join(meta, " · "))

	if ts := tags.FromTopicSlugs(p.Tags); len(ts) > 0 {
		names := make([]string, len(ts))
		for i, t := range ts {
			names[i] = t.String()
		}
		fmt.Fprintln(w, dimColor.Sprint("Tags: "+strings.Join(names, ", ")))
	}
	fmt.Fprintln(w, dimColor.Sprint(p.URL()))
	fmt.Fprintln(w, strings.Repeat("─", min(ansi.PrintableRuneWidth(title), width)))

	if len(text) == 0 {
		fmt.Fprintln(w, dimColor.Sprint("No description available"))
		return
	}
	fmt.Fprintln(w, wordwrap.String(ansiText(text), width))
}
