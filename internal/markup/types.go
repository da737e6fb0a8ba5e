package markup

import "strings"

// Modifier is a set of independently toggleable text attributes
type Modifier uint8

const (
	Bold Modifier = 1 << iota
	Italic
	Underline
	Strikethrough
)

// Has reports whether every bit in m2 is set in m
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// Color is an optional 24-bit color. The zero value means "unset".
type Color struct {
	R, G, B uint8
	Valid   bool
}

// RGB returns a set color
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Valid: true}
}

// Placeholder is substituted with the rendered content when a format template is applied
const Placeholder = "{content}"

// Style describes how a span of text is decorated
type Style struct {
	Modifiers  Modifier
	Foreground Color
	Background Color
	// Format wraps the content, e.g. "^{content}" for superscripts
	Format string
}

// IsZero reports whether the style carries no decoration at all
func (s Style) IsZero() bool {
	return s == Style{}
}

// Apply substitutes text into the style's format template
func (s Style) Apply(text string) string {
	if s.Format == "" {
		return text
	}
	return strings.ReplaceAll(s.Format, Placeholder, text)
}

// Combine merges a child style into its inherited parent style. Modifiers are
// OR'd, a set child color wins, and format templates nest with the child
// template substituted into the parent's placeholder.
func Combine(parent, child Style) Style {
	out := Style{
		Modifiers:  parent.Modifiers | child.Modifiers,
		Foreground: parent.Foreground,
		Background: parent.Background,
	}
	if child.Foreground.Valid {
		out.Foreground = child.Foreground
	}
	if child.Background.Valid {
		out.Background = child.Background
	}

	switch {
	case parent.Format != "" && child.Format != "":
		out.Format = strings.ReplaceAll(parent.Format, Placeholder, child.Format)
	case child.Format != "":
		out.Format = child.Format
	default:
		out.Format = parent.Format
	}
	return out
}

// Span is the smallest styled unit of rendered text
type Span struct {
	Text  string
	Style Style
}

// Line is an ordered, left-to-right sequence of spans
type Line []Span

// String returns the line's plain text
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// IsBlank reports whether the line has no visible characters
func (l Line) IsBlank() bool {
	for _, s := range l {
		if strings.TrimSpace(s.Text) != "" {
			return false
		}
	}
	return true
}

// Text is an ordered, top-to-bottom sequence of lines
type Text []Line

// String returns the plain text, one line per row
func (t Text) String() string {
	rows := make([]string, len(t))
	for i, l := range t {
		rows[i] = l.String()
	}
	return strings.Join(rows, "\n")
}
