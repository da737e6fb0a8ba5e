package markup

import (
	"strconv"
	"strings"
)

// Markdown renders styled text as Markdown. Code spans become backticks,
// bold becomes ** and italic or underline become _. List lines become
// Markdown list items and adjacent lines keep their break, so preformatted
// rows do not run together.
func Markdown(t Text) string {
	rows := make([]string, len(t))
	for i, line := range t {
		var b strings.Builder
		spans := line
		if marker, ok := markdownMarker(line); ok {
			b.WriteString(marker)
			spans = line[1:]
		}
		for _, span := range spans {
			b.WriteString(markdownSpan(span))
		}
		rows[i] = b.String()
	}

	var b strings.Builder
	for i, row := range rows {
		if i+1 == len(rows) {
			b.WriteString(row)
			break
		}
		_, item := markdownMarker(t[i])
		_, nextItem := markdownMarker(t[i+1])
		switch {
		case t[i].IsBlank() || t[i+1].IsBlank() || nextItem:
			b.WriteString(row + "\n")
		case item:
			// text after a list must not continue its last item
			b.WriteString(row + "\n\n")
		default:
			// hard line break
			b.WriteString(strings.TrimRight(row, " ") + "  \n")
		}
	}
	return b.String()
}

// markdownMarker converts a leading list marker span ("    • ", "    2. ")
// into its Markdown form, one level of indentation less
func markdownMarker(l Line) (string, bool) {
	if len(l) == 0 {
		return "", false
	}
	text := l[0].Text
	body := strings.TrimLeft(text, " ")
	depth := (len(text) - len(body)) / len(listIndent)
	if depth == 0 || len(text)-len(body) != depth*len(listIndent) {
		return "", false
	}

	indent := strings.Repeat(listIndent, depth-1)
	if body == "• " {
		return indent + "- ", true
	}
	num, ok := strings.CutSuffix(body, ". ")
	if !ok {
		return "", false
	}
	if _, err := strconv.Atoi(num); err != nil {
		return "", false
	}
	return indent + body, true
}

func markdownSpan(s Span) string {
	text := s.Text
	if strings.TrimSpace(text) == "" {
		return text
	}

	// keep surrounding whitespace outside the markers
	lead := text[:len(text)-len(strings.TrimLeft(text, " "))]
	trail := text[len(strings.TrimRight(text, " ")):]
	core := strings.Trim(text, " ")

	m := s.Style.Modifiers
	if s.Style.Background.Valid {
		return lead + "`" + core + "`" + trail
	}
	if m.Has(Italic) || m.Has(Underline) {
		core = "_" + core + "_"
	}
	if m.Has(Bold) {
		core = "**" + core + "**"
	}
	if m.Has(Strikethrough) {
		core = "~~" + core + "~~"
	}
	return lead + core + trail
}
