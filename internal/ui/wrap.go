package ui

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/lc-tui/lc/internal/markup"
)

// segment is a run of either spaces or non-spaces sharing one style
type segment struct {
	text  string
	style markup.Style
	space bool
}

// wrapText word-wraps styled text to width cells. Leading indentation of a
// source line is kept; whitespace at a wrap point is dropped. Words longer
// than the width are split.
func wrapText(text markup.Text, width int) []markup.Line {
	if width <= 0 {
		return nil
	}

	var out []markup.Line
	for _, line := range text {
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

func wrapLine(line markup.Line, width int) []markup.Line {
	words := group(segments(line))
	if len(words) == 0 {
		return []markup.Line{nil}
	}

	var (
		out []markup.Line
		cur markup.Line
		w   int
	)
	emit := func() {
		for len(cur) > 0 && strings.TrimSpace(cur[len(cur)-1].Text) == "" {
			cur = cur[:len(cur)-1]
		}
		out = append(out, cur)
		cur = nil
		w = 0
	}

	for i, word := range words {
		ww := word.width()
		if word[0].space {
			if w == 0 && i > 0 {
				continue
			}
			if w+ww > width {
				emit()
				continue
			}
		} else if w+ww > width && w > 0 {
			emit()
		}

		for _, seg := range word {
			sw := runewidth.StringWidth(seg.text)
			// hard-split words wider than the pane
			for w+sw > width {
				if w >= width {
					emit()
					continue
				}
				head, rest := splitWidth(seg.text, width-w)
				cur = append(cur, markup.Span{Text: head, Style: seg.style})
				emit()
				seg.text = rest
				sw = runewidth.StringWidth(rest)
			}
			if seg.text != "" {
				cur = append(cur, markup.Span{Text: seg.text, Style: seg.style})
				w += sw
			}
		}
	}
	if len(cur) > 0 || len(out) == 0 {
		emit()
	}
	return out
}

// word is a maximal run of segments that are all spaces or all non-spaces
type word []segment

func (wd word) width() int {
	n := 0
	for _, s := range wd {
		n += runewidth.StringWidth(s.text)
	}
	return n
}

func group(segs []segment) []word {
	var words []word
	for _, s := range segs {
		if n := len(words); n > 0 && words[n-1][0].space == s.space {
			words[n-1] = append(words[n-1], s)
			continue
		}
		words = append(words, word{s})
	}
	return words
}

func segments(line markup.Line) []segment {
	var segs []segment
	for _, span := range line {
		var b strings.Builder
		space := false
		for _, r := range span.Text {
			isSpace := unicode.IsSpace(r)
			if b.Len() > 0 && isSpace != space {
				segs = append(segs, segment{text: b.String(), style: span.Style, space: space})
				b.Reset()
			}
			space = isSpace
			b.WriteRune(r)
		}
		if b.Len() > 0 {
			segs = append(segs, segment{text: b.String(), style: span.Style, space: space})
		}
	}
	return segs
}

// splitWidth cuts s after at most n cells, always taking at least one rune
func splitWidth(s string, n int) (string, string) {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > n && i > 0 {
			return s[:i], s[i:]
		}
		w += rw
	}
	return s, ""
}
