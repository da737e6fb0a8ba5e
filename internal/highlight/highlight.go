// Package highlight turns starter code into styled lines
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/lc-tui/lc/internal/markup"
)

// StyleName is the chroma style used for snippets
const StyleName = "monokai"

// Snippet highlights code written in lang, a LeetCode langSlug such as
// "rust" or "python3". Unknown languages come back as plain lines.
func Snippet(code, lang string) markup.Text {
	if code == "" {
		return markup.Text{}
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain(code)
	}

	style := styles.Get(StyleName)
	out := markup.Text{}
	for _, tokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
		line := markup.Line{}
		for _, tok := range tokens {
			value := strings.TrimRight(tok.Value, "\r\n")
			if value == "" {
				continue
			}
			line = append(line, markup.Span{Text: value, Style: convert(style.Get(tok.Type))})
		}
		out = append(out, line)
	}

	// a trailing newline does not start another line
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

func convert(e chroma.StyleEntry) markup.Style {
	var s markup.Style
	if e.Colour.IsSet() {
		s.Foreground = markup.RGB(e.Colour.Red(), e.Colour.Green(), e.Colour.Blue())
	}
	if e.Bold == chroma.Yes {
		s.Modifiers |= markup.Bold
	}
	if e.Italic == chroma.Yes {
		s.Modifiers |= markup.Italic
	}
	if e.Underline == chroma.Yes {
		s.Modifiers |= markup.Underline
	}
	return s
}

func plain(code string) markup.Text {
	out := markup.Text{}
	for _, l := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		out = append(out, markup.Line{{Text: l}})
	}
	return out
}
