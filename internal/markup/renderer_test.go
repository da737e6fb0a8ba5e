package markup

import (
	"reflect"
	"strings"
	"sync"
	"testing"
)

func TestStyleForTagUnknown(t *testing.T) {
	for _, tag := range []string{"blink", "span", "p", "li", "STRONG", ""} {
		if s := StyleForTag(tag); !s.IsZero() {
			t.Errorf("StyleForTag(%q) = %+v, expected empty style", tag, s)
		}
	}
}

func TestStyleForTagKnown(t *testing.T) {
	if !StyleForTag("strong").Modifiers.Has(Bold) {
		t.Error("Expected strong to be bold")
	}
	if !StyleForTag("b").Modifiers.Has(Bold) {
		t.Error("Expected b to be bold")
	}
	if !StyleForTag("em").Modifiers.Has(Underline) {
		t.Error("Expected em to be underlined by default")
	}
	italic := Policy{Emphasis: EmphasisItalic}
	if s := italic.StyleForTag("em"); s.Modifiers != Italic {
		t.Errorf("Expected em to be italic under italic policy, got %v", s.Modifiers)
	}
	code := StyleForTag("code")
	if !code.Modifiers.Has(Italic) || !code.Background.Valid {
		t.Errorf("Expected code to be italic with a background, got %+v", code)
	}
	if sup := StyleForTag("sup"); sup.Format != "^{content}" || sup.Modifiers != 0 {
		t.Errorf("Unexpected sup style %+v", sup)
	}
}

func TestCombine(t *testing.T) {
	red := RGB(255, 0, 0)
	blue := RGB(0, 0, 255)

	tests := []struct {
		name     string
		parent   Style
		child    Style
		expected Style
	}{
		{
			name:     "modifiers are merged",
			parent:   Style{Modifiers: Bold},
			child:    Style{Modifiers: Underline},
			expected: Style{Modifiers: Bold | Underline},
		},
		{
			name:     "child color wins",
			parent:   Style{Foreground: red},
			child:    Style{Foreground: blue},
			expected: Style{Foreground: blue},
		},
		{
			name:     "unset child color inherits",
			parent:   Style{Background: red},
			child:    Style{Modifiers: Italic},
			expected: Style{Modifiers: Italic, Background: red},
		},
		{
			name:     "formats nest",
			parent:   Style{Format: "^{content}"},
			child:    Style{Format: "[{content}]"},
			expected: Style{Format: "^[{content}]"},
		},
		{
			name:     "parent format inherited",
			parent:   Style{Format: "^{content}"},
			child:    Style{Modifiers: Bold},
			expected: Style{Modifiers: Bold, Format: "^{content}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(tt.parent, tt.child)
			if got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	for _, input := range []string{"", "<!-- only a comment -->"} {
		if got := Render(input); len(got) != 0 {
			t.Errorf("Render(%q) = %d lines, expected 0", input, len(got))
		}
	}
	if got := NewRenderer(DefaultPolicy).RenderNode(nil); len(got) != 0 {
		t.Errorf("RenderNode(nil) = %d lines, expected 0", len(got))
	}
}

func TestRenderStrong(t *testing.T) {
	got := Render("<strong>x</strong>")
	if len(got) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(got))
	}
	if len(got[0]) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(got[0]))
	}
	span := got[0][0]
	if span.Text != "x" {
		t.Errorf("Expected text %q, got %q", "x", span.Text)
	}
	if span.Style.Modifiers != Bold {
		t.Errorf("Expected bold, got %v", span.Style.Modifiers)
	}
}

func TestRenderSuperscript(t *testing.T) {
	got := Render("<sup>2</sup>")
	if got.String() != "^2" {
		t.Errorf("Expected %q, got %q", "^2", got.String())
	}
	if got[0][0].Style.Modifiers != 0 {
		t.Errorf("Expected no modifiers, got %v", got[0][0].Style.Modifiers)
	}

	got = Render("x<sup><strong>2</strong></sup>")
	if got.String() != "x^2" {
		t.Errorf("Expected %q, got %q", "x^2", got.String())
	}
	if len(got) != 1 {
		t.Errorf("Expected superscript to stay on one line, got %d lines", len(got))
	}
}

func TestRenderNested(t *testing.T) {
	got := Render("<strong><em>x</em></strong>")
	if len(got) != 1 || len(got[0]) != 1 {
		t.Fatalf("Expected a single span, got %v", got)
	}
	if m := got[0][0].Style.Modifiers; m != Bold|Underline {
		t.Errorf("Expected bold+underline, got %v", m)
	}
}

func TestRenderList(t *testing.T) {
	got := Render("<ul><li>a</li><li>b</li></ul>")
	if len(got) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(got), got.String())
	}
	for i, want := range []string{"a", "b"} {
		line := got[i]
		if line[0].Text != BulletPrefix {
			t.Errorf("Line %d: expected bullet span %q, got %q", i, BulletPrefix, line[0].Text)
		}
		if line.String() != BulletPrefix+want {
			t.Errorf("Line %d: expected %q, got %q", i, BulletPrefix+want, line.String())
		}
	}
}

func TestRenderListLayout(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "whitespace between items",
			input:    "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>",
			expected: "    • a\n    • b",
		},
		{
			name:     "stray text",
			input:    "<ul>stray<li>a</li></ul>",
			expected: "stray\n    • a",
		},
		{
			name:     "nested list",
			input:    "<ul><li>a<ul><li>b</li></ul></li></ul>",
			expected: "    • a\n        • b",
		},
		{
			name:     "ordered list",
			input:    "<ol><li>a</li><li>b</li></ol>",
			expected: "    1. a\n    2. b",
		},
		{
			name:     "styled item",
			input:    "<ul><li><code>n</code> is even</li></ul>",
			expected: "    • n is even",
		},
		{
			name:     "text around list",
			input:    "before<ul><li>a</li></ul>after",
			expected: "before\n    • a\nafter",
		},
		{
			name:     "line break inside item",
			input:    "<ul><li>a<br>b</li></ul>",
			expected: "    • a b",
		},
		{
			name:     "line break and newline inside item",
			input:    "<ul><li>a<br>\nb</li><li>c</li></ul>",
			expected: "    • a b\n    • c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input).String()
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderPreformatted(t *testing.T) {
	got := Render("<pre>line1\nline2</pre>")
	if len(got) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(got))
	}
	for _, line := range got {
		for _, span := range line {
			if strings.Contains(span.Text, "\n") {
				t.Errorf("Span text contains a newline: %q", span.Text)
			}
		}
	}
	if got.String() != "line1\nline2" {
		t.Errorf("Unexpected text %q", got.String())
	}
}

func TestRenderPreformattedLayout(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "leading newline dropped",
			input:    "<pre>\nx = 1</pre>",
			expected: "x = 1",
		},
		{
			name:     "blank rows kept",
			input:    "<pre>a\n\nb</pre>",
			expected: "a\n\nb",
		},
		{
			name:     "styled content",
			input:    "<pre><strong>Input:</strong> nums = [1,2]\n<strong>Output:</strong> 3</pre>",
			expected: "Input: nums = [1,2]\nOutput: 3",
		},
		{
			name:     "text before block",
			input:    "Example:<pre>x</pre>",
			expected: "Example:\nx",
		},
		{
			name:     "spaces kept",
			input:    "<pre>  indented</pre>",
			expected: "  indented",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input).String()
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderParagraphs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "blank line between paragraphs",
			input:    "<p>one</p>\n<p>two</p>",
			expected: "one\n\ntwo",
		},
		{
			name:     "separators do not double",
			input:    "<p>one</p>\n\n\n<p>two</p>",
			expected: "one\n\ntwo",
		},
		{
			name:     "no leading separator",
			input:    "\n<p>one</p>",
			expected: "one",
		},
		{
			name:     "no trailing separator",
			input:    "<p>one</p>\n",
			expected: "one",
		},
		{
			name:     "empty paragraph is a separator",
			input:    "<p>one</p><p>&nbsp;</p><p>two</p>",
			expected: "one\n\ntwo",
		},
		{
			name:     "line break",
			input:    "a<br>b",
			expected: "a\nb",
		},
		{
			name:     "inline newline becomes space",
			input:    "<p>a\nb</p>",
			expected: "a b",
		},
		{
			name:     "tabs and nbsp",
			input:    "a\tb&nbsp;c",
			expected: "ab c",
		},
		{
			name:     "table cells",
			input:    "<table><tr><td>a</td><td>b</td></tr><tr><td>c</td><td>d</td></tr></table>",
			expected: "a | b\nc | d",
		},
		{
			name:     "table header with whitespace",
			input:    "<table><tr>\n<th>x</th>\n<th>y</th></tr></table>",
			expected: "x | y",
		},
		{
			name:     "nbsp keeps words apart",
			input:    "<code>n</code>&nbsp;&lt;= 5",
			expected: "n <= 5",
		},
		{
			name:     "malformed input degrades",
			input:    "<strong>unclosed",
			expected: "unclosed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input).String()
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderInlineCode(t *testing.T) {
	got := Render("use <code>x</code> here")
	if len(got) != 1 || len(got[0]) != 3 {
		t.Fatalf("Expected 1 line with 3 spans, got %v", got)
	}
	code := got[0][1]
	if code.Text != "x" {
		t.Errorf("Expected code span %q, got %q", "x", code.Text)
	}
	if !code.Style.Modifiers.Has(Italic) || code.Style.Background != DefaultPolicy.CodeBackground {
		t.Errorf("Unexpected code style %+v", code.Style)
	}
	if !got[0][0].Style.IsZero() {
		t.Errorf("Expected plain text around code, got %+v", got[0][0].Style)
	}
}

func TestRenderFontPolicy(t *testing.T) {
	input := `a<font face="monospace">b</font>c`

	if got := Render(input).String(); got != "abc" {
		t.Errorf("Passthrough: expected %q, got %q", "abc", got)
	}

	drop := DefaultPolicy
	drop.Font = FontDrop
	if got := NewRenderer(drop).Render(input).String(); got != "ac" {
		t.Errorf("Drop: expected %q, got %q", "ac", got)
	}
}

func TestRenderLinks(t *testing.T) {
	input := `<a href="https://a.example/">x</a> <a href="https://a.example/">y</a> <a href="https://b.example/">z</a>`
	got := Render(input).String()
	expected := "x[1] y[1] z[2]\n[1]: https://a.example/\n[2]: https://b.example/"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	line := Render(`<a href="https://a.example/">x</a>`)[0]
	if !line[0].Style.Modifiers.Has(Underline) || !line[0].Style.Foreground.Valid {
		t.Errorf("Expected link text to be underlined and colored, got %+v", line[0].Style)
	}

	off := DefaultPolicy
	off.LinkReferences = false
	if got := NewRenderer(off).Render(input).String(); got != "x y z" {
		t.Errorf("Expected no references, got %q", got)
	}
}

func TestRenderIdempotent(t *testing.T) {
	input := `<p>See <a href="https://leetcode.com/">here</a></p><ul><li><strong>a</strong></li></ul><pre>x\ny</pre>`
	r := NewRenderer(DefaultPolicy)

	first := r.Render(input)
	second := r.Render(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output\nfirst:  %q\nsecond: %q", first.String(), second.String())
	}
	if last := second[len(second)-1].String(); last != "[1]: https://leetcode.com/" {
		t.Errorf("Expected link numbering to restart at 1, got %q", last)
	}
}

func TestRenderConcurrent(t *testing.T) {
	input := `<p><a href="https://x.example/">x</a> and <em>y</em></p>`
	want := Render(input).String()

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Render(input).String(); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("Concurrent render differs: %q", got)
	}
}

func TestRenderNodeBuiltTree(t *testing.T) {
	root := Element("body",
		TextNode("a "),
		Element("blink", Element("strong", TextNode("b"))),
	)
	got := NewRenderer(DefaultPolicy).RenderNode(root)
	if got.String() != "a b" {
		t.Fatalf("Expected %q, got %q", "a b", got.String())
	}
	if got[0][1].Style.Modifiers != Bold {
		t.Errorf("Expected unknown parent to pass bold through, got %v", got[0][1].Style.Modifiers)
	}
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bold and code",
			input:    "<strong>x</strong> and <code>y</code>",
			expected: "**x** and `y`",
		},
		{
			name:     "emphasis",
			input:    "<em>really</em>",
			expected: "_really_",
		},
		{
			name:     "whitespace outside markers",
			input:    "a<strong> b </strong>c",
			expected: "a **b** c",
		},
		{
			name:     "plain",
			input:    "<p>one</p>\n<p>two</p>",
			expected: "one\n\ntwo",
		},
		{
			name:     "list",
			input:    "<ul><li>a</li><li>b</li></ul>",
			expected: "- a\n- b",
		},
		{
			name:     "nested list",
			input:    "<ul><li>a<ul><li>b</li></ul></li></ul>",
			expected: "- a\n    - b",
		},
		{
			name:     "ordered list",
			input:    "<ol><li>a</li><li>b</li></ol>",
			expected: "1. a\n2. b",
		},
		{
			name:     "preformatted rows keep their breaks",
			input:    "<pre><strong>Input:</strong> nums = [2,7]\n<strong>Output:</strong> [0,1]</pre>",
			expected: "**Input:** nums = [2,7]  \n**Output:** [0,1]",
		},
		{
			name:     "list before example",
			input:    "<ul><li>a</li><li>b</li></ul><pre><strong>Input:</strong> nums = [2,7]\n<strong>Output:</strong> [0,1]</pre>",
			expected: "- a\n- b\n\n**Input:** nums = [2,7]  \n**Output:** [0,1]",
		},
		{
			name:     "text after list",
			input:    "<ul><li>a</li></ul>after",
			expected: "- a\n\nafter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Markdown(Render(tt.input))
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
