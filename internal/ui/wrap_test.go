package ui

import (
	"testing"

	"github.com/lc-tui/lc/internal/markup"
)

func plainLines(lines []markup.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

func TestWrapText(t *testing.T) {
	bold := markup.Style{Modifiers: markup.Bold}

	tests := []struct {
		name  string
		text  markup.Text
		width int
		want  []string
	}{
		{
			name:  "fits",
			text:  markup.Text{{{Text: "hello world"}}},
			width: 20,
			want:  []string{"hello world"},
		},
		{
			name:  "breaks at spaces",
			text:  markup.Text{{{Text: "the quick brown fox"}}},
			width: 10,
			want:  []string{"the quick", "brown fox"},
		},
		{
			name:  "keeps indentation",
			text:  markup.Text{{{Text: "    • item one two"}}},
			width: 12,
			want:  []string{"    • item", "one two"},
		},
		{
			name:  "blank lines survive",
			text:  markup.Text{{{Text: "a"}}, {}, {{Text: "b"}}},
			width: 5,
			want:  []string{"a", "", "b"},
		},
		{
			name:  "word spanning styles stays whole",
			text:  markup.Text{{{Text: "aaa "}, {Text: "bb", Style: bold}, {Text: "cc."}}},
			width: 6,
			want:  []string{"aaa", "bbcc."},
		},
		{
			name:  "long words are split",
			text:  markup.Text{{{Text: "abcdefghij"}}},
			width: 4,
			want:  []string{"abcd", "efgh", "ij"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plainLines(wrapText(tt.text, tt.width))
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %q, got %q", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestWrapKeepsStyles(t *testing.T) {
	bold := markup.Style{Modifiers: markup.Bold}
	lines := wrapText(markup.Text{{{Text: "plain "}, {Text: "strong", Style: bold}}}, 8)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %q", plainLines(lines))
	}
	if lines[1][0].Style != bold {
		t.Errorf("Expected the wrapped word to stay bold, got %+v", lines[1][0].Style)
	}
}

func TestWrapZeroWidth(t *testing.T) {
	if lines := wrapText(markup.Text{{{Text: "x"}}}, 0); lines != nil {
		t.Errorf("Expected nil, got %v", lines)
	}
}
