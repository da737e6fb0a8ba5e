package ui

import (
	"testing"

	"github.com/lc-tui/lc/internal/search"
)

func TestSearchStateEditing(t *testing.T) {
	s := NewSearchState()
	for _, r := range "héllo wörld" {
		s.InsertChar(r)
	}
	if s.Query() != "héllo wörld" || s.CursorPos() != 11 {
		t.Fatalf("Unexpected state %q at %d", s.Query(), s.CursorPos())
	}

	s.MoveCursorWordBackward()
	if s.CursorPos() != 6 {
		t.Errorf("Expected cursor at 6, got %d", s.CursorPos())
	}
	s.DeleteChar()
	if s.Query() != "héllowörld" {
		t.Errorf("Unexpected query %q", s.Query())
	}

	s.MoveCursorStart()
	s.DeleteWordForward()
	if s.Query() != "" {
		t.Errorf("Expected the single word to be deleted, got %q", s.Query())
	}

	s.SetQuery("ab")
	s.MoveCursorLeft()
	s.InsertChar('x')
	if s.Query() != "axb" {
		t.Errorf("Expected insert at cursor, got %q", s.Query())
	}
	s.DeleteCharForward()
	if s.Query() != "ax" {
		t.Errorf("Expected forward delete, got %q", s.Query())
	}
}

func TestSearchStateThreshold(t *testing.T) {
	s := NewSearchState()
	if s.GetMinScore() != search.ScoreThresholdNormal {
		t.Fatalf("Expected normal threshold by default")
	}

	want := []int{search.ScoreThresholdStrict, search.ScoreThresholdNone, search.ScoreThresholdPermissive, search.ScoreThresholdNormal}
	for _, w := range want {
		s.CycleThreshold()
		if s.GetMinScore() != w {
			t.Errorf("Expected %d, got %d", w, s.GetMinScore())
		}
	}

	s.SetQuery("sum")
	if m := s.Matcher(); m.Pattern != "sum" || m.MinScore != search.ScoreThresholdNormal {
		t.Errorf("Unexpected matcher %+v", m)
	}
}
