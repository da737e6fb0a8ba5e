package ui

import (
	"unicode"

	"github.com/lc-tui/lc/internal/search"
)

// SearchState is the editable query line plus the matcher built from it.
// The cursor is a rune index.
type SearchState struct {
	query     []rune
	cursorPos int
	matcher   search.Matcher
}

// NewSearchState creates an empty, case-insensitive search
func NewSearchState() *SearchState {
	return &SearchState{matcher: search.Matcher{MinScore: search.ScoreThresholdNormal}}
}

// Query returns the current query text
func (s *SearchState) Query() string {
	return string(s.query)
}

// CursorPos returns the cursor position in runes
func (s *SearchState) CursorPos() int {
	return s.cursorPos
}

// SetQuery sets the search query and moves the cursor to the end
func (s *SearchState) SetQuery(query string) {
	s.query = []rune(query)
	s.cursorPos = len(s.query)
}

// Clear clears the query
func (s *SearchState) Clear() {
	s.query = nil
	s.cursorPos = 0
}

// SetMinScore sets the minimum score threshold
func (s *SearchState) SetMinScore(score int) {
	s.matcher.MinScore = score
}

// GetMinScore returns the current minimum score threshold
func (s *SearchState) GetMinScore() int {
	return s.matcher.MinScore
}

// CycleThreshold steps Normal -> Strict -> None -> Permissive -> Normal and
// returns a message describing the new mode
func (s *SearchState) CycleThreshold() string {
	switch s.matcher.MinScore {
	case search.ScoreThresholdNone:
		s.matcher.MinScore = search.ScoreThresholdPermissive
		return "Search: Permissive mode (include marginal matches)"
	case search.ScoreThresholdPermissive:
		s.matcher.MinScore = search.ScoreThresholdNormal
		return "Search: Normal mode (balanced)"
	case search.ScoreThresholdNormal:
		s.matcher.MinScore = search.ScoreThresholdStrict
		return "Search: Strict mode (high quality matches only)"
	default:
		s.matcher.MinScore = search.ScoreThresholdNone
		return "Search: No filtering (all matches)"
	}
}

// ThresholdLabel names the current threshold for the filter line
func (s *SearchState) ThresholdLabel() string {
	switch s.matcher.MinScore {
	case search.ScoreThresholdStrict:
		return "Strict"
	case search.ScoreThresholdNormal:
		return "Normal"
	case search.ScoreThresholdPermissive:
		return "Permissive"
	default:
		return "All"
	}
}

// Matcher returns a matcher for the current query
func (s *SearchState) Matcher() *search.Matcher {
	m := s.matcher
	m.Pattern = string(s.query)
	return &m
}

// InsertChar inserts a character at the cursor position
func (s *SearchState) InsertChar(ch rune) {
	s.query = append(s.query[:s.cursorPos], append([]rune{ch}, s.query[s.cursorPos:]...)...)
	s.cursorPos++
}

// DeleteChar deletes the character before the cursor (backspace)
func (s *SearchState) DeleteChar() {
	if s.cursorPos > 0 {
		s.query = append(s.query[:s.cursorPos-1], s.query[s.cursorPos:]...)
		s.cursorPos--
	}
}

// DeleteCharForward deletes the character at the cursor (delete)
func (s *SearchState) DeleteCharForward() {
	if s.cursorPos < len(s.query) {
		s.query = append(s.query[:s.cursorPos], s.query[s.cursorPos+1:]...)
	}
}

// MoveCursorLeft moves cursor left
func (s *SearchState) MoveCursorLeft() {
	if s.cursorPos > 0 {
		s.cursorPos--
	}
}

// MoveCursorRight moves cursor right
func (s *SearchState) MoveCursorRight() {
	if s.cursorPos < len(s.query) {
		s.cursorPos++
	}
}

// MoveCursorStart moves cursor to start (Ctrl+A)
func (s *SearchState) MoveCursorStart() {
	s.cursorPos = 0
}

// MoveCursorEnd moves cursor to end (Ctrl+E)
func (s *SearchState) MoveCursorEnd() {
	s.cursorPos = len(s.query)
}

// DeleteToEnd deletes from cursor to end (Ctrl+K)
func (s *SearchState) DeleteToEnd() {
	s.query = s.query[:s.cursorPos]
}

// DeleteWord deletes the word before cursor (Ctrl+W)
func (s *SearchState) DeleteWord() {
	start := s.wordStart(s.cursorPos)
	s.query = append(s.query[:start], s.query[s.cursorPos:]...)
	s.cursorPos = start
}

// MoveCursorWordForward moves cursor past the next word (Alt+F)
func (s *SearchState) MoveCursorWordForward() {
	s.cursorPos = s.wordEnd(s.cursorPos)
}

// MoveCursorWordBackward moves cursor to the start of the previous word (Alt+B)
func (s *SearchState) MoveCursorWordBackward() {
	s.cursorPos = s.wordStart(s.cursorPos)
}

// DeleteWordForward deletes the word after cursor (Alt+D)
func (s *SearchState) DeleteWordForward() {
	end := s.wordEnd(s.cursorPos)
	s.query = append(s.query[:s.cursorPos], s.query[end:]...)
}

func (s *SearchState) wordStart(i int) int {
	for i > 0 && unicode.IsSpace(s.query[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(s.query[i-1]) {
		i--
	}
	return i
}

func (s *SearchState) wordEnd(i int) int {
	for i < len(s.query) && unicode.IsSpace(s.query[i]) {
		i++
	}
	for i < len(s.query) && !unicode.IsSpace(s.query[i]) {
		i++
	}
	return i
}
