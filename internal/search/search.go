// Package search does fzf-style fuzzy matching over problems
package search

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/lc-tui/lc/internal/models"
	"github.com/lc-tui/lc/internal/tags"
)

// Score threshold constants (based on raw fzf scores)
const (
	ScoreThresholdStrict     = 70
	ScoreThresholdNormal     = 50
	ScoreThresholdPermissive = 30
	ScoreThresholdNone       = 0
)

// Field names the part of a problem that matched
type Field string

const (
	FieldNone        Field = ""
	FieldTitle       Field = "title"
	FieldTags        Field = "tags"
	FieldDescription Field = "description"
)

var initOnce sync.Once

// Result contains match score and rune positions
type Result struct {
	Score     int
	Positions []int
}

// Matched reports whether the pattern was found at all
func (r Result) Matched() bool {
	return r.Score >= 0
}

// Matcher scores text against a pattern
type Matcher struct {
	Pattern       string
	CaseSensitive bool
	MinScore      int
}

// NewMatcher returns a case-insensitive matcher with the normal threshold
func NewMatcher(pattern string) *Matcher {
	return &Matcher{Pattern: pattern, MinScore: ScoreThresholdNormal}
}

// Match scores text. A score of -1 means no match; an empty pattern matches
// everything with score 0.
func (m *Matcher) Match(text string) Result {
	if m.Pattern == "" {
		return Result{}
	}
	initOnce.Do(func() { algo.Init("default") })

	pattern := m.Pattern
	if !m.CaseSensitive {
		text = strings.ToLower(text)
		pattern = strings.ToLower(pattern)
	}

	chars := util.ToChars([]byte(text))
	slab := util.MakeSlab(16384, 1024)
	res, pos := algo.FuzzyMatchV2(m.CaseSensitive, false, true, &chars, []rune(pattern), true, slab)
	if res.Start < 0 {
		return Result{Score: -1}
	}

	var positions []int
	if pos != nil {
		positions = make([]int, len(*pos))
		copy(positions, *pos)
		sort.Ints(positions)
	}
	return Result{Score: res.Score, Positions: positions}
}

func (m *Matcher) accept(r Result) bool {
	return r.Matched() && (m.MinScore == 0 || r.Score >= m.MinScore)
}

// MatchProblem tries the "<id>. <title>" label first, then the tag names,
// then the rendered description. Positions are only meaningful for the title.
func (m *Matcher) MatchProblem(p *models.Problem) (Result, Field, bool) {
	if m.Pattern == "" {
		return Result{}, FieldNone, true
	}

	if r := m.Match(Label(p)); m.accept(r) {
		return r, FieldTitle, true
	}

	if len(p.Tags) > 0 {
		names := make([]string, 0, len(p.Tags))
		for _, t := range tags.FromTopicSlugs(p.Tags) {
			names = append(names, t.String())
		}
		if r := m.Match(strings.Join(names, " ")); m.accept(r) {
			return Result{Score: r.Score}, FieldTags, true
		}
	}

	if p.RenderedDescription != "" {
		if r := m.Match(p.RenderedDescription); m.accept(r) {
			return Result{Score: r.Score}, FieldDescription, true
		}
	}
	return Result{Score: -1}, FieldNone, false
}

// Label is the text a problem is matched and listed by
func Label(p *models.Problem) string {
	return p.ID + ". " + p.Title
}

// Hit is a scored problem
type Hit struct {
	Problem *models.Problem
	Result  Result
	Field   Field
}

// Problems filters and ranks problems, best score first. Ties keep
// problem-number order.
func (m *Matcher) Problems(problems []*models.Problem) []Hit {
	hits := make([]Hit, 0, len(problems))
	for _, p := range problems {
		if r, f, ok := m.MatchProblem(p); ok {
			hits = append(hits, Hit{Problem: p, Result: r, Field: f})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Result.Score > hits[j].Result.Score
	})
	return hits
}

// ByNumber returns the problem whose frontend id equals n
func ByNumber(problems []*models.Problem, n int) *models.Problem {
	id := strconv.Itoa(n)
	for _, p := range problems {
		if p.ID == id {
			return p
		}
	}
	return nil
}
