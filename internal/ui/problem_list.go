package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lc-tui/lc/internal/highlight"
	"github.com/lc-tui/lc/internal/markup"
	"github.com/lc-tui/lc/internal/models"
	"github.com/lc-tui/lc/internal/search"
	"github.com/lc-tui/lc/internal/tags"
)

const (
	colStatus = iota
	colNumber
	colTitle
	colDifficulty
	colAcceptance
	colTags
)

// ProblemTableRow adapts a problem to the TableRow interface
type ProblemTableRow struct {
	problem *models.Problem
	hit     *search.Hit
	local   bool
}

func (r *ProblemTableRow) Cell(col int) string {
	p := r.problem
	switch col {
	case colStatus:
		return p.Status.Symbol()
	case colNumber:
		return p.ID
	case colTitle:
		if p.PaidOnly {
			return p.Title + " $"
		}
		return p.Title
	case colDifficulty:
		return string(p.Difficulty)
	case colAcceptance:
		if p.AcceptanceRate == 0 {
			return "—"
		}
		return fmt.Sprintf("%.1f%%", p.AcceptanceRate)
	case colTags:
		names := ""
		for i, t := range tags.FromTopicSlugs(p.Tags) {
			if i > 0 {
				names += " "
			}
			names += t.String()
		}
		return names
	}
	return ""
}

func (r *ProblemTableRow) CellStyle(col int, base tcell.Style) tcell.Style {
	switch col {
	case colStatus:
		return base.Foreground(StatusColor(r.problem.Status))
	case colNumber:
		if r.local {
			return base.Foreground(ColorCyan).Bold(true)
		}
		return base.Foreground(ColorDimmed)
	case colDifficulty:
		return base.Foreground(DifficultyColor(r.problem.Difficulty))
	case colAcceptance, colTags:
		return base.Foreground(ColorComment)
	}
	return base
}

// HighlightPositions splits the "<id>. <title>" match positions into the
// number and title columns
func (r *ProblemTableRow) HighlightPositions(col int) []int {
	if r.hit == nil || r.hit.Field != search.FieldTitle {
		return nil
	}
	offset := len([]rune(r.problem.ID)) + 2
	var out []int
	for _, pos := range r.hit.Result.Positions {
		switch {
		case col == colNumber && pos < offset-2:
			out = append(out, pos)
		case col == colTitle && pos >= offset:
			out = append(out, pos-offset)
		}
	}
	return out
}

// ProblemListView is the problem table plus a description pane
type ProblemListView struct {
	table       *Table
	problems    []*models.Problem
	hits        []search.Hit
	searchState *SearchState

	renderer *markup.Renderer
	language string
	// rendered descriptions keyed by slug
	rendered    map[string]markup.Text
	showSnippet bool
	isLocal     func(*models.Problem) bool

	descScrollOffset int
	descMaxScroll    int
}

// NewProblemListView creates the view. isLocal reports whether a problem
// already has a workspace directory; it may be nil.
func NewProblemListView(policy markup.Policy, language string, isLocal func(*models.Problem) bool) *ProblemListView {
	v := &ProblemListView{
		table:       NewTable(),
		searchState: NewSearchState(),
		renderer:    markup.NewRenderer(policy),
		language:    language,
		rendered:    make(map[string]markup.Text),
		isLocal:     isLocal,
	}
	v.table.SetColumns([]TableColumn{
		{Title: "", Width: 2},
		{Title: "#", Width: 5, Align: AlignRight},
		{Title: "Title", MinWidth: 20, FlexWeight: 0.6},
		{Title: "Difficulty", Width: 10},
		{Title: "Accept", Width: 7, Align: AlignRight},
		{Title: "Tags", MinWidth: 10, FlexWeight: 0.4},
	})
	return v
}

// SetProblems replaces the listed problems and reapplies the filter
func (v *ProblemListView) SetProblems(problems []*models.Problem) {
	v.problems = problems
	v.rendered = make(map[string]markup.Text)
	v.applyFilter()
}

// GetSelected returns the selected problem, or nil
func (v *ProblemListView) GetSelected() *models.Problem {
	if row, ok := v.table.GetSelectedRow().(*ProblemTableRow); ok {
		return row.problem
	}
	return nil
}

// ToggleSnippet switches the lower pane between description and starter code
func (v *ProblemListView) ToggleSnippet() {
	v.showSnippet = !v.showSnippet
	v.descScrollOffset = 0
}

// ShowingSnippet reports whether the starter code is shown
func (v *ProblemListView) ShowingSnippet() bool {
	return v.showSnippet
}

func (v *ProblemListView) GetSearchState() *SearchState {
	return v.searchState
}

// UpdateSearch refilters after the query changed
func (v *ProblemListView) UpdateSearch() {
	v.applyFilter()
	v.table.SelectFirst()
	v.descScrollOffset = 0
}

// VisibleCount returns the number of rows after filtering
func (v *ProblemListView) VisibleCount() int {
	return v.table.Len()
}

func (v *ProblemListView) Draw(s tcell.Screen) {
	w, h := s.Size()
	bg := tcell.StyleDefault.Background(ColorBg)

	// status bar takes the last row
	h--
	listHeight := max(h/2, 5)
	descHeight := h - listHeight
	if descHeight < 3 {
		listHeight, descHeight = h, 0
	}

	drawText(s, 0, 0, bg.Foreground(ColorHeader).Bold(true), "Problems")
	for x := 0; x < w; x++ {
		s.SetContent(x, 1, '─', nil, bg.Foreground(ColorFgGutter))
	}

	query := v.searchState.Query()
	filterText := ""
	if query != "" {
		filterText = fmt.Sprintf("[%s] Filter: %s (%d matches)", v.searchState.ThresholdLabel(), query, len(v.hits))
		drawText(s, max(w-runewidth.StringWidth(filterText)-2, 10), 0, bg.Foreground(ColorHighlight), filterText)
	}

	if v.table.Len() == 0 {
		dim := bg.Foreground(ColorDimmed)
		if query != "" {
			drawText(s, 2, 3, dim, "No problems match your search")
		} else {
			drawText(s, 2, 3, dim, "No problems cached")
			drawText(s, 2, 5, dim, "Press 'r' to fetch the problem list")
			drawText(s, 2, 6, dim, "or ':new <link>' to start a problem by URL")
		}
		return
	}

	v.table.SetPosition(0, 2)
	v.table.SetSize(w, listHeight-2)
	v.table.Draw(s)

	if first, last, total := v.table.GetScrollInfo(); total > last-first+1 {
		info := fmt.Sprintf("[%d-%d/%d]", first, last, total)
		drawText(s, 10, 0, bg.Foreground(ColorDimmed), info)
	}

	if descHeight > 0 {
		v.drawDescription(s, listHeight, w, descHeight)
	}
}

// paneText is what the lower pane shows for the selected problem
func (v *ProblemListView) paneText(p *models.Problem) (string, markup.Text) {
	if v.showSnippet {
		if p.Snippet == "" {
			return "Starter code", nil
		}
		return "Starter code (" + v.language + ")", highlight.Snippet(p.Snippet, v.language)
	}
	if p.Description == "" {
		return "Description", nil
	}
	text, ok := v.rendered[p.TitleSlug]
	if !ok {
		text = v.renderer.Render(p.Description)
		v.rendered[p.TitleSlug] = text
	}
	return "Description", text
}

func (v *ProblemListView) drawDescription(s tcell.Screen, y, w, height int) {
	bg := tcell.StyleDefault.Background(ColorBg)
	for x := 0; x < w; x++ {
		s.SetContent(x, y, '─', nil, bg.Foreground(ColorFgGutter))
	}

	p := v.GetSelected()
	if p == nil {
		return
	}

	header, text := v.paneText(p)
	header = fmt.Sprintf("%s: %s", header, search.Label(p))
	if v.showSnippet {
		header += "  [s: description]"
	} else {
		header += "  [s: code]"
	}
	drawText(s, 1, y+1, bg.Foreground(ColorHeader).Bold(true), runewidth.Truncate(header, w-2, "..."))

	if len(text) == 0 {
		msg := "No description available (press 'd' to fetch)"
		if v.showSnippet {
			msg = "No starter code available"
		}
		drawText(s, 2, y+3, bg.Foreground(ColorDimmed), msg)
		return
	}

	lines := wrapText(text, w-4)
	visible := height - 2
	v.descMaxScroll = max(len(lines)-visible, 0)
	v.descScrollOffset = min(v.descScrollOffset, v.descMaxScroll)

	base := bg.Foreground(ColorFg)
	for i := 0; i < visible && v.descScrollOffset+i < len(lines); i++ {
		drawLine(s, 2, y+2+i, base, lines[v.descScrollOffset+i])
	}

	if v.descMaxScroll > 0 {
		info := fmt.Sprintf("[%d/%d]", v.descScrollOffset+1, v.descMaxScroll+1)
		drawText(s, w-runewidth.StringWidth(info)-1, y+1, bg.Foreground(ColorDimmed), info)
	}
}

// drawLine draws one line of rendered text
func drawLine(s tcell.Screen, x, y int, base tcell.Style, line markup.Line) {
	for _, span := range line {
		style := GetTcellStyle(base, span.Style)
		for _, r := range span.Text {
			s.SetContent(x, y, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}
}

func (v *ProblemListView) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		return false
	}

	if ev.Modifiers()&tcell.ModAlt != 0 {
		switch ev.Rune() {
		case 'j':
			v.descScrollOffset = min(v.descScrollOffset+1, v.descMaxScroll)
			return true
		case 'k':
			v.descScrollOffset = max(v.descScrollOffset-1, 0)
			return true
		}
		return false
	}

	switch ev.Rune() {
	case 'j':
		return v.moved(v.table.SelectNext())
	case 'k':
		return v.moved(v.table.SelectPrevious())
	case 'g':
		v.table.SelectFirst()
		return v.moved(true)
	case 'G':
		v.table.SelectLast()
		return v.moved(true)
	}
	return false
}

func (v *ProblemListView) HandlePageDown() bool {
	return v.moved(v.table.PageDown())
}

func (v *ProblemListView) HandlePageUp() bool {
	return v.moved(v.table.PageUp())
}

func (v *ProblemListView) moved(ok bool) bool {
	if ok {
		v.descScrollOffset = 0
	}
	return ok
}

func (v *ProblemListView) applyFilter() {
	v.hits = v.searchState.Matcher().Problems(v.problems)
	v.updateTableRows()
}

func (v *ProblemListView) updateTableRows() {
	query := v.searchState.Query()
	rows := make([]TableRow, len(v.hits))
	for i := range v.hits {
		hit := &v.hits[i]
		row := &ProblemTableRow{problem: hit.Problem}
		if query != "" {
			row.hit = hit
		}
		if v.isLocal != nil {
			row.local = v.isLocal(hit.Problem)
		}
		rows[i] = row
	}
	v.table.SetRows(rows)
}
