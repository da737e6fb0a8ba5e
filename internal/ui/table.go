package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TableColumn defines a column in the table
type TableColumn struct {
	Title      string
	Width      int     // 0 means flexible width
	MinWidth   int     // for flexible columns
	MaxWidth   int     // for flexible columns, 0 = no limit
	FlexWeight float64 // share of the remaining width
	Align      Alignment
}

// Alignment specifies text alignment within a cell
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// TableRow is a single row of data
type TableRow interface {
	Cell(col int) string
	// CellStyle derives the cell's style from the row's base style
	CellStyle(col int, base tcell.Style) tcell.Style
	// HighlightPositions returns rune positions to highlight in a cell
	HighlightPositions(col int) []int
}

// Table is a scrollable, selectable table widget
type Table struct {
	columns      []TableColumn
	columnWidths []int
	rows         []TableRow
	selectedIdx  int
	scrollOffset int

	x, y, width, height int

	indicator      string
	headerStyle    tcell.Style
	defaultStyle   tcell.Style
	selectedStyle  tcell.Style
	highlightStyle tcell.Style
}

// NewTable creates a table with a header row and a "> " selection indicator
func NewTable() *Table {
	return &Table{
		indicator:      "> ",
		headerStyle:    tcell.StyleDefault.Bold(true).Foreground(ColorHeader).Background(ColorBg),
		defaultStyle:   tcell.StyleDefault.Foreground(ColorFg).Background(ColorBg),
		selectedStyle:  tcell.StyleDefault.Background(ColorSelection).Foreground(ColorBright),
		highlightStyle: tcell.StyleDefault.Foreground(ColorHighlight).Bold(true),
	}
}

// SetColumns sets the column configuration
func (t *Table) SetColumns(columns []TableColumn) {
	t.columns = columns
	t.calculateColumnWidths()
}

// SetRows replaces the data rows, keeping the selection in range
func (t *Table) SetRows(rows []TableRow) {
	t.rows = rows
	switch {
	case len(rows) == 0:
		t.selectedIdx = 0
		t.scrollOffset = 0
		return
	case t.selectedIdx >= len(rows):
		t.selectedIdx = len(rows) - 1
	}
	t.ensureVisible()
}

// SetPosition sets the table's position on screen
func (t *Table) SetPosition(x, y int) {
	t.x, t.y = x, y
}

// SetSize sets the table's size, header included
func (t *Table) SetSize(width, height int) {
	if width == t.width && height == t.height {
		return
	}
	t.width, t.height = width, height
	t.calculateColumnWidths()
	t.ensureVisible()
}

// GetSelectedIndex returns the currently selected row index
func (t *Table) GetSelectedIndex() int {
	return t.selectedIdx
}

// GetSelectedRow returns the currently selected row, or nil
func (t *Table) GetSelectedRow() TableRow {
	if t.selectedIdx >= 0 && t.selectedIdx < len(t.rows) {
		return t.rows[t.selectedIdx]
	}
	return nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// SelectNext moves selection to the next row
func (t *Table) SelectNext() bool {
	return t.selectIndex(t.selectedIdx + 1)
}

// SelectPrevious moves selection to the previous row
func (t *Table) SelectPrevious() bool {
	return t.selectIndex(t.selectedIdx - 1)
}

// SelectFirst moves selection to the first row
func (t *Table) SelectFirst() {
	t.selectedIdx = 0
	t.scrollOffset = 0
}

// SelectLast moves selection to the last row
func (t *Table) SelectLast() {
	t.selectIndex(len(t.rows) - 1)
}

// PageDown moves selection down by one page
func (t *Table) PageDown() bool {
	return t.selectIndex(min(t.selectedIdx+t.pageSize(), len(t.rows)-1))
}

// PageUp moves selection up by one page
func (t *Table) PageUp() bool {
	return t.selectIndex(max(t.selectedIdx-t.pageSize(), 0))
}

func (t *Table) selectIndex(i int) bool {
	if i < 0 || i >= len(t.rows) || i == t.selectedIdx {
		return false
	}
	t.selectedIdx = i
	t.ensureVisible()
	return true
}

func (t *Table) pageSize() int {
	return max(t.visibleHeight()-1, 1)
}

// GetScrollInfo returns the 1-based visible range and the row count
func (t *Table) GetScrollInfo() (firstVisible, lastVisible, total int) {
	total = len(t.rows)
	firstVisible = t.scrollOffset + 1
	lastVisible = min(t.scrollOffset+t.visibleHeight(), total)
	return
}

// Draw renders the table to the screen
func (t *Table) Draw(s tcell.Screen) {
	if t.width <= 0 || t.height <= 0 {
		return
	}

	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			s.SetContent(t.x+x, t.y+y, ' ', nil, t.defaultStyle)
		}
	}

	t.drawCells(s, t.y, t.headerStyle, func(i int) (string, tcell.Style, []int) {
		return t.columns[i].Title, t.headerStyle, nil
	})

	for i := 0; i < t.visibleHeight() && t.scrollOffset+i < len(t.rows); i++ {
		idx := t.scrollOffset + i
		row := t.rows[idx]
		base := t.defaultStyle
		if idx == t.selectedIdx {
			base = t.selectedStyle
			for x := 0; x < t.width; x++ {
				s.SetContent(t.x+x, t.y+1+i, ' ', nil, base)
			}
			drawText(s, t.x, t.y+1+i, base, t.indicator)
		}
		t.drawCells(s, t.y+1+i, base, func(c int) (string, tcell.Style, []int) {
			return row.Cell(c), row.CellStyle(c, base), row.HighlightPositions(c)
		})
	}
}

func (t *Table) drawCells(s tcell.Screen, y int, base tcell.Style, cell func(int) (string, tcell.Style, []int)) {
	x := t.x + runewidth.StringWidth(t.indicator)
	for i, col := range t.columns {
		if i >= len(t.columnWidths) {
			return
		}
		text, style, highlights := cell(i)
		_, bg, _ := base.Decompose()
		hl := t.highlightStyle.Background(bg)
		if base == t.selectedStyle {
			hl = base.Foreground(ColorBgDark).Background(ColorHighlight).Bold(true)
		}
		drawCell(s, x, y, t.columnWidths[i], text, style, hl, highlights, col.Align)
		x += t.columnWidths[i] + 1
	}
}

func (t *Table) visibleHeight() int {
	return max(t.height-1, 0)
}

// ensureVisible centers the selection where possible
func (t *Table) ensureVisible() {
	h := t.visibleHeight()
	if h <= 0 {
		return
	}
	maxOffset := max(len(t.rows)-h, 0)
	t.scrollOffset = min(max(t.selectedIdx-h/2, 0), maxOffset)
}

func (t *Table) calculateColumnWidths() {
	if len(t.columns) == 0 || t.width <= 0 {
		return
	}
	t.columnWidths = make([]int, len(t.columns))

	fixed := runewidth.StringWidth(t.indicator) + len(t.columns) - 1
	totalWeight := 0.0
	for i, col := range t.columns {
		if col.Width > 0 {
			t.columnWidths[i] = col.Width
			fixed += col.Width
			continue
		}
		totalWeight += flexWeight(col)
	}

	available := t.width - fixed
	if available <= 0 || totalWeight == 0 {
		return
	}
	for i, col := range t.columns {
		if col.Width > 0 {
			continue
		}
		w := int(float64(available) * flexWeight(col) / totalWeight)
		if col.MinWidth > 0 && w < col.MinWidth {
			w = col.MinWidth
		}
		if col.MaxWidth > 0 && w > col.MaxWidth {
			w = col.MaxWidth
		}
		t.columnWidths[i] = w
	}
}

func flexWeight(col TableColumn) float64 {
	if col.FlexWeight <= 0 {
		return 1
	}
	return col.FlexWeight
}

// drawCell draws text aligned within width cells, truncating with "..."
func drawCell(s tcell.Screen, x, y, width int, text string, style, hl tcell.Style, highlights []int, align Alignment) {
	if width <= 0 {
		return
	}

	display := text
	truncated := runewidth.StringWidth(text) > width
	if truncated {
		display = runewidth.Truncate(text, width, "")
		if width > 3 {
			display = runewidth.Truncate(text, width-3, "")
		}
	} else if pad := width - runewidth.StringWidth(text); pad > 0 {
		switch align {
		case AlignCenter:
			x += pad / 2
		case AlignRight:
			x += pad
		}
	}

	marked := make(map[int]bool, len(highlights))
	for _, p := range highlights {
		marked[p] = true
	}

	i := 0
	for _, r := range display {
		st := style
		if marked[i] {
			st = hl
		}
		s.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
		i++
	}
	if truncated && width > 3 {
		drawText(s, x, y, style, strings.Repeat(".", 3))
	}
}
