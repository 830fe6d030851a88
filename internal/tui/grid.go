package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/xuri/excelize/v2"

	"github.com/jask/breadsheet/internal/sheet"
	"github.com/jask/breadsheet/internal/table"
)

// Screen rows above the first grid row: header bar, search line and column
// letters. Status line and footer sit below the grid.
const (
	gridTop     = 3
	chromeLines = gridTop + 2
)

// columnWidths sizes every column to its widest cell, capped at maxWidth.
func columnWidths(t *table.Table, maxWidth int) []int {
	_, cols := t.Dims()
	widths := make([]int, cols)
	for c := range widths {
		widths[c] = ansi.StringWidth(columnName(c))
	}
	for _, row := range t.Rows() {
		for c, cell := range row {
			if w := ansi.StringWidth(flatten(cell.Text)); w > widths[c] {
				widths[c] = w
			}
		}
	}
	for c := range widths {
		if maxWidth > 0 && widths[c] > maxWidth {
			widths[c] = maxWidth
		}
		if widths[c] < 1 {
			widths[c] = 1
		}
	}
	return widths
}

func columnName(c int) string {
	name, err := excelize.ColumnNumberToName(c + 1)
	if err != nil {
		return strconv.Itoa(c + 1)
	}
	return name
}

// ---------------------------------------------------------------------------
// Viewport geometry
// ---------------------------------------------------------------------------

func (a *App) visibleRows() int {
	if a.height == 0 {
		return 10
	}
	return max(1, a.height-chromeLines)
}

func (a *App) screenWidth() int {
	if a.width == 0 {
		return 80
	}
	return a.width
}

func (a *App) gutterWidth() int {
	rows, _ := a.table.Dims()
	return len(strconv.Itoa(max(rows, 1))) + 1
}

// colWidth is the rendered width of column c; a column never exceeds the
// space beside the gutter.
func (a *App) colWidth(c int) int {
	avail := a.screenWidth() - a.gutterWidth() - 1
	return max(1, min(a.widths[c], avail))
}

// visibleColumns lists the columns that fit on screen starting at a.left.
func (a *App) visibleColumns() []int {
	avail := a.screenWidth() - a.gutterWidth()
	var out []int
	used := 0
	for c := a.left; c < len(a.widths); c++ {
		need := a.colWidth(c) + 1
		if len(out) > 0 && used+need > avail {
			break
		}
		out = append(out, c)
		used += need
	}
	return out
}

func (a *App) clampTop() {
	rows, _ := a.table.Dims()
	maxTop := max(0, rows-a.visibleRows())
	a.top = max(0, min(a.top, maxTop))
}

func (a *App) ensureColVisible(c int) {
	if c < a.left {
		a.left = c
	}
	for a.left < c && !slices.Contains(a.visibleColumns(), c) {
		a.left++
	}
}

func (a *App) ensureCursorVisible() {
	visible := a.visibleRows()
	if a.cursor.Row < a.top {
		a.top = a.cursor.Row
	} else if a.cursor.Row >= a.top+visible {
		a.top = a.cursor.Row - visible + 1
	}
	a.clampTop()
	a.ensureColVisible(a.cursor.Col)
}

// scrollToMatch centres ref vertically and brings its column into view.
func (a *App) scrollToMatch(ref sheet.Ref) {
	a.cursor = ref
	a.top = ref.Row - a.visibleRows()/2
	a.clampTop()
	a.ensureColVisible(ref.Col)
}

func (a *App) moveCursor(dr, dc int) {
	rows, cols := a.table.Dims()
	if rows == 0 || cols == 0 {
		return
	}
	a.cursor.Row = max(0, min(rows-1, a.cursor.Row+dr))
	a.cursor.Col = max(0, min(cols-1, a.cursor.Col+dc))
	a.ensureCursorVisible()
}

func (a *App) scrollRows(n int) {
	a.top += n
	a.clampTop()
}

// cellAt maps a screen position to the cell drawn there.
func (a *App) cellAt(x, y int) (sheet.Ref, bool) {
	line := y - gridTop
	if line < 0 || line >= a.visibleRows() {
		return sheet.Ref{}, false
	}
	row := a.top + line
	if rows, _ := a.table.Dims(); row >= rows {
		return sheet.Ref{}, false
	}
	x -= a.gutterWidth()
	if x < 0 {
		return sheet.Ref{}, false
	}
	for _, c := range a.visibleColumns() {
		w := a.colWidth(c)
		if x < w {
			return sheet.Ref{Row: row, Col: c}, true
		}
		if x == w {
			return sheet.Ref{}, false
		}
		x -= w + 1
	}
	return sheet.Ref{}, false
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

func (a *App) handleTableKey(msg tea.KeyMsg) tea.Cmd {
	b := a.keys.Lookup(msg.String(), scopeTable)
	if b == nil {
		return nil
	}
	rows, cols := a.table.Dims()
	switch b.Action {
	case actionQuit:
		return tea.Quit
	case actionUp:
		a.moveCursor(-1, 0)
	case actionDown:
		a.moveCursor(1, 0)
	case actionLeft:
		a.moveCursor(0, -1)
	case actionRight:
		a.moveCursor(0, 1)
	case actionPageUp:
		a.moveCursor(-a.visibleRows(), 0)
	case actionPageDown:
		a.moveCursor(a.visibleRows(), 0)
	case actionTop:
		a.moveCursor(-rows, 0)
	case actionBottom:
		a.moveCursor(rows, 0)
	case actionRowStart:
		a.moveCursor(0, -cols)
	case actionRowEnd:
		a.moveCursor(0, cols)
	case actionCopy:
		a.activate(a.cursor)
	case actionSearch:
		a.searching = true
		a.showHelp = false
		return a.searchInput.Focus()
	case actionClearSearch:
		if a.showHelp {
			a.showHelp = false
		} else if a.searchInput.Value() != "" || !a.result.Cleared() {
			a.clearSearch()
		}
	case actionNextMatch:
		a.stepMatch(1)
	case actionPrevMatch:
		a.stepMatch(-1)
	case actionOpen:
		return a.openPicker()
	case actionReload:
		if a.path != "" {
			return a.loadSheetCmd(a.path)
		}
	case actionHelp:
		a.showHelp = !a.showHelp
	}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.state != stateTable || !a.hasSheet {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.scrollRows(-3)
	case tea.MouseButtonWheelDown:
		a.scrollRows(3)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		if ref, ok := a.cellAt(msg.X, msg.Y); ok {
			a.cursor = ref
			a.activate(ref)
		}
	}
	return nil
}

// activate is the cell-clicked event.
func (a *App) activate(ref sheet.Ref) {
	if !a.table.Activate(ref) {
		a.status = fmt.Sprintf("%s is empty", ref.A1())
		return
	}
	a.status = fmt.Sprintf("%s copied", ref.A1())
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

func (a *App) renderGrid() string {
	rows, _ := a.table.Dims()
	if rows == 0 {
		return searchIdleStyle.Render("  This sheet has no rows.")
	}
	gw := a.gutterWidth()
	cols := a.visibleColumns()
	sep := separatorStyle.Render("│")

	var hb strings.Builder
	hb.WriteString(strings.Repeat(" ", gw))
	for _, c := range cols {
		hb.WriteString(columnHeaderStyle.Render(fit(columnName(c), a.colWidth(c))))
		hb.WriteString(sep)
	}
	lines := []string{hb.String()}

	visible := a.visibleRows()
	end := min(rows, a.top+visible)
	for r := a.top; r < end; r++ {
		var b strings.Builder
		b.WriteString(gutterStyle.Render(fmt.Sprintf("%*d ", gw-1, r+1)))
		for _, c := range cols {
			ref := sheet.Ref{Row: r, Col: c}
			b.WriteString(a.renderCell(a.table.At(ref), ref, a.colWidth(c)))
			b.WriteString(sep)
		}
		lines = append(lines, b.String())
	}
	for len(lines) < visible+1 {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderCell(cell *table.Cell, ref sheet.Ref, width int) string {
	text := ""
	style := cellStyle
	if cell != nil {
		text = flatten(cell.Text)
		if a.table.IsLastClicked(cell) {
			style = clickedStyle
		}
		if cell.Highlighted {
			style = highlightStyle
			if a.result.First == cell {
				style = firstMatchStyle
			}
		}
	}
	if ref == a.cursor {
		style = style.Reverse(true)
	}
	return style.Render(fit(text, width))
}
