// Package table turns a decoded sheet into rendered cells and handles cell
// activation: copy the trimmed text to the clipboard, mark the cell as last
// clicked and report the outcome.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jask/breadsheet/internal/notify"
	"github.com/jask/breadsheet/internal/sheet"
)

// ErrNoClipboard is reported when a table has no clipboard wired.
var ErrNoClipboard = errors.New("no clipboard available")

// Clipboard receives copied cell text.
type Clipboard interface {
	WriteText(text string) error
}

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(kind notify.Kind, msg string)
}

// Cell is one rendered cell.
type Cell struct {
	Ref         sheet.Ref
	Text        string
	NonEmpty    bool
	Highlighted bool
}

// Clickable reports whether activating the cell does anything.
func (c *Cell) Clickable() bool { return c.NonEmpty }

// Table owns the rendered cells of the current sheet.
type Table struct {
	clip   Clipboard
	notify Notifier

	name        string
	cells       []*Cell
	grid        [][]*Cell
	cols        int
	lastClicked *Cell
}

// New returns an empty table wired to its collaborators. Either may be nil.
func New(clip Clipboard, n Notifier) *Table {
	return &Table{clip: clip, notify: n}
}

// Render discards every previously rendered cell and builds one cell per
// source cell in row-major order.
func (t *Table) Render(s sheet.Sheet) {
	t.name = s.Name
	t.cells = nil
	t.grid = make([][]*Cell, s.Len())
	t.lastClicked = nil
	_, t.cols = s.Dims()

	for r := 0; r < s.Len(); r++ {
		row := s.Row(r)
		t.grid[r] = make([]*Cell, len(row))
		for c, text := range row {
			cell := &Cell{
				Ref:      sheet.Ref{Row: r, Col: c},
				Text:     text,
				NonEmpty: text != "",
			}
			t.grid[r][c] = cell
			t.cells = append(t.cells, cell)
		}
	}
}

// Activate handles a click on ref. Empty and out-of-range cells are ignored
// and false is returned. Clipboard failures are reported through the
// notifier, never returned.
func (t *Table) Activate(ref sheet.Ref) bool {
	cell := t.At(ref)
	if cell == nil || !cell.Clickable() {
		return false
	}

	text := strings.TrimSpace(cell.Text)
	var err error
	if t.clip == nil {
		err = ErrNoClipboard
	} else {
		err = t.clip.WriteText(text)
	}

	t.lastClicked = cell

	if t.notify != nil {
		if err != nil {
			t.notify.Notify(notify.Error, CopyFailedMessage(err))
		} else {
			t.notify.Notify(notify.Success, CopiedMessage(text))
		}
	}
	return true
}

// CopiedMessage is the success text for a copied value.
func CopiedMessage(text string) string {
	return fmt.Sprintf("Copied! - \"%s\"", text)
}

// CopyFailedMessage is the error text for a failed copy.
func CopyFailedMessage(err error) string {
	return fmt.Sprintf("Failed to copy text: %v", err)
}

// Name is the source name of the rendered sheet.
func (t *Table) Name() string { return t.name }

// Cells returns every rendered cell in row-major order.
func (t *Table) Cells() []*Cell { return t.cells }

// Rows returns the rendered grid. Rows keep the source's ragged shape.
func (t *Table) Rows() [][]*Cell { return t.grid }

// At returns the cell at ref or nil.
func (t *Table) At(ref sheet.Ref) *Cell {
	if ref.Row < 0 || ref.Row >= len(t.grid) {
		return nil
	}
	row := t.grid[ref.Row]
	if ref.Col < 0 || ref.Col >= len(row) {
		return nil
	}
	return row[ref.Col]
}

// LastClicked returns the most recently activated cell, or nil.
func (t *Table) LastClicked() *Cell { return t.lastClicked }

// IsLastClicked reports whether c holds the last-clicked mark.
func (t *Table) IsLastClicked(c *Cell) bool {
	return c != nil && c == t.lastClicked
}

// Dims returns the row count and the widest row.
func (t *Table) Dims() (rows, cols int) { return len(t.grid), t.cols }

// Len is the number of rendered cells.
func (t *Table) Len() int { return len(t.cells) }

// Texts reads the rendered grid back as strings.
func (t *Table) Texts() [][]string {
	out := make([][]string, len(t.grid))
	for r, row := range t.grid {
		out[r] = make([]string, len(row))
		for c, cell := range row {
			out[r][c] = cell.Text
		}
	}
	return out
}
