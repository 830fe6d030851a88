// Package sheet holds decoded tabular data: the first worksheet of a loaded
// file as rows of string cells.
package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Row is an ordered sequence of cell values. "" denotes an empty cell.
type Row []string

// Sheet is decoded tabular data. It is immutable once created and replaced
// wholesale on the next load.
type Sheet struct {
	Name string
	rows []Row
}

// Ref addresses one cell by zero-based row and column.
type Ref struct {
	Row int
	Col int
}

// A1 renders the reference in spreadsheet notation, e.g. (0,0) -> "A1".
func (r Ref) A1() string {
	name, err := excelize.CoordinatesToCellName(r.Col+1, r.Row+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d", r.Row+1, r.Col+1)
	}
	return name
}

func (r Ref) String() string {
	return fmt.Sprintf("(%d,%d)", r.Row, r.Col)
}

// New builds a sheet from rows. The input is copied.
func New(name string, rows [][]string) Sheet {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = append(Row(nil), r...)
	}
	return Sheet{Name: name, rows: out}
}

// Rows returns a copy of the sheet's rows.
func (s Sheet) Rows() [][]string {
	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// Len returns the number of rows.
func (s Sheet) Len() int { return len(s.rows) }

// Row returns a copy of row i, or nil when i is out of range.
func (s Sheet) Row(i int) Row {
	if i < 0 || i >= len(s.rows) {
		return nil
	}
	return append(Row(nil), s.rows[i]...)
}

// Dims returns the row count and the width of the widest row.
func (s Sheet) Dims() (rows, cols int) {
	for _, r := range s.rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	return len(s.rows), cols
}

// Pad right-pads every row with "" up to the widest row, in place, and
// returns rows. Absent cells become empty strings.
func Pad(rows [][]string) [][]string {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	for i, r := range rows {
		if len(r) < width {
			padded := make([]string, width)
			copy(padded, r)
			rows[i] = padded
		}
	}
	return rows
}
