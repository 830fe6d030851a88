// Package htmlview renders a table as a standalone HTML page.
package htmlview

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/jask/breadsheet/internal/table"
)

//go:embed page.html.tmpl
var pageSource string

var page = template.Must(template.New("page").Parse(pageSource))

// Options controls the page header.
type Options struct {
	Title string
	Query string
}

type cellView struct {
	Row, Col int
	Text     string
	Class    string
	First    bool
}

type pageView struct {
	Title    string
	Query    string
	Rows     int
	Cols     int
	Matches  int
	HasFirst bool
	Grid     [][]cellView
}

// Render writes t to w. Highlight and last-clicked state is taken from the
// table as it stands; the first highlighted cell in row-major order is
// marked as the first match.
func Render(w io.Writer, t *table.Table, opts Options) error {
	v := pageView{Title: opts.Title, Query: strings.TrimSpace(opts.Query)}
	if v.Title == "" {
		v.Title = t.Name()
	}
	if v.Title == "" {
		v.Title = "Breadsheet"
	}
	v.Rows, v.Cols = t.Dims()

	v.Grid = make([][]cellView, 0, len(t.Rows()))
	for _, row := range t.Rows() {
		out := make([]cellView, 0, len(row))
		for _, c := range row {
			cv := cellView{Row: c.Ref.Row, Col: c.Ref.Col, Text: c.Text, Class: classes(t, c)}
			if c.Highlighted {
				v.Matches++
				if !v.HasFirst {
					cv.First = true
					v.HasFirst = true
				}
			}
			out = append(out, cv)
		}
		v.Grid = append(v.Grid, out)
	}

	if err := page.Execute(w, v); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func classes(t *table.Table, c *table.Cell) string {
	var cls []string
	if c.NonEmpty {
		cls = append(cls, "non-empty")
	}
	if c.Highlighted {
		cls = append(cls, "highlight")
	}
	if t.IsLastClicked(c) {
		cls = append(cls, "last-clicked")
	}
	return strings.Join(cls, " ")
}
