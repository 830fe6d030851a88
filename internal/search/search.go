// Package search highlights rendered cells whose text contains a
// case-insensitive query.
package search

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/breadsheet/internal/table"
)

// Result summarises one Apply call.
type Result struct {
	Query   string
	First   *table.Cell
	Matches int
}

// Cleared reports whether the query was empty and highlights were removed.
func (r Result) Cleared() bool { return r.Query == "" }

// Normalize trims and lower-cases a raw query.
func Normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Apply re-evaluates every cell against query. An empty query clears all
// highlights. Each call starts from scratch so repeated calls are idempotent.
func Apply(t *table.Table, query string) Result {
	q := Normalize(query)
	res := Result{Query: q}
	for _, c := range t.Cells() {
		if q == "" || !c.NonEmpty {
			c.Highlighted = false
			continue
		}
		c.Highlighted = strings.Contains(strings.ToLower(c.Text), q)
		if c.Highlighted {
			res.Matches++
			if res.First == nil {
				res.First = c
			}
		}
	}
	return res
}

// Matches returns the highlighted cells in row-major order.
func Matches(t *table.Table) []*table.Cell {
	var out []*table.Cell
	for _, c := range t.Cells() {
		if c.Highlighted {
			out = append(out, c)
		}
	}
	return out
}

// Suggest returns the non-empty cell text closest to query by edit distance.
// Ties go to the earliest cell. It returns "" for an empty query or table.
func Suggest(t *table.Table, query string) string {
	q := Normalize(query)
	if q == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, c := range t.Cells() {
		if !c.NonEmpty {
			continue
		}
		d := levenshtein.ComputeDistance(q, strings.ToLower(strings.TrimSpace(c.Text)))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c.Text, d
		}
	}
	return strings.TrimSpace(best)
}
