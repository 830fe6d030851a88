package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/breadsheet/internal/sheet"
	"github.com/jask/breadsheet/internal/table"
)

func render(rows [][]string) *table.Table {
	t := table.New(nil, nil)
	t.Render(sheet.New("t", rows))
	return t
}

func highlighted(t *table.Table) []sheet.Ref {
	var out []sheet.Ref
	for _, c := range Matches(t) {
		out = append(out, c.Ref)
	}
	return out
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	require.Equal(t, "foo bar", Normalize("  FoO Bar\t"))
	require.Equal(t, "", Normalize("   "))
}

func TestApplyFirstMatchRowMajor(t *testing.T) {
	t.Parallel()

	tbl := render([][]string{{"foo", "bar"}, {"baz", "foo"}})
	res := Apply(tbl, "foo")

	require.Equal(t, "foo", res.Query)
	require.Equal(t, 2, res.Matches)
	require.NotNil(t, res.First)
	require.Equal(t, sheet.Ref{Row: 0, Col: 0}, res.First.Ref)
	require.Equal(t, []sheet.Ref{{Row: 0, Col: 0}, {Row: 1, Col: 1}}, highlighted(tbl))
}

func TestApplyCaseInsensitive(t *testing.T) {
	t.Parallel()

	tbl := render([][]string{{"Alpha", "BETA"}, {"gamma", "alphabeta"}})
	res := Apply(tbl, "  ALPHA ")
	require.Equal(t, 2, res.Matches)
	require.Equal(t, []sheet.Ref{{Row: 0, Col: 0}, {Row: 1, Col: 1}}, highlighted(tbl))

	res = Apply(tbl, "beta")
	require.Equal(t, []sheet.Ref{{Row: 0, Col: 1}, {Row: 1, Col: 1}}, highlighted(tbl))
	require.Equal(t, sheet.Ref{Row: 0, Col: 1}, res.First.Ref)
}

func TestApplyCaseVariantsHighlightSameCells(t *testing.T) {
	t.Parallel()

	tbl := render([][]string{{"ABC", "xabcx"}, {"aBc", "ab c"}, {"", "Cab"}})
	upper := Apply(tbl, "ABC")
	upperSet := highlighted(tbl)
	lower := Apply(tbl, "abc")
	require.Equal(t, upperSet, highlighted(tbl))
	require.Equal(t, upper.Matches, lower.Matches)
	require.Equal(t, upper.First.Ref, lower.First.Ref)
	require.Equal(t, []sheet.Ref{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}}, upperSet)
}

func TestApplyIdempotent(t *testing.T) {
	t.Parallel()

	tbl := render([][]string{{"foo", "bar"}, {"baz", "foo"}})
	first := Apply(tbl, "ba")
	before := highlighted(tbl)
	second := Apply(tbl, "ba")
	require.Equal(t, before, highlighted(tbl))
	require.Equal(t, first.Matches, second.Matches)
	require.Same(t, first.First, second.First)
}

func TestApplyEmptyClears(t *testing.T) {
	t.Parallel()

	tbl := render([][]string{{"foo", "bar"}})
	Apply(tbl, "o")
	require.NotEmpty(t, highlighted(tbl))

	res := Apply(tbl, "   ")
	require.True(t, res.Cleared())
	require.Nil(t, res.First)
	require.Zero(t, res.Matches)
	require.Empty(t, highlighted(tbl))
}

func TestApplyNoMatch(t *testing.T) {
	t.Parallel()

	tbl := render([][]string{{"foo"}})
	Apply(tbl, "foo")
	res := Apply(tbl, "zzz")
	require.False(t, res.Cleared())
	require.Nil(t, res.First)
	require.Empty(t, highlighted(tbl), "previous highlights are dropped")
}

func TestEmptyCellNeverHighlighted(t *testing.T) {
	t.Parallel()

	tbl := render([][]string{{"Name", "Age"}, {"Ann", "30"}, {"Bo", ""}})
	for _, q := range []string{"a", "0", "bo", "n"} {
		Apply(tbl, q)
		require.False(t, tbl.At(sheet.Ref{Row: 2, Col: 1}).Highlighted, q)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	tbl := render([][]string{{"apple", "banana"}, {"", "cherry"}})
	require.Equal(t, "banana", Suggest(tbl, "bananna"))
	require.Equal(t, "cherry", Suggest(tbl, "CHERY"))
	require.Equal(t, "", Suggest(tbl, ""))
	require.Equal(t, "", Suggest(render(nil), "x"))
}
