package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/breadsheet/internal/notify"
	"github.com/jask/breadsheet/internal/sheet"
)

type fakeClipboard struct {
	writes []string
	err    error
}

func (f *fakeClipboard) WriteText(text string) error {
	f.writes = append(f.writes, text)
	return f.err
}

type note struct {
	kind notify.Kind
	msg  string
}

type fakeNotifier struct{ notes []note }

func (f *fakeNotifier) Notify(kind notify.Kind, msg string) {
	f.notes = append(f.notes, note{kind, msg})
}

func newTable(rows [][]string) (*Table, *fakeClipboard, *fakeNotifier) {
	clip := &fakeClipboard{}
	n := &fakeNotifier{}
	tbl := New(clip, n)
	tbl.Render(sheet.New("people.csv", rows))
	return tbl, clip, n
}

func TestRenderReadsBackRowMajor(t *testing.T) {
	t.Parallel()

	rows := [][]string{{"Name", "Age"}, {"Ann", "30"}, {"Bo", ""}}
	tbl, _, _ := newTable(rows)

	require.Equal(t, rows, tbl.Texts())
	r, c := tbl.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)
	require.Equal(t, 6, tbl.Len())
	require.Equal(t, "people.csv", tbl.Name())

	var flat []string
	for i, cell := range tbl.Cells() {
		flat = append(flat, cell.Text)
		require.Equal(t, i/2, cell.Ref.Row)
		require.Equal(t, i%2, cell.Ref.Col)
	}
	require.Equal(t, []string{"Name", "Age", "Ann", "30", "Bo", ""}, flat)

	empty := tbl.At(sheet.Ref{Row: 2, Col: 1})
	require.NotNil(t, empty)
	require.False(t, empty.NonEmpty)
	require.False(t, empty.Clickable())
}

func TestNonEmptyIncludesZero(t *testing.T) {
	t.Parallel()

	tbl, _, _ := newTable([][]string{{"0", "", " "}})
	require.True(t, tbl.At(sheet.Ref{Col: 0}).NonEmpty)
	require.False(t, tbl.At(sheet.Ref{Col: 1}).NonEmpty)
	require.True(t, tbl.At(sheet.Ref{Col: 2}).NonEmpty, "whitespace is text")
}

func TestActivateCopiesTrimmedText(t *testing.T) {
	t.Parallel()

	tbl, clip, n := newTable([][]string{{"  hello world \t", "b"}})

	require.True(t, tbl.Activate(sheet.Ref{Row: 0, Col: 0}))
	require.Equal(t, []string{"hello world"}, clip.writes)
	require.Equal(t, []note{{notify.Success, `Copied! - "hello world"`}}, n.notes)
	require.Equal(t, sheet.Ref{Row: 0, Col: 0}, tbl.LastClicked().Ref)
	require.Equal(t, "  hello world \t", tbl.LastClicked().Text, "cell text is untouched")
}

func TestCopiedMessageKeepsTextVerbatim(t *testing.T) {
	t.Parallel()

	raw := `C:\data\"q".csv`
	tbl, clip, n := newTable([][]string{{" " + raw + " "}})

	require.True(t, tbl.Activate(sheet.Ref{}))
	require.Equal(t, []string{raw}, clip.writes)
	require.Equal(t, []note{{notify.Success, `Copied! - "C:\data\"q".csv"`}}, n.notes)
}

func TestActivateMovesLastClicked(t *testing.T) {
	t.Parallel()

	tbl, _, _ := newTable([][]string{{"a", "b"}, {"c", "d"}})
	a := sheet.Ref{Row: 0, Col: 0}
	d := sheet.Ref{Row: 1, Col: 1}

	require.True(t, tbl.Activate(a))
	require.True(t, tbl.IsLastClicked(tbl.At(a)))
	require.True(t, tbl.Activate(d))
	require.False(t, tbl.IsLastClicked(tbl.At(a)))
	require.True(t, tbl.IsLastClicked(tbl.At(d)))

	marked := 0
	for _, c := range tbl.Cells() {
		if tbl.IsLastClicked(c) {
			marked++
		}
	}
	require.Equal(t, 1, marked)
}

func TestActivateIgnoresEmptyAndOutOfRange(t *testing.T) {
	t.Parallel()

	tbl, clip, n := newTable([][]string{{"Name", "Age"}, {"Bo", ""}})
	require.True(t, tbl.Activate(sheet.Ref{Row: 0, Col: 0}))
	clip.writes, n.notes = nil, nil

	require.False(t, tbl.Activate(sheet.Ref{Row: 1, Col: 1}))
	require.False(t, tbl.Activate(sheet.Ref{Row: 9, Col: 0}))
	require.False(t, tbl.Activate(sheet.Ref{Row: 0, Col: -1}))

	require.Empty(t, clip.writes)
	require.Empty(t, n.notes)
	require.Equal(t, sheet.Ref{Row: 0, Col: 0}, tbl.LastClicked().Ref)
}

func TestActivateClipboardFailureNotifies(t *testing.T) {
	t.Parallel()

	tbl, clip, n := newTable([][]string{{"x"}})
	clip.err = errors.New("denied")

	require.True(t, tbl.Activate(sheet.Ref{}))
	require.Equal(t, []note{{notify.Error, "Failed to copy text: denied"}}, n.notes)
	require.NotNil(t, tbl.LastClicked())
}

func TestActivateWithoutClipboard(t *testing.T) {
	t.Parallel()

	n := &fakeNotifier{}
	tbl := New(nil, n)
	tbl.Render(sheet.New("", [][]string{{"x"}}))
	require.True(t, tbl.Activate(sheet.Ref{}))
	require.Len(t, n.notes, 1)
	require.Equal(t, notify.Error, n.notes[0].kind)
}

func TestRenderDropsPriorState(t *testing.T) {
	t.Parallel()

	tbl, _, _ := newTable([][]string{{"a"}})
	tbl.Activate(sheet.Ref{})
	tbl.At(sheet.Ref{}).Highlighted = true

	tbl.Render(sheet.New("next.csv", [][]string{{"a"}, {"b"}}))
	require.Nil(t, tbl.LastClicked())
	for _, c := range tbl.Cells() {
		require.False(t, c.Highlighted)
	}
	require.Equal(t, [][]string{{"a"}, {"b"}}, tbl.Texts())
}
