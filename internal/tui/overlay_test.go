package tui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOverlayAt(t *testing.T) {
	t.Parallel()

	base := "aaaaa\nbbbbb\nccccc"
	got := overlayAt(base, "XY", 1, 1, 5, 3)
	require.Equal(t, "aaaaa\nbXYbb\nccccc", got)

	got = overlayTopRight(base, "Z", 0, 1, 5, 3)
	require.Equal(t, "aaaZa\nbbbbb\nccccc", got)

	got = overlayAt(base, "Q", 0, 5, 5, 3)
	require.Equal(t, base, got, "rows below the area are ignored")
}

func TestFitAndFlatten(t *testing.T) {
	t.Parallel()

	require.Equal(t, "ab  ", fit("ab", 4))
	require.Equal(t, "abc…", fit("abcdef", 4))
	require.Equal(t, "a b c d", flatten("a\r\nb\nc\td"))
	require.Equal(t, "plain", flatten("plain"))
	require.Equal(t, "", truncate("x", 0))
}
