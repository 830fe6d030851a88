package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.alis.build/alog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]alog.LogLevel{
		"debug":   alog.LevelDebug,
		"":        alog.LevelInfo,
		"INFO":    alog.LevelInfo,
		"warn":    alog.LevelWarning,
		"warning": alog.LevelWarning,
		"error":   alog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	got, err := ParseLevel("verbose")
	require.Error(t, err)
	require.Equal(t, alog.LevelInfo, got)
}
