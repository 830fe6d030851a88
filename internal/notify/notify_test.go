package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCenterLifecycle(t *testing.T) {
	t.Parallel()

	c := NewCenter(context.Background(), 0, -1)
	require.Equal(t, DefaultDisplay, c.Display)
	require.Equal(t, DefaultFade, c.Fade)
	require.Zero(t, NewCenter(context.Background(), time.Second, 0).Fade)

	_, ok := c.Current()
	require.False(t, ok)

	c.Notify(Success, "Copied! - \"x\"")
	cur, ok := c.Current()
	require.True(t, ok)
	require.Equal(t, Showing, cur.Phase)
	require.NotEmpty(t, cur.ID)

	drained := c.Drain()
	require.Len(t, drained, 1)
	require.Empty(t, c.Drain())

	require.True(t, c.Expire(cur.ID))
	require.False(t, c.Expire(cur.ID), "already hiding")
	cur, _ = c.Current()
	require.Equal(t, Hiding, cur.Phase)

	require.True(t, c.Remove(cur.ID))
	_, ok = c.Current()
	require.False(t, ok)
}

func TestCenterReplaceIgnoresStaleTimers(t *testing.T) {
	t.Parallel()

	c := NewCenter(context.Background(), time.Second, time.Millisecond)
	c.Notify(Success, "first")
	first, _ := c.Current()
	c.Notify(Error, "second")
	second, _ := c.Current()
	require.NotEqual(t, first.ID, second.ID)

	require.False(t, c.Expire(first.ID))
	require.False(t, c.Remove(first.ID))

	cur, ok := c.Current()
	require.True(t, ok)
	require.Equal(t, "second", cur.Message)
	require.Equal(t, Error, cur.Kind)
	require.Equal(t, Showing, cur.Phase)
	require.Len(t, c.Drain(), 2)
}

func TestKindString(t *testing.T) {
	t.Parallel()
	require.Equal(t, "success", Success.String())
	require.Equal(t, "error", Error.String())
	require.Equal(t, "unknown", Kind(9).String())
}
