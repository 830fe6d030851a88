// Package notify is the transient toast surface: one visible notification at
// a time, shown for a fixed duration, then faded out and removed.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.alis.build/alog"
)

// Kind selects the toast style.
type Kind int

const (
	Success Kind = iota
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Phase is the toast lifecycle position.
type Phase int

const (
	Showing Phase = iota
	Hiding
)

// Toast is one notification.
type Toast struct {
	ID      string
	Kind    Kind
	Message string
	Phase   Phase
}

const (
	DefaultDisplay = 2 * time.Second
	DefaultFade    = 300 * time.Millisecond
)

// Center owns the current toast. It is not safe for concurrent use; the UI
// event loop is its only caller.
type Center struct {
	ctx     context.Context
	Display time.Duration
	Fade    time.Duration

	current *Toast
	pending []Toast
}

// NewCenter returns a center with the given timings. A non-positive display or
// a negative fade falls back to the default; a zero fade removes toasts as
// soon as they expire.
func NewCenter(ctx context.Context, display, fade time.Duration) *Center {
	if ctx == nil {
		ctx = context.Background()
	}
	if display <= 0 {
		display = DefaultDisplay
	}
	if fade < 0 {
		fade = DefaultFade
	}
	return &Center{ctx: ctx, Display: display, Fade: fade}
}

// Notify replaces any visible toast with a new one.
func (c *Center) Notify(kind Kind, msg string) {
	t := Toast{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: msg,
		Phase:   Showing,
	}
	c.current = &t
	c.pending = append(c.pending, t)

	switch kind {
	case Error:
		alog.Warnf(c.ctx, "toast %s: %s", kind, msg)
	default:
		alog.Infof(c.ctx, "toast %s: %s", kind, msg)
	}
}

// Drain returns toasts created since the last call so the caller can
// schedule their timers.
func (c *Center) Drain() []Toast {
	out := c.pending
	c.pending = nil
	return out
}

// Current returns the visible toast, if any.
func (c *Center) Current() (Toast, bool) {
	if c.current == nil {
		return Toast{}, false
	}
	return *c.current, true
}

// Expire starts the fade of toast id. It reports false when id is no longer
// the visible toast.
func (c *Center) Expire(id string) bool {
	if c.current == nil || c.current.ID != id || c.current.Phase != Showing {
		return false
	}
	c.current.Phase = Hiding
	return true
}

// Remove drops toast id if it is still the visible one.
func (c *Center) Remove(id string) bool {
	if c.current == nil || c.current.ID != id {
		return false
	}
	c.current = nil
	return true
}
