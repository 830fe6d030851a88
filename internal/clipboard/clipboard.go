// Package clipboard writes copied cell text to the system clipboard, falling
// back to an OSC 52 terminal sequence when no system clipboard is reachable
// (for example over SSH).
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrWrite matches every clipboard failure.
var ErrWrite = errors.New("clipboard write failed")

// WriteError carries the underlying cause of a failed write.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return e.Err.Error()
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWrite, e.Err}
}

// Mode controls the OSC 52 fallback.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// ParseMode maps a config value to a Mode, defaulting to auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeAlways, ModeNever:
		return m, nil
	default:
		return ModeAuto, fmt.Errorf("unknown osc52 mode %q", s)
	}
}

// System is the production clipboard.
type System struct {
	Mode Mode

	// Terminal receives OSC 52 sequences. Nil opens /dev/tty per write.
	Terminal io.Writer

	writeAll func(string) error
	getenv   func(string) string
}

// NewSystem returns a clipboard using the platform clipboard tools.
func NewSystem(mode Mode) *System {
	return &System{Mode: mode, writeAll: clipboard.WriteAll, getenv: os.Getenv}
}

// WriteText copies text. In auto mode OSC 52 is only tried when the
// platform clipboard fails; in always mode it is sent as well.
func (s *System) WriteText(text string) error {
	sysErr := s.write(text)

	switch s.Mode {
	case ModeNever:
		if sysErr != nil {
			return &WriteError{Err: sysErr}
		}
		return nil
	case ModeAlways:
		oscErr := s.osc52(text)
		if sysErr != nil && oscErr != nil {
			return &WriteError{Err: errors.Join(sysErr, oscErr)}
		}
		return nil
	default:
		if sysErr == nil {
			return nil
		}
		if oscErr := s.osc52(text); oscErr != nil {
			return &WriteError{Err: errors.Join(sysErr, oscErr)}
		}
		return nil
	}
}

func (s *System) write(text string) error {
	if s.writeAll == nil {
		return clipboard.WriteAll(text)
	}
	return s.writeAll(text)
}

func (s *System) env(key string) string {
	if s.getenv == nil {
		return os.Getenv(key)
	}
	return s.getenv(key)
}

func (s *System) osc52(text string) error {
	seq := osc52.New(text)
	switch {
	case s.env("TMUX") != "":
		seq = seq.Tmux()
	case s.env("STY") != "":
		seq = seq.Screen()
	}

	w := s.Terminal
	if w == nil {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer tty.Close()
		w = tty
	}
	_, err := seq.WriteTo(w)
	return err
}
