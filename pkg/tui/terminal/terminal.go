// ABOUTME: Defines the Terminal interface: raw mode, size, output and bounded input polling.
// ABOUTME: Abstracts terminal operations so implementations can target real or virtual terminals.

package terminal

import (
	"errors"
	"time"

	"github.com/mauromedda/frametui/pkg/tui/input"
)

var (
	// ErrRawModeActive is returned by EnterRawMode when a raw-mode session
	// is already live on the terminal.
	ErrRawModeActive = errors.New("raw mode already active")

	// ErrNotTerminal is returned when the input is not a TTY.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrPollUnsupported is returned by Poll on platforms without a
	// bounded input poll.
	ErrPollUnsupported = errors.New("input polling not supported on this platform")
)

// Terminal abstracts the low-level terminal capability the frame loop
// consumes: raw mode, size queries, output writing and input events.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	Write(p []byte) (n int, err error)

	// Poll waits at most timeout for a decoded input event to become
	// available and reports whether one is. A negative timeout blocks.
	Poll(timeout time.Duration) (bool, error)

	// ReadEvent returns the next decoded event, blocking until one arrives.
	ReadEvent() (input.Event, error)
}
