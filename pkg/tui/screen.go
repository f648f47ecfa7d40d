// ABOUTME: Screen owns a raw-mode terminal session: drains input, renders labels, restores on Close
// ABOUTME: Each frame is built in memory and written in one synchronized-output write

package tui

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mauromedda/frametui/internal/log"
	"github.com/mauromedda/frametui/pkg/tui/input"
	"github.com/mauromedda/frametui/pkg/tui/terminal"
	"github.com/mauromedda/frametui/pkg/tui/width"
)

// Screen is the exclusive owner of a terminal's raw mode for its lifetime.
// It is not safe for concurrent use.
type Screen struct {
	session *terminal.Session
	opts    options

	frame   bytes.Buffer
	ignored int
}

// NewScreen switches t into raw mode and returns the Screen owning it.
// It fails if raw mode cannot be entered, including when another Screen
// already holds t.
func NewScreen(t terminal.Terminal, opts ...Option) (*Screen, error) {
	session, err := terminal.Acquire(t)
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	log.Debug("screen: raw mode session started")
	return &Screen{
		session: session,
		opts:    buildOptions(opts),
	}, nil
}

// Drain consumes every input event that is available within the poll
// timeout. It returns Exit as soon as an exit key is seen; any other
// event is dropped.
func (s *Screen) Drain() (UpdateResult, error) {
	if !s.session.Active() {
		return Exit, ErrClosed
	}
	for {
		ready, err := s.session.Terminal().Poll(s.opts.pollTimeout)
		if err != nil {
			return Exit, fmt.Errorf("%w: polling: %w", ErrInput, err)
		}
		if !ready {
			return Continue, nil
		}
		ev, err := s.session.Terminal().ReadEvent()
		if err != nil {
			return Exit, fmt.Errorf("%w: reading event: %w", ErrInput, err)
		}
		if s.isExit(ev) {
			log.Debug("screen: exit on %s", ev)
			return Exit, nil
		}
		s.ignored++
		log.Debug("screen: ignoring %s", ev)
	}
}

func (s *Screen) isExit(ev input.Event) bool {
	if ev.Kind != input.EventKey {
		return false
	}
	for _, k := range s.opts.exitKeys {
		if k.Matches(ev.Key) {
			return true
		}
	}
	return false
}

// Ignored returns how many drained events did not end the loop.
func (s *Screen) Ignored() int {
	return s.ignored
}

// Render clears the screen, hides the cursor and draws elements in order,
// then writes the whole frame at once. Label text is sanitized and cut to
// the terminal width when the width is known.
func (s *Screen) Render(elements []Element) error {
	if !s.session.Active() {
		return ErrClosed
	}

	cols, rows := s.bounds()
	s.frame.Reset()
	_ = terminal.Queue(&s.frame, terminal.SyncBegin, terminal.ClearScreen, terminal.HideCursor)
	for _, el := range elements {
		switch el := el.(type) {
		case Label:
			s.queueLabel(el, cols, rows)
		}
	}
	_ = terminal.Queue(&s.frame, terminal.SyncEnd)

	if err := s.flush(); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	return nil
}

// Update is one frame step: Drain, then Render unless an exit key was
// pressed.
func (s *Screen) Update(elements []Element) (UpdateResult, error) {
	res, err := s.Drain()
	if err != nil || res == Exit {
		return res, err
	}
	return Continue, s.Render(elements)
}

// Close leaves raw mode, clears the screen, moves the cursor home and
// shows it. Every step runs even if an earlier one fails; failures are
// logged and returned joined. Close is idempotent.
func (s *Screen) Close() error {
	if !s.session.Active() {
		return nil
	}

	var errs []error
	if err := s.session.Release(); err != nil {
		log.Error("screen: %v", err)
		errs = append(errs, err)
	}

	s.frame.Reset()
	_ = terminal.Queue(&s.frame, terminal.ClearScreen, terminal.CursorHome, terminal.ShowCursor)
	if err := s.flush(); err != nil {
		err = fmt.Errorf("restoring screen: %w", err)
		log.Error("screen: %v", err)
		errs = append(errs, err)
	}

	log.Debug("screen: raw mode session ended (%d events ignored)", s.ignored)
	return errors.Join(errs...)
}

func (s *Screen) queueLabel(l Label, cols, rows int) {
	col, row := max(l.Col, 0), max(l.Row, 0)
	if rows > 0 && row >= rows {
		return
	}
	text := width.Sanitize(l.Text)
	if cols > 0 {
		if col >= cols {
			return
		}
		text = width.Truncate(text, cols-col)
	}
	_ = terminal.Queue(&s.frame, terminal.MoveTo(col, row), terminal.Command(text))
}

// bounds returns the terminal size, or zeros when it cannot be queried.
func (s *Screen) bounds() (cols, rows int) {
	cols, rows, err := s.session.Terminal().Size()
	if err != nil {
		log.Debug("screen: size unavailable: %v", err)
		return 0, 0
	}
	return cols, rows
}

func (s *Screen) flush() error {
	if _, err := s.session.Terminal().Write(s.frame.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return nil
}
