// ABOUTME: Session is the token for a live raw-mode session on a Terminal.
// ABOUTME: Acquire enters raw mode; Release restores it exactly once.

package terminal

import (
	"fmt"
	"sync"
)

// Session represents ownership of a terminal's raw mode. Only one Session
// can be live per Terminal: a second Acquire fails with ErrRawModeActive
// until the first is released.
type Session struct {
	term     Terminal
	once     sync.Once
	released bool
	err      error
}

// Acquire switches t to raw mode and returns the owning Session.
func Acquire(t Terminal) (*Session, error) {
	if err := t.EnterRawMode(); err != nil {
		return nil, fmt.Errorf("acquiring raw mode session: %w", err)
	}
	return &Session{term: t}, nil
}

// Terminal returns the terminal this session owns.
func (s *Session) Terminal() Terminal {
	return s.term
}

// Active reports whether the session has not been released yet.
func (s *Session) Active() bool {
	return !s.released
}

// Release leaves raw mode. Subsequent calls return the first result.
func (s *Session) Release() error {
	s.once.Do(func() {
		s.released = true
		if err := s.term.ExitRawMode(); err != nil {
			s.err = fmt.Errorf("releasing raw mode session: %w", err)
		}
	})
	return s.err
}
