// ABOUTME: Tests for ANSI command construction and queueing.

package terminal

import (
	"bytes"
	"errors"
	"testing"
)

func TestMoveTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		col, row int
		want     Command
	}{
		{col: 0, row: 0, want: "\x1b[1;1H"},
		{col: 4, row: 2, want: "\x1b[3;5H"},
		{col: 119, row: 39, want: "\x1b[40;120H"},
		{col: -3, row: -1, want: "\x1b[1;1H"},
	}

	for _, tt := range tests {
		if got := MoveTo(tt.col, tt.row); got != tt.want {
			t.Errorf("MoveTo(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestQueue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Queue(&buf, ClearScreen, HideCursor, MoveTo(0, 0)); err != nil {
		t.Fatalf("Queue() error: %v", err)
	}
	if got, want := buf.String(), "\x1b[2J\x1b[?25l\x1b[1;1H"; got != want {
		t.Errorf("Queue() wrote %q, want %q", got, want)
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestQueue_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("closed")
	if err := Queue(failingWriter{err: boom}, ShowCursor); !errors.Is(err, boom) {
		t.Errorf("Queue() error = %v, want boom", err)
	}
}
