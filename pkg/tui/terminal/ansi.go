// ABOUTME: ANSI output commands (clear, cursor move, cursor visibility) queued onto a writer.
// ABOUTME: Callers queue commands into a buffered writer and flush once per frame.

package terminal

import (
	"fmt"
	"io"
	"strconv"
)

// Command is a terminal control sequence.
type Command string

const (
	ClearScreen Command = "\x1b[2J"
	CursorHome  Command = "\x1b[H"
	HideCursor  Command = "\x1b[?25l"
	ShowCursor  Command = "\x1b[?25h"

	// SyncBegin and SyncEnd bracket a frame so terminals that support
	// synchronized output (CSI ?2026) paint it at once.
	SyncBegin Command = "\x1b[?2026h"
	SyncEnd   Command = "\x1b[?2026l"
)

// MoveTo positions the cursor at the 0-based column and row.
func MoveTo(col, row int) Command {
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}
	var numBuf [20]byte
	b := make([]byte, 0, 16)
	b = append(b, "\x1b["...)
	b = append(b, strconv.AppendInt(numBuf[:0], int64(row+1), 10)...)
	b = append(b, ';')
	b = append(b, strconv.AppendInt(numBuf[:0], int64(col+1), 10)...)
	b = append(b, 'H')
	return Command(b)
}

// Queue writes cmds to w in order. With a buffered w nothing reaches the
// terminal until the caller flushes.
func Queue(w io.Writer, cmds ...Command) error {
	for _, c := range cmds {
		if _, err := io.WriteString(w, string(c)); err != nil {
			return fmt.Errorf("queueing %q: %w", string(c), err)
		}
	}
	return nil
}
