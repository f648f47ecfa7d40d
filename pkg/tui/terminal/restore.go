// ABOUTME: Restore and RestoreOnPanic put a terminal back into cooked mode with a visible cursor.
// ABOUTME: RestoreOnPanic is deferred at the top of main so a crash never strands raw mode.

package terminal

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
)

// Restore makes a best-effort attempt to show the cursor and leave raw
// mode. Both steps run even if the first fails.
func Restore(t Terminal) error {
	_, werr := t.Write([]byte(ShowCursor))
	if werr != nil {
		werr = fmt.Errorf("showing cursor: %w", werr)
	}
	return errors.Join(werr, t.ExitRawMode())
}

// RestoreOnPanic should be deferred at the top of main (or any goroutine
// that owns the terminal). On panic it restores t, prints the panic value
// and stack trace to stderr, then exits with code 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	_ = Restore(t)

	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}
