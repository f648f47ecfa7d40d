// ABOUTME: Non-unix stub for ProcessTerminal input polling.
// ABOUTME: Raw mode still works through x/term; Poll reports ErrPollUnsupported.

//go:build !unix

package terminal

import (
	"os"
	"time"
)

// ttyKey identifies the device behind f by its descriptor.
func ttyKey(f *os.File) any {
	return f.Fd()
}

// readAvailable is unsupported: console input needs ReadConsoleInput.
func (t *ProcessTerminal) readAvailable(_ time.Duration) error {
	return ErrPollUnsupported
}

func (t *ProcessTerminal) startResizeListener() {}

func (t *ProcessTerminal) stopResizeListener() {}
