// ABOUTME: ProcessTerminal implements Terminal over real file descriptors using golang.org/x/term.
// ABOUTME: Decodes input with input.Decoder; platform files supply the bounded poll and resize signal.

package terminal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/mauromedda/frametui/pkg/tui/input"
)

const (
	readBufSize = 256

	// escTimeout is how long a lone ESC waits for the rest of a sequence
	// before it is reported as the Escape key.
	escTimeout = 50 * time.Millisecond
)

// ProcessTerminal is a real terminal: raw mode and input on in, output on out.
type ProcessTerminal struct {
	mu       sync.Mutex
	in       *os.File
	out      *os.File
	oldState *term.State
	rawKey   any
	decoder  *input.Decoder
	pending  []input.Event
	readBuf  []byte
	resizeCh chan os.Signal
}

var (
	stdioOnce sync.Once
	stdio     *ProcessTerminal

	// rawTTYs holds the devices currently in raw mode through any
	// ProcessTerminal, keyed by ttyKey.
	rawMu   sync.Mutex
	rawTTYs = map[any]struct{}{}
)

// Stdio returns the process's own terminal (os.Stdin / os.Stdout). It is
// created once; every caller shares the same instance so there is a single
// raw-mode owner per process.
func Stdio() *ProcessTerminal {
	stdioOnce.Do(func() {
		stdio = NewProcessTerminal(os.Stdin, os.Stdout)
	})
	return stdio
}

// NewProcessTerminal returns a ProcessTerminal reading from in and writing
// to out. in must be a TTY for EnterRawMode and Poll to work.
func NewProcessTerminal(in, out *os.File) *ProcessTerminal {
	return &ProcessTerminal{
		in:      in,
		out:     out,
		decoder: input.NewDecoder(),
		readBuf: make([]byte, readBufSize),
	}
}

// EnterRawMode switches the input to raw mode, saving the previous state.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState != nil {
		return fmt.Errorf("entering raw mode: %w", ErrRawModeActive)
	}
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("entering raw mode on %s: %w", t.in.Name(), ErrNotTerminal)
	}

	key := ttyKey(t.in)
	rawMu.Lock()
	defer rawMu.Unlock()
	if _, held := rawTTYs[key]; held {
		return fmt.Errorf("entering raw mode on %s: %w", t.in.Name(), ErrRawModeActive)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	rawTTYs[key] = struct{}{}
	t.oldState = state
	t.rawKey = key
	t.startResizeListener()
	return nil
}

// ExitRawMode restores the terminal to its previous state.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	t.stopResizeListener()
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	rawMu.Lock()
	delete(rawTTYs, t.rawKey)
	rawMu.Unlock()
	t.oldState = nil
	t.rawKey = nil
	return nil
}

// IsRawMode reports whether this terminal currently holds raw mode.
func (t *ProcessTerminal) IsRawMode() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.oldState != nil
}

// Size returns the current terminal dimensions.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Write sends bytes to the output file.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to %s: %w", t.out.Name(), err)
	}
	return n, nil
}

// Poll waits at most timeout for an input event. Bytes that arrive are
// decoded immediately; a trailing lone ESC gets escTimeout to grow into a
// sequence before it is resolved as the Escape key.
func (t *ProcessTerminal) Poll(timeout time.Duration) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.pollLocked(timeout)
}

func (t *ProcessTerminal) pollLocked(timeout time.Duration) (bool, error) {
	t.collectResize()
	if len(t.pending) > 0 {
		return true, nil
	}

	if err := t.readAvailable(timeout); err != nil {
		return false, fmt.Errorf("polling input: %w", err)
	}
	t.decode()

	if len(t.pending) == 0 && t.decoder.Pending() {
		if err := t.readAvailable(escTimeout); err != nil {
			return false, fmt.Errorf("polling input: %w", err)
		}
		t.decode()
		if len(t.pending) == 0 {
			t.pending = append(t.pending, t.decoder.Flush()...)
		}
	}

	t.collectResize()
	return len(t.pending) > 0, nil
}

// ReadEvent returns the next event, blocking until one is available.
func (t *ProcessTerminal) ReadEvent() (input.Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for len(t.pending) == 0 {
		if _, err := t.pollLocked(-1); err != nil {
			return input.Event{}, fmt.Errorf("reading event: %w", err)
		}
	}
	ev := t.pending[0]
	t.pending = t.pending[1:]
	return ev, nil
}

// decode moves every complete event from the decoder into pending.
func (t *ProcessTerminal) decode() {
	for {
		ev, ok := t.decoder.Next()
		if !ok {
			return
		}
		t.pending = append(t.pending, ev)
	}
}

// collectResize turns a delivered resize signal into an EventResize.
func (t *ProcessTerminal) collectResize() {
	if t.resizeCh == nil {
		return
	}
	select {
	case <-t.resizeCh:
	default:
		return
	}
	// Coalesce a burst of signals into a single event.
	for drained := false; !drained; {
		select {
		case <-t.resizeCh:
		default:
			drained = true
		}
	}
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return
	}
	t.pending = append(t.pending, input.ResizeEvent(w, h))
}
