// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Interprets written ANSI into a cell grid, queues injected events, injects failures.

package terminal

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/mauromedda/frametui/pkg/tui/input"
	"github.com/mauromedda/frametui/pkg/tui/key"
	"github.com/mauromedda/frametui/pkg/tui/width"
)

// VirtualTerminal is a fake Terminal for unit tests. It records raw-mode
// transitions and cursor visibility, renders output into a grid of cells
// and serves events queued by the test.
type VirtualTerminal struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	width  int
	height int

	rawMode    bool
	enterCount int
	exitCount  int

	grid          [][]string
	cursorCol     int
	cursorRow     int
	cursorVisible bool
	partial       []byte
	writeCount    int
	clearCount    int

	events    []input.Event
	decoder   *input.Decoder
	pollCount int
	timeouts  []time.Duration

	enterErr error
	exitErr  error
	readErr  error
	writeErr error
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions,
// a blank screen and a visible cursor.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	v := &VirtualTerminal{
		width:         width,
		height:        height,
		cursorVisible: true,
		decoder:       input.NewDecoder(),
	}
	v.clearGrid()
	return v
}

// EnterRawMode records a raw-mode entry.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.enterErr != nil {
		return v.enterErr
	}
	if v.rawMode {
		return fmt.Errorf("entering raw mode: %w", ErrRawModeActive)
	}
	v.rawMode = true
	v.enterCount++
	return nil
}

// ExitRawMode records a raw-mode exit. An injected exit failure leaves the
// terminal in raw mode, like a real failed restore would.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.exitCount++
	if v.exitErr != nil {
		return v.exitErr
	}
	v.rawMode = false
	return nil
}

// Size returns the configured terminal dimensions.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.width, v.height, nil
}

// Write records p and applies the control sequences and text in it to the
// cell grid.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.writeErr != nil {
		return 0, v.writeErr
	}
	v.writeCount++
	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	v.interpret(p)
	return n, nil
}

// Poll reports whether an event is queued. It never sleeps; the timeout is
// recorded so tests can check the bound the caller asked for.
func (v *VirtualTerminal) Poll(timeout time.Duration) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pollCount++
	v.timeouts = append(v.timeouts, timeout)
	if v.readErr != nil {
		return false, v.readErr
	}
	return len(v.events) > 0, nil
}

// ReadEvent pops the oldest queued event.
func (v *VirtualTerminal) ReadEvent() (input.Event, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.readErr != nil {
		return input.Event{}, v.readErr
	}
	if len(v.events) == 0 {
		return input.Event{}, fmt.Errorf("reading event: no event queued")
	}
	ev := v.events[0]
	v.events = v.events[1:]
	return ev, nil
}

// --- Test helpers (not part of Terminal interface) ---

// Send queues events for Poll/ReadEvent.
func (v *VirtualTerminal) Send(events ...input.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.events = append(v.events, events...)
}

// SendKey queues a key press.
func (v *VirtualTerminal) SendKey(k key.Key) {
	v.Send(input.KeyEvent(k))
}

// SendBytes decodes raw terminal input and queues the resulting events, as
// if the bytes had been typed and the input had gone quiet afterwards.
func (v *VirtualTerminal) SendBytes(raw string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.decoder.Feed([]byte(raw))
	for {
		ev, ok := v.decoder.Next()
		if !ok {
			break
		}
		v.events = append(v.events, ev)
	}
	v.events = append(v.events, v.decoder.Flush()...)
}

// SetSize updates the terminal dimensions and queues a resize event.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.width = width
	v.height = height
	v.events = append(v.events, input.ResizeEvent(width, height))
}

// FailEnterRawMode makes EnterRawMode return err.
func (v *VirtualTerminal) FailEnterRawMode(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.enterErr = err
}

// FailExitRawMode makes ExitRawMode return err.
func (v *VirtualTerminal) FailExitRawMode(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.exitErr = err
}

// FailRead makes Poll and ReadEvent return err.
func (v *VirtualTerminal) FailRead(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.readErr = err
}

// FailWrite makes Write return err; nil restores normal writes.
func (v *VirtualTerminal) FailWrite(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.writeErr = err
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the recorded output (not the screen).
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// Lines returns the visible screen, one string per row with trailing
// blanks trimmed.
func (v *VirtualTerminal) Lines() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	lines := make([]string, len(v.grid))
	for i, row := range v.grid {
		var b strings.Builder
		for _, cell := range row {
			b.WriteString(cell)
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// Line returns row i of the visible screen, or "" when out of range.
func (v *VirtualTerminal) Line(i int) string {
	lines := v.Lines()
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}

// Blank reports whether no visible cell holds text.
func (v *VirtualTerminal) Blank() bool {
	for _, l := range v.Lines() {
		if l != "" {
			return false
		}
	}
	return true
}

// CursorVisible reports the cursor visibility last requested.
func (v *VirtualTerminal) CursorVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.cursorVisible
}

// Cursor returns the current 0-based cursor column and row.
func (v *VirtualTerminal) Cursor() (col, row int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.cursorCol, v.cursorRow
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// EnterCount returns how many times raw mode was successfully entered.
func (v *VirtualTerminal) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times ExitRawMode was called.
func (v *VirtualTerminal) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}

// WriteCount returns how many Write calls succeeded.
func (v *VirtualTerminal) WriteCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.writeCount
}

// ClearCount returns how many full-screen clears were received.
func (v *VirtualTerminal) ClearCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.clearCount
}

// PollCount returns how many times Poll was called.
func (v *VirtualTerminal) PollCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.pollCount
}

// PollTimeouts returns the timeout passed to each Poll call.
func (v *VirtualTerminal) PollTimeouts() []time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]time.Duration, len(v.timeouts))
	copy(out, v.timeouts)
	return out
}

// QueuedEvents returns how many events have not been read yet.
func (v *VirtualTerminal) QueuedEvents() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.events)
}

// --- ANSI interpretation ---

func (v *VirtualTerminal) clearGrid() {
	v.grid = make([][]string, v.height)
	for i := range v.grid {
		row := make([]string, v.width)
		for j := range row {
			row[j] = " "
		}
		v.grid[i] = row
	}
}

// interpret applies p to the grid. A sequence or rune split across writes
// is carried over in v.partial. Must be called with v.mu held.
func (v *VirtualTerminal) interpret(p []byte) {
	data := append(v.partial, p...)
	v.partial = nil

	for i := 0; i < len(data); {
		if data[i] == 0x1b {
			if i+1 < len(data) && data[i+1] != '[' {
				// Not CSI: skip ESC and the next byte as an opaque pair.
				i += 2
				continue
			}
			end, ok := csiEnd(data, i)
			if !ok {
				v.partial = append([]byte(nil), data[i:]...)
				return
			}
			v.applyCSI(string(data[i+2:end]), data[end])
			i = end + 1
			continue
		}
		if data[i] == '\r' {
			v.cursorCol = 0
			i++
			continue
		}
		if data[i] == '\n' {
			v.cursorRow++
			i++
			continue
		}
		if !utf8.FullRune(data[i:]) {
			v.partial = append([]byte(nil), data[i:]...)
			return
		}
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(string(data[i:]), -1)
		v.put(cluster)
		i += len(cluster)
	}
}

// csiEnd returns the index of the final byte of the CSI sequence at i.
func csiEnd(data []byte, i int) (int, bool) {
	for j := i + 2; j < len(data); j++ {
		if data[j] >= 0x40 && data[j] <= 0x7e {
			return j, true
		}
	}
	return 0, false
}

// applyCSI handles the subset of CSI sequences the Screen emits.
func (v *VirtualTerminal) applyCSI(params string, final byte) {
	switch final {
	case 'J':
		if params == "2" {
			v.clearGrid()
			v.clearCount++
		}
	case 'H':
		row, col := 1, 1
		if params != "" {
			parts := strings.SplitN(params, ";", 2)
			if n, err := strconv.Atoi(parts[0]); err == nil && n > 0 {
				row = n
			}
			if len(parts) == 2 {
				if n, err := strconv.Atoi(parts[1]); err == nil && n > 0 {
					col = n
				}
			}
		}
		v.cursorRow, v.cursorCol = row-1, col-1
	case 'h', 'l':
		if params == "?25" {
			v.cursorVisible = final == 'h'
		}
	}
}

// put prints one grapheme cluster at the cursor. Text past the right edge
// is clipped rather than wrapped.
func (v *VirtualTerminal) put(cluster string) {
	w := width.ClusterWidth(cluster)
	if w == 0 {
		return
	}
	if v.cursorRow >= 0 && v.cursorRow < len(v.grid) && v.cursorCol >= 0 && v.cursorCol+w <= len(v.grid[v.cursorRow]) {
		row := v.grid[v.cursorRow]
		row[v.cursorCol] = cluster
		for k := 1; k < w; k++ {
			row[v.cursorCol+k] = ""
		}
	}
	v.cursorCol += w
}
