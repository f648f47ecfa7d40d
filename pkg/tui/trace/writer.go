// ABOUTME: Writer is a tui.Tracer that appends one JSON line per frame to an io.Writer
// ABOUTME: Decode reads a trace back for inspection and tests

package trace

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mailru/easyjson"

	"github.com/mauromedda/frametui/pkg/tui"
)

// maxLineSize bounds a single trace line when decoding.
const maxLineSize = 1 << 20

// Writer writes frame records as JSON lines. The first write error is kept
// and returned by Flush; later frames are dropped.
type Writer struct {
	mu     sync.Mutex
	out    *bufio.Writer
	err    error
	frames int
}

var _ tui.Tracer = (*Writer)(nil)

// NewWriter returns a Writer buffering into w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// TraceFrame implements tui.Tracer.
func (t *Writer) TraceFrame(rec tui.FrameRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return
	}
	if _, err := easyjson.MarshalToWriter(FromFrame(rec), t.out); err != nil {
		t.err = fmt.Errorf("writing frame %d: %w", rec.Frame, err)
		return
	}
	if err := t.out.WriteByte('\n'); err != nil {
		t.err = fmt.Errorf("writing frame %d: %w", rec.Frame, err)
		return
	}
	t.frames++
}

// Frames returns how many records were written.
func (t *Writer) Frames() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}

// Flush pushes buffered records to the underlying writer and reports the
// first error seen.
func (t *Writer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return t.err
	}
	if err := t.out.Flush(); err != nil {
		t.err = fmt.Errorf("flushing trace: %w", err)
	}
	return t.err
}

// ErrStop can be returned by a Decode callback to end decoding early
// without an error.
var ErrStop = errors.New("stop decoding")

// Decode calls fn for each record in r, in order. Blank lines are skipped.
func Decode(r io.Reader, fn func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}
		var rec Record
		if err := easyjson.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("decoding trace line %d: %w", line, err)
		}
		if err := fn(rec); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading trace: %w", err)
	}
	return nil
}
