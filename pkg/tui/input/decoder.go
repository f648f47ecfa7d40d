// ABOUTME: Decoder turns a raw terminal byte stream into Events without any I/O of its own.
// ABOUTME: Buffers partial escape sequences; Flush resolves a stalled prefix (lone ESC -> Escape) but leaves a paste open.

package input

import (
	"bytes"
	"unicode/utf8"

	"github.com/mauromedda/frametui/pkg/tui/key"
)

const (
	initialBufSize = 256
	maxSequenceLen = 32
	maxPasteLen    = 1 << 20
	bracketStart   = "\x1b[200~"
	bracketEnd     = "\x1b[201~"
	focusIn        = "\x1b[I"
	focusOut       = "\x1b[O"
	sgrMousePrefix = "\x1b[<"
)

// Decoder accumulates raw input bytes and parses them into Events.
// The zero value is ready to use. A Decoder is not safe for concurrent use.
//
// Between a bracketed-paste start and end marker every byte is paste
// content, however long the paste takes to arrive; nothing inside it is
// decoded as a key.
type Decoder struct {
	buf     []byte
	paste   []byte
	inPaste bool
}

// NewDecoder returns an empty Decoder.
func NewDecoder() *Decoder {
	return &Decoder{buf: make([]byte, 0, initialBufSize)}
}

// Feed appends raw bytes read from the terminal.
func (d *Decoder) Feed(data []byte) {
	d.buf = append(d.buf, data...)
}

// Next parses one event from the front of the buffer. It returns false when
// the buffer is empty or holds only the start of a sequence; in the latter
// case Pending reports true and the caller should wait briefly for more
// bytes, then call Flush.
func (d *Decoder) Next() (Event, bool) {
	for {
		if d.inPaste {
			return d.takePaste()
		}
		if bytes.HasPrefix(d.buf, []byte(bracketStart)) {
			d.buf = d.buf[len(bracketStart):]
			d.inPaste = true
			continue
		}
		consumed, ev, needsMore := d.tryParse()
		if needsMore || consumed == 0 {
			return Event{}, false
		}
		d.buf = d.buf[consumed:]
		return ev, true
	}
}

// Pending reports whether bytes are buffered that do not yet form an event
// and that Flush would resolve. An open paste is not pending: it only ends
// with its end marker.
func (d *Decoder) Pending() bool {
	return len(d.buf) > 0 && !d.inPaste
}

// Flush resolves everything still buffered, assuming no more bytes are
// coming: a stalled ESC becomes the Escape key and an incomplete UTF-8
// sequence becomes an unknown key. An open paste is left open.
func (d *Decoder) Flush() []Event {
	var events []Event
	for {
		if ev, ok := d.Next(); ok {
			events = append(events, ev)
			continue
		}
		if d.inPaste || len(d.buf) == 0 {
			return events
		}
		consumed, ev := d.resolveStalled()
		d.buf = d.buf[consumed:]
		events = append(events, ev)
	}
}

// takePaste moves buffered bytes into the open paste and returns the paste
// once its end marker has arrived. A tail that could be the start of the
// end marker stays buffered until the next Feed.
func (d *Decoder) takePaste() (Event, bool) {
	if end := bytes.Index(d.buf, []byte(bracketEnd)); end >= 0 {
		d.appendPaste(d.buf[:end])
		d.buf = d.buf[end+len(bracketEnd):]
		text := string(d.paste)
		d.paste = d.paste[:0]
		d.inPaste = false
		return PasteEvent(text), true
	}

	keep := markerPrefixLen(d.buf, bracketEnd)
	d.appendPaste(d.buf[:len(d.buf)-keep])
	d.buf = append(d.buf[:0], d.buf[len(d.buf)-keep:]...)
	return Event{}, false
}

// appendPaste stores paste content up to maxPasteLen; the excess is dropped.
func (d *Decoder) appendPaste(b []byte) {
	if room := maxPasteLen - len(d.paste); room > 0 {
		d.paste = append(d.paste, b[:min(len(b), room)]...)
	}
}

// markerPrefixLen returns the length of the longest suffix of b that is a
// proper prefix of marker.
func markerPrefixLen(b []byte, marker string) int {
	for n := min(len(b), len(marker)-1); n > 0; n-- {
		if bytes.HasSuffix(b, []byte(marker[:n])) {
			return n
		}
	}
	return 0
}

// resolveStalled decides what an incomplete prefix means once input stops.
func (d *Decoder) resolveStalled() (int, Event) {
	if d.buf[0] == 0x1b {
		return 1, KeyEvent(key.Key{Type: key.KeyEscape})
	}
	return 1, KeyEvent(key.Key{Type: key.KeyUnknown})
}

// tryParse attempts to parse one event from the front of d.buf.
// Returns (consumed bytes, parsed event, needs-more flag).
func (d *Decoder) tryParse() (int, Event, bool) {
	if len(d.buf) == 0 {
		return 0, Event{}, false
	}

	if d.buf[0] == 0x1b {
		return d.parseEscape()
	}

	if !utf8.FullRune(d.buf) {
		if len(d.buf) < utf8.UTFMax {
			return 0, Event{}, true
		}
		return 1, KeyEvent(key.Key{Type: key.KeyUnknown}), false
	}

	r, size := utf8.DecodeRune(d.buf)
	if r == utf8.RuneError {
		return 1, KeyEvent(key.Key{Type: key.KeyUnknown}), false
	}
	return size, KeyEvent(key.ParseKey(string(d.buf[:size]))), false
}

// parseEscape handles ESC-prefixed input.
func (d *Decoder) parseEscape() (int, Event, bool) {
	b := d.buf
	if len(b) == 1 {
		// Lone ESC or the start of a sequence; only time can tell.
		return 0, Event{}, true
	}

	switch b[1] {
	case '[':
		return d.parseCSI()
	case 'O':
		if len(b) < 3 {
			return 0, Event{}, true
		}
		return 3, KeyEvent(key.ParseKey(string(b[:3]))), false
	case 0x1b:
		// ESC ESC: the first one stands alone.
		return 1, KeyEvent(key.Key{Type: key.KeyEscape}), false
	}

	if b[1] >= 0x20 && b[1] <= 0x7e {
		return 2, KeyEvent(key.ParseKey(string(b[:2]))), false
	}
	return 1, KeyEvent(key.Key{Type: key.KeyEscape}), false
}

// parseCSI handles ESC [ sequences: focus, SGR mouse and keys. Paste
// markers are handled by Next.
func (d *Decoder) parseCSI() (int, Event, bool) {
	b := d.buf

	if bytes.HasPrefix(b, []byte(sgrMousePrefix)) {
		return d.parseSGRMouse()
	}

	// Find the CSI final byte (0x40..0x7e) after parameter/intermediate bytes.
	end := -1
	for i := 2; i < len(b) && i < maxSequenceLen; i++ {
		if b[i] >= 0x40 && b[i] <= 0x7e {
			end = i
			break
		}
		if b[i] < 0x20 || b[i] > 0x3f {
			// Not a CSI parameter byte: treat the ESC as standalone.
			return 1, KeyEvent(key.Key{Type: key.KeyEscape}), false
		}
	}
	if end < 0 {
		if len(b) >= maxSequenceLen {
			return 1, KeyEvent(key.Key{Type: key.KeyEscape}), false
		}
		return 0, Event{}, true
	}

	seq := string(b[:end+1])
	switch seq {
	case focusIn:
		return len(seq), Event{Kind: EventFocusGained}, false
	case focusOut:
		return len(seq), Event{Kind: EventFocusLost}, false
	}
	return len(seq), KeyEvent(key.ParseKey(seq)), false
}

// parseSGRMouse parses ESC [ < Btn ; X ; Y (M|m).
func (d *Decoder) parseSGRMouse() (int, Event, bool) {
	b := d.buf
	end := -1
	for i := len(sgrMousePrefix); i < len(b) && i < maxSequenceLen; i++ {
		if b[i] == 'M' || b[i] == 'm' {
			end = i
			break
		}
	}
	if end < 0 {
		if len(b) >= maxSequenceLen {
			return 1, KeyEvent(key.Key{Type: key.KeyEscape}), false
		}
		return 0, Event{}, true
	}

	btn, x, y, ok := parseSGRParams(b[len(sgrMousePrefix):end])
	if !ok {
		return end + 1, KeyEvent(key.Key{Type: key.KeyUnknown}), false
	}

	m := Mouse{X: x - 1, Y: y - 1}
	buttonID := btn & 0x03
	switch {
	case btn&64 != 0:
		m.Button = MouseWheelUp
		if buttonID == 1 {
			m.Button = MouseWheelDown
		}
	case buttonID == 0:
		m.Button = MouseLeft
	case buttonID == 1:
		m.Button = MouseMiddle
	case buttonID == 2:
		m.Button = MouseRight
	}

	switch {
	case b[end] == 'm':
		m.Action = MouseRelease
	case btn&32 != 0 && m.Button == MouseNone:
		m.Action = MouseMove
	case btn&32 != 0:
		m.Action = MouseDrag
	}
	return end + 1, Event{Kind: EventMouse, Mouse: m}, false
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y".
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	var vals [3]int
	field := 0
	digits := 0
	for _, c := range data {
		switch {
		case c == ';':
			if digits == 0 || field == 2 {
				return 0, 0, 0, false
			}
			field++
			digits = 0
		case c >= '0' && c <= '9':
			vals[field] = vals[field]*10 + int(c-'0')
			digits++
		default:
			return 0, 0, 0, false
		}
	}
	if field != 2 || digits == 0 {
		return 0, 0, 0, false
	}
	return vals[0], vals[1], vals[2], true
}
