// ABOUTME: Tests for Decoder: keys, split escape sequences, focus, SGR mouse and bracketed paste.
// ABOUTME: Feeds byte chunks directly; no reader or timers involved.

package input

import (
	"strings"
	"testing"

	"github.com/mauromedda/frametui/pkg/tui/key"
)

// drain collects every complete event currently available.
func drain(d *Decoder) []Event {
	var out []Event
	for {
		ev, ok := d.Next()
		if !ok {
			return out
		}
		out = append(out, ev)
	}
}

func TestDecoder_Keys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want []key.Key
	}{
		{name: "single rune", data: "a", want: []key.Key{{Type: key.KeyRune, Rune: 'a'}}},
		{name: "several runes", data: "abc", want: []key.Key{
			{Type: key.KeyRune, Rune: 'a'},
			{Type: key.KeyRune, Rune: 'b'},
			{Type: key.KeyRune, Rune: 'c'},
		}},
		{name: "utf8 rune", data: "日", want: []key.Key{{Type: key.KeyRune, Rune: '日'}}},
		{name: "arrow up", data: "\x1b[A", want: []key.Key{{Type: key.KeyUp}}},
		{name: "delete then rune", data: "\x1b[3~x", want: []key.Key{
			{Type: key.KeyDelete},
			{Type: key.KeyRune, Rune: 'x'},
		}},
		{name: "ss3 f1", data: "\x1bOP", want: []key.Key{{Type: key.KeyF1}}},
		{name: "alt+x", data: "\x1bx", want: []key.Key{{Type: key.KeyRune, Rune: 'x', Alt: true}}},
		{name: "double escape keeps second pending", data: "\x1b\x1b", want: []key.Key{{Type: key.KeyEscape}}},
		{name: "unknown csi consumed whole", data: "\x1b[99Zq", want: []key.Key{
			{Type: key.KeyUnknown},
			{Type: key.KeyRune, Rune: 'q'},
		}},
		{name: "ctrl+c", data: "\x03", want: []key.Key{key.Ctrl('c')}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := NewDecoder()
			d.Feed([]byte(tt.data))
			got := drain(d)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d events %v, want %d", len(got), got, len(tt.want))
			}
			for i, ev := range got {
				if ev.Kind != EventKey {
					t.Fatalf("event %d kind = %v, want key", i, ev.Kind)
				}
				if ev.Key != tt.want[i] {
					t.Errorf("event %d key = %+v, want %+v", i, ev.Key, tt.want[i])
				}
			}
		})
	}
}

func TestDecoder_LoneEscapeWaitsThenFlushes(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	d.Feed([]byte{0x1b})

	if _, ok := d.Next(); ok {
		t.Fatal("lone ESC should not decode before Flush")
	}
	if !d.Pending() {
		t.Fatal("expected Pending() after lone ESC")
	}

	got := d.Flush()
	if len(got) != 1 || got[0].Key.Type != key.KeyEscape {
		t.Fatalf("Flush() = %v, want single Escape", got)
	}
	if d.Pending() {
		t.Error("expected empty buffer after Flush")
	}
}

func TestDecoder_SplitSequence(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	d.Feed([]byte("\x1b["))
	if _, ok := d.Next(); ok {
		t.Fatal("partial CSI should not decode")
	}
	d.Feed([]byte("B"))

	ev, ok := d.Next()
	if !ok || ev.Key.Type != key.KeyDown {
		t.Fatalf("Next() = %v, %v; want KeyDown", ev, ok)
	}
}

func TestDecoder_SplitUTF8(t *testing.T) {
	t.Parallel()

	raw := []byte("é")
	d := NewDecoder()
	d.Feed(raw[:1])
	if _, ok := d.Next(); ok {
		t.Fatal("half a rune should not decode")
	}
	d.Feed(raw[1:])
	ev, ok := d.Next()
	if !ok || ev.Key.Rune != 'é' {
		t.Fatalf("Next() = %v, %v; want é", ev, ok)
	}
}

func TestDecoder_Focus(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	d.Feed([]byte("\x1b[I\x1b[O"))
	got := drain(d)

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Kind != EventFocusGained || got[1].Kind != EventFocusLost {
		t.Errorf("kinds = %v, %v; want focus-gained, focus-lost", got[0].Kind, got[1].Kind)
	}
}

func TestDecoder_SGRMouse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want Mouse
	}{
		{name: "left press", data: "\x1b[<0;10;5M", want: Mouse{X: 9, Y: 4, Button: MouseLeft, Action: MousePress}},
		{name: "right release", data: "\x1b[<2;1;1m", want: Mouse{X: 0, Y: 0, Button: MouseRight, Action: MouseRelease}},
		{name: "wheel down", data: "\x1b[<65;3;3M", want: Mouse{X: 2, Y: 2, Button: MouseWheelDown, Action: MousePress}},
		{name: "left drag", data: "\x1b[<32;4;4M", want: Mouse{X: 3, Y: 3, Button: MouseLeft, Action: MouseDrag}},
		{name: "motion no button", data: "\x1b[<35;7;8M", want: Mouse{X: 6, Y: 7, Button: MouseNone, Action: MouseMove}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := NewDecoder()
			d.Feed([]byte(tt.data))
			ev, ok := d.Next()
			if !ok {
				t.Fatal("expected a mouse event")
			}
			if ev.Kind != EventMouse {
				t.Fatalf("kind = %v, want mouse", ev.Kind)
			}
			if ev.Mouse != tt.want {
				t.Errorf("mouse = %+v, want %+v", ev.Mouse, tt.want)
			}
			if d.Pending() {
				t.Error("sequence not fully consumed")
			}
		})
	}
}

func TestDecoder_BracketedPaste(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	d.Feed([]byte(bracketStart + "hello\x1b[A"))
	if _, ok := d.Next(); ok {
		t.Fatal("paste without end marker should wait")
	}

	d.Feed([]byte(bracketEnd + "z"))
	got := drain(d)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Kind != EventPaste || got[0].Text != "hello\x1b[A" {
		t.Errorf("paste event = %+v", got[0])
	}
	if got[1].Key.Rune != 'z' {
		t.Errorf("trailing key = %+v, want z", got[1].Key)
	}
}

func TestDecoder_FlushKeepsPasteOpen(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	d.Feed([]byte(bracketStart + "partial"))
	if got := d.Flush(); len(got) != 0 {
		t.Fatalf("Flush() = %+v, want no events while the paste is open", got)
	}
	if !d.inPaste {
		t.Fatal("paste closed by Flush, want it still open")
	}
	if d.Pending() {
		t.Error("Pending() = true for an open paste")
	}

	d.Feed([]byte(" rest q\x1b" + bracketEnd))
	got := drain(d)
	if len(got) != 1 || got[0].Kind != EventPaste || got[0].Text != "partial rest q\x1b" {
		t.Fatalf("events = %+v, want one paste with the whole text", got)
	}
	if d.inPaste {
		t.Error("paste still open after the end marker")
	}
}

func TestDecoder_PasteAcrossFeeds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		chunks []string
		want   string
	}{
		{
			name:   "end marker split",
			chunks: []string{bracketStart + "abc\x1b[2", "01~"},
			want:   "abc",
		},
		{
			name:   "end marker split after escape",
			chunks: []string{bracketStart + "abc\x1b", "[201~"},
			want:   "abc",
		},
		{
			name:   "start marker alone",
			chunks: []string{bracketStart, "q\x1bx", bracketEnd},
			want:   "q\x1bx",
		},
		{
			name:   "escape that is not the marker",
			chunks: []string{bracketStart + "a\x1b[", "Ab" + bracketEnd},
			want:   "a\x1b[Ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := NewDecoder()
			var got []Event
			for _, c := range tt.chunks {
				d.Feed([]byte(c))
				got = append(got, drain(d)...)
				got = append(got, d.Flush()...)
			}
			if len(got) != 1 || got[0].Kind != EventPaste {
				t.Fatalf("events = %+v, want one paste", got)
			}
			if got[0].Text != tt.want {
				t.Errorf("Text = %q, want %q", got[0].Text, tt.want)
			}
		})
	}
}

func TestDecoder_LargePasteYieldsNoKeys(t *testing.T) {
	t.Parallel()

	payload := strings.Repeat("a", 1000) + "q\x1b"
	stream := bracketStart + payload + bracketEnd + "z"

	d := NewDecoder()
	var got []Event
	for len(stream) > 0 {
		n := min(256, len(stream))
		d.Feed([]byte(stream[:n]))
		stream = stream[n:]
		got = append(got, drain(d)...)
		got = append(got, d.Flush()...)
	}

	if len(got) != 2 {
		t.Fatalf("got %d events, want paste then z", len(got))
	}
	if got[0].Kind != EventPaste || got[0].Text != payload {
		t.Errorf("paste = kind %v, %d bytes; want %d bytes", got[0].Kind, len(got[0].Text), len(payload))
	}
	if got[1].Kind != EventKey || got[1].Key.Rune != 'z' {
		t.Errorf("after paste = %+v, want key z", got[1])
	}
}

func TestDecoder_PasteIsCapped(t *testing.T) {
	t.Parallel()

	d := NewDecoder()
	d.Feed([]byte(bracketStart))
	chunk := []byte(strings.Repeat("x", 64*1024))
	for range maxPasteLen/len(chunk) + 2 {
		d.Feed(chunk)
		if _, ok := d.Next(); ok {
			t.Fatal("paste ended before its end marker")
		}
	}
	d.Feed([]byte(bracketEnd))

	ev, ok := d.Next()
	if !ok || ev.Kind != EventPaste {
		t.Fatalf("Next() = %+v, %v; want paste", ev, ok)
	}
	if len(ev.Text) != maxPasteLen {
		t.Errorf("len(Text) = %d, want %d", len(ev.Text), maxPasteLen)
	}
}

func TestParseSGRParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		btn    int
		x, y   int
		wantOK bool
	}{
		{in: "0;1;2", btn: 0, x: 1, y: 2, wantOK: true},
		{in: "64;120;40", btn: 64, x: 120, y: 40, wantOK: true},
		{in: "0;1", wantOK: false},
		{in: "0;;2", wantOK: false},
		{in: "0;1;2;3", wantOK: false},
		{in: "a;1;2", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			btn, x, y, ok := parseSGRParams([]byte(tt.in))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (btn != tt.btn || x != tt.x || y != tt.y) {
				t.Errorf("got (%d,%d,%d), want (%d,%d,%d)", btn, x, y, tt.btn, tt.x, tt.y)
			}
		})
	}
}

func TestEvent_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ev   Event
		want string
	}{
		{ev: KeyEvent(key.Key{Type: key.KeyEscape}), want: "key Escape"},
		{ev: ResizeEvent(80, 24), want: "resize 80x24"},
		{ev: PasteEvent("abc"), want: "paste (3 bytes)"},
		{ev: Event{Kind: EventFocusLost}, want: "focus-lost"},
		{ev: Event{Kind: EventMouse, Mouse: Mouse{X: 1, Y: 2}}, want: "mouse 1,2"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.ev.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
