// ABOUTME: Event is the decoded unit of terminal input: key, focus, mouse, paste or resize.
// ABOUTME: Only key events carry meaning for the frame loop; the rest are observed and dropped.

package input

import (
	"fmt"

	"github.com/mauromedda/frametui/pkg/tui/key"
)

// EventKind distinguishes input event categories.
type EventKind uint8

const (
	EventKey EventKind = iota
	EventFocusGained
	EventFocusLost
	EventMouse
	EventPaste
	EventResize
)

var eventKindNames = [...]string{
	EventKey:         "key",
	EventFocusGained: "focus-gained",
	EventFocusLost:   "focus-lost",
	EventMouse:       "mouse",
	EventPaste:       "paste",
	EventResize:      "resize",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

// MouseButton identifies the button in an SGR mouse report.
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction describes what the button did.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseDrag
	MouseMove
)

// Mouse holds a decoded mouse report. X and Y are 0-based cells.
type Mouse struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
}

// Event represents a decoded terminal input event.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	Key    key.Key // EventKey
	Mouse  Mouse   // EventMouse
	Text   string  // EventPaste
	Width  int     // EventResize
	Height int     // EventResize
}

// KeyEvent wraps a key press.
func KeyEvent(k key.Key) Event {
	return Event{Kind: EventKey, Key: k}
}

// ResizeEvent reports new terminal dimensions.
func ResizeEvent(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

// PasteEvent wraps bracketed-paste content.
func PasteEvent(text string) Event {
	return Event{Kind: EventPaste, Text: text}
}

// String returns a short description for debug logs.
func (e Event) String() string {
	switch e.Kind {
	case EventKey:
		return "key " + e.Key.String()
	case EventMouse:
		return fmt.Sprintf("mouse %d,%d", e.Mouse.X, e.Mouse.Y)
	case EventPaste:
		return fmt.Sprintf("paste (%d bytes)", len(e.Text))
	case EventResize:
		return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	}
	return e.Kind.String()
}
