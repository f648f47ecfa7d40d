// ABOUTME: Tracer hook receiving one FrameRecord per tick of App.Run
// ABOUTME: Records which side stopped the loop and which labels were drawn

package tui

import "time"

// StopReason says why a tick ended the loop, if it did.
type StopReason uint8

const (
	StopNone StopReason = iota
	// StopCallback: the update callback returned Exit.
	StopCallback
	// StopInput: an exit key was pressed.
	StopInput
	// StopError: input or output failed.
	StopError
)

var stopReasonNames = [...]string{
	StopNone:     "none",
	StopCallback: "callback",
	StopInput:    "input",
	StopError:    "error",
}

func (r StopReason) String() string {
	if int(r) < len(stopReasonNames) {
		return stopReasonNames[r]
	}
	return "unknown"
}

// FrameRecord describes one tick of the frame loop.
type FrameRecord struct {
	Frame    uint64
	Stop     StopReason
	Labels   []Label
	Duration time.Duration
	Err      string
}

// Tracer observes frames. TraceFrame is called on the loop goroutine and
// must not block for long.
type Tracer interface {
	TraceFrame(rec FrameRecord)
}
