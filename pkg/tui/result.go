// ABOUTME: UpdateResult tells the frame loop whether to keep going
// ABOUTME: Returned by the update callback and by Screen.Drain

package tui

// UpdateResult is the outcome of one frame step.
type UpdateResult uint8

const (
	// Continue keeps the frame loop running.
	Continue UpdateResult = iota
	// Exit ends the frame loop.
	Exit
)

func (r UpdateResult) String() string {
	switch r {
	case Continue:
		return "continue"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}
