// ABOUTME: Element is the closed set of things a frame can draw; Label is the only variant
// ABOUTME: Labels print single-line text at a cell position, origin by default

package tui

// Element is a drawable item in a frame. The set of variants is closed;
// Screen.Render knows how to draw each of them.
type Element interface {
	element()
}

// Label prints Text with its first cell at (Col, Row). The zero position
// is the top-left corner, so labels without coordinates overwrite each
// other and the last one appended stays visible.
type Label struct {
	Text string
	Col  int
	Row  int
}

func (Label) element() {}
