// ABOUTME: Context is the per-frame handle passed to the update callback
// ABOUTME: Gives mutable access to app state and collects the frame's labels

package tui

// Context is valid only during the update callback it was passed to. The
// elements appended through it are rendered right after the callback
// returns; using it afterwards panics.
type Context[S any] struct {
	state *S
	buf   *RenderBuffer
	frame uint64
	done  bool
}

// State returns the application state. Mutations persist across frames.
func (c *Context[S]) State() *S {
	return c.state
}

// Frame returns the 0-based number of the current tick.
func (c *Context[S]) Frame() uint64 {
	return c.frame
}

// Label appends a label at the top-left corner of the screen.
func (c *Context[S]) Label(text string) {
	c.add(Label{Text: text})
}

// LabelAt appends a label whose first cell is at (col, row).
func (c *Context[S]) LabelAt(col, row int, text string) {
	c.add(Label{Text: text, Col: col, Row: row})
}

// Elements returns a copy of the elements appended so far.
func (c *Context[S]) Elements() []Element {
	c.check()
	return append([]Element(nil), c.buf.Elements...)
}

func (c *Context[S]) add(el Element) {
	c.check()
	c.buf.Add(el)
}

func (c *Context[S]) check() {
	if c.done {
		panic("tui: Context used after its frame ended")
	}
}
