// ABOUTME: Pooled element buffer for one frame; recycled via sync.Pool
// ABOUTME: The update callback appends labels here; Screen.Render draws them in order

package tui

import "sync"

var bufferPool = sync.Pool{
	New: func() any {
		return &RenderBuffer{
			Elements: make([]Element, 0, 16),
		}
	},
}

// AcquireBuffer gets an empty RenderBuffer from the pool.
func AcquireBuffer() *RenderBuffer {
	buf := bufferPool.Get().(*RenderBuffer)
	buf.Reset()
	return buf
}

// ReleaseBuffer returns a RenderBuffer to the pool.
func ReleaseBuffer(buf *RenderBuffer) {
	if buf == nil {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// RenderBuffer collects the elements of a single frame.
type RenderBuffer struct {
	Elements []Element
}

// Add appends el to the frame.
func (b *RenderBuffer) Add(el Element) {
	b.Elements = append(b.Elements, el)
}

// Reset empties the buffer for reuse without deallocating. Element
// references are cleared so pooled buffers do not pin label text.
func (b *RenderBuffer) Reset() {
	clear(b.Elements)
	b.Elements = b.Elements[:0]
}

// Labels returns a copy of the labels in the buffer, in order.
func (b *RenderBuffer) Labels() []Label {
	out := make([]Label, 0, len(b.Elements))
	for _, el := range b.Elements {
		if l, ok := el.(Label); ok {
			out = append(out, l)
		}
	}
	return out
}
