// ABOUTME: Tests for the pooled per-frame element buffer
// ABOUTME: Checks reuse returns a clean buffer and Labels copies in order

package tui

import "testing"

func TestRenderBuffer_Pool(t *testing.T) {
	t.Parallel()

	buf := AcquireBuffer()
	buf.Add(Label{Text: "line1"})
	buf.Add(Label{Text: "line2", Row: 1})

	if len(buf.Elements) != 2 {
		t.Errorf("len(Elements) = %d, want 2", len(buf.Elements))
	}

	ReleaseBuffer(buf)

	buf2 := AcquireBuffer()
	if len(buf2.Elements) != 0 {
		t.Errorf("re-acquired buffer len(Elements) = %d, want 0", len(buf2.Elements))
	}
	ReleaseBuffer(buf2)
}

func TestRenderBuffer_ReleaseNil(t *testing.T) {
	t.Parallel()

	ReleaseBuffer(nil) // must not panic
}

func TestRenderBuffer_Labels(t *testing.T) {
	t.Parallel()

	buf := AcquireBuffer()
	defer ReleaseBuffer(buf)

	buf.Add(Label{Text: "a"})
	buf.Add(Label{Text: "b", Col: 2, Row: 3})

	labels := buf.Labels()
	if len(labels) != 2 {
		t.Fatalf("Labels() len = %d, want 2", len(labels))
	}
	if labels[0].Text != "a" || labels[1] != (Label{Text: "b", Col: 2, Row: 3}) {
		t.Errorf("Labels() = %+v", labels)
	}

	labels[0].Text = "changed"
	if buf.Elements[0].(Label).Text != "a" {
		t.Error("Labels() must return a copy")
	}
}
