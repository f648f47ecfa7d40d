// ABOUTME: Tests for VisibleWidth, ClusterWidth and the LRU width cache
// ABOUTME: Covers ASCII, CJK, emoji and eviction order

package width

import (
	"strings"
	"testing"
)

func TestVisibleWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty string", input: "", want: 0},
		{name: "ascii", input: "hello", want: 5},
		{name: "cjk", input: "你好", want: 4},
		{name: "mixed", input: "hi 你", want: 5},
		{name: "emoji", input: "👋", want: 2},
		{name: "combining accent", input: "e\u0301", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := VisibleWidth(tt.input)
			if got != tt.want {
				t.Errorf("VisibleWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestClusterWidth(t *testing.T) {
	t.Parallel()

	if got := ClusterWidth(""); got != 0 {
		t.Errorf("ClusterWidth(\"\") = %d, want 0", got)
	}
	if got := ClusterWidth("a"); got != 1 {
		t.Errorf("ClusterWidth(a) = %d, want 1", got)
	}
	if got := ClusterWidth("界"); got != 2 {
		t.Errorf("ClusterWidth(界) = %d, want 2", got)
	}
}

func TestIsPlainASCII(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "plain ascii", input: "hello world!", want: true},
		{name: "with escape", input: "hello\x1b[31m", want: false},
		{name: "with tab", input: "a\tb", want: false},
		{name: "with newline", input: "a\nb", want: false},
		{name: "empty", input: "", want: true},
		{name: "unicode", input: "café", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := isPlainASCII(tt.input)
			if got != tt.want {
				t.Errorf("isPlainASCII(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCache_EvictionOrder(t *testing.T) {
	t.Parallel()

	c := newCache(3)
	c.put("a", 1)
	c.put("b", 2)
	c.put("c", 3)

	// Access "a" to promote it; "b" becomes LRU.
	if v, ok := c.get("a"); !ok || v != 1 {
		t.Fatalf("get(a) = %d, %v; want 1, true", v, ok)
	}

	c.put("d", 4)

	if _, ok := c.get("b"); ok {
		t.Error("expected 'b' to be evicted")
	}
	if v, ok := c.get("d"); !ok || v != 4 {
		t.Errorf("get(d) = %d, %v; want 4, true", v, ok)
	}
	if c.len() != 3 {
		t.Errorf("len() = %d, want 3", c.len())
	}
}

func BenchmarkVisibleWidth_ASCII(b *testing.B) {
	s := "frame 1024 | press Esc to quit"
	for b.Loop() {
		VisibleWidth(s)
	}
}

func BenchmarkVisibleWidth_Unicode(b *testing.B) {
	s := "你好世界 Hello 🌍"
	for b.Loop() {
		VisibleWidth(s)
	}
}

func BenchmarkCache_PutGet(b *testing.B) {
	c := newCache(256)
	keys := make([]string, 512)
	for i := range keys {
		keys[i] = strings.Repeat("x", i+1)
	}
	for b.Loop() {
		for i, k := range keys {
			c.put(k, i)
		}
		for _, k := range keys {
			c.get(k)
		}
	}
}
