// ABOUTME: Tests for Sanitize and Truncate on label text
// ABOUTME: Escape stripping, control replacement, NFC normalization and ellipsis placement

package width

import "testing"

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello", want: "hello"},
		{name: "sgr stripped", input: "\x1b[31mred\x1b[0m", want: "red"},
		{name: "cursor move stripped", input: "a\x1b[10;10Hb", want: "ab"},
		{name: "osc title stripped", input: "\x1b]0;title\x07x", want: "x"},
		{name: "osc st terminated", input: "\x1b]8;;url\x1b\\y", want: "y"},
		{name: "newline becomes space", input: "one\ntwo", want: "one two"},
		{name: "tab and cr become space", input: "a\tb\rc", want: "a b c"},
		{name: "bell dropped", input: "ding\x07", want: "ding"},
		{name: "del dropped", input: "x\x7fy", want: "xy"},
		{name: "c1 control dropped", input: "a\u009bb", want: "ab"},
		{name: "nfc composed", input: "e\u0301", want: "\u00e9"},
		{name: "trailing lone esc", input: "abc\x1b", want: "abc"},
		{name: "wide runes kept", input: "你好", want: "你好"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{name: "fits", input: "hello", maxWidth: 10, want: "hello"},
		{name: "exact", input: "hello", maxWidth: 5, want: "hello"},
		{name: "cut", input: "hello world", maxWidth: 6, want: "hello…"},
		{name: "one column", input: "hello", maxWidth: 1, want: "…"},
		{name: "zero", input: "hello", maxWidth: 0, want: ""},
		{name: "wide not split", input: "你好世界", maxWidth: 4, want: "你…"},
		{name: "wide fits after cut", input: "你好世界", maxWidth: 5, want: "你好…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
			if w := VisibleWidth(got); w > tt.maxWidth {
				t.Errorf("Truncate(%q, %d) width %d exceeds limit", tt.input, tt.maxWidth, w)
			}
		})
	}
}
