// ABOUTME: Sanitize makes caller-supplied label text safe to print on a raw terminal.
// ABOUTME: NFC-normalizes, strips escape sequences and replaces control characters.

package width

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Sanitize returns s as a single line of printable text: escape sequences
// are removed, tabs and line breaks become spaces, other control characters
// are dropped, and the result is NFC-normalized so combining sequences
// measure the same way they render.
func Sanitize(s string) string {
	if isPlainASCII(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == 0x1b:
			i = skipEscape(s, i)
			continue
		case c == '\t', c == '\n', c == '\r':
			b.WriteByte(' ')
		case c < 0x20, c == 0x7f:
		default:
			b.WriteByte(c)
		}
		i++
	}

	out := b.String()
	// C1 controls (U+0080..U+009F) are valid UTF-8 but still steer the
	// terminal on some emulators.
	out = strings.Map(func(r rune) rune {
		if r >= 0x80 && r <= 0x9f {
			return -1
		}
		return r
	}, out)
	return norm.NFC.String(out)
}

// skipEscape advances past an escape sequence starting at s[i] and returns
// the index of the first byte after it.
func skipEscape(s string, i int) int {
	i++ // ESC
	if i >= len(s) {
		return i
	}

	switch s[i] {
	case '[':
		// CSI: parameters until a final byte 0x40-0x7E.
		for i++; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return i
	case ']', '_', 'P', '^':
		// OSC, APC, DCS, PM: terminated by BEL or ST.
		for i++; i < len(s); i++ {
			if s[i] == 0x07 {
				return i + 1
			}
			if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case '(', ')':
		// Character set designation: one more byte.
		if i+1 < len(s) {
			return i + 2
		}
		return i + 1
	default:
		return i + 1
	}
}
