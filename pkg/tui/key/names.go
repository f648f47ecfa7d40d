// ABOUTME: Lookup resolves human-written key names ("esc", "ctrl+c", "alt+x") into Keys.
// ABOUTME: Used by configuration to declare which key presses end the frame loop.

package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnknownName is returned by Lookup for names it cannot resolve.
var ErrUnknownName = errors.New("unknown key name")

var namedKeys = map[string]KeyType{
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"backtab":   KeyBackTab,
	"shift+tab": KeyBackTab,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"insert":    KeyInsert,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"pgup":      KeyPageUp,
	"pagedown":  KeyPageDown,
	"pgdn":      KeyPageDown,
	"f1":        KeyF1,
	"f2":        KeyF2,
	"f3":        KeyF3,
	"f4":        KeyF4,
}

// Lookup parses a key name. Names are case-insensitive except for single
// printable characters, which match literally ("q" and "Q" differ).
func Lookup(name string) (Key, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Key{}, fmt.Errorf("empty key name: %w", ErrUnknownName)
	}
	if utf8.RuneCountInString(trimmed) == 1 {
		r, _ := utf8.DecodeRuneInString(trimmed)
		return Key{Type: KeyRune, Rune: r}, nil
	}

	lower := strings.ToLower(trimmed)
	if t, ok := namedKeys[lower]; ok {
		k := Key{Type: t}
		if t == KeyBackTab {
			k.Shift = true
		}
		return k, nil
	}

	if letter, ok := strings.CutPrefix(lower, "ctrl+"); ok {
		if len(letter) == 1 && letter[0] >= 'a' && letter[0] <= 'z' {
			return Ctrl(rune(letter[0])), nil
		}
		return Key{}, fmt.Errorf("key %q: ctrl accepts a single letter: %w", name, ErrUnknownName)
	}

	if _, ok := strings.CutPrefix(lower, "alt+"); ok {
		rest := trimmed[len("alt+"):]
		if utf8.RuneCountInString(rest) == 1 {
			r, _ := utf8.DecodeRuneInString(rest)
			return Key{Type: KeyRune, Rune: r, Alt: true}, nil
		}
	}

	return Key{}, fmt.Errorf("key %q: %w", name, ErrUnknownName)
}
