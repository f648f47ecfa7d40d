// ABOUTME: Tests for Lookup: named keys, ctrl/alt combinations and rejected names.

package key

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    Key
		wantErr bool
	}{
		{name: "escape", want: Key{Type: KeyEscape}},
		{name: "Esc", want: Key{Type: KeyEscape}},
		{name: "  enter  ", want: Key{Type: KeyEnter}},
		{name: "shift+tab", want: Key{Type: KeyBackTab, Shift: true}},
		{name: "PgDn", want: Key{Type: KeyPageDown}},
		{name: "f3", want: Key{Type: KeyF3}},
		{name: "ctrl+c", want: Ctrl('c')},
		{name: "CTRL+Q", want: Ctrl('q')},
		{name: "alt+x", want: Key{Type: KeyRune, Rune: 'x', Alt: true}},
		{name: "q", want: Key{Type: KeyRune, Rune: 'q'}},
		{name: "Q", want: Key{Type: KeyRune, Rune: 'Q'}},
		{name: "", wantErr: true},
		{name: "ctrl+1", wantErr: true},
		{name: "ctrl+ab", wantErr: true},
		{name: "hyper+x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Lookup(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownName) {
					t.Fatalf("Lookup(%q) error = %v, want ErrUnknownName", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) unexpected error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}
