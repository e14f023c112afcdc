package display

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/thelolagemann/gochip8/internal/keypad"
)

// keypadOrder is the keypad read left to right, top to bottom.
var keypadOrder = [16]keypad.Key{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// DefaultLayout maps the left hand block of a QWERTY keyboard onto
// the 4x4 hex keypad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
const DefaultLayout = "1234qwerasdfzxcv"

// Keymap maps lower case keyboard runes to keypad keys. Drivers look
// keys up through KeyForRune, so SetKeymap takes effect for all of
// them.
var Keymap = mustKeymap(DefaultLayout)

// KeyForRune returns the keypad key bound to r, ignoring case.
func KeyForRune(r rune) (keypad.Key, bool) {
	k, ok := Keymap[unicode.ToLower(r)]
	return k, ok
}

// SetKeymap replaces Keymap with layout, 16 distinct runes given in
// keypad order.
func SetKeymap(layout string) error {
	m, err := parseLayout(layout)
	if err != nil {
		return err
	}
	Keymap = m
	return nil
}

func parseLayout(layout string) (map[rune]keypad.Key, error) {
	if n := utf8.RuneCountInString(layout); n != len(keypadOrder) {
		return nil, fmt.Errorf("keymap needs %d keys, got %d", len(keypadOrder), n)
	}
	m := make(map[rune]keypad.Key, len(keypadOrder))
	i := 0
	for _, r := range layout {
		r = unicode.ToLower(r)
		if _, dup := m[r]; dup {
			return nil, fmt.Errorf("keymap binds %q twice", r)
		}
		m[r] = keypadOrder[i]
		i++
	}
	return m, nil
}

func mustKeymap(layout string) map[rune]keypad.Key {
	m, err := parseLayout(layout)
	if err != nil {
		panic(err)
	}
	return m
}

// keymapValue exposes SetKeymap as a flag.
type keymapValue struct{}

func (keymapValue) String() string { return DefaultLayout }

func (keymapValue) Set(s string) error { return SetKeymap(s) }
