package io

import (
	"unicode"
)

// KeyMap maps host keyboard runes to keypad keys.
type KeyMap map[rune]byte

// DefaultKeyMap lays the hex keypad over the left hand side of a QWERTY
// keyboard:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
func DefaultKeyMap() KeyMap {
	return KeyMap{
		'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
		'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
		'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
		'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
	}
}

// Key returns the keypad key for a rune, ignoring case.
func (km KeyMap) Key(ch rune) (key byte, ok bool) {
	if km == nil {
		km = DefaultKeyMap()
	}

	key, ok = km[unicode.ToLower(ch)]
	return
}
