package cpu

// KEY_COUNT is the number of keys on the hex keypad.
//
//	+---+---+---+---+
//	| 1 | 2 | 3 | C |
//	+---+---+---+---+
//	| 4 | 5 | 6 | D |
//	+---+---+---+---+
//	| 7 | 8 | 9 | E |
//	+---+---+---+---+
//	| A | 0 | B | F |
//	+---+---+---+---+
const KEY_COUNT = 16

// Keypad is the pressed state of each key, indexed by hex value.
// The host writes it wholesale between batches of cycles.
type Keypad [KEY_COUNT]bool

// Pressed reports whether key is held. Only the low nibble of key is used.
func (kp *Keypad) Pressed(key byte) bool {
	return kp[key&0xf]
}

// First returns the lowest numbered key that is held.
func (kp *Keypad) First() (key byte, ok bool) {
	for n, down := range kp {
		if down {
			return byte(n), true
		}
	}
	return
}

// Release lets go of every key.
func (kp *Keypad) Release() {
	clear(kp[:])
}
