package io

import (
	"bufio"
	"io"

	"github.com/ezrec/chip8/cpu"
)

// Tape replays keypad input from a stream of host runes, for headless
// runs. Each mapped rune presses its key for Hold polls, then releases it
// for one poll, so repeated runes read as separate key strokes. Runes with
// no mapping are pauses of Hold polls.
type Tape struct {
	Input  io.Reader
	KeyMap KeyMap // DefaultKeyMap() if nil.
	Hold   int    // Polls per rune; 1 if zero.

	reader    *bufio.Reader
	current   byte
	pressed   bool
	remaining int
}

var _ InputSource = (*Tape)(nil)
var _ Rewinder = (*Tape)(nil)
var _ Finite = (*Tape)(nil)

// Rewind restarts the tape. Input that can seek is replayed from its
// start, other input continues from where it was read to.
func (tc *Tape) Rewind() (err error) {
	tc.reader = nil
	tc.pressed = false
	tc.remaining = 0

	seeker, ok := tc.Input.(io.Seeker)
	if !ok {
		return
	}

	_, err = seeker.Seek(0, io.SeekStart)
	return
}

// Poll advances the tape by one poll.
func (tc *Tape) Poll(keypad *cpu.Keypad) {
	if tc.remaining > 0 {
		tc.remaining--
		if tc.remaining > 0 {
			return
		}
	}

	if tc.pressed {
		keypad[tc.current] = false
		tc.pressed = false
		return
	}

	if tc.Input == nil {
		return
	}

	if tc.reader == nil {
		tc.reader = bufio.NewReader(tc.Input)
	}

	ch, _, err := tc.reader.ReadRune()
	if err != nil {
		return
	}

	tc.remaining = max(tc.Hold, 1)
	key, ok := tc.KeyMap.Key(ch)
	if !ok {
		return
	}

	tc.current = key
	tc.pressed = true
	keypad[key] = true
}

// Done returns true once the input is exhausted and no key is held.
func (tc *Tape) Done() bool {
	if tc.pressed || tc.remaining > 0 {
		return false
	}
	if tc.Input == nil {
		return true
	}
	if tc.reader == nil {
		tc.reader = bufio.NewReader(tc.Input)
	}

	_, err := tc.reader.Peek(1)
	return err != nil
}
