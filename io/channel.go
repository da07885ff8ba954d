// Package io provides the host side collaborators of the CHIP-8 interpreter.
// It includes the ROM loader (Rom), framebuffer presenters (Text, TermScreen,
// Monitor), keypad sources (KeyQueue, Tape) and the sound timer speaker
// (Buzzer).
package io

import (
	"github.com/ezrec/chip8/cpu"
)

// Presenter displays the framebuffer once per frame.
type Presenter interface {
	// Present renders the framebuffer.
	Present(display *cpu.Display) error
}

// InputSource updates the keypad between batches of cycles.
type InputSource interface {
	// Poll writes the current key state into the keypad.
	Poll(keypad *cpu.Keypad)
}

// Speaker follows the sound timer.
type Speaker interface {
	// Sound is called once per frame with the beeper state.
	Sound(on bool) error
}

// Rewinder is an InputSource that restarts along with the machine.
type Rewinder interface {
	// Rewind returns the input to its start.
	Rewind() error
}

// Finite is an InputSource that runs out.
type Finite interface {
	// Done returns true once there is no more input.
	Done() bool
}
