package io

import (
	"fmt"
	"io"

	"github.com/ezrec/chip8/cpu"
)

// Text writes each presented frame to Output as rows of '#' and '.'.
type Text struct {
	Output io.Writer
	Every  int // Only every Nth frame is written; every frame if zero.

	Frames int // Frames presented so far.
}

var _ Presenter = (*Text)(nil)

// Present writes the framebuffer, followed by a blank line.
func (tc *Text) Present(display *cpu.Display) (err error) {
	tc.Frames++
	if tc.Every > 1 && tc.Frames%tc.Every != 0 {
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%v\n", display)
	return
}
