package io

import (
	"io"
)

// BELL is written once for each beep.
const BELL = "\a"

// Buzzer is a Speaker that rings the terminal bell when the sound timer
// starts.
type Buzzer struct {
	Output io.Writer

	Beeps int // Number of beeps so far.

	on bool
}

var _ Speaker = (*Buzzer)(nil)

// Sound rings the bell on each off to on transition.
func (bz *Buzzer) Sound(on bool) (err error) {
	rising := on && !bz.on
	bz.on = on

	if !rising {
		return
	}

	bz.Beeps++
	if bz.Output != nil {
		_, err = io.WriteString(bz.Output, BELL)
	}

	return
}
