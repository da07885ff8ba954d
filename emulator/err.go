package emulator

import (
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrRuntime indicates the location of an interpreter error that halts
// the machine.
type ErrRuntime struct {
	Address uint16 // Address of the faulting instruction.
	LineNo  int    // Source line, if running an assembled program.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("address 0x%03x %v", err.Address, err.Err)
	}
	return f("address 0x%03x line %d %v", err.Address, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
