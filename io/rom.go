package io

import (
	"io"

	"github.com/ezrec/chip8/cpu"
)

// Rom is a program image, loaded at cpu.PROGRAM_START.
type Rom struct {
	Data []byte
}

// Unmarshal reads a complete program image.
func (rom *Rom) Unmarshal(r io.Reader) (err error) {
	data, err := io.ReadAll(io.LimitReader(r, cpu.PROGRAM_SIZE+1))
	if err != nil {
		return
	}

	switch {
	case len(data) == 0:
		err = ErrRomEmpty
		return
	case len(data) > cpu.PROGRAM_SIZE:
		err = ErrRomSize
		return
	}

	rom.Data = data

	return
}

// Marshal writes the program image.
func (rom *Rom) Marshal(w io.Writer) (err error) {
	_, err = w.Write(rom.Data)
	return
}

// Load copies the image into the interpreter's memory.
func (rom *Rom) Load(machine *cpu.Cpu) (err error) {
	return machine.Load(rom.Data)
}
