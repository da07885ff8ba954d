// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"time"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
	"github.com/ezrec/chip8/io"
)

const (
	CYCLES_PER_FRAME = 10 // Default instructions executed per timer tick.
	TIMER_HZ         = 60 // Default timer tick, and frame, rate.
)

var _emulator_defines = map[string]string{
	"CYCLES_PER_FRAME": fmt.Sprintf("%v", CYCLES_PER_FRAME),
	"TIMER_HZ":         fmt.Sprintf("%v", TIMER_HZ),
}

// Emulator state. Interpreter + program + host collaborators.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the interpreter.
	Program  *cpu.Program // Reference to the currently running program listing.
	Rom      io.Rom       // Program image loaded on reset.

	CyclesPerFrame int // Instructions per frame.
	TimerHz        int // Frames per second.

	Presenter io.Presenter   // Optional framebuffer output.
	Input     io.InputSource // Optional keypad input.
	Speaker   io.Speaker     // Optional sound output.

	Unknown int // Unknown opcodes skipped since reset.
	Frames  int // Frames run since reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:            cpu.NewCpu(),
		Program:        &cpu.Program{},
		CyclesPerFrame: CYCLES_PER_FRAME,
		TimerHz:        TIMER_HZ,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the interpreter, load the program, and rewind the input.
//
// An assembled Program replaces the Rom image; otherwise the Rom is
// loaded as is.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	rewinder, ok := emu.Input.(io.Rewinder)
	if ok {
		err = rewinder.Rewind()
		if err != nil {
			return
		}
	}

	if emu.Program != nil && len(emu.Program.Opcodes) > 0 {
		emu.Rom.Data = emu.Program.Binary()
	}

	err = emu.Rom.Load(emu.Cpu)
	if err != nil {
		return
	}

	emu.Unknown = 0
	emu.Frames = 0

	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction cycle.
//
// Unknown opcodes are logged and skipped. Any other interpreter error
// halts the machine, and is returned as an *ErrRuntime.
func (emu *Emulator) Tick() (err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	addr := emu.Cpu.Pc
	lineno := emu.LineNo()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrOpcodeUnknown) {
		var eo cpu.ErrOpcode
		errors.As(err, &eo)
		log.Printf("%03x: unknown opcode 0x%04x", addr, uint16(eo))
		emu.Unknown++
		err = nil
		return
	}
	if err != nil {
		err = &ErrRuntime{Address: addr, LineNo: lineno, Err: err}
		return
	}

	return
}

// Frame runs one timer period: poll input, run CyclesPerFrame cycles,
// tick the timers, then update the speaker and presenter.
func (emu *Emulator) Frame() (err error) {
	if emu.Input != nil {
		emu.Input.Poll(&emu.Cpu.Keypad)
	}

	for range emu.CyclesPerFrame {
		err = emu.Tick()
		if err != nil {
			return
		}
	}

	emu.Cpu.TimerTick()

	if emu.Speaker != nil {
		err = emu.Speaker.Sound(emu.Cpu.Beeping())
		if err != nil {
			return
		}
	}

	if emu.Presenter != nil {
		err = emu.Presenter.Present(&emu.Cpu.Display)
		if err != nil {
			return
		}
	}

	emu.Frames++

	return
}

// Run calls Frame TimerHz times a second until ctx is done, a frame fails,
// or an io.Finite input is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	hz := emu.TimerHz
	if hz <= 0 {
		hz = TIMER_HZ
	}

	// Rates above 1GHz run as fast as the ticker allows.
	interval := max(time.Second/time.Duration(hz), time.Nanosecond)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	finite, _ := emu.Input.(io.Finite)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err = emu.Frame()
			if err != nil {
				return
			}
			if finite != nil && finite.Done() {
				return
			}
		}
	}
}
