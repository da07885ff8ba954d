package emulator

import (
	"bytes"
	"context"
	"log"
	"maps"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/io"
)

type inputFunc func(keypad *cpu.Keypad)

func (fn inputFunc) Poll(keypad *cpu.Keypad) {
	fn(keypad)
}

type presentFunc func(display *cpu.Display) error

func (fn presentFunc) Present(display *cpu.Display) error {
	return fn(display)
}

type speakerLog []bool

func (sl *speakerLog) Sound(on bool) error {
	*sl = append(*sl, on)
	return nil
}

func loadProgram(t *testing.T, emu *Emulator, program ...string) {
	asm := &cpu.Assembler{}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog

	err = emu.Reset()
	if err != nil {
		t.Fatal(err)
	}
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(CYCLES_PER_FRAME, emu.CyclesPerFrame)
	assert.Equal(TIMER_HZ, emu.TimerHz)

	defines := maps.Collect(emu.Defines())
	assert.Equal("10", defines["CYCLES_PER_FRAME"])
	assert.Equal("60", defines["TIMER_HZ"])
	assert.Equal("0x200", defines["PROGRAM_START"])
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Rom.Data = []byte{0x60, 0x05}
	assert.NoError(emu.Reset())
	assert.Equal(cpu.Code(0x6005), emu.Cpu.FetchCode())
	assert.Equal(0, emu.LineNo())

	loadProgram(t, emu,
		"ld V0, 1",
		"loop: add V0, 1",
		"jp loop",
	)
	assert.Equal([]byte{0x60, 0x01, 0x70, 0x01, 0x12, 0x02}, emu.Rom.Data)
	assert.Equal(1, emu.LineNo())

	assert.NoError(emu.Tick())
	assert.Equal(2, emu.LineNo())
	assert.NoError(emu.Tick())
	assert.Equal(3, emu.LineNo())
	assert.NoError(emu.Tick())
	assert.Equal(2, emu.LineNo())
	assert.Equal(uint8(2), emu.Cpu.Register[0])

	emu.Program = nil
	emu.Rom.Data = make([]byte, cpu.PROGRAM_SIZE+1)
	assert.ErrorIs(emu.Reset(), cpu.ErrProgramSize)
}

func TestEmulatorUnknownOpcode(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	emu := NewEmulator()
	loadProgram(t, emu,
		".word 0x0123",
		"ld V1, 7",
	)

	assert.NoError(emu.Tick())
	assert.Equal(1, emu.Unknown)
	assert.Contains(buf.String(), "200: unknown opcode 0x0123")

	assert.NoError(emu.Tick())
	assert.Equal(uint8(7), emu.Cpu.Register[1])
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	loadProgram(t, emu,
		"cls",
		"ret",
	)

	assert.NoError(emu.Tick())
	err := emu.Tick()
	assert.ErrorIs(err, cpu.ErrStackEmpty)

	var rt *ErrRuntime
	if assert.ErrorAs(err, &rt) {
		assert.Equal(uint16(0x202), rt.Address)
		assert.Equal(2, rt.LineNo)
		assert.Contains(rt.Error(), "line 2")
	}

	// The machine halts at the faulting instruction.
	assert.Equal(uint16(0x202), emu.Cpu.Pc)
	assert.ErrorIs(emu.Frame(), cpu.ErrStackEmpty)
}

func TestEmulatorFrame(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.CyclesPerFrame = 4

	var key int = -1
	emu.Input = inputFunc(func(keypad *cpu.Keypad) {
		keypad.Release()
		if key >= 0 {
			keypad[key] = true
		}
	})

	var lit []int
	emu.Presenter = presentFunc(func(display *cpu.Display) error {
		lit = append(lit, display.Lit())
		return nil
	})

	var sounds speakerLog
	emu.Speaker = &sounds

	loadProgram(t, emu,
		"ld V0, 2",
		"ld ST, V0",
		"ld V2, K",
		"ld F, V2",
		"drw V3, V3, FONT_GLYPH_SIZE",
		"end: jp end",
	)

	assert.NoError(emu.Frame())
	assert.Equal(uint16(0x204), emu.Cpu.Pc)
	assert.Equal(uint8(1), emu.Cpu.Sound)

	key = 7
	assert.NoError(emu.Frame())
	assert.Equal(uint8(7), emu.Cpu.Register[2])
	assert.Equal(uint16(0x20a), emu.Cpu.Pc)

	assert.Equal(2, emu.Frames)
	assert.Equal([]int{0, 8}, lit)
	assert.Equal(speakerLog{true, false}, sounds)
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.TimerHz = 1000
	loadProgram(t, emu, "end: jp end")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emu.Presenter = presentFunc(func(display *cpu.Display) error {
		if emu.Frames == 2 {
			cancel()
		}
		return nil
	})

	err := emu.Run(ctx)
	assert.NoError(err)
	assert.GreaterOrEqual(emu.Frames, 3)
	assert.Equal(uint16(0x200), emu.Cpu.Pc)
}

func TestEmulatorRunError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.TimerHz = 1000
	loadProgram(t, emu, "ret")

	err := emu.Run(context.Background())
	assert.ErrorIs(err, cpu.ErrStackEmpty)
	assert.Equal(0, emu.Frames)
}

func TestEmulatorRunFast(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.TimerHz = 2_000_000_000
	loadProgram(t, emu, "end: jp end")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emu.Presenter = presentFunc(func(display *cpu.Display) error {
		cancel()
		return nil
	})

	assert.NoError(emu.Run(ctx))
	assert.GreaterOrEqual(emu.Frames, 1)
}

func TestEmulatorRunTape(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.TimerHz = 1000
	emu.Input = &io.Tape{Input: strings.NewReader("w")}
	loadProgram(t, emu,
		"ld V1, K",
		"end: jp end",
	)

	assert.NoError(emu.Run(context.Background()))
	assert.Equal(2, emu.Frames)
	assert.Equal(uint8(0x5), emu.Cpu.Register[1])

	// Reset replays the tape.
	assert.NoError(emu.Reset())
	assert.NoError(emu.Frame())
	assert.True(emu.Cpu.Keypad[0x5])
}
