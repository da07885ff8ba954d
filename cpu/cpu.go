// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand"
	"strings"
	"time"
)

// Cpu is the CHIP-8 interpreter state.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   [MEMORY_SIZE]byte     // Font table, program and data.
	Register [REGISTER_COUNT]uint8 // V0 through VF.
	Index    uint16                // I, the memory pointer register.
	Pc       uint16                // Address of the next instruction.
	Stack    Stack                 // Subroutine return addresses.
	Delay    uint8                 // Delay timer.
	Sound    uint8                 // Sound timer.
	Display  Display               // Framebuffer.
	Keypad   Keypad                // Key state, written by the host.
	Rand     *rand.Rand            // Source for the rnd instruction.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a reset interpreter with a clock seeded random source.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Seed makes the rnd instruction deterministic.
func (cpu *Cpu) Seed(seed int64) {
	cpu.Rand = rand.New(rand.NewSource(seed))
}

// Reset the CPU state.
//   - Clears memory, then installs the font table at FONT_BASE.
//   - Clears the registers, stack, timers, framebuffer and keypad.
//   - Sets the program counter to PROGRAM_START.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	copy(cpu.Memory[FONT_BASE:], Font[:])
	clear(cpu.Register[:])
	cpu.Index = 0
	cpu.Pc = PROGRAM_START
	cpu.Stack.Reset()
	cpu.Delay = 0
	cpu.Sound = 0
	cpu.Display.Clear()
	cpu.Keypad.Release()
	cpu.Ticks = 0
}

// Load copies a program image into memory at PROGRAM_START.
// Memory is untouched if the image does not fit.
func (cpu *Cpu) Load(image []byte) (err error) {
	if len(image) > PROGRAM_SIZE {
		err = ErrProgramSize
		return
	}

	copy(cpu.Memory[PROGRAM_START:], image)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes at 0x%03x", len(image), PROGRAM_START)
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "   pc: %03X  %v\n", cpu.Pc, cpu.FetchCode())
	fmt.Fprintf(&sb, "    i: %03X\n", cpu.Index)
	for row := range 4 {
		for col := range 4 {
			reg := row*4 + col
			fmt.Fprintf(&sb, "   v%X: %02X", reg, cpu.Register[reg])
		}
		sb.WriteByte('\n')
	}
	ret, ok := cpu.Stack.Peek()
	if ok {
		fmt.Fprintf(&sb, "stack: %03X (%d)\n", ret, cpu.Stack.Pointer())
	} else {
		sb.WriteString("stack: --- (0)\n")
	}
	fmt.Fprintf(&sb, "   dt: %02X   st: %02X\n", cpu.Delay, cpu.Sound)

	text = sb.String()
	return
}

// read returns the byte at addr, wrapping at MEMORY_SIZE.
func (cpu *Cpu) read(addr uint16) byte {
	return cpu.Memory[addr&ADDRESS_MASK]
}

// write stores a byte at addr, wrapping at MEMORY_SIZE.
func (cpu *Cpu) write(addr uint16, value byte) {
	cpu.Memory[addr&ADDRESS_MASK] = value
}

// FetchCode returns the instruction word at the program counter.
func (cpu *Cpu) FetchCode() Code {
	return Code(uint16(cpu.read(cpu.Pc))<<8 | uint16(cpu.read(cpu.Pc+1)))
}

// Tick executes a single instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	return cpu.Execute(cpu.FetchCode())
}

// TimerTick decrements the delay and sound timers, stopping at zero.
func (cpu *Cpu) TimerTick() {
	if cpu.Delay > 0 {
		cpu.Delay--
	}
	if cpu.Sound > 0 {
		cpu.Sound--
	}
}

// Beeping returns true while the sound timer is running.
func (cpu *Cpu) Beeping() bool {
	return cpu.Sound > 0
}

// Execute executes a single instruction, as if fetched from the program counter.
//
// The program counter is advanced past the instruction before it executes.
// Unknown instructions leave all other state untouched. A call with a full
// stack, or a return with an empty one, restores the program counter to the
// faulting instruction so the machine halts there.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	ip := cpu.Pc
	if cpu.Verbose {
		log.Printf("%03x: %04x %v", ip, uint16(code), code)
	}

	cpu.Pc += OPCODE_SIZE

	x := code.X()
	y := code.Y()
	vx := cpu.Register[x]
	vy := cpu.Register[y]
	nn := code.NN()

	skip := func(cond bool) {
		if cond {
			cpu.Pc += OPCODE_SIZE
		}
	}

	// setFlag stores the result before the flag, so VF holds the flag when x is F.
	setFlag := func(result uint8, flag bool) {
		cpu.Register[x] = result
		if flag {
			cpu.Register[REGISTER_FLAG] = 1
		} else {
			cpu.Register[REGISTER_FLAG] = 0
		}
	}

	kind := code.Kind()
	switch kind {
	case KIND_CLS:
		cpu.Display.Clear()
	case KIND_RET:
		ret, ok := cpu.Stack.Pop()
		if !ok {
			cpu.Pc = ip
			err = ErrStackEmpty
			return
		}
		cpu.Pc = ret
	case KIND_JP:
		cpu.Pc = code.NNN()
	case KIND_CALL:
		if !cpu.Stack.Push(cpu.Pc) {
			cpu.Pc = ip
			err = ErrStackFull
			return
		}
		cpu.Pc = code.NNN()
	case KIND_SE_BYTE:
		skip(vx == nn)
	case KIND_SNE_BYTE:
		skip(vx != nn)
	case KIND_SE_REG:
		skip(vx == vy)
	case KIND_SNE_REG:
		skip(vx != vy)
	case KIND_LD_BYTE:
		cpu.Register[x] = nn
	case KIND_ADD_BYTE:
		cpu.Register[x] = vx + nn
	case KIND_LD_REG:
		cpu.Register[x] = vy
	case KIND_OR:
		cpu.Register[x] = vx | vy
	case KIND_AND:
		cpu.Register[x] = vx & vy
	case KIND_XOR:
		cpu.Register[x] = vx ^ vy
	case KIND_ADD_REG:
		sum := uint16(vx) + uint16(vy)
		setFlag(uint8(sum), sum > 0xff)
	case KIND_SUB:
		setFlag(vx-vy, vx >= vy)
	case KIND_SHR:
		setFlag(vx>>1, (vx&1) != 0)
	case KIND_SUBN:
		setFlag(vy-vx, vy >= vx)
	case KIND_SHL:
		setFlag(vx<<1, ((vx>>7)&1) != 0)
	case KIND_LD_I:
		cpu.Index = code.NNN()
	case KIND_JP_V0:
		cpu.Pc = code.NNN() + uint16(cpu.Register[0])
	case KIND_RND:
		cpu.Register[x] = uint8(cpu.Rand.Intn(0x100)) & nn
	case KIND_DRW:
		cpu.draw(int(vx), int(vy), int(code.N()))
	case KIND_SKP:
		skip(cpu.Keypad.Pressed(vx))
	case KIND_SKNP:
		skip(!cpu.Keypad.Pressed(vx))
	case KIND_LD_VX_DT:
		cpu.Register[x] = cpu.Delay
	case KIND_LD_VX_K:
		key, ok := cpu.Keypad.First()
		if !ok {
			// Poll again next cycle.
			cpu.Pc = ip
			break
		}
		cpu.Register[x] = key
	case KIND_LD_DT_VX:
		cpu.Delay = vx
	case KIND_LD_ST_VX:
		cpu.Sound = vx
	case KIND_ADD_I_VX:
		cpu.Index += uint16(vx)
	case KIND_LD_F_VX:
		cpu.Index = FONT_BASE + uint16(vx)*FONT_GLYPH_SIZE
	case KIND_LD_B_VX:
		cpu.write(cpu.Index, vx/100)
		cpu.write(cpu.Index+1, (vx/10)%10)
		cpu.write(cpu.Index+2, vx%10)
	case KIND_LD_MEM:
		for n := range uint16(x) + 1 {
			cpu.write(cpu.Index+n, cpu.Register[n])
		}
		cpu.Index += uint16(x) + 1
	case KIND_LD_REGS:
		for n := range uint16(x) + 1 {
			cpu.Register[n] = cpu.read(cpu.Index + n)
		}
		cpu.Index += uint16(x) + 1
	default:
		err = ErrOpcodeUnknown
		return
	}

	cpu.Ticks++

	return
}

// draw XORs an 8 pixel wide, rows high sprite from memory at the index
// register onto the framebuffer at (x, y), wrapping at the edges. VF is
// set if any lit pixel was turned off, and cleared otherwise.
func (cpu *Cpu) draw(x, y, rows int) {
	collided := false

	for row := range rows {
		sprite := cpu.read(cpu.Index + uint16(row))
		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			if cpu.Display.Flip(x+col, y+row) {
				collided = true
			}
		}
	}

	cpu.Register[REGISTER_FLAG] = 0
	if collided {
		cpu.Register[REGISTER_FLAG] = 1
	}
}
