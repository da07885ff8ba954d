package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	f.Add(uint16(0x00ee), []byte{}, uint16(0))
	f.Add(uint16(0xd01f), []byte{63, 31}, uint16(0xffe))
	f.Add(uint16(0xf855), []byte{1, 2, 3}, uint16(0xffc))
	f.Add(uint16(0x8f14), []byte{0xff, 0xff}, uint16(0))

	f.Fuzz(func(t *testing.T, word uint16, registers []byte, index uint16) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.Seed(int64(word))
		copy(cpu.Register[:], registers)
		cpu.Index = index

		code := Code(word)
		err := cpu.Execute(code)

		if err != nil {
			assert.ErrorIs(err, ErrOpcode(code))
		}
		if code.Kind() == KIND_INVALID {
			assert.ErrorIs(err, ErrOpcodeUnknown)
			assert.Equal(uint16(PROGRAM_START+OPCODE_SIZE), cpu.Pc)
		} else if !errors.Is(err, ErrStackEmpty) {
			assert.NoError(err)
		}

		assert.LessOrEqual(cpu.Stack.Pointer(), STACK_LIMIT)
		for _, px := range cpu.Display {
			assert.LessOrEqual(px, byte(1))
		}
		if code.Kind() == KIND_DRW {
			assert.LessOrEqual(cpu.Register[REGISTER_FLAG], uint8(1))
		}
	})
}
