package cpu

import (
	"fmt"
)

// CodeClass is the top nibble of an instruction word.
type CodeClass uint8

// Kind is a fully decoded instruction type.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_INVALID  = Kind(0)  // invalid
	KIND_CLS      = Kind(1)  // cls
	KIND_RET      = Kind(2)  // ret
	KIND_JP       = Kind(3)  // jp
	KIND_CALL     = Kind(4)  // call
	KIND_SE_BYTE  = Kind(5)  // se
	KIND_SNE_BYTE = Kind(6)  // sne
	KIND_SE_REG   = Kind(7)  // se
	KIND_LD_BYTE  = Kind(8)  // ld
	KIND_ADD_BYTE = Kind(9)  // add
	KIND_LD_REG   = Kind(10) // ld
	KIND_OR       = Kind(11) // or
	KIND_AND      = Kind(12) // and
	KIND_XOR      = Kind(13) // xor
	KIND_ADD_REG  = Kind(14) // add
	KIND_SUB      = Kind(15) // sub
	KIND_SHR      = Kind(16) // shr
	KIND_SUBN     = Kind(17) // subn
	KIND_SHL      = Kind(18) // shl
	KIND_SNE_REG  = Kind(19) // sne
	KIND_LD_I     = Kind(20) // ld
	KIND_JP_V0    = Kind(21) // jp
	KIND_RND      = Kind(22) // rnd
	KIND_DRW      = Kind(23) // drw
	KIND_SKP      = Kind(24) // skp
	KIND_SKNP     = Kind(25) // sknp
	KIND_LD_VX_DT = Kind(26) // ld
	KIND_LD_VX_K  = Kind(27) // ld
	KIND_LD_DT_VX = Kind(28) // ld
	KIND_LD_ST_VX = Kind(29) // ld
	KIND_ADD_I_VX = Kind(30) // add
	KIND_LD_F_VX  = Kind(31) // ld
	KIND_LD_B_VX  = Kind(32) // ld
	KIND_LD_MEM   = Kind(33) // ld
	KIND_LD_REGS  = Kind(34) // ld
)

// IsSkip returns true for the conditional skip instructions.
func (kind Kind) IsSkip() bool {
	switch kind {
	case KIND_SE_BYTE, KIND_SNE_BYTE, KIND_SE_REG, KIND_SNE_REG, KIND_SKP, KIND_SKNP:
		return true
	}
	return false
}

// IsAddress returns true if the NNN field of the instruction is an address.
func (kind Kind) IsAddress() bool {
	switch kind {
	case KIND_JP, KIND_CALL, KIND_LD_I, KIND_JP_V0:
		return true
	}
	return false
}

// Code is a single 16-bit instruction word.
type Code uint16

// MakeCode assembles an instruction word from its nibble fields.
func MakeCode(class CodeClass, x, y, n uint8) Code {
	return Code(uint16(class&0xf)<<12 | uint16(x&0xf)<<8 | uint16(y&0xf)<<4 | uint16(n&0xf))
}

// MakeCodeNN assembles an instruction word with a byte immediate.
func MakeCodeNN(class CodeClass, x uint8, nn uint8) Code {
	return Code(uint16(class&0xf)<<12 | uint16(x&0xf)<<8 | uint16(nn))
}

// MakeCodeNNN assembles an instruction word with an address.
func MakeCodeNNN(class CodeClass, nnn uint16) Code {
	return Code(uint16(class&0xf)<<12 | (nnn & 0x0fff))
}

// Class returns the instruction class from the top nibble.
func (code Code) Class() CodeClass {
	return CodeClass((code >> 12) & 0xf)
}

// X returns the first register index.
func (code Code) X() uint8 {
	return uint8((code >> 8) & 0xf)
}

// Y returns the second register index.
func (code Code) Y() uint8 {
	return uint8((code >> 4) & 0xf)
}

// N returns the low nibble immediate.
func (code Code) N() uint8 {
	return uint8(code & 0xf)
}

// NN returns the low byte immediate.
func (code Code) NN() uint8 {
	return uint8(code & 0xff)
}

// NNN returns the 12-bit address.
func (code Code) NNN() uint16 {
	return uint16(code & 0x0fff)
}

// Kind decodes the instruction word.
func (code Code) Kind() Kind {
	switch code.Class() {
	case 0x0:
		switch code.NN() {
		case 0xE0:
			return KIND_CLS
		case 0xEE:
			return KIND_RET
		}
	case 0x1:
		return KIND_JP
	case 0x2:
		return KIND_CALL
	case 0x3:
		return KIND_SE_BYTE
	case 0x4:
		return KIND_SNE_BYTE
	case 0x5:
		return KIND_SE_REG
	case 0x6:
		return KIND_LD_BYTE
	case 0x7:
		return KIND_ADD_BYTE
	case 0x8:
		switch code.N() {
		case 0x0:
			return KIND_LD_REG
		case 0x1:
			return KIND_OR
		case 0x2:
			return KIND_AND
		case 0x3:
			return KIND_XOR
		case 0x4:
			return KIND_ADD_REG
		case 0x5:
			return KIND_SUB
		case 0x6:
			return KIND_SHR
		case 0x7:
			return KIND_SUBN
		case 0xE:
			return KIND_SHL
		}
	case 0x9:
		return KIND_SNE_REG
	case 0xA:
		return KIND_LD_I
	case 0xB:
		return KIND_JP_V0
	case 0xC:
		return KIND_RND
	case 0xD:
		return KIND_DRW
	case 0xE:
		switch code.NN() {
		case 0x9E:
			return KIND_SKP
		case 0xA1:
			return KIND_SKNP
		}
	case 0xF:
		switch code.NN() {
		case 0x07:
			return KIND_LD_VX_DT
		case 0x0A:
			return KIND_LD_VX_K
		case 0x15:
			return KIND_LD_DT_VX
		case 0x18:
			return KIND_LD_ST_VX
		case 0x1E:
			return KIND_ADD_I_VX
		case 0x29:
			return KIND_LD_F_VX
		case 0x33:
			return KIND_LD_B_VX
		case 0x55:
			return KIND_LD_MEM
		case 0x65:
			return KIND_LD_REGS
		}
	}

	return KIND_INVALID
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	kind := code.Kind()
	x := code.X()
	y := code.Y()

	var args string
	switch kind {
	case KIND_INVALID:
		return fmt.Sprintf(".word $%04X", uint16(code))
	case KIND_CLS, KIND_RET:
		return kind.String()
	case KIND_JP, KIND_CALL:
		args = fmt.Sprintf("$%03X", code.NNN())
	case KIND_JP_V0:
		args = fmt.Sprintf("V0, $%03X", code.NNN())
	case KIND_LD_I:
		args = fmt.Sprintf("I, $%03X", code.NNN())
	case KIND_SE_BYTE, KIND_SNE_BYTE, KIND_LD_BYTE, KIND_ADD_BYTE, KIND_RND:
		args = fmt.Sprintf("V%X, $%02X", x, code.NN())
	case KIND_SE_REG, KIND_SNE_REG, KIND_LD_REG,
		KIND_OR, KIND_AND, KIND_XOR, KIND_ADD_REG,
		KIND_SUB, KIND_SHR, KIND_SUBN, KIND_SHL:
		args = fmt.Sprintf("V%X, V%X", x, y)
	case KIND_DRW:
		args = fmt.Sprintf("V%X, V%X, $%X", x, y, code.N())
	case KIND_SKP, KIND_SKNP:
		args = fmt.Sprintf("V%X", x)
	case KIND_LD_VX_DT:
		args = fmt.Sprintf("V%X, DT", x)
	case KIND_LD_VX_K:
		args = fmt.Sprintf("V%X, K", x)
	case KIND_LD_DT_VX:
		args = fmt.Sprintf("DT, V%X", x)
	case KIND_LD_ST_VX:
		args = fmt.Sprintf("ST, V%X", x)
	case KIND_ADD_I_VX:
		args = fmt.Sprintf("I, V%X", x)
	case KIND_LD_F_VX:
		args = fmt.Sprintf("F, V%X", x)
	case KIND_LD_B_VX:
		args = fmt.Sprintf("B, V%X", x)
	case KIND_LD_MEM:
		args = fmt.Sprintf("[I], V%X", x)
	case KIND_LD_REGS:
		args = fmt.Sprintf("V%X, [I]", x)
	}

	return kind.String() + " " + args
}
