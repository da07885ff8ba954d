package cpu

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"strings"
)

// Opcode is one assembled source line.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      uint16   // Load address of the first byte.
	Words     []string // Source words, after expansion.
	Data      []byte   // Assembled bytes.
	LinkLabel string   // Label linked into the low 12 bits, if any.
	IsData    bool     // Set for .byte and .word directives.
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Offset int // Byte offset of the address within the opcode.
}

// Debug finds the opcode that assembled the byte at addr.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if addr >= op.Addr && int(addr) < int(op.Addr)+len(op.Data) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Offset: int(addr - op.Addr),
			}
			break
		}
	}

	return
}

// Binary returns the program image, to be loaded at PROGRAM_START.
func (prog *Program) Binary() (image []byte) {
	for _, op := range prog.Opcodes {
		start := int(op.Addr) - PROGRAM_START
		if start < 0 {
			continue
		}
		end := start + len(op.Data)
		if end > len(image) {
			image = append(image, make([]byte, end-len(image))...)
		}
		copy(image[start:end], op.Data)
	}

	return
}

// Codes iterates over the instructions, by address.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if op.IsData || len(op.Data) < OPCODE_SIZE {
				continue
			}
			code := Code(uint16(op.Data[0])<<8 | uint16(op.Data[1]))
			if !yield(op.Addr, code) {
				return
			}
		}
	}
}

// List writes an address, hex and source listing of the program.
//
// Linked addresses are shown by label, and the instruction a skip may
// pass over is indented.
func (prog *Program) List(w io.Writer) (err error) {
	codes := maps.Collect(prog.Codes())

	conditional := false
	for _, op := range prog.Opcodes {
		var hex strings.Builder
		for _, b := range op.Data {
			fmt.Fprintf(&hex, "%02X", b)
		}

		text := strings.Join(op.Words, " ")
		code, ok := codes[op.Addr]
		if ok && !op.IsData {
			text = code.String()
			kind := code.Kind()
			if kind.IsAddress() && len(op.LinkLabel) > 0 {
				text = strings.Replace(text, fmt.Sprintf("$%03X", code.NNN()), op.LinkLabel, 1)
			}
			if conditional {
				text = "  " + text
			}
			conditional = kind.IsSkip()
		} else {
			conditional = false
		}

		_, err = fmt.Fprintf(w, "%03X: %-8s %4d  %v\n", op.Addr, hex.String(), op.LineNo, text)
		if err != nil {
			return
		}
	}

	return
}
