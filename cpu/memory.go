package cpu

import (
	"fmt"
)

const (
	MEMORY_SIZE     = 0x1000                      // Addressable memory, in bytes.
	ADDRESS_MASK    = MEMORY_SIZE - 1             // All addresses wrap modulo MEMORY_SIZE.
	PROGRAM_START   = 0x200                       // First byte of the program region.
	PROGRAM_SIZE    = MEMORY_SIZE - PROGRAM_START // Largest loadable program image.
	FONT_BASE       = 0x000                       // Address of the hex digit sprites.
	FONT_GLYPH_SIZE = 5                           // Bytes per hex digit sprite.
	OPCODE_SIZE     = 2                           // Bytes per instruction word.
	REGISTER_COUNT  = 16                          // V0 through VF.
	REGISTER_FLAG   = 0xf                         // VF, the carry/borrow/collision flag.
)

// Font holds the sprites for the hex digits 0-F, in digit order.
var Font = [16 * FONT_GLYPH_SIZE]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":     fmt.Sprintf("%#x", MEMORY_SIZE),
	"PROGRAM_START":   fmt.Sprintf("%#x", PROGRAM_START),
	"PROGRAM_SIZE":    fmt.Sprintf("%#x", PROGRAM_SIZE),
	"FONT_BASE":       fmt.Sprintf("%#x", FONT_BASE),
	"FONT_GLYPH_SIZE": fmt.Sprintf("%v", FONT_GLYPH_SIZE),
	"DISPLAY_WIDTH":   fmt.Sprintf("%v", DISPLAY_WIDTH),
	"DISPLAY_HEIGHT":  fmt.Sprintf("%v", DISPLAY_HEIGHT),
	"STACK_LIMIT":     fmt.Sprintf("%v", STACK_LIMIT),
	"KEY_COUNT":       fmt.Sprintf("%v", KEY_COUNT),
}
