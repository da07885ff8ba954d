// Package cpu implements the CHIP-8 interpreter and assembler.
//
// The interpreter owns 4096 bytes of memory, sixteen 8-bit registers (V0-VF),
// a 16-bit index register (I), a program counter, a 16-entry call stack, the
// delay and sound timers, a 64x32 monochrome framebuffer and the state of the
// 16-key hex keypad. Each Tick() performs one fetch, decode and execute of a
// big-endian 2-byte instruction word. Timers are decremented separately by
// TimerTick(), at whatever rate the host loop chooses.
//
// The assembler accepts the conventional CHIP-8 mnemonics, with labels,
// equates, macros and compile-time expression evaluation, and produces a
// Program whose Binary() is a ROM image loadable at PROGRAM_START.
package cpu
