package io

import (
	"errors"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Loader errors
	ErrRomEmpty = errors.New(f("rom empty"))
	ErrRomSize  = errors.New(f("rom exceeds %d bytes", cpu.PROGRAM_SIZE))

	// Input errors
	ErrQueueFull = errors.New(f("key queue full"))
)
