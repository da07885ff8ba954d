package io

import (
	"strings"
	"testing"

	"github.com/buger/goterm"
	"github.com/ezrec/chip8/cpu"
	"github.com/stretchr/testify/assert"
)

func TestMonitorRender(t *testing.T) {
	assert := assert.New(t)

	machine := cpu.NewCpu()
	machine.Register[0x3] = 0x42
	machine.Display.Flip(2, 0)

	mon := &Monitor{Title: "pong.ch8", State: machine}
	text := mon.Render(&machine.Display)

	assert.True(strings.HasPrefix(text, goterm.Bold("pong.ch8")+"\n"))
	assert.Contains(text, "v3: 42")
	assert.Contains(text, "..#"+strings.Repeat(".", cpu.DISPLAY_WIDTH-3))
	assert.Contains(text, goterm.Color(machine.Display.String(), goterm.GREEN))

	bare := &Monitor{}
	assert.Equal(goterm.Color(machine.Display.String(), goterm.GREEN), bare.Render(&machine.Display))
}
