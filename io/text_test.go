package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ezrec/chip8/cpu"
	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	text := &Text{Output: &buf}

	var display cpu.Display
	display.Flip(0, 0)
	display.Flip(cpu.DISPLAY_WIDTH-1, cpu.DISPLAY_HEIGHT-1)

	assert.NoError(text.Present(&display))

	lines := strings.Split(buf.String(), "\n")
	assert.Len(lines, cpu.DISPLAY_HEIGHT+2)
	assert.Equal("#"+strings.Repeat(".", cpu.DISPLAY_WIDTH-1), lines[0])
	assert.Equal(strings.Repeat(".", cpu.DISPLAY_WIDTH-1)+"#", lines[cpu.DISPLAY_HEIGHT-1])
	assert.Equal("", lines[cpu.DISPLAY_HEIGHT])
}

func TestTextEvery(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	text := &Text{Output: &buf, Every: 3}

	var display cpu.Display
	for range 7 {
		assert.NoError(text.Present(&display))
	}

	assert.Equal(7, text.Frames)
	assert.Equal(2*(cpu.DISPLAY_WIDTH+1)*cpu.DISPLAY_HEIGHT+2, buf.Len())
}

func TestBuzzer(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	bz := &Buzzer{Output: &buf}

	for _, on := range []bool{false, true, true, false, true, false, false} {
		assert.NoError(bz.Sound(on))
	}

	assert.Equal(2, bz.Beeps)
	assert.Equal(BELL+BELL, buf.String())

	quiet := &Buzzer{}
	assert.NoError(quiet.Sound(true))
	assert.Equal(1, quiet.Beeps)
}
