package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	assert := assert.New(t)

	var d Display
	assert.False(d.Flip(0, 0))
	assert.Equal(byte(1), d.Pixel(0, 0))
	assert.True(d.Flip(DISPLAY_WIDTH, DISPLAY_HEIGHT))
	assert.Equal(byte(0), d.Pixel(0, 0))

	d.Flip(-1, -1)
	assert.Equal(byte(1), d.Pixel(DISPLAY_WIDTH-1, DISPLAY_HEIGHT-1))
	assert.Equal(1, d.Lit())

	lines := strings.Split(strings.TrimSuffix(d.String(), "\n"), "\n")
	assert.Len(lines, DISPLAY_HEIGHT)
	assert.Equal(strings.Repeat(".", DISPLAY_WIDTH-1)+"#", lines[DISPLAY_HEIGHT-1])
	assert.Equal(strings.Repeat(".", DISPLAY_WIDTH), lines[0])

	d.Clear()
	assert.Equal(0, d.Lit())
}

func TestKeypad(t *testing.T) {
	assert := assert.New(t)

	var kp Keypad
	_, ok := kp.First()
	assert.False(ok)

	kp[0xc] = true
	kp[0x3] = true
	assert.True(kp.Pressed(0x3))
	assert.True(kp.Pressed(0x13))
	assert.False(kp.Pressed(0x4))

	key, ok := kp.First()
	assert.True(ok)
	assert.Equal(byte(0x3), key)

	kp.Release()
	assert.Equal(Keypad{}, kp)
}
