package io

import (
	"bytes"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/ezrec/chip8/cpu"
	"github.com/nsf/termbox-go"
	"github.com/stretchr/testify/assert"
)

func TestTermScreenHandle(t *testing.T) {
	assert := assert.New(t)

	keys := &KeyQueue{Capacity: 1}
	ts := &TermScreen{Keys: keys}

	quit, err := ts.Handle(termbox.Event{Type: termbox.EventKey, Ch: 'w'})
	assert.False(quit)
	assert.NoError(err)

	var keypad cpu.Keypad
	keys.Poll(&keypad)
	assert.True(keypad[0x5])

	quit, err = ts.Handle(termbox.Event{Type: termbox.EventKey, Ch: 'p'})
	assert.False(quit)
	assert.NoError(err)
	assert.Equal(0, keys.Len())

	ts.Handle(termbox.Event{Type: termbox.EventKey, Ch: '1'})
	ts.Handle(termbox.Event{Type: termbox.EventKey, Ch: '2'})
	assert.Equal(1, ts.Dropped)

	quit, _ = ts.Handle(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc})
	assert.True(quit)
	quit, _ = ts.Handle(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlC})
	assert.True(quit)
	quit, _ = ts.Handle(termbox.Event{Type: termbox.EventInterrupt})
	assert.True(quit)

	failure := errors.New("tty gone")
	_, err = ts.Handle(termbox.Event{Type: termbox.EventError, Err: failure})
	assert.ErrorIs(err, failure)
}

func TestTermScreenLog(t *testing.T) {
	assert := assert.New(t)

	var out bytes.Buffer
	ts := &TermScreen{LogOutput: &out}
	defer log.SetOutput(os.Stderr)

	ts.holdLog()
	log.Printf("200: unknown opcode 0x0123")
	assert.Equal(0, out.Len())

	ts.releaseLog()
	assert.Contains(out.String(), "200: unknown opcode 0x0123")

	log.Printf("after")
	assert.Contains(out.String(), "after")
}
