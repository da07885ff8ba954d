package io

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ezrec/chip8/cpu"
	"github.com/stretchr/testify/assert"
)

type failReader struct{}

var errRead = errors.New("read failed")

func (failReader) Read([]byte) (int, error) {
	return 0, errRead
}

func TestRomUnmarshal(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	err := rom.Unmarshal(bytes.NewReader([]byte{0x00, 0xe0, 0x12, 0x00}))
	assert.NoError(err)
	assert.Equal([]byte{0x00, 0xe0, 0x12, 0x00}, rom.Data)

	err = rom.Unmarshal(strings.NewReader(""))
	assert.ErrorIs(err, ErrRomEmpty)

	err = rom.Unmarshal(bytes.NewReader(make([]byte, cpu.PROGRAM_SIZE+1)))
	assert.ErrorIs(err, ErrRomSize)

	err = rom.Unmarshal(bytes.NewReader(make([]byte, cpu.PROGRAM_SIZE)))
	assert.NoError(err)
	assert.Len(rom.Data, cpu.PROGRAM_SIZE)

	err = rom.Unmarshal(failReader{})
	assert.ErrorIs(err, errRead)
}

func TestRomMarshalLoad(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{0x60, 0x05}}

	var buf bytes.Buffer
	err := rom.Marshal(&buf)
	assert.NoError(err)
	assert.Equal([]byte{0x60, 0x05}, buf.Bytes())

	machine := cpu.NewCpu()
	err = rom.Load(machine)
	assert.NoError(err)
	assert.Equal(cpu.Code(0x6005), machine.FetchCode())
}
