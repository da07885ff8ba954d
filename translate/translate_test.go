package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocales(t *testing.T) {
	assert := assert.New(t)

	locales := Locales()
	assert.NotEmpty(locales)
}

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NotNil(Printer())
	assert.Same(Printer(), Printer())

	assert.Equal("stack full", From("stack full"))
	assert.Equal("line 7 'cls' bad", From("line %d '%v' %v", 7, "cls", "bad"))
	assert.Equal("address 0x20a", From("address 0x%03x", 0x20a))
}
