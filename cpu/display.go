package cpu

import (
	"strings"
)

const (
	DISPLAY_WIDTH  = 64 // Framebuffer columns.
	DISPLAY_HEIGHT = 32 // Framebuffer rows.
)

// Display is the monochrome framebuffer, one byte (0 or 1) per pixel,
// row-major and addressed as y*DISPLAY_WIDTH + x.
type Display [DISPLAY_WIDTH * DISPLAY_HEIGHT]byte

// Clear turns every pixel off.
func (d *Display) Clear() {
	clear(d[:])
}

// Pixel returns the pixel at (x, y). Coordinates wrap.
func (d *Display) Pixel(x, y int) byte {
	return d[d.offset(x, y)]
}

// Flip toggles the pixel at (x, y), returning true if it was turned off.
func (d *Display) Flip(x, y int) (collided bool) {
	n := d.offset(x, y)
	collided = d[n] == 1
	d[n] ^= 1
	return
}

// Lit returns the number of pixels that are on.
func (d *Display) Lit() (count int) {
	for _, px := range d {
		count += int(px)
	}
	return
}

// String renders the framebuffer as DISPLAY_HEIGHT lines of '#' and '.'.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow((DISPLAY_WIDTH + 1) * DISPLAY_HEIGHT)
	for y := range DISPLAY_HEIGHT {
		for x := range DISPLAY_WIDTH {
			if d.Pixel(x, y) != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (d *Display) offset(x, y int) int {
	x %= DISPLAY_WIDTH
	if x < 0 {
		x += DISPLAY_WIDTH
	}
	y %= DISPLAY_HEIGHT
	if y < 0 {
		y += DISPLAY_HEIGHT
	}
	return y*DISPLAY_WIDTH + x
}
