package io

import (
	"fmt"
	"strings"

	"github.com/buger/goterm"
	"github.com/ezrec/chip8/cpu"
)

// Monitor presents the machine state above the framebuffer on each frame,
// redrawing the terminal from the top left.
type Monitor struct {
	Title string
	State fmt.Stringer // Usually the *cpu.Cpu.
}

var _ Presenter = (*Monitor)(nil)

// Render returns the monitor text for one frame.
func (mon *Monitor) Render(display *cpu.Display) string {
	var sb strings.Builder

	if len(mon.Title) > 0 {
		sb.WriteString(goterm.Bold(mon.Title))
		sb.WriteByte('\n')
	}
	if mon.State != nil {
		sb.WriteString(mon.State.String())
	}
	sb.WriteString(goterm.Color(display.String(), goterm.GREEN))

	return sb.String()
}

// Present redraws the terminal.
func (mon *Monitor) Present(display *cpu.Display) (err error) {
	goterm.Clear()
	goterm.MoveCursor(1, 1)
	_, err = goterm.Print(mon.Render(display))
	if err != nil {
		return
	}
	goterm.Flush()

	return
}
