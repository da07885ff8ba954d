package io

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"

	"github.com/ezrec/chip8/cpu"
	"github.com/nsf/termbox-go"
)

// TermScreen presents the framebuffer in a terminal, two cells per pixel,
// and feeds terminal key presses into a KeyQueue.
type TermScreen struct {
	Keys   *KeyQueue
	KeyMap KeyMap // DefaultKeyMap() if nil.

	Dropped int // Key presses lost to a full queue.

	LogOutput io.Writer // Receives log output held while open; os.Stderr if nil.

	logged bytes.Buffer
}

var _ Presenter = (*TermScreen)(nil)

// Open takes over the terminal. The log is held until Close, so that
// it does not write over the screen.
func (ts *TermScreen) Open() (err error) {
	err = termbox.Init()
	if err != nil {
		return
	}

	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	ts.holdLog()

	return
}

// Close restores the terminal, then writes out the held log.
func (ts *TermScreen) Close() {
	termbox.Close()

	ts.releaseLog()
}

func (ts *TermScreen) holdLog() {
	ts.logged.Reset()
	log.SetOutput(&ts.logged)
}

func (ts *TermScreen) releaseLog() {
	out := ts.LogOutput
	if out == nil {
		out = os.Stderr
	}

	log.SetOutput(out)
	out.Write(ts.logged.Bytes())
	ts.logged.Reset()
}

// Present draws the framebuffer.
func (ts *TermScreen) Present(display *cpu.Display) (err error) {
	err = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	if err != nil {
		return
	}

	for y := range cpu.DISPLAY_HEIGHT {
		for x := range cpu.DISPLAY_WIDTH {
			if display.Pixel(x, y) == 0 {
				continue
			}
			termbox.SetCell(x*2, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
			termbox.SetCell(x*2+1, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
		}
	}

	err = termbox.Flush()
	return
}

// Handle applies one terminal event, returning quit on Esc or Ctrl-C.
func (ts *TermScreen) Handle(event termbox.Event) (quit bool, err error) {
	switch event.Type {
	case termbox.EventError:
		err = event.Err
	case termbox.EventInterrupt:
		quit = true
	case termbox.EventKey:
		switch event.Key {
		case termbox.KeyEsc, termbox.KeyCtrlC:
			quit = true
			return
		}
		key, ok := ts.KeyMap.Key(event.Ch)
		if !ok || ts.Keys == nil {
			return
		}
		if ts.Keys.Send(KeyEvent{Key: key, Pressed: true}) != nil {
			ts.Dropped++
		}
	}

	return
}

// Pump handles terminal events until quit, a terminal error, or ctx is done.
func (ts *TermScreen) Pump(ctx context.Context) (err error) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			termbox.Interrupt()
		case <-done:
		}
	}()

	for {
		var quit bool
		quit, err = ts.Handle(termbox.PollEvent())
		if quit || err != nil {
			return
		}
	}
}
