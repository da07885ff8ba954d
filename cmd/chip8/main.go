// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/internal"
	"github.com/ezrec/chip8/io"
)

// KEY_HOLD_FRAMES is how long a terminal key press is held down.
const KEY_HOLD_FRAMES = 6

func main() {
	var compile string
	var romfile string
	var save bool
	var list bool
	var input string
	var output string
	var verbose bool
	var monitor bool
	var frames int
	var cycles int
	var hz int
	var seed int64
	var defines bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&romfile, "r", "", ".ch8 ROM image to run")
	flag.BoolVar(&save, "s", false, "Save ROM image to output, do not execute")
	flag.BoolVar(&list, "l", false, "Write assembler listing to output, do not execute")
	flag.StringVar(&input, "i", "", "Key tape input for headless and monitor runs ('-' for stdin)")
	flag.StringVar(&output, "o", "-", "Output for -s, -l and -t")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&monitor, "m", false, "Monitor mode: print machine state every frame")
	flag.IntVar(&frames, "t", 0, "Headless text run of N frames, then print the screen")
	flag.IntVar(&cycles, "cycles", emulator.CYCLES_PER_FRAME, "Instructions per frame")
	flag.IntVar(&hz, "hz", emulator.TIMER_HZ, "Frames per second")
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 for the clock)")
	flag.BoolVar(&defines, "defines", false, "Print the assembler predefines")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.CyclesPerFrame = cycles
	emu.TimerHz = hz
	if seed != 0 {
		emu.Cpu.Seed(seed)
	}

	if defines {
		for key, value := range internal.IterSeq2Sorted(emu.Defines()) {
			fmt.Printf(".equ %v %v\n", key, value)
		}
		return
	}

	title := romfile

	switch {
	case len(compile) != 0:
		// Assemble a new program.
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.Rom.Data = emu.Program.Binary()
		title = compile
	case len(romfile) != 0:
		inf, err := os.Open(romfile)
		if err != nil {
			log.Fatalf("%v: %v", romfile, err)
		}
		defer inf.Close()

		err = emu.Rom.Unmarshal(inf)
		if err != nil {
			log.Fatalf("%v: %v", romfile, err)
		}
	default:
		log.Fatalf("%v: One of -c or -r is required", os.Args[0])
	}

	out := os.Stdout
	if output != "-" {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		out = ouf
	}

	if save || list {
		var err error
		if list {
			err = emu.Program.List(out)
		}
		if save && err == nil {
			err = emu.Rom.Marshal(out)
		}
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	// A key tape ends a monitor run once it is used up.
	switch input {
	case "":
	case "-":
		// Pipes cannot rewind.
		emu.Input = &io.Tape{Input: bufio.NewReader(os.Stdin), Hold: KEY_HOLD_FRAMES}
	default:
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Input = &io.Tape{Input: inf, Hold: KEY_HOLD_FRAMES}
	}

	err := emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", title, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case frames > 0:
		emu.Presenter = &io.Text{Output: out, Every: frames}
		emu.Speaker = &io.Buzzer{}
		for range frames {
			err = emu.Frame()
			if err != nil {
				break
			}
		}
	case monitor:
		emu.Presenter = &io.Monitor{Title: filepath.Base(title), State: emu.Cpu}
		emu.Speaker = &io.Buzzer{Output: os.Stdout}
		err = emu.Run(ctx)
	default:
		err = runTerminal(ctx, emu)
	}

	if err != nil {
		log.Fatalf("%v: %v", title, err)
	}
}

// runTerminal runs the emulator in a termbox screen until Esc, an
// interrupt, or a runtime error.
func runTerminal(ctx context.Context, emu *emulator.Emulator) (err error) {
	keys := &io.KeyQueue{Hold: KEY_HOLD_FRAMES}
	screen := &io.TermScreen{Keys: keys}

	err = screen.Open()
	if err != nil {
		return
	}
	defer screen.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pumped := make(chan error, 1)
	go func() {
		pumped <- screen.Pump(ctx)
		cancel()
	}()

	emu.Input = keys
	emu.Presenter = screen
	emu.Speaker = &io.Buzzer{Output: os.Stdout}

	err = emu.Run(ctx)
	cancel()

	perr := <-pumped
	if err == nil {
		err = perr
	}

	return
}
