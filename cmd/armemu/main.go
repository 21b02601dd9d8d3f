// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"

	"github.com/armbox/armbox/arm"
	"github.com/armbox/armbox/armconfig"
	"github.com/armbox/armbox/armlog"
	"github.com/armbox/armbox/display"
	"github.com/armbox/armbox/loader"
	"github.com/armbox/armbox/modalflag"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()

	ramSize := md.AddUint64("ram", armconfig.DefaultRAMSize, "total RAM size in bytes, including the register block")
	screenWidth := md.AddUint64("screenwidth", 0, "screen width in pixels (0 disables the framebuffer)")
	screenHeight := md.AddUint64("screenheight", 0, "screen height in pixels")
	screenBPP := md.AddUint64("screenbpp", 0, "screen bits per pixel")
	cycleCeiling := md.AddUint64("ceiling", 0, "stop after this many ticks (0 is unbounded)")
	trace := md.AddBool("trace", false, "print every instruction as it dispatches")
	log := md.AddBool("log", false, "echo the diagnostic log to stderr")
	showDisplay := md.AddBool("display", false, "open an SDL window mirroring the guest framebuffer")
	scale := md.AddInt("scale", 4, "window scaling factor (only valid with -display)")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return
	case modalflag.ParseError:
		fmt.Fprintf(os.Stderr, "* error: %v\n", err)
		os.Exit(10)
	}

	if *log {
		armlog.SetEcho(os.Stderr)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		fmt.Fprintln(os.Stderr, "* error: an ELF32 object file is required")
		os.Exit(10)
	case 1:
		opts := runOptions{
			ramSize:      *ramSize,
			screenWidth:  *screenWidth,
			screenHeight: *screenHeight,
			screenBPP:    *screenBPP,
			cycleCeiling: *cycleCeiling,
			trace:        *trace,
			display:      *showDisplay,
			scale:        *scale,
		}
		if err := run(md.GetArg(0), opts); err != nil {
			fmt.Fprintf(os.Stderr, "* error: %v\n", err)
			os.Exit(20)
		}
	default:
		fmt.Fprintln(os.Stderr, "* error: only one object file can be run at a time")
		os.Exit(10)
	}
}

// runOptions bundles a single invocation's flags, rather than passing
// eight positional arguments through run.
type runOptions struct {
	ramSize                              uint64
	screenWidth, screenHeight, screenBPP uint64
	cycleCeiling                         uint64
	trace, display                       bool
	scale                                int
}

func run(path string, opts runOptions) error {
	image, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cfg := armconfig.Default()
	cfg.RAMSize = uint32(opts.ramSize)
	cfg.FramebufferAddr = cfg.RAMSize - 2*1024*1024
	cfg.ScreenWidth = uint16(opts.screenWidth)
	cfg.ScreenHeight = uint16(opts.screenHeight)
	cfg.ScreenBPP = uint8(opts.screenBPP)
	cfg.CycleCeiling = opts.cycleCeiling

	cpu, err := loader.Load(image, cfg)
	if err != nil {
		return err
	}

	var win *display.Window
	if opts.display {
		win, err = display.New(path, cfg, opts.scale)
		if err != nil {
			return err
		}
		defer win.Destroy()
	}

	var tracer arm.TraceFunc
	if opts.trace {
		tracer = func(c *arm.CPU, pc uint32, ins arm.Instruction) {
			fmt.Printf("pc=%#08x ins=%#08x\n", pc, uint32(ins))
		}
	}

	for cpu.OperationsRemaining() {
		if cfg.CycleCeiling != 0 && cpu.Ticks() >= cfg.CycleCeiling {
			break
		}
		cpu.NextOperation(tracer)
		if win != nil {
			if err := win.Update(cpu.Memory(), cfg); err != nil {
				return err
			}
			if display.PollQuit() {
				break
			}
		}
	}

	if cpu.Halted() {
		d := cpu.Diagnostic()
		fmt.Printf("halted: %s at pc=%#x after %d ticks\n", d.Kind, d.PC, cpu.Ticks())
	} else if cpu.OperationsRemaining() {
		fmt.Printf("stopped before the program returned, after %d ticks\n", cpu.Ticks())
	} else {
		fmt.Printf("terminated cleanly after %d ticks\n", cpu.Ticks())
	}

	for i := uint32(0); i < 16; i++ {
		fmt.Printf("r%-2d = %#08x\n", i, cpu.Register(i))
	}

	return nil
}
