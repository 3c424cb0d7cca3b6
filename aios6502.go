// This file is part of AIOS6502.
//
// AIOS6502 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// AIOS6502 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with AIOS6502.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/aios-project/aios6502/govern"
	"github.com/aios-project/aios6502/hardware"
	"github.com/aios-project/aios6502/hardware/memory/addresses"
	"github.com/aios-project/aios6502/hardware/preferences"
	"github.com/aios-project/aios6502/keyterm"
	"github.com/aios-project/aios6502/loader"
	"github.com/aios-project/aios6502/logger"
	"github.com/aios-project/aios6502/modalflag"
	"github.com/aios-project/aios6502/notifications"
	"github.com/aios-project/aios6502/performance"
	"github.com/aios-project/aios6502/statsview"
	"github.com/aios-project/aios6502/supervisor"
	"github.com/aios-project/aios6502/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(20)
	}
}

// traceObserver echoes emulation events to the terminal. breakpoint and
// fault events are always shown; per-instruction events only when trace is
// enabled.
type traceObserver struct {
	notifications.NopObserver
	trace bool
}

func (o *traceObserver) OnInstruction(ev notifications.InstructionEvent) {
	if o.trace {
		fmt.Printf("$%04X %s (%d cycles)\n", ev.Address, ev.Mnemonic, ev.Cycles)
	}
}

func (o *traceObserver) OnBreakpoint(ev notifications.BreakpointEvent) {
	fmt.Printf("breakpoint at $%04X\n", ev.Address)
}

func (o *traceObserver) OnError(ev notifications.ErrorEvent) {
	fmt.Printf("fault at $%04X: %v\n", ev.Address, ev.Err)
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	rom := md.AddBool("rom", false, "attach the file as a ROM image rather than a program")
	origin := md.AddUint64("origin", uint64(addresses.ProgramOrigin), "load address for program files")
	clock := md.AddInt("clock", preferences.DefaultClockHz, "clock speed in Hz")
	multiplier := md.AddFloat64("multiplier", preferences.DefaultMultiplier, "speed multiplier")
	maxSpeed := md.AddBool("maxspeed", preferences.DefaultMaxSpeed, "ignore clock speed and run as fast as possible")
	budget := md.AddUint64("budget", supervisor.DefaultBudget, "instruction budget for the run")
	breaks := md.AddString("break", "", "comma separated list of breakpoint addresses")
	restore := md.AddString("restore", "", "import a state snapshot before the run")
	save := md.AddString("save", "", "export a state snapshot after the run")
	dump := md.AddInt("dump", 0, "dump the specified number of bytes of memory after the run")
	trace := md.AddBool("trace", false, "echo every instruction executed")
	log := md.AddBool("log", false, "echo the log to stderr")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stderr, true)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("program file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	mach := hardware.NewMachine()

	prf, err := preferences.NewPreferences()
	if err != nil {
		return err
	}

	sup := supervisor.NewSupervisor(mach, prf, &traceObserver{trace: *trace})

	err = sup.SetSpeed(*clock, *multiplier, *maxSpeed)
	if err != nil {
		return err
	}

	ld := loader.NewLoader(md.GetArg(0))
	if *rom {
		err = loader.AttachROM(mach, &ld)
	} else {
		if *origin > 0xffff {
			return fmt.Errorf("origin address is too large ($%X)", *origin)
		}
		err = loader.AttachProgram(mach, &ld, uint16(*origin))
		if err == nil {
			mach.Mem.Write16(addresses.Reset, uint16(*origin))
		}
	}
	if err != nil {
		return err
	}

	sup.Reset()

	for _, address := range strings.Split(*breaks, ",") {
		address = strings.TrimSpace(address)
		if address == "" {
			continue
		}
		if strings.HasPrefix(address, "$") {
			address = "0x" + address[1:]
		}
		v, err := strconv.ParseUint(address, 0, 16)
		if err != nil {
			return fmt.Errorf("cannot parse breakpoint address (%s)", address)
		}
		sup.SetBreakpoint(uint16(v))
	}

	if *restore != "" {
		data, err := os.ReadFile(*restore)
		if err != nil {
			return err
		}
		err = sup.ImportState(data)
		if err != nil {
			return err
		}
	}

	err = interact(sup, *budget)
	if err != nil {
		return err
	}

	fmt.Println(sup.Status())
	fmt.Println(sup.Metrics())

	if *dump > 0 {
		fmt.Println(sup.DumpMemory(0x0000, *dump))
	}

	if *save != "" {
		data, err := sup.ExportState()
		if err != nil {
			return err
		}
		err = os.WriteFile(*save, data, 0644)
		if err != nil {
			return err
		}
		fmt.Printf("state saved to %s\n", *save)
	}

	return nil
}

// interact drives the supervisor until the program concludes or the user
// quits. when stdin is a terminal, single keypresses pause, resume and step
// the emulation; otherwise the program simply runs to its conclusion.
func interact(sup *supervisor.Supervisor, budget uint64) error {
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	keys := make(chan keyterm.Key)

	kt, err := keyterm.New(os.Stdin)
	if err == nil {
		err = kt.CBreakMode()
		if err != nil {
			return err
		}
		defer kt.CanonicalMode()
		go kt.Loop(keys)
	}

	// keypresses arrive on a different goroutine to the one driving the
	// emulation. while the emulation is running the only useful actions are
	// pausing it and quitting; both start with a pause request so that the
	// run loop returns control. everything else is forwarded to the paused
	// select below
	actions := make(chan keyterm.Key)
	go func() {
		for {
			var k keyterm.Key

			select {
			case <-intChan:
				k = keyterm.KeyQuit
			case k = <-keys:
			}

			if sup.State() == govern.Running {
				// Pause() fails harmlessly if the run concluded between the
				// state check and here
				_ = sup.Pause()
				if k == keyterm.KeyToggle {
					continue
				}
			}

			actions <- k
			if k == keyterm.KeyQuit {
				return
			}
		}
	}()

	_, err = sup.Run(budget)

	for err == nil && sup.State() == govern.Paused {
		fmt.Println(sup.Status())

		switch <-actions {
		case keyterm.KeyToggle:
			_, err = sup.Resume()

		case keyterm.KeyStep:
			_, err = sup.Step()

		case keyterm.KeyQuit:
			return nil
		}
	}

	return err
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddBool("profile", false, "produce cpu and memory profiling reports")
	log := md.AddBool("log", false, "echo the log to stderr")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stderr, true)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("program file required for %s mode", md)
	case 1:
		ld := loader.NewLoader(md.GetArg(0))
		return performance.Check(md.Output, *profile, *profile, &ld, *duration)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Println(ver)
	if *revision {
		fmt.Println(rev)
	}

	return nil
}
