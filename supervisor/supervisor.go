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

// Package supervisor drives the emulated machine instruction by instruction.
// It owns the execution state machine (stopped, running, paused, error), the
// breakpoint set and the execution metrics. The CPU itself knows nothing
// about any of these concerns.
//
// Execution is cooperative and single-threaded. The only suspension points
// are instruction boundaries: the pause request and the breakpoint set are
// both checked before each fetch and an in-flight instruction always
// completes in full. Pause() may be called from another goroutine. Observer
// callbacks run synchronously on the emulation goroutine and must not
// re-enter Run() or Step().
package supervisor

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aios-project/aios6502/govern"
	"github.com/aios-project/aios6502/hardware"
	"github.com/aios-project/aios6502/hardware/cpu/instructions"
	"github.com/aios-project/aios6502/hardware/preferences"
	"github.com/aios-project/aios6502/logger"
	"github.com/aios-project/aios6502/notifications"
)

// sentinel errors returned by the Supervisor.
var (
	ErrIllegalTransition = errors.New("illegal state transition")
)

// DefaultBudget is the instruction budget used by Run() when the caller does
// not specify one.
const DefaultBudget = 1000000

// Supervisor is the finite-state controller for the emulated machine.
type Supervisor struct {
	mach  *hardware.Machine
	prefs *preferences.Preferences
	gov   *Governor
	obs   notifications.Observer

	breakpoints *Breakpoints
	metrics     Metrics

	// state and pauseRequest can be inspected/flipped from outside the
	// emulation goroutine
	state        atomic.Int32
	pauseRequest atomic.Bool

	// instruction budget left over when a run is paused, consumed by
	// Resume()
	remaining uint64
}

// NewSupervisor is the preferred method of initialisation for the Supervisor
// type. A nil observer is replaced with a NopObserver. Memory access events
// are forwarded to the observer.
func NewSupervisor(mach *hardware.Machine, prefs *preferences.Preferences, obs notifications.Observer) *Supervisor {
	if obs == nil {
		obs = notifications.NopObserver{}
	}

	sup := &Supervisor{
		mach:        mach,
		prefs:       prefs,
		gov:         NewGovernor(prefs),
		obs:         obs,
		breakpoints: newBreakpoints(),
	}
	sup.state.Store(int32(govern.Stopped))

	mach.Mem.SetAccessHook(func(ev notifications.MemoryEvent) {
		sup.obs.OnMemory(ev)
	})

	return sup
}

// Machine returns the machine under supervision.
func (sup *Supervisor) Machine() *hardware.Machine {
	return sup.mach
}

// State returns the current supervisor state.
func (sup *Supervisor) State() govern.State {
	return govern.State(sup.state.Load())
}

// Metrics returns a copy of the current execution metrics.
func (sup *Supervisor) Metrics() Metrics {
	return sup.metrics
}

// ResetMetrics zeroes all execution counters.
func (sup *Supervisor) ResetMetrics() {
	sup.metrics.Reset()
}

func (sup *Supervisor) setState(to govern.State) error {
	from := sup.State()
	if !govern.Permitted(from, to) {
		return fmt.Errorf("supervisor: %w (%s to %s)", ErrIllegalTransition, from, to)
	}
	sup.state.Store(int32(to))
	return nil
}

func (sup *Supervisor) registerState() notifications.RegisterState {
	mc := sup.mach.CPU
	return notifications.RegisterState{
		A:      mc.A.Value(),
		X:      mc.X.Value(),
		Y:      mc.Y.Value(),
		PC:     mc.PC.Address(),
		SP:     mc.SP.Value(),
		Status: mc.Status.Value(),
	}
}

// Load copies a program into memory at the specified origin. Bytes beyond
// the top of memory are silently truncated. Valid in any state. The program
// counter is not moved; that is done explicitly by Reset() or by the caller.
func (sup *Supervisor) Load(data []byte, origin uint16) int {
	return sup.mach.Mem.Load(origin, data)
}

// Run the machine from the current program counter until the instruction
// budget is exhausted, a fault halts execution, or a breakpoint is reached.
// A budget of zero means DefaultBudget.
//
// On a breakpoint the supervisor is left in the paused state with the
// program counter at the breakpoint address and that instruction not yet
// executed. Otherwise the run ends in the stopped state. Returns the number
// of instructions executed.
func (sup *Supervisor) Run(budget uint64) (uint64, error) {
	if budget == 0 {
		budget = DefaultBudget
	}

	err := sup.setState(govern.Running)
	if err != nil {
		return 0, err
	}

	sup.remaining = budget
	sup.obs.OnStart(notifications.StartEvent{Origin: sup.mach.CPU.PC.Address()})

	return sup.loop()
}

// Resume a paused run, continuing with the instruction budget left over from
// the interrupted Run().
func (sup *Supervisor) Resume() (uint64, error) {
	if sup.State() != govern.Paused {
		return 0, fmt.Errorf("supervisor: %w (resume from %s)", ErrIllegalTransition, sup.State())
	}
	if err := sup.setState(govern.Running); err != nil {
		return 0, err
	}
	return sup.loop()
}

// Pause requests that a running emulation pauses at the next instruction
// boundary. Safe to call from a goroutine other than the one driving Run().
func (sup *Supervisor) Pause() error {
	if sup.State() != govern.Running {
		return fmt.Errorf("supervisor: %w (pause from %s)", ErrIllegalTransition, sup.State())
	}
	sup.pauseRequest.Store(true)
	return nil
}

// the run loop shared by Run() and Resume(). an instruction is never
// partially applied: every check happens before the fetch.
func (sup *Supervisor) loop() (uint64, error) {
	mc := sup.mach.CPU

	var executed uint64

	start := time.Now()
	defer func() {
		sup.metrics.Elapsed += time.Since(start)
	}()

	for sup.remaining > 0 {
		if sup.pauseRequest.CompareAndSwap(true, false) {
			sup.state.Store(int32(govern.Paused))
			return executed, nil
		}

		pc := mc.PC.Address()
		if sup.breakpoints.Has(pc) {
			sup.state.Store(int32(govern.Paused))
			logger.Logf(logger.Allow, "supervisor", "breakpoint hit at $%04X", pc)
			sup.obs.OnBreakpoint(notifications.BreakpointEvent{
				Address:   pc,
				Registers: sup.registerState(),
			})
			return executed, nil
		}

		pre := sup.registerState()

		err := sup.mach.Step()
		if err != nil {
			sup.metrics.Errors++
			sup.state.Store(int32(govern.Stopped))
			logger.Logf(logger.Allow, "supervisor", "fault at $%04X: %v", pc, err)
			sup.obs.OnError(notifications.ErrorEvent{Address: pc, Err: err})
			return executed, fmt.Errorf("supervisor: %w", err)
		}

		res := mc.LastResult
		executed++
		sup.remaining--
		sup.metrics.Instructions++
		sup.metrics.Cycles += uint64(res.Cycles)

		sup.obs.OnInstruction(notifications.InstructionEvent{
			Address:   res.Address,
			OpCode:    res.Defn.OpCode,
			Mnemonic:  res.Defn.Operator.String(),
			Cycles:    res.Cycles,
			Registers: pre,
		})

		sup.gov.Throttle(res.Cycles)

		// a software interrupt ends the program. execution has already moved
		// through the interrupt vector so a subsequent Run() picks up from
		// there
		if res.Defn.Operator == instructions.Brk {
			break
		}
	}

	sup.state.Store(int32(govern.Stopped))
	sup.metrics.ProgramsRun++
	sup.obs.OnStop(notifications.StopEvent{
		Instructions: sup.metrics.Instructions,
		Cycles:       sup.metrics.Cycles,
		Elapsed:      sup.metrics.Elapsed + time.Since(start),
	})

	return executed, nil
}

// Step executes exactly one instruction and returns its cycle count. Valid
// in the stopped and paused states. A step while running is rejected; there
// is no concurrent run to race against in the cooperative model but the
// rejection preserves explicit caller intent.
func (sup *Supervisor) Step() (int, error) {
	if sup.State() == govern.Running {
		return 0, fmt.Errorf("supervisor: %w (cannot step while running)", ErrIllegalTransition)
	}

	mc := sup.mach.CPU
	pc := mc.PC.Address()
	pre := sup.registerState()

	start := time.Now()
	err := sup.mach.Step()
	sup.metrics.Elapsed += time.Since(start)

	if err != nil {
		sup.metrics.Errors++
		sup.state.Store(int32(govern.Stopped))
		sup.obs.OnError(notifications.ErrorEvent{Address: pc, Err: err})
		return 0, fmt.Errorf("supervisor: %w", err)
	}

	res := mc.LastResult
	sup.metrics.Instructions++
	sup.metrics.Cycles += uint64(res.Cycles)

	sup.obs.OnInstruction(notifications.InstructionEvent{
		Address:   res.Address,
		OpCode:    res.Defn.OpCode,
		Mnemonic:  res.Defn.Operator.String(),
		Cycles:    res.Cycles,
		Registers: pre,
	})

	return res.Cycles, nil
}

// Reset the machine and return to the stopped state. Valid in any state,
// including the error state. Registers are cleared, the program counter is
// loaded from the reset vector, and the instruction/cycle/elapsed counters
// are zeroed. Memory contents and breakpoints are preserved.
func (sup *Supervisor) Reset() {
	sup.pauseRequest.Store(false)
	sup.state.Store(int32(govern.Stopped))
	sup.remaining = 0

	sup.mach.Reset()

	sup.metrics.Instructions = 0
	sup.metrics.Cycles = 0
	sup.metrics.Elapsed = 0
}

// SetSpeed adjusts the clock preferences. Takes effect on the very next
// instruction, even mid-run.
func (sup *Supervisor) SetSpeed(clockHz int, multiplier float64, maxSpeed bool) error {
	err := sup.prefs.ClockHz.Set(clockHz)
	if err != nil {
		return err
	}
	err = sup.prefs.Multiplier.Set(multiplier)
	if err != nil {
		return err
	}
	return sup.prefs.MaxSpeed.Set(maxSpeed)
}

// SetBreakpoint adds a breakpoint at the specified address. Valid in any
// state.
func (sup *Supervisor) SetBreakpoint(address uint16) {
	sup.breakpoints.Set(address)
}

// RemoveBreakpoint removes the breakpoint at the specified address,
// returning false if no breakpoint was set there.
func (sup *Supervisor) RemoveBreakpoint(address uint16) bool {
	return sup.breakpoints.Remove(address)
}

// ListBreakpoints returns every breakpoint address in ascending order.
func (sup *Supervisor) ListBreakpoints() []uint16 {
	return sup.breakpoints.List()
}

// ClearBreakpoints removes all breakpoints.
func (sup *Supervisor) ClearBreakpoints() {
	sup.breakpoints.Clear()
}
