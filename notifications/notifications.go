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

// Package notifications defines the typed events emitted by the emulation as
// it runs. Packages that want to be told about emulation lifecycle events
// implement the Observer interface.
//
// The event structs carry plain values rather than live hardware types so
// that an Observer can be implemented anywhere without creating an import
// loop with the hardware packages.
package notifications

import "time"

// Direction describes a memory access from the point of view of the CPU.
type Direction int

// List of valid Direction values.
const (
	DirectionRead Direction = iota
	DirectionWrite
)

func (d Direction) String() string {
	switch d {
	case DirectionRead:
		return "read"
	case DirectionWrite:
		return "write"
	}
	return ""
}

// AccessSize describes the width of a memory access.
type AccessSize int

// List of valid AccessSize values.
const (
	AccessByte AccessSize = iota
	AccessWord
)

func (s AccessSize) String() string {
	switch s {
	case AccessByte:
		return "byte"
	case AccessWord:
		return "word"
	}
	return ""
}

// RegisterState is a plain-value snapshot of the CPU registers at the moment
// an event was emitted.
type RegisterState struct {
	A      uint8
	X      uint8
	Y      uint8
	PC     uint16
	SP     uint8
	Status uint8
}

// StartEvent is emitted when a program run begins.
type StartEvent struct {
	// the address execution starts from
	Origin uint16
}

// StopEvent is emitted when a program run concludes, whether normally or
// because of an error.
type StopEvent struct {
	Instructions uint64
	Cycles       uint64
	Elapsed      time.Duration
}

// ErrorEvent is emitted when execution fails. The run is over by the time the
// observer sees this event.
type ErrorEvent struct {
	// the address of the instruction that failed
	Address uint16
	Err     error
}

// BreakpointEvent is emitted when execution reaches a breakpoint address. The
// emulation is paused, not stopped, when the observer sees this event.
type BreakpointEvent struct {
	Address   uint16
	Registers RegisterState
}

// InstructionEvent is emitted for every instruction as it executes.
type InstructionEvent struct {
	// the address the instruction was fetched from
	Address uint16

	OpCode   uint8
	Mnemonic string

	// cycles consumed by this instruction, including any page-cross or
	// branch penalties
	Cycles int

	// register state immediately before the instruction executed. this is
	// the state the instruction operated on, not the state it produced
	Registers RegisterState
}

// MemoryEvent is emitted for every bus access when memory observation is
// enabled.
type MemoryEvent struct {
	Address   uint16
	Value     uint16
	Direction Direction
	Size      AccessSize
}

// Observer implementations receive emulation lifecycle events. All methods
// are called synchronously from the emulation goroutine so implementations
// should return promptly.
type Observer interface {
	OnStart(StartEvent)
	OnStop(StopEvent)
	OnError(ErrorEvent)
	OnBreakpoint(BreakpointEvent)
	OnInstruction(InstructionEvent)
	OnMemory(MemoryEvent)
}

// NopObserver is an Observer that does nothing. Useful for embedding when
// only some events are of interest.
type NopObserver struct{}

func (NopObserver) OnStart(_ StartEvent)             {}
func (NopObserver) OnStop(_ StopEvent)               {}
func (NopObserver) OnError(_ ErrorEvent)             {}
func (NopObserver) OnBreakpoint(_ BreakpointEvent)   {}
func (NopObserver) OnInstruction(_ InstructionEvent) {}
func (NopObserver) OnMemory(_ MemoryEvent)           {}
