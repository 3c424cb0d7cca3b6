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

// Package hardware is the container for the emulated components of the
// machine. The Machine type ties the CPU to its address space and provides
// the reset sequencing shared by every execution mode.
package hardware

import (
	"github.com/aios-project/aios6502/hardware/cpu"
	"github.com/aios-project/aios6502/hardware/memory"
	"github.com/aios-project/aios6502/hardware/memory/addresses"
)

// Machine is the main container for the emulated components.
type Machine struct {
	CPU *cpu.CPU
	Mem *memory.Memory
}

// NewMachine creates the CPU and a fully populated 64k address space.
func NewMachine() *Machine {
	mach := &Machine{}
	mach.Mem = memory.NewMemory()
	mach.CPU = cpu.NewCPU(mach.Mem)
	return mach
}

// Reset the machine. Registers are cleared and the program counter is
// loaded from the reset vector. Memory contents are untouched.
func (mach *Machine) Reset() {
	mach.CPU.Reset()
	mach.CPU.LoadPCIndirect(addresses.Reset)
}

// Step the machine one CPU instruction.
func (mach *Machine) Step() error {
	return mach.CPU.ExecuteInstruction()
}
