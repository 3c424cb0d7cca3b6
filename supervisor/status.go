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

package supervisor

import (
	"fmt"
	"strings"

	"github.com/aios-project/aios6502/govern"
)

// Flags decomposes the status register into a named boolean per flag.
type Flags struct {
	Carry            bool
	Zero             bool
	InterruptDisable bool
	Decimal          bool
	Break            bool
	Overflow         bool
	Negative         bool
}

// Status is a structured view of the CPU and the execution counters at a
// point in time.
type Status struct {
	A  uint8
	X  uint8
	Y  uint8
	PC uint16
	SP uint8

	// the raw status register byte and the same information decomposed into
	// named booleans
	P     uint8
	Flags Flags

	Cycles       uint64
	Instructions uint64
	Running      bool
}

func (st Status) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("PC: $%04X  A: $%02X  X: $%02X  Y: $%02X  SP: $%02X  P: $%02X\n",
		st.PC, st.A, st.X, st.Y, st.SP, st.P))
	s.WriteString(fmt.Sprintf("cycles: %d  instructions: %d  running: %v",
		st.Cycles, st.Instructions, st.Running))
	return s.String()
}

// Status returns a structured record of the current CPU and supervisor
// state.
func (sup *Supervisor) Status() Status {
	mc := sup.mach.CPU
	return Status{
		A:  mc.A.Value(),
		X:  mc.X.Value(),
		Y:  mc.Y.Value(),
		PC: mc.PC.Address(),
		SP: mc.SP.Value(),
		P:  mc.Status.Value(),
		Flags: Flags{
			Carry:            mc.Status.Carry,
			Zero:             mc.Status.Zero,
			InterruptDisable: mc.Status.InterruptDisable,
			Decimal:          mc.Status.DecimalMode,
			Break:            mc.Status.Break,
			Overflow:         mc.Status.Overflow,
			Negative:         mc.Status.Sign,
		},
		Cycles:       sup.metrics.Cycles,
		Instructions: sup.metrics.Instructions,
		Running:      sup.State() == govern.Running,
	}
}
