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

// Package execution records the result of a single executed instruction.
package execution

import (
	"fmt"
	"strings"

	"github.com/aios-project/aios6502/hardware/cpu/instructions"
)

// Result records the execution details of the most recently completed
// instruction.
type Result struct {
	// the address the instruction was fetched from
	Address uint16

	Defn *instructions.Definition

	// InstructionData is the instruction's operand. for a branch instruction
	// it is the offset value. it is a uint8 for 2 byte instructions and a
	// uint16 for 3 byte instructions. nil for implied and accumulator modes.
	InstructionData interface{}

	// the actual number of cycles taken by the instruction - usually the
	// same as Defn.Cycles but in the case of page faults and taken branches
	// this value will be higher
	Cycles int

	// whether an extra cycle was consumed because the effective address
	// crossed a page boundary
	PageFault bool

	// whether a branch instruction branched
	BranchTaken bool
}

// String returns a disassembly style representation of the result.
func (result Result) String() string {
	if result.Defn == nil {
		return fmt.Sprintf("%04x ???", result.Address)
	}

	var operand string
	switch data := result.InstructionData.(type) {
	case uint8:
		operand = fmt.Sprintf("$%02x", data)
	case uint16:
		operand = fmt.Sprintf("$%04x", data)
	}

	switch result.Defn.AddressingMode {
	case instructions.Immediate:
		operand = fmt.Sprintf("#%s", operand)
	case instructions.Indirect:
		operand = fmt.Sprintf("(%s)", operand)
	case instructions.IndexedIndirect:
		operand = fmt.Sprintf("(%s,X)", operand)
	case instructions.IndirectIndexed:
		operand = fmt.Sprintf("(%s),Y", operand)
	case instructions.AbsoluteIndexedX, instructions.ZeroPageIndexedX:
		operand = fmt.Sprintf("%s,X", operand)
	case instructions.AbsoluteIndexedY, instructions.ZeroPageIndexedY:
		operand = fmt.Sprintf("%s,Y", operand)
	}

	s := fmt.Sprintf("%04x %s %s [%d]", result.Address, result.Defn.Operator, operand, result.Cycles)
	return strings.Join(strings.Fields(s), " ")
}
