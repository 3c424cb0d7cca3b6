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

package cpu

import (
	"errors"
	"fmt"

	"github.com/aios-project/aios6502/hardware/cpu/execution"
	"github.com/aios-project/aios6502/hardware/cpu/instructions"
	"github.com/aios-project/aios6502/hardware/cpu/registers"
	"github.com/aios-project/aios6502/hardware/memory/addresses"
	"github.com/aios-project/aios6502/hardware/memory/cpubus"
)

// sentinel errors returned by ExecuteInstruction.
var (
	// ErrUnknownOpCode is returned when the fetched opcode has no entry in
	// the instruction table. the CPU is left exactly as it was before the
	// fetch: the program counter has not advanced and no register or memory
	// has changed.
	ErrUnknownOpCode = errors.New("unknown opcode")
)

// CPU implements an instruction-level NMOS 6502. Register logic is
// implemented by the types in the registers sub-package.
type CPU struct {
	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.Register
	Status registers.StatusRegister

	// some operations only need an accumulator
	acc8 registers.Register

	mem   cpubus.Memory
	defns []*instructions.Definition

	// last result. reflects the most recently executed instruction
	LastResult execution.Result
}

// NewCPU is the preferred method of initialisation for the CPU structure.
func NewCPU(mem cpubus.Memory) *CPU {
	mc := &CPU{
		mem:    mem,
		PC:     registers.NewProgramCounter(0),
		A:      registers.NewRegister(0, "A"),
		X:      registers.NewRegister(0, "X"),
		Y:      registers.NewRegister(0, "Y"),
		SP:     registers.NewRegister(0xff, "SP"),
		Status: registers.NewStatusRegister(),
		acc8:   registers.NewRegister(0, "accumulator"),
		defns:  instructions.GetDefinitions(),
	}
	mc.Status.Zero = mc.A.IsZero()
	mc.Status.Sign = mc.A.IsNegative()
	return mc
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s %s %s %s %s=%s",
		mc.PC.Label(), mc.PC, mc.A, mc.X, mc.Y, mc.SP,
		mc.Status.Label(), mc.Status)
}

// Reset reinitialises all registers. Does not load the PC with the reset
// vector. Use LoadPCIndirect(addresses.Reset) when appropriate.
func (mc *CPU) Reset() {
	mc.LastResult = execution.Result{}
	mc.PC.Load(0)
	mc.A.Load(0)
	mc.X.Load(0)
	mc.Y.Load(0)
	mc.SP.Load(0xff)
	mc.Status.Reset()
}

// LoadPC loads the contents of directAddress into the PC.
func (mc *CPU) LoadPC(directAddress uint16) {
	mc.PC.Load(directAddress)
}

// LoadPCIndirect loads the address stored at indirectAddress into the PC.
func (mc *CPU) LoadPCIndirect(indirectAddress uint16) {
	mc.PC.Load(mc.mem.Read16(indirectAddress))
}

// read8BitPC reads the next instruction byte and advances the PC.
func (mc *CPU) read8BitPC(result *execution.Result) uint8 {
	v := mc.mem.Read8(mc.PC.Address())
	mc.PC.Add(1)
	result.InstructionData = v
	return v
}

// read16BitPC reads the next instruction word and advances the PC.
func (mc *CPU) read16BitPC(result *execution.Result) uint16 {
	v := mc.mem.Read16(mc.PC.Address())
	mc.PC.Add(2)
	result.InstructionData = v
	return v
}

// stack operations. the stack lives in its own page and the stack pointer
// wraps within that page.

func (mc *CPU) push(val uint8) {
	mc.mem.Write8(addresses.StackOrigin|mc.SP.Address(), val)
	mc.SP.Subtract(1, true)
}

func (mc *CPU) pull() uint8 {
	mc.SP.Add(1, false)
	return mc.mem.Read8(addresses.StackOrigin | mc.SP.Address())
}

// branch adjusts the PC by the 2s-complement offset. consumes one extra
// cycle, and another if the new PC is on a different page to the old one.
func (mc *CPU) branch(offset uint8, result *execution.Result) {
	// sign extend the offset before doing 16 bit arithmetic with it
	off := uint16(offset)
	if off&0x0080 == 0x0080 {
		off |= 0xff00
	}

	from := mc.PC.Address()
	mc.PC.Add(off)

	result.BranchTaken = true
	result.Cycles++
	if from&0xff00 != mc.PC.Address()&0xff00 {
		result.PageFault = true
		result.Cycles++
	}
}

// ExecuteInstruction decodes and executes a single instruction, including
// any page-cross or branch cycle penalties. The outcome is recorded in
// LastResult.
//
// In the event of an unknown opcode the CPU is left entirely untouched and
// ErrUnknownOpCode is returned (wrapped).
func (mc *CPU) ExecuteInstruction() error {
	opcodeAddr := mc.PC.Address()

	// fetch and check the opcode before advancing the PC. this ordering
	// means a decode failure has no side effects at all
	opcode := mc.mem.Read8(opcodeAddr)
	defn := mc.defns[opcode]
	if defn == nil {
		return fmt.Errorf("cpu: %w (%#02x) at address %#04x", ErrUnknownOpCode, opcode, opcodeAddr)
	}

	mc.PC.Add(1)

	result := execution.Result{
		Address: opcodeAddr,
		Defn:    defn,
		Cycles:  defn.Cycles,
	}

	// value is the operand value for Read effect instructions and the
	// value-to-be-written for Write and RMW effect instructions. address is
	// the effective address for instructions that touch memory
	var value uint8
	var address uint16

	switch defn.AddressingMode {
	case instructions.Implied:
		// the BRK instruction's padding byte. it is fetched and discarded,
		// leaving the pushed return address pointing past it
		if defn.Operator == instructions.Brk {
			mc.PC.Add(1)
		}

	case instructions.Accumulator:
		// operand is the accumulator itself. handled by the operator

	case instructions.Immediate:
		value = mc.read8BitPC(&result)

	case instructions.Relative:
		value = mc.read8BitPC(&result)

	case instructions.Absolute:
		address = mc.read16BitPC(&result)

	case instructions.ZeroPage:
		address = uint16(mc.read8BitPC(&result))

	case instructions.Indirect:
		ind := mc.read16BitPC(&result)
		if ind&0x00ff == 0x00ff {
			// NMOS quirk: the second byte of the pointer is read from the
			// start of the same page, not from the next page
			lo := mc.mem.Read8(ind)
			hi := mc.mem.Read8(ind & 0xff00)
			address = (uint16(hi) << 8) | uint16(lo)
		} else {
			address = mc.mem.Read16(ind)
		}

	case instructions.IndexedIndirect: // (ind,X)
		zp := mc.read8BitPC(&result)
		zp += mc.X.Value()
		lo := mc.mem.Read8(uint16(zp))
		hi := mc.mem.Read8(uint16(zp + 1))
		address = (uint16(hi) << 8) | uint16(lo)

	case instructions.IndirectIndexed: // (ind),Y
		zp := mc.read8BitPC(&result)
		lo := mc.mem.Read8(uint16(zp))
		hi := mc.mem.Read8(uint16(zp + 1))
		base := (uint16(hi) << 8) | uint16(lo)
		address = base + mc.Y.Address()
		if defn.PageSensitive && base&0xff00 != address&0xff00 {
			result.PageFault = true
			result.Cycles++
		}

	case instructions.AbsoluteIndexedX:
		base := mc.read16BitPC(&result)
		address = base + mc.X.Address()
		if defn.PageSensitive && base&0xff00 != address&0xff00 {
			result.PageFault = true
			result.Cycles++
		}

	case instructions.AbsoluteIndexedY:
		base := mc.read16BitPC(&result)
		address = base + mc.Y.Address()
		if defn.PageSensitive && base&0xff00 != address&0xff00 {
			result.PageFault = true
			result.Cycles++
		}

	case instructions.ZeroPageIndexedX:
		zp := mc.read8BitPC(&result)
		address = uint16(zp + mc.X.Value())

	case instructions.ZeroPageIndexedY:
		zp := mc.read8BitPC(&result)
		address = uint16(zp + mc.Y.Value())

	default:
		return fmt.Errorf("cpu: unknown addressing mode for %s", defn.Operator)
	}

	// read the operand value for instructions that read memory. immediate
	// and relative modes have already read their operand
	if defn.Effect == instructions.Read || defn.Effect == instructions.RMW {
		switch defn.AddressingMode {
		case instructions.Implied, instructions.Accumulator, instructions.Immediate:
		default:
			value = mc.mem.Read8(address)
		}
	}

	// actually perform instruction based on operator
	switch defn.Operator {
	case instructions.Nop:
		// does nothing

	case instructions.Lda:
		mc.A.Load(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Ldx:
		mc.X.Load(value)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Ldy:
		mc.Y.Load(value)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Sta:
		value = mc.A.Value()

	case instructions.Stx:
		value = mc.X.Value()

	case instructions.Sty:
		value = mc.Y.Value()

	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Txs:
		// does not affect status flags
		mc.SP.Load(mc.X.Value())

	case instructions.Eor:
		mc.A.EOR(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Ora:
		mc.A.ORA(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.And:
		mc.A.AND(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Inx:
		mc.X.Add(1, false)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Iny:
		mc.Y.Add(1, false)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Dex:
		mc.X.Subtract(1, true)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Dey:
		mc.Y.Subtract(1, true)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Inc:
		mc.acc8.Load(value)
		mc.acc8.Add(1, false)
		mc.Status.Zero = mc.acc8.IsZero()
		mc.Status.Sign = mc.acc8.IsNegative()
		value = mc.acc8.Value()

	case instructions.Dec:
		mc.acc8.Load(value)
		mc.acc8.Subtract(1, true)
		mc.Status.Zero = mc.acc8.IsZero()
		mc.Status.Sign = mc.acc8.IsNegative()
		value = mc.acc8.Value()

	case instructions.Asl:
		r := mc.rmwTarget(defn, value)
		mc.Status.Carry = r.ASL()
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Lsr:
		r := mc.rmwTarget(defn, value)
		mc.Status.Carry = r.LSR()
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Rol:
		r := mc.rmwTarget(defn, value)
		mc.Status.Carry = r.ROL(mc.Status.Carry)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Ror:
		r := mc.rmwTarget(defn, value)
		mc.Status.Carry = r.ROR(mc.Status.Carry)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Adc:
		if mc.Status.DecimalMode {
			mc.Status.Carry,
				mc.Status.Zero,
				mc.Status.Overflow,
				mc.Status.Sign = mc.A.AddDecimal(value, mc.Status.Carry)
		} else {
			mc.Status.Carry, mc.Status.Overflow = mc.A.Add(value, mc.Status.Carry)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		}

	case instructions.Sbc:
		if mc.Status.DecimalMode {
			mc.Status.Carry,
				mc.Status.Zero,
				mc.Status.Overflow,
				mc.Status.Sign = mc.A.SubtractDecimal(value, mc.Status.Carry)
		} else {
			mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(value, mc.Status.Carry)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		}

	case instructions.Cmp:
		// comparison is always binary, even when the decimal flag is set
		mc.acc8.Load(mc.A.Value())
		mc.Status.Carry, _ = mc.acc8.Subtract(value, true)
		mc.Status.Zero = mc.acc8.IsZero()
		mc.Status.Sign = mc.acc8.IsNegative()

	case instructions.Cpx:
		mc.acc8.Load(mc.X.Value())
		mc.Status.Carry, _ = mc.acc8.Subtract(value, true)
		mc.Status.Zero = mc.acc8.IsZero()
		mc.Status.Sign = mc.acc8.IsNegative()

	case instructions.Cpy:
		mc.acc8.Load(mc.Y.Value())
		mc.Status.Carry, _ = mc.acc8.Subtract(value, true)
		mc.Status.Zero = mc.acc8.IsZero()
		mc.Status.Sign = mc.acc8.IsNegative()

	case instructions.Bit:
		mc.acc8.Load(value)
		mc.Status.Sign = mc.acc8.IsNegative()
		mc.Status.Overflow = mc.acc8.IsBitV()
		mc.acc8.AND(mc.A.Value())
		mc.Status.Zero = mc.acc8.IsZero()

	case instructions.Clc:
		mc.Status.Carry = false

	case instructions.Sec:
		mc.Status.Carry = true

	case instructions.Cld:
		mc.Status.DecimalMode = false

	case instructions.Sed:
		mc.Status.DecimalMode = true

	case instructions.Cli:
		mc.Status.InterruptDisable = false

	case instructions.Sei:
		mc.Status.InterruptDisable = true

	case instructions.Clv:
		mc.Status.Overflow = false

	case instructions.Pha:
		mc.push(mc.A.Value())

	case instructions.Pla:
		mc.A.Load(mc.pull())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Php:
		// the pushed copy of the status register has the break flag set
		php := mc.Status
		php.Break = true
		mc.push(php.Value())

	case instructions.Plp:
		mc.Status.FromValue(mc.pull())

	case instructions.Jmp:
		mc.PC.Load(address)

	case instructions.Bcc:
		if !mc.Status.Carry {
			mc.branch(value, &result)
		}

	case instructions.Bcs:
		if mc.Status.Carry {
			mc.branch(value, &result)
		}

	case instructions.Beq:
		if mc.Status.Zero {
			mc.branch(value, &result)
		}

	case instructions.Bne:
		if !mc.Status.Zero {
			mc.branch(value, &result)
		}

	case instructions.Bmi:
		if mc.Status.Sign {
			mc.branch(value, &result)
		}

	case instructions.Bpl:
		if !mc.Status.Sign {
			mc.branch(value, &result)
		}

	case instructions.Bvs:
		if mc.Status.Overflow {
			mc.branch(value, &result)
		}

	case instructions.Bvc:
		if !mc.Status.Overflow {
			mc.branch(value, &result)
		}

	case instructions.Jsr:
		// the pushed return address is the address of the final byte of the
		// JSR instruction. RTS corrects for this when it adds one to the
		// pulled address
		ret := mc.PC.Address() - 1
		mc.push(uint8(ret >> 8))
		mc.push(uint8(ret & 0x00ff))
		mc.PC.Load(address)

	case instructions.Rts:
		lo := mc.pull()
		hi := mc.pull()
		mc.PC.Load(((uint16(hi) << 8) | uint16(lo)) + 1)

	case instructions.Brk:
		// the PC has already skipped the padding byte
		ret := mc.PC.Address()
		mc.push(uint8(ret >> 8))
		mc.push(uint8(ret & 0x00ff))

		brk := mc.Status
		brk.Break = true
		mc.push(brk.Value())

		mc.Status.InterruptDisable = true
		mc.LoadPCIndirect(addresses.IRQ)

	case instructions.Rti:
		mc.Status.FromValue(mc.pull())
		lo := mc.pull()
		hi := mc.pull()
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))

	default:
		return fmt.Errorf("cpu: unknown operator (%s)", defn.Operator)
	}

	// write back to memory for Write and RMW effect instructions.
	// accumulator mode instructions have already changed the A register
	switch defn.Effect {
	case instructions.Write:
		mc.mem.Write8(address, value)
	case instructions.RMW:
		if defn.AddressingMode != instructions.Accumulator {
			mc.mem.Write8(address, value)
		}
	}

	mc.LastResult = result

	return nil
}

// rmwTarget returns the register a shift/rotate instruction operates on:
// the accumulator itself for accumulator mode, otherwise the internal
// accumulator primed with the memory operand.
func (mc *CPU) rmwTarget(defn *instructions.Definition, value uint8) *registers.Register {
	if defn.AddressingMode == instructions.Accumulator {
		return &mc.A
	}
	mc.acc8.Load(value)
	return &mc.acc8
}
