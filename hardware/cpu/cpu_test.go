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

package cpu_test

import (
	"errors"
	"testing"

	"github.com/aios-project/aios6502/hardware/cpu"
	"github.com/aios-project/aios6502/test"
)

func TestStatusInstructions(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	// SEC; CLC; CLI; SEI; SED; CLD; CLV
	origin := mem.putInstructions(0x0000, 0x38, 0x18, 0x58, 0x78, 0xf8, 0xd8, 0xb8)
	step(t, mc) // SEC
	assertStatus(t, mc, "nv-bdizC")
	step(t, mc) // CLC
	assertStatus(t, mc, "nv-bdizc")
	step(t, mc) // CLI
	assertStatus(t, mc, "nv-bdizc")
	step(t, mc) // SEI
	assertStatus(t, mc, "nv-bdIzc")
	step(t, mc) // SED
	assertStatus(t, mc, "nv-bDIzc")
	step(t, mc) // CLD
	assertStatus(t, mc, "nv-bdIzc")
	step(t, mc) // CLV
	assertStatus(t, mc, "nv-bdIzc")

	// PHP; PLP
	mem.putInstructions(origin, 0x08, 0x28)
	step(t, mc) // PHP
	assertStatus(t, mc, "nv-bdIzc")
	test.Equate(t, mc.SP.Value(), 0xfe)

	// mangle status register
	mc.Status.Sign = true
	mc.Status.Overflow = true

	// restore status register. the pushed copy had the break flag set
	step(t, mc) // PLP
	test.Equate(t, mc.SP.Value(), 0xff)
	assertStatus(t, mc, "nv-BdIzc")
}

func TestRegisterArithmetic(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	// LDA immediate; ADC immediate
	origin := mem.putInstructions(0x0000, 0xa9, 1, 0x69, 10)
	step(t, mc) // LDA #1
	step(t, mc) // ADC #10
	test.Equate(t, mc.A.Value(), 11)

	// SEC; SBC immediate
	mem.putInstructions(origin, 0x38, 0xe9, 8)
	step(t, mc) // SEC
	step(t, mc) // SBC #8
	test.Equate(t, mc.A.Value(), 3)
}

func TestRegisterBitwiseInstructions(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	// ORA immediate; EOR immediate; AND immediate
	origin := mem.putInstructions(0x0000, 0x09, 0xff, 0x49, 0xf0, 0x29, 0x01)
	test.Equate(t, mc.A.Value(), 0)
	step(t, mc) // ORA #$FF
	test.Equate(t, mc.A.Value(), 255)
	step(t, mc) // EOR #$F0
	test.Equate(t, mc.A.Value(), 15)
	step(t, mc) // AND #$01
	test.Equate(t, mc.A.Value(), 1)

	// ASL accumulator; LSR accumulator
	mem.putInstructions(origin, 0x0a, 0x4a, 0x4a)
	step(t, mc) // ASL
	test.Equate(t, mc.A.Value(), 2)
	step(t, mc) // LSR
	test.Equate(t, mc.A.Value(), 1)
	step(t, mc) // LSR
	test.Equate(t, mc.A.Value(), 0)
	assertStatus(t, mc, "nv-bdiZC")
}

func TestLoadStoreAddressing(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.internal[0x0180] = 0x7e

	// LDA absolute; STA zero page
	origin := mem.putInstructions(0x0000, 0xad, 0x80, 0x01, 0x85, 0x40)
	r := step(t, mc) // LDA $0180
	test.Equate(t, mc.A.Value(), 0x7e)
	test.Equate(t, r.Cycles, 4)
	step(t, mc) // STA $40
	mem.assert(t, 0x0040, 0x7e)

	// LDX immediate; STA zero page,X
	origin = mem.putInstructions(origin, 0xa2, 0x05, 0x95, 0x40)
	step(t, mc) // LDX #5
	step(t, mc) // STA $40,X
	mem.assert(t, 0x0045, 0x7e)

	// indexed indirect. pointer at $80 leads to $0300
	mem.internal[0x0085] = 0x00
	mem.internal[0x0086] = 0x03
	origin = mem.putInstructions(origin, 0x81, 0x80)
	step(t, mc) // STA ($80,X)
	mem.assert(t, 0x0300, 0x7e)

	// indirect indexed. pointer at $90 leads to $0400, plus Y
	mem.internal[0x0090] = 0x00
	mem.internal[0x0091] = 0x04
	mem.internal[0x0402] = 0x99
	mem.putInstructions(origin, 0xa0, 0x02, 0xb1, 0x90)
	step(t, mc) // LDY #2
	r = step(t, mc) // LDA ($90),Y
	test.Equate(t, mc.A.Value(), 0x99)
	test.Equate(t, r.Cycles, 5)
}

func TestPageCrossCycles(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.internal[0x0200] = 0x11

	// LDX #1; LDA $01ff,X reads across a page boundary
	mem.putInstructions(0x0000, 0xa2, 0x01, 0xbd, 0xff, 0x01)
	step(t, mc) // LDX #1
	r := step(t, mc) // LDA $01FF,X
	test.Equate(t, mc.A.Value(), 0x11)
	test.Equate(t, r.Cycles, 5)
	test.Equate(t, r.PageFault, true)

	// same read without the page cross costs the base cycles
	mem.internal[0x01f0] = 0x22
	mc.Reset()
	mem.putInstructions(0x0010, 0xa2, 0x01, 0xbd, 0xef, 0x01)
	mc.LoadPC(0x0010)
	step(t, mc)
	r = step(t, mc)
	test.Equate(t, mc.A.Value(), 0x22)
	test.Equate(t, r.Cycles, 4)
	test.Equate(t, r.PageFault, false)

	// stores never pay the page-cross penalty
	mc.Reset()
	mem.putInstructions(0x0020, 0xa2, 0x01, 0x9d, 0xff, 0x02)
	mc.LoadPC(0x0020)
	step(t, mc)
	r = step(t, mc) // STA $02FF,X
	test.Equate(t, r.Cycles, 5)
	test.Equate(t, r.PageFault, false)
}

func TestBranches(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	// LDA #0 sets the zero flag
	mem.putInstructions(0x0000, 0xa9, 0x00, 0xf0, 0x05, 0xd0, 0x05)
	step(t, mc) // LDA #0

	// branch taken costs an extra cycle
	r := step(t, mc) // BEQ +5
	test.Equate(t, r.Cycles, 3)
	test.Equate(t, r.BranchTaken, true)
	test.Equate(t, mc.PC.Address(), 0x0009)

	// branch not taken costs the base two cycles
	mem.putInstructions(0x0009, 0xd0, 0x05)
	r = step(t, mc) // BNE +5
	test.Equate(t, r.Cycles, 2)
	test.Equate(t, r.BranchTaken, false)
	test.Equate(t, mc.PC.Address(), 0x000b)

	// branch crossing a page boundary costs two extra cycles
	mc.Reset()
	mem.putInstructions(0x00f0, 0xa9, 0x00, 0xf0, 0x20)
	mc.LoadPC(0x00f0)
	step(t, mc)
	r = step(t, mc) // BEQ +32
	test.Equate(t, r.Cycles, 4)
	test.Equate(t, r.PageFault, true)
	test.Equate(t, mc.PC.Address(), 0x0114)

	// backwards branch
	mc.Reset()
	mem.putInstructions(0x0200, 0xa9, 0x00, 0xf0, 0xfc)
	mc.LoadPC(0x0200)
	step(t, mc)
	r = step(t, mc) // BEQ -4
	test.Equate(t, r.BranchTaken, true)
	test.Equate(t, mc.PC.Address(), 0x0200)
}

func TestDecimalMode(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	// SED; CLC; LDA #$09; ADC #$01
	origin := mem.putInstructions(0x0000, 0xf8, 0x18, 0xa9, 0x09, 0x69, 0x01)
	step(t, mc) // SED
	step(t, mc) // CLC
	step(t, mc) // LDA #$09
	step(t, mc) // ADC #$01
	test.Equate(t, mc.A.Value(), 0x10)
	test.Equate(t, mc.Status.Carry, false)

	// SEC; SBC #$01
	origin = mem.putInstructions(origin, 0x38, 0xe9, 0x01)
	step(t, mc) // SEC
	step(t, mc) // SBC #$01
	test.Equate(t, mc.A.Value(), 0x09)

	// comparison stays binary while the decimal flag is set
	mem.putInstructions(origin, 0xc9, 0x09)
	step(t, mc) // CMP #$09
	test.Equate(t, mc.Status.Zero, true)
	test.Equate(t, mc.Status.Carry, true)
}

func TestSubroutine(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x1000, 0x20, 0x10, 0x10) // JSR $1010
	mem.putInstructions(0x1010, 0x60)             // RTS
	mc.LoadPC(0x1000)

	r := step(t, mc) // JSR
	test.Equate(t, mc.PC.Address(), 0x1010)
	test.Equate(t, mc.SP.Value(), 0xfd)
	test.Equate(t, r.Cycles, 6)

	// the pushed return address is the address of the last byte of the JSR
	// instruction
	mem.assert(t, 0x01ff, 0x10)
	mem.assert(t, 0x01fe, 0x02)

	r = step(t, mc) // RTS
	test.Equate(t, mc.PC.Address(), 0x1003)
	test.Equate(t, mc.SP.Value(), 0xff)
	test.Equate(t, r.Cycles, 6)
}

func TestBrkRti(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	// point the interrupt vector at $2000
	mem.Write16(0xfffe, 0x2000)
	mem.putInstructions(0x2000, 0x40) // RTI

	r := step(t, mc) // BRK at $0000
	test.Equate(t, mc.PC.Address(), 0x2000)
	test.Equate(t, mc.Status.InterruptDisable, true)
	test.Equate(t, mc.SP.Value(), 0xfc)
	test.Equate(t, r.Cycles, 7)

	// pushed return address skips the padding byte
	mem.assert(t, 0x01ff, 0x00)
	mem.assert(t, 0x01fe, 0x02)

	r = step(t, mc) // RTI
	test.Equate(t, mc.PC.Address(), 0x0002)
	test.Equate(t, mc.SP.Value(), 0xff)
	test.Equate(t, r.Cycles, 6)
}

func TestJmpIndirect(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	// pointer entirely within one page
	mem.internal[0x0280] = 0x34
	mem.internal[0x0281] = 0x12
	mem.putInstructions(0x0000, 0x6c, 0x80, 0x02)
	r := step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x1234)
	test.Equate(t, r.Cycles, 5)

	// pointer on a page boundary exhibits the NMOS wraparound quirk: the
	// high byte is read from the start of the same page
	mc.Reset()
	mem.internal[0x02ff] = 0x78
	mem.internal[0x0300] = 0xff
	mem.internal[0x0200] = 0x56
	mem.putInstructions(0x0010, 0x6c, 0xff, 0x02)
	mc.LoadPC(0x0010)
	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x5678)
}

func TestRMWInstructions(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.internal[0x0040] = 0x7f

	// INC zero page; DEC zero page; ASL zero page
	mem.putInstructions(0x0000, 0xe6, 0x40, 0xc6, 0x40, 0x06, 0x40)
	r := step(t, mc) // INC $40
	mem.assert(t, 0x0040, 0x80)
	test.Equate(t, mc.Status.Sign, true)
	test.Equate(t, r.Cycles, 5)
	step(t, mc) // DEC $40
	mem.assert(t, 0x0040, 0x7f)
	step(t, mc) // ASL $40
	mem.assert(t, 0x0040, 0xfe)
	test.Equate(t, mc.Status.Carry, false)
}

func TestCompareInstructions(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	// LDA #$40; CMP #$3f; CMP #$40; CMP #$41
	mem.putInstructions(0x0000, 0xa9, 0x40, 0xc9, 0x3f, 0xc9, 0x40, 0xc9, 0x41)
	step(t, mc)
	step(t, mc) // CMP #$3F
	test.Equate(t, mc.Status.Carry, true)
	test.Equate(t, mc.Status.Zero, false)
	step(t, mc) // CMP #$40
	test.Equate(t, mc.Status.Carry, true)
	test.Equate(t, mc.Status.Zero, true)
	step(t, mc) // CMP #$41
	test.Equate(t, mc.Status.Carry, false)
	test.Equate(t, mc.Status.Zero, false)
	test.Equate(t, mc.Status.Sign, true)

	// the accumulator is unaffected by comparison
	test.Equate(t, mc.A.Value(), 0x40)
}

func TestUnknownOpCode(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.putInstructions(0x0000, 0xa9, 0x42, 0x02)
	step(t, mc) // LDA #$42

	err := mc.ExecuteInstruction()
	test.ExpectFailure(t, err)
	if !errors.Is(err, cpu.ErrUnknownOpCode) {
		t.Errorf("expected error to wrap ErrUnknownOpCode (%v)", err)
	}

	// the failed instruction has no effect at all
	test.Equate(t, mc.PC.Address(), 0x0002)
	test.Equate(t, mc.A.Value(), 0x42)
	test.Equate(t, mc.SP.Value(), 0xff)
}

func TestStackPointerWraparound(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	// LDX #0; TXS; PHA pushes to the bottom of the stack page and the
	// pointer wraps within the page
	mem.putInstructions(0x0000, 0xa2, 0x00, 0x9a, 0x48)
	step(t, mc) // LDX #0
	step(t, mc) // TXS
	test.Equate(t, mc.SP.Value(), 0x00)
	step(t, mc) // PHA
	test.Equate(t, mc.SP.Value(), 0xff)
	mem.assert(t, 0x0100, 0x00)
}

func TestBit(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)
	mc.Reset()

	mem.internal[0x0040] = 0xc0

	// LDA #$01; BIT $40
	mem.putInstructions(0x0000, 0xa9, 0x01, 0x24, 0x40)
	step(t, mc)
	step(t, mc) // BIT $40
	test.Equate(t, mc.Status.Sign, true)
	test.Equate(t, mc.Status.Overflow, true)
	test.Equate(t, mc.Status.Zero, true)
	test.Equate(t, mc.A.Value(), 0x01)
}
