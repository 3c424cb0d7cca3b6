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

package registers_test

import (
	"testing"

	"github.com/aios-project/aios6502/hardware/cpu/registers"
	"github.com/aios-project/aios6502/test"
)

func TestRegister(t *testing.T) {
	var carry, overflow bool

	// initialisation
	r8 := registers.NewRegister(0, "test")
	test.Equate(t, r8.IsZero(), true)
	test.Equate(t, r8.Value(), 0)

	// loading & addition
	r8.Load(127)
	test.Equate(t, r8.Value(), 127)
	r8.Add(2, false)
	test.Equate(t, r8.Value(), 129)

	// addition boundary
	r8.Load(255)
	test.Equate(t, r8.IsNegative(), true)
	carry, overflow = r8.Add(1, false)
	test.Equate(t, carry, true)
	test.Equate(t, overflow, false)
	test.Equate(t, r8.IsZero(), true)
	test.Equate(t, r8.Value(), 0)

	// addition boundary with carry
	r8.Load(254)
	test.Equate(t, r8.IsNegative(), true)
	carry, overflow = r8.Add(1, true)
	test.Equate(t, carry, true)
	test.Equate(t, overflow, false)
	test.Equate(t, r8.IsZero(), true)
	test.Equate(t, r8.Value(), 0)

	// addition boundary with carry
	r8.Load(255)
	test.Equate(t, r8.IsNegative(), true)
	carry, overflow = r8.Add(1, true)
	test.Equate(t, carry, true)
	test.Equate(t, overflow, false)
	test.Equate(t, r8.IsZero(), false)
	test.Equate(t, r8.Value(), 1)

	// subtraction
	r8.Load(11)
	r8.Subtract(1, true)
	test.Equate(t, r8.Value(), 10)

	r8.Load(12)
	r8.Subtract(1, false)
	test.Equate(t, r8.Value(), 10)

	r8.Load(0x01)
	r8.Subtract(0x06, false)
	test.Equate(t, r8.Value(), 0xfa)

	// subtract on boundary
	r8.Load(0)
	r8.Subtract(1, true)
	test.Equate(t, r8.Value(), 255)
	r8.Load(1)
	r8.Subtract(1, false)
	test.Equate(t, r8.Value(), 255)
	r8.Load(1)
	r8.Subtract(2, true)
	test.Equate(t, r8.Value(), 255)

	// logical operators
	r8.Load(0x21)
	r8.AND(0x01)
	test.Equate(t, r8.Value(), 0x01)
	r8.EOR(0xff)
	test.Equate(t, r8.Value(), 0xfe)
	r8.ORA(0x1)
	test.Equate(t, r8.Value(), 0xff)

	// shifts
	carry = r8.ASL()
	test.Equate(t, r8.Value(), 0xfe)
	test.Equate(t, carry, true)
	carry = r8.LSR()
	test.Equate(t, r8.Value(), 0x7f)
	test.Equate(t, carry, false)
	carry = r8.LSR()
	test.Equate(t, carry, true)

	// rotation
	r8.Load(0xff)
	carry = r8.ROL(false)
	test.Equate(t, r8.Value(), 0xfe)
	test.Equate(t, carry, true)
	carry = r8.ROR(true)
	test.Equate(t, r8.Value(), 0xff)
	test.Equate(t, carry, false)
}

func TestSignedOverflow(t *testing.T) {
	var carry, overflow bool

	r8 := registers.NewRegister(0x50, "test")

	// 0x50 + 0x50 overflows the signed range
	carry, overflow = r8.Add(0x50, false)
	test.Equate(t, carry, false)
	test.Equate(t, overflow, true)
	test.Equate(t, r8.Value(), 0xa0)

	// 0xd0 + 0x90 overflows the other way
	r8.Load(0xd0)
	carry, overflow = r8.Add(0x90, false)
	test.Equate(t, carry, true)
	test.Equate(t, overflow, true)
	test.Equate(t, r8.Value(), 0x60)
}

func TestStackPointerWrap(t *testing.T) {
	// the stack pointer is an ordinary 8 bit register. the value wraps
	// within the byte, keeping the stack inside its page
	sp := registers.NewRegister(0x00, "SP")
	sp.Subtract(1, true)
	test.Equate(t, sp.Value(), 0xff)
	sp.Add(1, false)
	test.Equate(t, sp.Value(), 0x00)
}
