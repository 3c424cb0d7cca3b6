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

func TestProgramCounter(t *testing.T) {
	pc := registers.NewProgramCounter(0)
	test.Equate(t, pc.Address(), 0)

	pc.Load(0x8000)
	test.Equate(t, pc.Address(), 0x8000)

	carry := pc.Add(1)
	test.Equate(t, pc.Address(), 0x8001)
	test.Equate(t, carry, false)

	// address space wraps around
	pc.Load(0xffff)
	carry = pc.Add(1)
	test.Equate(t, pc.Address(), 0)
	test.Equate(t, carry, true)
}
