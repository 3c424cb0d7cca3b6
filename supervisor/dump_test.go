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

package supervisor_test

import (
	"strings"
	"testing"

	"github.com/aios-project/aios6502/test"
)

func TestDumpMemory(t *testing.T) {
	sup, mach := newTestSupervisor(t, nil)

	mach.Mem.Poke(0x0000, 0x41) // 'A'
	mach.Mem.Poke(0x0001, 0x42) // 'B'
	mach.Mem.Poke(0x0002, 0x07) // not printable

	// a short range pads the hex cells and the ascii gutter with spaces
	expected := "0000: 41 42 07 00 00 00 00 00 " + strings.Repeat("   ", 8) +
		" AB......" + strings.Repeat(" ", 8)
	test.Equate(t, sup.DumpMemory(0x0000, 8), expected)
}

func TestDumpMemoryMultiLine(t *testing.T) {
	sup, mach := newTestSupervisor(t, nil)

	for i := 0; i < 32; i++ {
		mach.Mem.Poke(0x0100+uint16(i), uint8(0x30+i)) // '0' onwards
	}

	dump := sup.DumpMemory(0x0100, 32)
	lines := strings.Split(dump, "\n")
	test.Equate(t, len(lines), 2)

	test.Equate(t, strings.HasPrefix(lines[0], "0100: 30 31 32 33 34 35 36 37 38 39 3A 3B 3C 3D 3E 3F "), true)
	test.Equate(t, strings.HasSuffix(lines[0], " 0123456789:;<=>?"), true)
	test.Equate(t, strings.HasPrefix(lines[1], "0110: 40 41 42 43 "), true)
	test.Equate(t, strings.HasSuffix(lines[1], " @ABCDEFGHIJKLMNO"), true)
}
