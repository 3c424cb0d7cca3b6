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
)

// DumpMemory returns a fixed-width text rendering of a memory range. Sixteen
// bytes per line, each line prefixed with the starting address and followed
// by an ASCII gutter. Bytes outside the printable range show as a dot. A
// range that ends mid-line is padded with spaces so the gutter stays
// aligned.
//
// The dump reads memory without triggering access hooks.
func (sup *Supervisor) DumpMemory(start uint16, length int) string {
	dump := make([]string, 0, (length+15)/16)

	for i := 0; i < length; i += 16 {
		addr := start + uint16(i)
		line := strings.Builder{}
		line.WriteString(fmt.Sprintf("%04X: ", addr))

		for j := 0; j < 16; j++ {
			if i+j < length {
				line.WriteString(fmt.Sprintf("%02X ", sup.mach.Mem.Peek(addr+uint16(j))))
			} else {
				line.WriteString("   ")
			}
		}

		line.WriteString(" ")
		for j := 0; j < 16; j++ {
			if i+j < length {
				v := sup.mach.Mem.Peek(addr + uint16(j))
				if v >= 32 && v <= 126 {
					line.WriteByte(v)
				} else {
					line.WriteString(".")
				}
			} else {
				line.WriteString(" ")
			}
		}

		dump = append(dump, line.String())
	}

	return strings.Join(dump, "\n")
}
