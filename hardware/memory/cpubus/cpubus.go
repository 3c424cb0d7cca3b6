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

package cpubus

// Memory defines the operations for the memory system when accessed from the
// CPU.
//
// The address space is flat: every address is valid and access never fails.
// Word access is little-endian with the second byte read from the next
// address, wrapping around at the top of memory.
type Memory interface {
	Read8(address uint16) uint8
	Read16(address uint16) uint16
	Write8(address uint16, data uint8)
	Write16(address uint16, data uint16)
}
