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

// Package addresses records the special addresses of the 6502 memory map and
// the conventional load addresses used by the emulation.
package addresses

// NMI is the address where the non-maskable interrupt vector is stored
const NMI = uint16(0xfffa)

// Reset is the address where the reset vector is stored
const Reset = uint16(0xfffc)

// IRQ is the address where the interrupt vector is stored. also used by the
// BRK instruction
const IRQ = uint16(0xfffe)

// StackOrigin is the address of the bottom of the stack page. the stack
// pointer is an offset into this page
const StackOrigin = uint16(0x0100)

// ProgramOrigin is the default load address for programs
const ProgramOrigin = uint16(0x8000)

// ROMOrigin is the address ROM images are attached at. the reset and
// interrupt vectors are pointed here when a ROM is attached
const ROMOrigin = uint16(0xa000)

// ROMSize is the expected length of a ROM image in bytes. attaching a ROM of
// a different length works but is unusual enough to warrant a log entry
const ROMSize = 8192
