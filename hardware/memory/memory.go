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

// Package memory implements the flat 64KB address space of the emulated
// machine. It satisfies the cpubus.Memory interface.
package memory

import (
	"github.com/aios-project/aios6502/notifications"
)

// Size of the address space in bytes.
const Size = 0x10000

// Memory is the flat 64KB memory image. Every address is valid so access
// never returns an error.
type Memory struct {
	ram [Size]uint8

	// if hook is non-nil it is called synchronously for every access made
	// through the cpubus interface
	hook func(notifications.MemoryEvent)
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	return &Memory{}
}

// SetAccessHook attaches a function to be called for every bus access. A nil
// value detaches any existing hook.
func (mem *Memory) SetAccessHook(hook func(notifications.MemoryEvent)) {
	mem.hook = hook
}

// Clear sets every byte of the address space to zero.
func (mem *Memory) Clear() {
	for i := range mem.ram {
		mem.ram[i] = 0
	}
}

// Read8 returns the byte at the specified address.
func (mem *Memory) Read8(address uint16) uint8 {
	v := mem.ram[address]
	if mem.hook != nil {
		mem.hook(notifications.MemoryEvent{
			Address:   address,
			Value:     uint16(v),
			Direction: notifications.DirectionRead,
			Size:      notifications.AccessByte,
		})
	}
	return v
}

// Read16 returns the little-endian word at the specified address. The second
// byte is read from the next address, wrapping around at the top of memory.
func (mem *Memory) Read16(address uint16) uint16 {
	lo := mem.ram[address]
	hi := mem.ram[address+1]
	v := uint16(lo) | (uint16(hi) << 8)
	if mem.hook != nil {
		mem.hook(notifications.MemoryEvent{
			Address:   address,
			Value:     v,
			Direction: notifications.DirectionRead,
			Size:      notifications.AccessWord,
		})
	}
	return v
}

// Write8 writes a byte to the specified address.
func (mem *Memory) Write8(address uint16, data uint8) {
	mem.ram[address] = data
	if mem.hook != nil {
		mem.hook(notifications.MemoryEvent{
			Address:   address,
			Value:     uint16(data),
			Direction: notifications.DirectionWrite,
			Size:      notifications.AccessByte,
		})
	}
}

// Write16 writes a little-endian word to the specified address. The second
// byte is written to the next address, wrapping around at the top of memory.
func (mem *Memory) Write16(address uint16, data uint16) {
	mem.ram[address] = uint8(data & 0x00ff)
	mem.ram[address+1] = uint8(data >> 8)
	if mem.hook != nil {
		mem.hook(notifications.MemoryEvent{
			Address:   address,
			Value:     data,
			Direction: notifications.DirectionWrite,
			Size:      notifications.AccessWord,
		})
	}
}

// Peek returns the byte at the specified address without triggering the
// access hook. Used by inspection surfaces (memory dumps, snapshots).
func (mem *Memory) Peek(address uint16) uint8 {
	return mem.ram[address]
}

// Poke writes a byte to the specified address without triggering the access
// hook. Used when restoring a snapshot.
func (mem *Memory) Poke(address uint16, data uint8) {
	mem.ram[address] = data
}

// Load copies data into memory starting at origin. Data that would extend
// beyond the top of the address space is silently truncated. Returns the
// number of bytes copied. The access hook is not triggered.
func (mem *Memory) Load(origin uint16, data []uint8) int {
	n := copy(mem.ram[origin:], data)
	return n
}
