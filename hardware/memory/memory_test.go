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

package memory_test

import (
	"testing"

	"github.com/aios-project/aios6502/hardware/memory"
	"github.com/aios-project/aios6502/notifications"
	"github.com/aios-project/aios6502/test"
)

func TestReadWrite(t *testing.T) {
	mem := memory.NewMemory()

	mem.Write8(0x1234, 0xab)
	test.Equate(t, mem.Read8(0x1234), 0xab)

	// words are little-endian
	mem.Write16(0x2000, 0xbeef)
	test.Equate(t, mem.Read8(0x2000), 0xef)
	test.Equate(t, mem.Read8(0x2001), 0xbe)
	test.Equate(t, mem.Read16(0x2000), 0xbeef)
}

func TestWraparound(t *testing.T) {
	mem := memory.NewMemory()

	// a word at the top of memory wraps around to address zero
	mem.Write16(0xffff, 0xbeef)
	test.Equate(t, mem.Read8(0xffff), 0xef)
	test.Equate(t, mem.Read8(0x0000), 0xbe)
	test.Equate(t, mem.Read16(0xffff), 0xbeef)
}

func TestAccessHook(t *testing.T) {
	mem := memory.NewMemory()

	var events []notifications.MemoryEvent
	mem.SetAccessHook(func(ev notifications.MemoryEvent) {
		events = append(events, ev)
	})

	mem.Write8(0x0100, 0x7f)
	mem.Read16(0x0100)

	test.Equate(t, len(events), 2)
	test.Equate(t, events[0].Address, 0x0100)
	test.Equate(t, events[0].Value, 0x7f)
	test.Equate(t, events[0].Direction.String(), "write")
	test.Equate(t, events[0].Size.String(), "byte")
	test.Equate(t, events[1].Direction.String(), "read")
	test.Equate(t, events[1].Size.String(), "word")

	// peek and poke do not trigger the hook
	mem.Poke(0x0200, 0x01)
	_ = mem.Peek(0x0200)
	test.Equate(t, len(events), 2)
}

func TestLoadTruncation(t *testing.T) {
	mem := memory.NewMemory()

	// load that would extend beyond the top of memory is truncated
	data := []uint8{0x01, 0x02, 0x03, 0x04}
	n := mem.Load(0xfffe, data)
	test.Equate(t, n, 2)
	test.Equate(t, mem.Peek(0xfffe), 0x01)
	test.Equate(t, mem.Peek(0xffff), 0x02)
	test.Equate(t, mem.Peek(0x0000), 0)
}

func TestClear(t *testing.T) {
	mem := memory.NewMemory()
	mem.Write8(0x8000, 0xff)
	mem.Clear()
	test.Equate(t, mem.Read8(0x8000), 0)
}
