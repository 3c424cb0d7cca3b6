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

// helpers_test.go contains the support code required for the cpu_test
// package:
//
// o mockMem - a simple memory implementation satisfying the cpubus.Memory
// interface
//   - includes putInstructions(), a variadic function to place a sequence of
//     bytes into memory
//   - a clear method and an assert method
//
// o step() - execute one instruction, failing the test on error

import (
	"testing"

	"github.com/aios-project/aios6502/hardware/cpu"
	"github.com/aios-project/aios6502/hardware/cpu/execution"
)

type mockMem struct {
	internal [0x10000]uint8
}

func newMockMem() *mockMem {
	return &mockMem{}
}

func (mem *mockMem) Read8(address uint16) uint8 {
	return mem.internal[address]
}

func (mem *mockMem) Read16(address uint16) uint16 {
	return uint16(mem.internal[address]) | (uint16(mem.internal[address+1]) << 8)
}

func (mem *mockMem) Write8(address uint16, data uint8) {
	mem.internal[address] = data
}

func (mem *mockMem) Write16(address uint16, data uint16) {
	mem.internal[address] = uint8(data & 0x00ff)
	mem.internal[address+1] = uint8(data >> 8)
}

func (mem *mockMem) clear() {
	for i := range mem.internal {
		mem.internal[i] = 0
	}
}

func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.internal[origin+uint16(i)] = b
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) assert(t *testing.T, address uint16, value uint8) {
	t.Helper()
	if mem.internal[address] != value {
		t.Errorf("memory assertion failed (%#02x - wanted %#02x at address %#04x)", mem.internal[address], value, address)
	}
}

func step(t *testing.T, mc *cpu.CPU) execution.Result {
	t.Helper()
	err := mc.ExecuteInstruction()
	if err != nil {
		t.Fatal(err)
	}
	return mc.LastResult
}

func assertStatus(t *testing.T, mc *cpu.CPU, expected string) {
	t.Helper()
	if mc.Status.String() != expected {
		t.Errorf("status assertion failed (%s - wanted %s)", mc.Status.String(), expected)
	}
}
