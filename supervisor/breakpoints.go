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

import "sort"

// Breakpoints is a set of absolute addresses. Membership is checked once per
// instruction, before the opcode fetch.
type Breakpoints struct {
	breaks map[uint16]bool
}

func newBreakpoints() *Breakpoints {
	return &Breakpoints{
		breaks: make(map[uint16]bool),
	}
}

// Set a breakpoint at the specified address. Setting an address twice is not
// an error.
func (bk *Breakpoints) Set(address uint16) {
	bk.breaks[address] = true
}

// Remove the breakpoint at the specified address. Returns false if no
// breakpoint was set at that address.
func (bk *Breakpoints) Remove(address uint16) bool {
	if !bk.breaks[address] {
		return false
	}
	delete(bk.breaks, address)
	return true
}

// Has returns true if a breakpoint is set at the specified address.
func (bk *Breakpoints) Has(address uint16) bool {
	return bk.breaks[address]
}

// List returns every breakpoint address in ascending order.
func (bk *Breakpoints) List() []uint16 {
	l := make([]uint16, 0, len(bk.breaks))
	for a := range bk.breaks {
		l = append(l, a)
	}
	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })
	return l
}

// Clear removes all breakpoints.
func (bk *Breakpoints) Clear() {
	bk.breaks = make(map[uint16]bool)
}
