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
	"time"
)

// Metrics collates the execution counters owned by the Supervisor. The
// counters only ever increase. They are zeroed on an explicit request and
// never as a side effect of another operation.
type Metrics struct {
	Instructions uint64
	Cycles       uint64
	ProgramsRun  uint64
	Errors       uint64
	Elapsed      time.Duration
}

func (m Metrics) String() string {
	return fmt.Sprintf("%d instructions / %d cycles in %v (%d programs, %d errors)",
		m.Instructions, m.Cycles, m.Elapsed, m.ProgramsRun, m.Errors)
}

// Accumulate adds the counters from another Metrics value.
func (m *Metrics) Accumulate(n Metrics) {
	m.Instructions += n.Instructions
	m.Cycles += n.Cycles
	m.ProgramsRun += n.ProgramsRun
	m.Errors += n.Errors
	m.Elapsed += n.Elapsed
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	*m = Metrics{}
}
