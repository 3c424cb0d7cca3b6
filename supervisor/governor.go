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
	"time"

	"github.com/aios-project/aios6502/hardware/preferences"
)

// Governor converts the configured clock frequency and speed multiplier into
// a per-instruction delay. Preference values are read on every call so a
// speed change takes effect on the very next instruction.
type Governor struct {
	prefs *preferences.Preferences
}

// NewGovernor is the preferred method of initialisation for the Governor
// type.
func NewGovernor(prefs *preferences.Preferences) *Governor {
	return &Governor{prefs: prefs}
}

// Delay returns the pause required after an instruction that consumed the
// specified number of cycles. The delay is zero when the max speed
// preference is enabled or when the clock preferences are not set.
func (gov *Governor) Delay(cycles int) time.Duration {
	if gov.prefs.MaxSpeed.Get().(bool) {
		return 0
	}

	hz := gov.prefs.ClockHz.Get().(int)
	mult := gov.prefs.Multiplier.Get().(float64)
	if hz <= 0 || mult <= 0 {
		return 0
	}

	perCycleMs := (1000.0 / float64(hz)) / mult
	return time.Duration(perCycleMs * float64(cycles) * float64(time.Millisecond))
}

// Throttle sleeps for the delay implied by the cycle count.
func (gov *Governor) Throttle(cycles int) {
	d := gov.Delay(cycles)
	if d > 0 {
		time.Sleep(d)
	}
}
