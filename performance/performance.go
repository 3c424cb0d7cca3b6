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

// Package performance measures the throughput of the emulation. The speed
// governor is bypassed so the result reflects how fast the host can drive
// the machine, reported as instructions and cycles per second.
package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/aios-project/aios6502/hardware"
	"github.com/aios-project/aios6502/hardware/memory/addresses"
	"github.com/aios-project/aios6502/hardware/preferences"
	"github.com/aios-project/aios6502/loader"
	"github.com/aios-project/aios6502/supervisor"
)

// instruction budget per run segment. small enough that the duration check
// stays responsive, large enough that loop overhead does not skew the
// measurement.
const segmentBudget = 500000

// Check the performance of the emulator using the supplied program.
//
// The program is run repeatedly at maximum speed for the specified duration.
// A CPU profile, a memory profile, or both can be written alongside the
// measurement.
func Check(output io.Writer, profileCPU bool, profileMem bool, ld *loader.Loader, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	mach := hardware.NewMachine()

	prf, err := preferences.NewPreferences()
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}
	err = prf.MaxSpeed.Set(true)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	sup := supervisor.NewSupervisor(mach, prf, nil)

	err = loader.AttachProgram(mach, ld, addresses.ProgramOrigin)
	if err != nil {
		return err
	}
	mach.Mem.Write16(addresses.Reset, addresses.ProgramOrigin)
	sup.Reset()

	runner := func() error {
		end := time.Now().Add(dur)
		for time.Now().Before(end) {
			_, err := sup.Run(segmentBudget)
			if err != nil {
				return err
			}

			// the program has concluded. start it again without disturbing
			// the accumulated metrics
			mach.CPU.LoadPC(addresses.ProgramOrigin)
		}
		return nil
	}

	start := time.Now()
	err = cpuProfile(profileCPU, "cpu.profile", runner)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	err = memProfile(profileMem, "mem.profile")
	if err != nil {
		return err
	}

	m := sup.Metrics()
	secs := elapsed.Seconds()
	if secs > 0 {
		fmt.Fprintf(output, "%.0f instructions/sec, %.0f cycles/sec (%d programs in %v)\n",
			float64(m.Instructions)/secs, float64(m.Cycles)/secs, m.ProgramsRun, elapsed.Round(time.Millisecond))
	}

	return nil
}
