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
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aios-project/aios6502/govern"
)

// ErrInvalidSnapshot is returned by ImportState for a structurally
// incomplete record. No live state has been touched when this error is
// returned.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// the memory subrange carried by a snapshot. deliberately not the full
// address space; callers must not assume full-memory round-tripping.
const (
	snapshotMemStart  = 0x0000
	snapshotMemLength = 1024
)

// SnapshotConfig is the configuration section of a snapshot.
type SnapshotConfig struct {
	ClockHz     int      `json:"clock_hz"`
	Multiplier  float64  `json:"multiplier"`
	MaxSpeed    bool     `json:"max_speed"`
	Breakpoints []uint16 `json:"breakpoints"`
}

// SnapshotMetrics is the metrics section of a snapshot.
type SnapshotMetrics struct {
	Instructions uint64 `json:"instructions"`
	Cycles       uint64 `json:"cycles"`
	ProgramsRun  uint64 `json:"programs_run"`
	Errors       uint64 `json:"errors"`
	ElapsedNs    int64  `json:"elapsed_ns"`
}

// SnapshotRegisters is the register section of a snapshot.
type SnapshotRegisters struct {
	A  uint8  `json:"a"`
	X  uint8  `json:"x"`
	Y  uint8  `json:"y"`
	PC uint16 `json:"pc"`
	SP uint8  `json:"sp"`
	P  uint8  `json:"p"`
}

// SnapshotMemory is the memory section of a snapshot. Data is a hex-encoded
// byte string starting at the Start address.
type SnapshotMemory struct {
	Start uint16 `json:"start"`
	Data  string `json:"data"`
}

// Snapshot is a capture of supervisor and CPU state for persistence.
// Created by ExportState and consumed by ImportState.
type Snapshot struct {
	State     string            `json:"state"`
	Config    SnapshotConfig    `json:"config"`
	Metrics   SnapshotMetrics   `json:"metrics"`
	Registers SnapshotRegisters `json:"registers"`
	Memory    SnapshotMemory    `json:"memory"`
}

// used during import so that missing sections can be told apart from zero
// valued ones.
type snapshotDoc struct {
	State     *string            `json:"state"`
	Config    *SnapshotConfig    `json:"config"`
	Metrics   *SnapshotMetrics   `json:"metrics"`
	Registers *SnapshotRegisters `json:"registers"`
	Memory    *SnapshotMemory    `json:"memory"`
}

// ExportState captures the current configuration, supervisor state, metrics,
// registers and the fixed memory subrange as a JSON document.
func (sup *Supervisor) ExportState() ([]byte, error) {
	mc := sup.mach.CPU

	mem := make([]byte, snapshotMemLength)
	for i := range mem {
		mem[i] = sup.mach.Mem.Peek(snapshotMemStart + uint16(i))
	}

	snp := Snapshot{
		State: sup.State().String(),
		Config: SnapshotConfig{
			ClockHz:     sup.prefs.ClockHz.Get().(int),
			Multiplier:  sup.prefs.Multiplier.Get().(float64),
			MaxSpeed:    sup.prefs.MaxSpeed.Get().(bool),
			Breakpoints: sup.breakpoints.List(),
		},
		Metrics: SnapshotMetrics{
			Instructions: sup.metrics.Instructions,
			Cycles:       sup.metrics.Cycles,
			ProgramsRun:  sup.metrics.ProgramsRun,
			Errors:       sup.metrics.Errors,
			ElapsedNs:    int64(sup.metrics.Elapsed),
		},
		Registers: SnapshotRegisters{
			A:  mc.A.Value(),
			X:  mc.X.Value(),
			Y:  mc.Y.Value(),
			PC: mc.PC.Address(),
			SP: mc.SP.Value(),
			P:  mc.Status.Value(),
		},
		Memory: SnapshotMemory{
			Start: snapshotMemStart,
			Data:  hex.EncodeToString(mem),
		},
	}

	return json.MarshalIndent(snp, "", "  ")
}

// ImportState restores a snapshot previously produced by ExportState. The
// record's shape is validated in full before any live state is mutated; a
// structural defect leaves the supervisor exactly as it was.
//
// On success the configuration and breakpoint set are overwritten, the
// metrics are merged additively, and the snapshotted memory subrange is
// copied byte-for-byte into the live image. Registers are not restored;
// execution state is rebuilt by Reset() or a fresh Run().
func (sup *Supervisor) ImportState(data []byte) error {
	var doc snapshotDoc
	err := json.Unmarshal(data, &doc)
	if err != nil {
		return fmt.Errorf("supervisor: %w: %v", ErrInvalidSnapshot, err)
	}

	if doc.State == nil || doc.Config == nil || doc.Metrics == nil || doc.Registers == nil || doc.Memory == nil {
		return fmt.Errorf("supervisor: %w: missing section", ErrInvalidSnapshot)
	}

	if _, ok := govern.ParseState(*doc.State); !ok {
		return fmt.Errorf("supervisor: %w: unrecognised state (%s)", ErrInvalidSnapshot, *doc.State)
	}

	if doc.Config.ClockHz <= 0 || doc.Config.Multiplier <= 0 {
		return fmt.Errorf("supervisor: %w: bad clock configuration", ErrInvalidSnapshot)
	}

	mem, err := hex.DecodeString(doc.Memory.Data)
	if err != nil {
		return fmt.Errorf("supervisor: %w: bad memory encoding: %v", ErrInvalidSnapshot, err)
	}
	if len(mem) > snapshotMemLength || int(doc.Memory.Start)+len(mem) > 0x10000 {
		return fmt.Errorf("supervisor: %w: memory subrange out of bounds", ErrInvalidSnapshot)
	}

	// validation complete. mutate live state

	err = sup.SetSpeed(doc.Config.ClockHz, doc.Config.Multiplier, doc.Config.MaxSpeed)
	if err != nil {
		return err
	}

	sup.breakpoints.Clear()
	for _, a := range doc.Config.Breakpoints {
		sup.breakpoints.Set(a)
	}

	sup.metrics.Accumulate(Metrics{
		Instructions: doc.Metrics.Instructions,
		Cycles:       doc.Metrics.Cycles,
		ProgramsRun:  doc.Metrics.ProgramsRun,
		Errors:       doc.Metrics.Errors,
		Elapsed:      time.Duration(doc.Metrics.ElapsedNs),
	})

	for i, b := range mem {
		sup.mach.Mem.Poke(doc.Memory.Start+uint16(i), b)
	}

	return nil
}
