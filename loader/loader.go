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

// Package loader reads program and ROM files from disk and attaches them to
// the emulated machine.
//
// A program is an arbitrary byte sequence placed at a caller-supplied origin
// (addresses.ProgramOrigin by default). A ROM is a fixed-size image placed at
// addresses.ROMOrigin; attaching a ROM additionally points the three
// interrupt vectors at the ROM base so that a subsequent reset starts
// executing ROM code.
package loader

import (
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aios-project/aios6502/hardware"
	"github.com/aios-project/aios6502/hardware/memory/addresses"
	"github.com/aios-project/aios6502/logger"
)

// Loader is used to specify the file to attach to the machine.
type Loader struct {
	// filename of the file to load
	Filename string

	// expected hash of the loaded file. the empty string indicates that the
	// hash is unknown and need not be validated. after a load operation the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data. subsequent calls to Load() reuse this data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// ShortName returns the filename without its path or extension.
func (ld Loader) ShortName() string {
	n := filepath.Base(ld.Filename)
	return strings.TrimSuffix(n, filepath.Ext(n))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the file data into the Data field. The SHA1 hash of the data is
// checked against the Hash field if one was supplied, and recorded there if
// not.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	var err error
	ld.Data, err = os.ReadFile(ld.Filename)
	if err != nil {
		return fmt.Errorf("loader: %w", err)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(ld.Data))
	if ld.Hash != "" && ld.Hash != hash {
		return fmt.Errorf("loader: unexpected hash value (%s)", ld.ShortName())
	}
	ld.Hash = hash

	return nil
}

// AttachProgram copies the loaded data into memory at the specified origin.
// Bytes beyond the top of memory are silently truncated. The program counter
// is not moved; that is the caller's decision.
func AttachProgram(mach *hardware.Machine, ld *Loader, origin uint16) error {
	err := ld.Load()
	if err != nil {
		return err
	}

	n := mach.Mem.Load(origin, ld.Data)
	logger.Logf(logger.Allow, "loader", "%s: %d bytes at $%04X", ld.ShortName(), n, origin)

	return nil
}

// AttachROM copies the loaded data into memory at the ROM origin and points
// the NMI, reset and IRQ vectors at the ROM base. A file of a size other
// than addresses.ROMSize is a warning, not an error; oversized data is
// truncated to the ROM area.
func AttachROM(mach *hardware.Machine, ld *Loader) error {
	err := ld.Load()
	if err != nil {
		return err
	}

	data := ld.Data
	if len(data) != addresses.ROMSize {
		logger.Logf(logger.Allow, "loader", "%s: unexpected ROM size (%d bytes - wanted %d)",
			ld.ShortName(), len(data), addresses.ROMSize)
		if len(data) > addresses.ROMSize {
			data = data[:addresses.ROMSize]
		}
	}

	mach.Mem.Load(addresses.ROMOrigin, data)

	mach.Mem.Write16(addresses.NMI, addresses.ROMOrigin)
	mach.Mem.Write16(addresses.Reset, addresses.ROMOrigin)
	mach.Mem.Write16(addresses.IRQ, addresses.ROMOrigin)

	logger.Logf(logger.Allow, "loader", "%s: ROM at $%04X (%s)", ld.ShortName(), addresses.ROMOrigin, ld.Hash)

	return nil
}
