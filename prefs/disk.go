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

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// DefaultPrefsFile is the default filename of the main preferences file.
const DefaultPrefsFile = "aios6502.prefs"

// the string that separates the key from the value in the prefs file.
const keySep = " :: "

// WarningBoilerPlate is the first line in a prefs file. A file without this
// line will not be parsed.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// Disk represents preference values as stored on disk. Individual preference
// values are added to the Disk instance with the Add() function.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to the list of values to store/load from disk. The key
// is used to identify the value in the prefs file.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("prefs: add: key is empty")
	}
	if strings.Contains(key, keySep) || strings.ContainsAny(key, "\n") {
		return fmt.Errorf("prefs: add: illegal character in key (%s)", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: add: duplicate key (%s)", key)
	}
	dsk.entries[key] = p
	return nil
}

// HasEntry returns true if the named key has been added to the Disk instance.
func (dsk *Disk) HasEntry(key string) bool {
	_, ok := dsk.entries[key]
	return ok
}

// Save current preference values to disk. Keys are written in alphabetical
// order so the file diffs cleanly between saves.
func (dsk *Disk) Save() error {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k].String()))
	}

	err := os.WriteFile(dsk.path, []byte(s.String()), 0600)
	if err != nil {
		return fmt.Errorf("prefs: save: %w", err)
	}

	return nil
}

// Load preference values from disk. Keys in the file that have not been added
// to the Disk instance are ignored, as are registered keys that are absent
// from the file. A missing prefs file is not an error.
func (dsk *Disk) Load() error {
	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("prefs: load: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)

	// check boilerplate line before parsing any values
	if !sc.Scan() || sc.Text() != WarningBoilerPlate {
		return fmt.Errorf("prefs: load: not a valid prefs file (%s)", dsk.path)
	}

	for sc.Scan() {
		k, v, ok := strings.Cut(sc.Text(), keySep)
		if !ok {
			continue
		}
		if p, ok := dsk.entries[k]; ok {
			err = p.Set(v)
			if err != nil {
				return fmt.Errorf("prefs: load: %w", err)
			}
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("prefs: load: %w", err)
	}

	return nil
}
