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

// Package preferences defines and collates the preference values that shape
// how the emulated machine runs. Values are safe for concurrent access so
// they can be changed while the emulation is running.
package preferences

import (
	"fmt"

	"github.com/aios-project/aios6502/prefs"
	"github.com/aios-project/aios6502/resources"
)

// default values applied on creation and on Reset().
const (
	DefaultClockHz    = 1000000
	DefaultMultiplier = 1.0
	DefaultMaxSpeed   = true
)

// Preferences defines and collates all the preference values used by the
// emulation.
type Preferences struct {
	dsk *prefs.Disk

	// emulated clock frequency in Hz
	ClockHz prefs.Int

	// multiplier applied to the emulated clock. values above 1.0 run the
	// emulation faster than the clock frequency implies
	Multiplier prefs.Float

	// when true the emulation runs as fast as the host allows, ignoring
	// ClockHz and Multiplier
	MaxSpeed prefs.Bool
}

func (p *Preferences) String() string {
	return fmt.Sprintf("%dHz x%.1f (max speed %v)", p.ClockHz.Get().(int),
		p.Multiplier.Get().(float64), p.MaxSpeed.Get().(bool))
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}

	p.ClockHz.SetHookPre(func(v prefs.Value) error {
		if v.(int) <= 0 {
			return fmt.Errorf("preferences: clock frequency must be positive (%d)", v.(int))
		}
		return nil
	})
	p.Multiplier.SetHookPre(func(v prefs.Value) error {
		if v.(float64) <= 0 {
			return fmt.Errorf("preferences: speed multiplier must be positive (%.3f)", v.(float64))
		}
		return nil
	})

	err := p.Reset()
	if err != nil {
		return nil, err
	}

	// setup preferences and load from disk
	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.clock", &p.ClockHz)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.multiplier", &p.Multiplier)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.maxspeed", &p.MaxSpeed)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Reset all hardware preferences to the default values.
func (p *Preferences) Reset() error {
	err := p.ClockHz.Set(DefaultClockHz)
	if err != nil {
		return err
	}
	err = p.Multiplier.Set(DefaultMultiplier)
	if err != nil {
		return err
	}
	return p.MaxSpeed.Set(DefaultMaxSpeed)
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
