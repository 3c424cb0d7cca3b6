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

package prefs_test

import (
	"path/filepath"
	"testing"

	"github.com/aios-project/aios6502/prefs"
	"github.com/aios-project/aios6502/test"
)

func TestBool(t *testing.T) {
	var b prefs.Bool

	// zero value before any Set()
	test.Equate(t, b.Get().(bool), false)

	test.ExpectSuccess(t, b.Set(true))
	test.Equate(t, b.Get().(bool), true)
	test.Equate(t, b.String(), "true")

	// string conversion. anything other than "true" is false
	test.ExpectSuccess(t, b.Set("TRUE"))
	test.Equate(t, b.Get().(bool), true)
	test.ExpectSuccess(t, b.Set("yes"))
	test.Equate(t, b.Get().(bool), false)

	// incompatible type
	test.ExpectFailure(t, b.Set(1.0))
}

func TestInt(t *testing.T) {
	var i prefs.Int

	test.Equate(t, i.Get().(int), 0)

	test.ExpectSuccess(t, i.Set(100))
	test.Equate(t, i.Get().(int), 100)

	test.ExpectSuccess(t, i.Set("-12"))
	test.Equate(t, i.Get().(int), -12)

	test.ExpectFailure(t, i.Set("one hundred"))

	test.ExpectSuccess(t, i.Reset())
	test.Equate(t, i.Get().(int), 0)
}

func TestFloat(t *testing.T) {
	var f prefs.Float

	test.ExpectSuccess(t, f.Set(2.5))
	test.Equate(t, f.String(), "2.500")

	test.ExpectSuccess(t, f.Set("0.5"))
	if f.Get().(float64) != 0.5 {
		t.Errorf("unexpected float value (%v)", f.Get())
	}

	test.ExpectFailure(t, f.Set(struct{}{}))
}

func TestString(t *testing.T) {
	var s prefs.String

	// zero value before any Set()
	test.Equate(t, s.Get().(string), "")

	test.ExpectSuccess(t, s.Set("ntsc"))
	test.Equate(t, s.Get().(string), "ntsc")
	test.Equate(t, s.String(), "ntsc")

	// non-string values are stored via their string representation
	test.ExpectSuccess(t, s.Set([]byte("pal")))
	test.Equate(t, s.Get().(string), "pal")

	test.ExpectSuccess(t, s.Reset())
	test.Equate(t, s.Get().(string), "")
}

func TestHook(t *testing.T) {
	var i prefs.Int

	var hooked prefs.Value
	i.SetHookPost(func(v prefs.Value) error {
		hooked = v
		return nil
	})

	test.ExpectSuccess(t, i.Set(99))
	test.Equate(t, hooked.(int), 99)
}

func TestDiskSaveLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "test.prefs")

	var b prefs.Bool
	var i prefs.Int
	var f prefs.Float
	var s prefs.String

	dsk, err := prefs.NewDisk(pth)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, dsk.Add("test.bool", &b))
	test.ExpectSuccess(t, dsk.Add("test.int", &i))
	test.ExpectSuccess(t, dsk.Add("test.float", &f))
	test.ExpectSuccess(t, dsk.Add("test.string", &s))

	// duplicate key
	test.ExpectFailure(t, dsk.Add("test.bool", &b))

	test.Equate(t, dsk.HasEntry("test.string"), true)
	test.Equate(t, dsk.HasEntry("test.missing"), false)

	test.ExpectSuccess(t, b.Set(true))
	test.ExpectSuccess(t, i.Set(1000000))
	test.ExpectSuccess(t, f.Set(1.5))
	test.ExpectSuccess(t, s.Set("half dozen of the other"))
	test.ExpectSuccess(t, dsk.Save())

	// new disk instance with fresh values loads what was saved
	var b2 prefs.Bool
	var i2 prefs.Int
	var f2 prefs.Float
	var s2 prefs.String

	dsk2, err := prefs.NewDisk(pth)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, dsk2.Add("test.bool", &b2))
	test.ExpectSuccess(t, dsk2.Add("test.int", &i2))
	test.ExpectSuccess(t, dsk2.Add("test.float", &f2))
	test.ExpectSuccess(t, dsk2.Add("test.string", &s2))
	test.ExpectSuccess(t, dsk2.Load())

	test.Equate(t, b2.Get().(bool), true)
	test.Equate(t, i2.Get().(int), 1000000)
	test.Equate(t, f2.String(), "1.500")
	test.Equate(t, s2.Get().(string), "half dozen of the other")
}

func TestDiskMissingFile(t *testing.T) {
	dsk, err := prefs.NewDisk(filepath.Join(t.TempDir(), "does_not_exist.prefs"))
	test.ExpectSuccess(t, err)

	// a missing prefs file is not an error
	test.ExpectSuccess(t, dsk.Load())
}
