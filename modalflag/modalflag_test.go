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

package modalflag_test

import (
	"testing"

	"github.com/aios-project/aios6502/modalflag"
	"github.com/aios-project/aios6502/test"
)

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"program.bin"})
	md.AddSubModes("RUN", "PERFORMANCE")

	r, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.Equate(t, r == modalflag.ParseContinue, true)
	test.Equate(t, md.Mode(), "RUN")
	test.Equate(t, md.GetArg(0), "program.bin")
}

func TestNamedSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"performance", "program.bin"})
	md.AddSubModes("RUN", "PERFORMANCE")

	r, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.Equate(t, r == modalflag.ParseContinue, true)
	test.Equate(t, md.Mode(), "PERFORMANCE")

	// sub-mode comparison is case insensitive and the argument is consumed
	md.NewMode()
	r, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.Equate(t, r == modalflag.ParseContinue, true)
	test.Equate(t, md.GetArg(0), "program.bin")
}

func TestModeFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"run", "-speed", "2.5", "program.bin"})
	md.AddSubModes("RUN", "PERFORMANCE")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.Equate(t, md.Mode(), "RUN")

	md.NewMode()
	speed := md.AddFloat64("speed", 1.0, "speed multiplier")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.Equate(t, *speed == 2.5, true)
	test.Equate(t, md.GetArg(0), "program.bin")
	test.Equate(t, md.Path(), "RUN")
}

func TestUnrecognisedFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-no-such-flag"})

	r, err := md.Parse()
	test.ExpectFailure(t, err)
	test.Equate(t, r == modalflag.ParseError, true)
}
