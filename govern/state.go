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

// Package govern defines the states a supervised emulation can be in and the
// legal transitions between them.
package govern

// State indicates the emulation's state.
type State int

// List of possible emulation states.
//
// Stopped is the default state. It is returned to whenever a program run
// concludes normally.
//
// Error is entered when execution has failed. Unlike Stopped, it is sticky: a
// new program load or an explicit reset is needed to leave it.
const (
	Stopped State = iota
	Running
	Paused
	Error
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Error:
		return "error"
	}

	return ""
}

// ParseState converts a state name, as returned by String(), back into a
// State. The second return value is false if the name is not recognised.
func ParseState(s string) (State, bool) {
	switch s {
	case "stopped":
		return Stopped, true
	case "running":
		return Running, true
	case "paused":
		return Paused, true
	case "error":
		return Error, true
	}
	return Stopped, false
}

// Permitted checks whether the transition from one state to another makes
// sense.
//
// Rules:
//
//  1. any state can transition to itself
//
//  2. Running can only be entered from Stopped (a fresh run) or from Paused
//     (a resume)
//
//  3. Paused can only be entered from Running
//
//  4. Stopped and Error can be entered from anywhere
func Permitted(from State, to State) bool {
	if from == to {
		return true
	}
	switch to {
	case Running:
		return from == Stopped || from == Paused
	case Paused:
		return from == Running
	case Stopped, Error:
		return true
	}
	return false
}
