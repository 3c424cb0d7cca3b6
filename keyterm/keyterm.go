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

// Package keyterm puts the controlling terminal into cbreak mode so that
// single keypresses can control a running emulation. There is deliberately
// no command grammar; keys map directly onto supervisor operations.
//
// Keys recognised by the Loop() function:
//
//	space   pause or resume
//	s       step one instruction while paused
//	q       quit
package keyterm

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Key is a keypress translated into its emulation meaning.
type Key int

// List of valid Key values.
const (
	// pause when running, resume when paused
	KeyToggle Key = iota

	KeyStep
	KeyQuit
)

// KeyTerm is a posix terminal prepared for single-key input.
type KeyTerm struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// New is the preferred method of initialisation for the KeyTerm type. The
// input file must be a terminal.
func New(input *os.File) (*KeyTerm, error) {
	kt := &KeyTerm{input: input}

	err := termios.Tcgetattr(input.Fd(), &kt.canAttr)
	if err != nil {
		return nil, fmt.Errorf("keyterm: %w", err)
	}
	termios.Cfmakecbreak(&kt.cbreakAttr)

	return kt, nil
}

// CBreakMode puts the terminal into cbreak mode. Keypresses are delivered
// immediately, without waiting for a newline.
func (kt *KeyTerm) CBreakMode() error {
	err := termios.Tcsetattr(kt.input.Fd(), termios.TCIFLUSH, &kt.cbreakAttr)
	if err != nil {
		return fmt.Errorf("keyterm: %w", err)
	}
	return nil
}

// CanonicalMode puts the terminal back into normal, everyday canonical mode.
// Always restore the terminal before the program exits.
func (kt *KeyTerm) CanonicalMode() error {
	err := termios.Tcsetattr(kt.input.Fd(), termios.TCIFLUSH, &kt.canAttr)
	if err != nil {
		return fmt.Errorf("keyterm: %w", err)
	}
	return nil
}

// Loop reads keypresses and sends the recognised ones down the keys channel.
// Unrecognised keys are ignored. The loop ends on a read error or once a
// quit key has been sent. Intended to be run in its own goroutine.
func (kt *KeyTerm) Loop(keys chan<- Key) {
	buf := make([]byte, 1)
	for {
		n, err := kt.input.Read(buf)
		if err != nil || n == 0 {
			return
		}

		switch buf[0] {
		case ' ':
			keys <- KeyToggle
		case 's', 'S':
			keys <- KeyStep
		case 'q', 'Q', 0x03:
			keys <- KeyQuit
			return
		}
	}
}
