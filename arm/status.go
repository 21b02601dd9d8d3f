// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package arm

import "strings"

// status is the subset of CPSR this emulator tracks: the four
// condition flags. Mode bits, interrupt masks and the rest of the
// real CPSR have no meaning in a user-mode-only emulator and are not
// modelled.
type status struct {
	negative bool
	zero     bool
	carry    bool
	overflow bool
}

func (sr status) String() string {
	s := strings.Builder{}
	s.WriteString("flags: ")

	flag := func(set bool, upper, lower rune) {
		if set {
			s.WriteRune(upper)
		} else {
			s.WriteRune(lower)
		}
	}

	flag(sr.negative, 'N', 'n')
	flag(sr.zero, 'Z', 'z')
	flag(sr.carry, 'C', 'c')
	flag(sr.overflow, 'V', 'v')

	return s.String()
}

// asWord packs the flags into the top four bits of a CPSR-shaped
// word, for presentation and tracing purposes only; no other part of
// CPSR is modelled so the low 28 bits are always zero.
func (sr status) asWord() uint32 {
	var w uint32
	if sr.negative {
		w |= 1 << 31
	}
	if sr.zero {
		w |= 1 << 30
	}
	if sr.carry {
		w |= 1 << 29
	}
	if sr.overflow {
		w |= 1 << 28
	}
	return w
}
