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

package elf32

import "github.com/armbox/armbox/byteio"

// relocationEntrySize is the length in bytes of one 32-bit Rel entry
// (r_offset, r_info). Rela entries, which carry an additional addend,
// are not produced by the toolchains this loader targets and are not
// supported.
const relocationEntrySize = 8

// Relocation is a zero-copy view over one ELF32 Rel entry.
type Relocation struct {
	data  []byte
	order byteio.Order
}

// FileOffset reports the r_offset field: where in the section being
// relocated the fixup applies.
func (r Relocation) FileOffset() uint32 {
	return byteio.ReadUint32(r.data, 0x00, r.order)
}

func (r Relocation) info() uint32 {
	return byteio.ReadUint32(r.data, 0x04, r.order)
}

// Symbol reports the symbol table index this relocation refers to, the
// upper 24 bits of r_info.
func (r Relocation) Symbol() int {
	return int(r.info() >> 8)
}

// Type reports the relocation type, the low byte of r_info.
func (r Relocation) Type() uint8 {
	return uint8(r.info())
}
