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

// symbolEntrySize is the length in bytes of one 32-bit symbol table
// entry (st_name, st_value, st_size, st_info, st_other, st_shndx).
const symbolEntrySize = 16

// Symbol is a zero-copy view over one ELF32 symbol table entry.
type Symbol struct {
	data  []byte
	order byteio.Order
}

// NameOffset reports the st_name field: an offset into the associated
// string table.
func (s Symbol) NameOffset() uint32 {
	return byteio.ReadUint32(s.data, 0x00, s.order)
}

// Value reports the st_value field.
func (s Symbol) Value() uint32 {
	return byteio.ReadUint32(s.data, 0x04, s.order)
}

// Size reports the st_size field.
func (s Symbol) Size() uint32 {
	return byteio.ReadUint32(s.data, 0x08, s.order)
}

// Info reports the raw st_info field (binding in the high nibble, type
// in the low nibble).
func (s Symbol) Info() uint8 {
	return byteio.ReadUint8(s.data, 0x0C)
}

// SectionIndex reports the st_shndx field: the section this symbol is
// defined in, or zero (SHN_UNDEF) for an undefined reference.
func (s Symbol) SectionIndex() uint16 {
	return byteio.ReadUint16(s.data, 0x0E, s.order)
}

// Defined reports whether this symbol resolves to a section in this
// file, rather than being an external reference.
func (s Symbol) Defined() bool {
	return s.SectionIndex() != 0
}

// Name resolves this symbol's name against a string table blob (as
// returned by FileHeader.StringTable).
func (s Symbol) Name(stringTable string) string {
	return sectionName(stringTable, s.NameOffset())
}
