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

import (
	"github.com/armbox/armbox/armerr"
	"github.com/armbox/armbox/byteio"
)

// SectionType is the sh_type field of a section header.
type SectionType uint32

const (
	SHTNull     SectionType = 0x0
	SHTProgbits SectionType = 0x1
	SHTSymtab   SectionType = 0x2
	SHTStrtab   SectionType = 0x3
	SHTRela     SectionType = 0x4
	SHTHash     SectionType = 0x5
	SHTDynamic  SectionType = 0x6
	SHTNote     SectionType = 0x7
	SHTNobits   SectionType = 0x8
	SHTRel      SectionType = 0x9
	SHTDynsym   SectionType = 0xB
	SHTUnknown  SectionType = 0xFFFFFFFF
)

// sectionHeaderSize is the length in bytes of one 32-bit section header
// entry.
const sectionHeaderSize = 40

// SectionHeader is a zero-copy view over one ELF32 section header entry.
type SectionHeader struct {
	file   []byte
	offset int
	order  byteio.Order
}

func (sh SectionHeader) fits() bool {
	return sh.offset >= 0 && sh.offset+sectionHeaderSize <= len(sh.file)
}

// NameOffset reports the sh_name field.
func (sh SectionHeader) NameOffset() uint32 {
	if !sh.fits() {
		return 0
	}
	return byteio.ReadUint32(sh.file, sh.offset+0x00, sh.order)
}

// Type reports the sh_type field, or SHTUnknown if the header doesn't
// fit in the file.
func (sh SectionHeader) Type() SectionType {
	if !sh.fits() {
		return SHTUnknown
	}
	return SectionType(byteio.ReadUint32(sh.file, sh.offset+0x04, sh.order))
}

// Offset reports the sh_offset field: where this section's data begins
// in the file.
func (sh SectionHeader) Offset() uint32 {
	if !sh.fits() {
		return 0
	}
	return byteio.ReadUint32(sh.file, sh.offset+0x10, sh.order)
}

// Size reports the sh_size field.
func (sh SectionHeader) Size() uint32 {
	if !sh.fits() {
		return 0
	}
	return byteio.ReadUint32(sh.file, sh.offset+0x14, sh.order)
}

// Link reports the sh_link field.
func (sh SectionHeader) Link() uint32 {
	if !sh.fits() {
		return 0
	}
	return byteio.ReadUint32(sh.file, sh.offset+0x18, sh.order)
}

// Info reports the sh_info field.
func (sh SectionHeader) Info() uint32 {
	if !sh.fits() {
		return 0
	}
	return byteio.ReadUint32(sh.file, sh.offset+0x1C, sh.order)
}

// EntrySize reports the sh_entsize field: the size of one entry, for
// sections that hold a table of fixed-size records (symbols,
// relocations).
func (sh SectionHeader) EntrySize() uint32 {
	if !sh.fits() {
		return 0
	}
	return byteio.ReadUint32(sh.file, sh.offset+0x24, sh.order)
}

// Name resolves this section's name against a string table blob (as
// returned by FileHeader.ShStringTable).
func (sh SectionHeader) Name(shStringTable string) string {
	return sectionName(shStringTable, sh.NameOffset())
}

// SectionData returns the subslice of the file's bytes that this
// section covers.
func (sh SectionHeader) SectionData() ([]byte, error) {
	off, size := int(sh.Offset()), int(sh.Size())
	if off < 0 || size < 0 || off+size > len(sh.file) {
		return nil, armerr.Errorf(armerr.MalformedElf, "elf32: section data [%d:%d] out of range (file is %d bytes)", off, off+size, len(sh.file))
	}
	return sh.file[off : off+size], nil
}

// SymbolTableEntriesCount reports how many Symbol records this section
// holds, zero unless the section's type is SHTSymtab or SHTDynsym.
func (sh SectionHeader) SymbolTableEntriesCount() int {
	if sh.Type() != SHTSymtab && sh.Type() != SHTDynsym {
		return 0
	}
	if symbolEntrySize == 0 {
		return 0
	}
	return int(sh.Size()) / symbolEntrySize
}

// SymbolTableEntries yields every Symbol record in this section. It
// returns an error (rather than a partial slice) if the section's data
// doesn't fit in the file.
func (sh SectionHeader) SymbolTableEntries() ([]Symbol, error) {
	data, err := sh.SectionData()
	if err != nil {
		return nil, err
	}

	n := sh.SymbolTableEntriesCount()
	out := make([]Symbol, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Symbol{data: data[i*symbolEntrySize : (i+1)*symbolEntrySize], order: sh.order})
	}
	return out, nil
}

// RelocationTableEntriesCount reports how many Relocation records this
// section holds, zero unless the section's type is SHTRel.
func (sh SectionHeader) RelocationTableEntriesCount() int {
	if sh.Type() != SHTRel {
		return 0
	}
	return int(sh.Size()) / relocationEntrySize
}

// RelocationTableEntries yields every Relocation record in this
// section.
func (sh SectionHeader) RelocationTableEntries() ([]Relocation, error) {
	data, err := sh.SectionData()
	if err != nil {
		return nil, err
	}

	n := sh.RelocationTableEntriesCount()
	out := make([]Relocation, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Relocation{data: data[i*relocationEntrySize : (i+1)*relocationEntrySize], order: sh.order})
	}
	return out, nil
}
