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

// Package elf32 projects typed views over an ELF32 relocatable object
// image without copying the underlying bytes. Every exported type here
// borrows a slice of the file's byte buffer; none of them outlive it.
//
// The parser is deliberately permissive: malformed input never panics.
// Dubious fields resolve to an Unknown sentinel or a zero value, and the
// caller (ordinarily the loader package) decides whether to proceed.
package elf32

import (
	"github.com/armbox/armbox/armerr"
	"github.com/armbox/armbox/armlog"
	"github.com/armbox/armbox/byteio"
)

const logTag = "ELF32"

// magic is the four bytes every ELF file begins with.
var magic = [4]byte{0x7F, 'E', 'L', 'F'}

// Class is the file's bit width, read from EI_CLASS.
type Class uint8

const (
	ClassUnknown Class = iota
	Class32
	Class64
)

// Data is the file's byte order, read from EI_DATA.
type Data uint8

const (
	DataUnknown Data = iota
	DataLittleEndian
	DataBigEndian
)

// ObjectType is the file's ET_* kind, read from e_type.
type ObjectType uint16

const (
	TypeNone ObjectType = 0
	TypeRel  ObjectType = 1
	TypeExec ObjectType = 2
	TypeDyn  ObjectType = 3
	TypeCore ObjectType = 4
)

// Machine is the file's target architecture, read from e_machine.
type Machine uint16

const (
	MachineNone Machine = 0
	MachineARM  Machine = 40
)

// fileHeaderSize is the minimum length of bytes required to read every
// fixed-position 32-bit file header field (up to and including
// e_shstrndx at offset 0x32, two bytes wide).
const fileHeaderSize = 0x34

// FileHeader is a zero-copy view over an ELF32 file header.
type FileHeader struct {
	data []byte
}

// NewFileHeader wraps data as a FileHeader view. data is borrowed, not
// copied; it must outlive the returned FileHeader and any views derived
// from it.
func NewFileHeader(data []byte) FileHeader {
	return FileHeader{data: data}
}

// IsELFFile reports whether data begins with the four-byte ELF magic.
func (h FileHeader) IsELFFile() bool {
	if len(h.data) < 4 {
		return false
	}
	return h.data[0] == magic[0] && h.data[1] == magic[1] && h.data[2] == magic[2] && h.data[3] == magic[3]
}

// Class reports the EI_CLASS byte, or ClassUnknown if the file is too
// short to contain it.
func (h FileHeader) Class() Class {
	if len(h.data) < 5 {
		return ClassUnknown
	}
	switch h.data[4] {
	case 1:
		return Class32
	case 2:
		return Class64
	default:
		return ClassUnknown
	}
}

// Bits32 reports whether the file is the 32-bit class.
func (h FileHeader) Bits32() bool {
	return h.Class() == Class32
}

// ByteOrder reports the EI_DATA byte, or DataUnknown if the file is too
// short to contain it.
func (h FileHeader) ByteOrder() Data {
	if len(h.data) < 6 {
		return DataUnknown
	}
	switch h.data[5] {
	case 1:
		return DataLittleEndian
	case 2:
		return DataBigEndian
	default:
		return DataUnknown
	}
}

// LittleEndian reports whether the file is little-endian.
func (h FileHeader) LittleEndian() bool {
	return h.ByteOrder() == DataLittleEndian
}

func (h FileHeader) order() byteio.Order {
	if h.ByteOrder() == DataBigEndian {
		return byteio.BigEndian
	}
	return byteio.LittleEndian
}

// valid reports whether the buffer is at least long enough to contain
// every fixed-position field this view reads.
func (h FileHeader) valid() bool {
	return h.IsELFFile() && len(h.data) >= fileHeaderSize
}

// Type reports the e_type field.
func (h FileHeader) Type() ObjectType {
	if !h.valid() {
		return TypeNone
	}
	return ObjectType(byteio.ReadUint16(h.data, 0x10, h.order()))
}

// Machine reports the e_machine field.
func (h FileHeader) Machine() Machine {
	if !h.valid() {
		return MachineNone
	}
	return Machine(byteio.ReadUint16(h.data, 0x12, h.order()))
}

// Entry reports the e_entry field.
func (h FileHeader) Entry() uint32 {
	if !h.valid() {
		return 0
	}
	return byteio.ReadUint32(h.data, 0x18, h.order())
}

// SectionHeaderOffset reports the e_shoff field.
func (h FileHeader) SectionHeaderOffset() uint32 {
	if !h.valid() {
		return 0
	}
	return byteio.ReadUint32(h.data, 0x20, h.order())
}

// SectionHeaderEntrySize reports the e_shentsize field.
func (h FileHeader) SectionHeaderEntrySize() uint16 {
	if !h.valid() {
		return 0
	}
	return byteio.ReadUint16(h.data, 0x2E, h.order())
}

// SectionHeaderCount reports the e_shnum field.
func (h FileHeader) SectionHeaderCount() uint16 {
	if !h.valid() {
		return 0
	}
	return byteio.ReadUint16(h.data, 0x30, h.order())
}

// SectionHeaderStringTableIndex reports the e_shstrndx field.
func (h FileHeader) SectionHeaderStringTableIndex() uint16 {
	if !h.valid() {
		return 0
	}
	return byteio.ReadUint16(h.data, 0x32, h.order())
}

// SectionHeader returns the i'th section header view. It returns an
// error if i is out of range or the section header table doesn't fit in
// data.
func (h FileHeader) SectionHeader(i int) (SectionHeader, error) {
	count := int(h.SectionHeaderCount())
	if i < 0 || i >= count {
		return SectionHeader{}, armerr.Errorf(armerr.MalformedElf, "elf32: section header index %d out of range (have %d)", i, count)
	}

	entSize := int(h.SectionHeaderEntrySize())
	off := int(h.SectionHeaderOffset()) + i*entSize
	if off < 0 || off+entSize > len(h.data) {
		return SectionHeader{}, armerr.Errorf(armerr.MalformedElf, "elf32: section header %d at offset %d does not fit in file", i, off)
	}

	return SectionHeader{file: h.data, offset: off, order: h.order()}, nil
}

// SectionHeaders returns every section header view, in file order.
// Malformed entries are skipped rather than aborting the whole walk;
// callers that need to know about a skip should call SectionHeader
// directly.
func (h FileHeader) SectionHeaders() []SectionHeader {
	count := int(h.SectionHeaderCount())
	out := make([]SectionHeader, 0, count)
	for i := 0; i < count; i++ {
		sh, err := h.SectionHeader(i)
		if err != nil {
			armlog.Logf(logTag, "skipping section header %d: %v", i, err)
			continue
		}
		out = append(out, sh)
	}
	return out
}

// ShStringTable returns the section-header string table: the section
// pointed to by e_shstrndx.
func (h FileHeader) ShStringTable() (string, error) {
	sh, err := h.SectionHeader(int(h.SectionHeaderStringTableIndex()))
	if err != nil {
		return "", armerr.Errorf(armerr.MalformedElf, "elf32: section header string table: %v", err)
	}
	data, err := sh.SectionData()
	if err != nil {
		return "", armerr.Errorf(armerr.MalformedElf, "elf32: section header string table: %v", err)
	}
	return string(data), nil
}

// StringTable locates and returns the section named ".strtab".
func (h FileHeader) StringTable() (string, error) {
	shStrTab, err := h.ShStringTable()
	if err != nil {
		return "", err
	}

	for _, sh := range h.SectionHeaders() {
		if sh.Name(shStrTab) == ".strtab" {
			data, err := sh.SectionData()
			if err != nil {
				return "", armerr.Errorf(armerr.MalformedElf, "elf32: .strtab: %v", err)
			}
			return string(data), nil
		}
	}

	return "", armerr.Errorf(armerr.MalformedElf, "elf32: no .strtab section")
}

// sectionName reads a NUL-terminated string out of a string table blob
// at the given offset.
func sectionName(stringTable string, offset uint32) string {
	if int(offset) >= len(stringTable) {
		return ""
	}
	rest := stringTable[offset:]
	if i := indexNUL(rest); i >= 0 {
		return rest[:i]
	}
	return rest
}

func indexNUL(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return i
		}
	}
	return -1
}
