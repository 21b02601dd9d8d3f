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

package elf32_test

import (
	"testing"

	"github.com/armbox/armbox/elf32"
)

type relocFixture struct {
	data       []byte
	textOffset int
}

// buildRelocFixture assembles a minimal ELF32 object with a .text
// section holding one branch word, a .rel.text section with one
// relocation entry against a symbol defined later in .text, a symtab
// and strtab, and a shstrtab naming every section.
func buildRelocFixture(branchWord uint32, symbolValue uint32) relocFixture {
	le16 := func(b []byte, off int, v uint16) { b[off], b[off+1] = byte(v), byte(v>>8) }
	le32 := func(b []byte, off int, v uint32) {
		b[off], b[off+1], b[off+2], b[off+3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
	}

	const nSections = 6 // null, .text, .rel.text, .symtab, .strtab, .shstrtab

	header := make([]byte, 0x34)
	copy(header, []byte{0x7F, 'E', 'L', 'F', 1, 1})
	le16(header, 0x10, 1)
	le16(header, 0x12, 40)
	le32(header, 0x20, 0x34)
	le16(header, 0x2E, sectionHeaderSize)
	le16(header, 0x30, nSections)
	le16(header, 0x32, 5)

	data := append([]byte{}, header...)
	data = append(data, make([]byte, nSections*sectionHeaderSize)...)

	textOffset := len(data)
	text := make([]byte, 4)
	le32(text, 0, branchWord)
	data = append(data, text...)

	relOffset := len(data)
	rel := make([]byte, 8)
	le32(rel, 0x00, 0) // r_offset within .text
	le32(rel, 0x04, (0<<8)|0)
	data = append(data, rel...)

	symOffset := len(data)
	sym := make([]byte, 16)
	le32(sym, 0x00, 1) // st_name -> "target"
	le32(sym, 0x04, symbolValue)
	sym[0x0E] = 1 // st_shndx = .text
	data = append(data, sym...)

	strOffset := len(data)
	strtab := "\x00target\x00"
	data = append(data, []byte(strtab)...)

	shStrOffset := len(data)
	shstrtab := "\x00.text\x00.rel.text\x00.symtab\x00.strtab\x00.shstrtab\x00"
	data = append(data, []byte(shstrtab)...)

	put := func(i int, nameOff uint32, name string, shType uint32, offset, size, link, info uint32) {
		at := 0x34 + i*sectionHeaderSize
		le32(data, at+0x00, nameOff)
		le32(data, at+0x04, shType)
		le32(data, at+0x10, offset)
		le32(data, at+0x14, size)
		le32(data, at+0x18, link)
		le32(data, at+0x1C, info)
		_ = name
	}

	nameOffsetOf := func(full, want string) uint32 {
		idx := 0
		for {
			n := len(want)
			if full[idx:idx+n] == want {
				return uint32(idx)
			}
			idx++
		}
	}

	put(0, 0, "", uint32(elf32.SHTNull), 0, 0, 0, 0)
	put(1, nameOffsetOf(shstrtab, ".text"), ".text", uint32(elf32.SHTProgbits), uint32(textOffset), uint32(len(text)), 0, 0)
	put(2, nameOffsetOf(shstrtab, ".rel.text"), ".rel.text", uint32(elf32.SHTRel), uint32(relOffset), uint32(len(rel)), 3, 1)
	put(3, nameOffsetOf(shstrtab, ".symtab"), ".symtab", uint32(elf32.SHTSymtab), uint32(symOffset), uint32(len(sym)), 4, 0)
	put(4, nameOffsetOf(shstrtab, ".strtab"), ".strtab", uint32(elf32.SHTStrtab), uint32(strOffset), uint32(len(strtab)), 0, 0)
	put(5, nameOffsetOf(shstrtab, ".shstrtab"), ".shstrtab", uint32(elf32.SHTStrtab), uint32(shStrOffset), uint32(len(shstrtab)), 0, 0)

	return relocFixture{data: data, textOffset: textOffset}
}

func TestRelocateRewritesBranch(t *testing.T) {
	fixture := buildRelocFixture(0xEA000000, 0x100)
	h := elf32.NewFileHeader(fixture.data)

	if err := elf32.Relocate(h); err != nil {
		t.Fatalf("Relocate() error: %v", err)
	}

	word := uint32(fixture.data[fixture.textOffset]) |
		uint32(fixture.data[fixture.textOffset+1])<<8 |
		uint32(fixture.data[fixture.textOffset+2])<<16 |
		uint32(fixture.data[fixture.textOffset+3])<<24

	// from=textOffset, to=0x100+textOffset, disp=(0x100>>2)-2=0x3E
	want := uint32(0xEA00003E)
	if word != want {
		t.Errorf("relocated word = %#08x, want %#08x", word, want)
	}
}

func TestRelocateLeavesZeroWordAlone(t *testing.T) {
	fixture := buildRelocFixture(0, 0x100)
	h := elf32.NewFileHeader(fixture.data)

	if err := elf32.Relocate(h); err != nil {
		t.Fatalf("Relocate() error: %v", err)
	}

	word := uint32(fixture.data[fixture.textOffset])
	if word != 0 {
		t.Errorf("zero word was modified: %#x", word)
	}
}

func TestRelocateRejectsNonBranchTarget(t *testing.T) {
	fixture := buildRelocFixture(0xE3A01001, 0x100) // MOV R1, #1 - not a branch
	h := elf32.NewFileHeader(fixture.data)

	err := elf32.Relocate(h)
	if err == nil {
		t.Fatalf("Relocate() error = nil, want UnsupportedRelocation")
	}
}
