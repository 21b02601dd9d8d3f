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
	"strings"

	"github.com/armbox/armbox/armerr"
	"github.com/armbox/armbox/armlog"
	"github.com/armbox/armbox/byteio"
)

// branchOpMask selects the condition and opcode bits of an ARM branch
// word; everything below bit 24 is the signed word offset being
// rewritten.
const branchOpMask = 0xFF000000
const branchOffsetMask = 0x00FFFFFF

// isBranch reports whether word's top byte looks like an unconditional
// or conditional B/BL encoding (bits 27:25 = 101).
func isBranch(word uint32) bool {
	return word&0x0E000000 == 0x0A000000
}

// Relocate walks every SHT_REL section in h whose name begins with
// ".rel." and rewrites the branch target it names in place, within the
// section whose name is the relocation section's name with ".rel"
// stripped (sh_info is not consulted). It mutates the bytes backing h.
//
// Only relocations against Branch-family instructions are supported;
// a relocation entry whose target word doesn't decode as a branch, and
// isn't already zero, is reported as armerr.UnsupportedRelocation and
// the load should be aborted.
func Relocate(h FileHeader) error {
	shStrTab, err := h.ShStringTable()
	if err != nil {
		return err
	}

	symtab, strtab, err := symbolTable(h, shStrTab)
	if err != nil {
		return err
	}

	sections := h.SectionHeaders()

	for _, relSec := range sections {
		name := relSec.Name(shStrTab)
		if relSec.Type() != SHTRel || !strings.HasPrefix(name, ".rel.") {
			continue
		}

		targetName := strings.TrimPrefix(name, ".rel")
		target, ok := sectionByName(sections, shStrTab, targetName)
		if !ok {
			return armerr.Errorf(armerr.MalformedElf, "elf32: relocation section %q has no matching target section %q", name, targetName)
		}

		targetData, err := target.SectionData()
		if err != nil {
			return err
		}

		entries, err := relSec.RelocationTableEntries()
		if err != nil {
			return err
		}

		for _, rel := range entries {
			if err := relocateOne(rel, target, targetData, sections, symtab, strtab, h.order()); err != nil {
				return err
			}
		}
	}

	return nil
}

func sectionByName(sections []SectionHeader, shStrTab, name string) (SectionHeader, bool) {
	for _, sh := range sections {
		if sh.Name(shStrTab) == name {
			return sh, true
		}
	}
	return SectionHeader{}, false
}

func symbolTable(h FileHeader, shStrTab string) ([]Symbol, string, error) {
	strtab, err := h.StringTable()
	if err != nil {
		return nil, "", err
	}

	for _, sh := range h.SectionHeaders() {
		if sh.Type() != SHTSymtab {
			continue
		}
		entries, err := sh.SymbolTableEntries()
		if err != nil {
			return nil, "", err
		}
		return entries, strtab, nil
	}

	return nil, "", armerr.Errorf(armerr.MalformedElf, "elf32: no symbol table")
}

func relocateOne(rel Relocation, target SectionHeader, targetData []byte, sections []SectionHeader, symtab []Symbol, strtab string, order byteio.Order) error {
	offset := int(rel.FileOffset())
	if offset < 0 || offset+4 > len(targetData) {
		return armerr.Errorf(armerr.MalformedElf, "elf32: relocation offset %d out of range for section (size %d)", offset, len(targetData))
	}

	symIndex := rel.Symbol()
	if symIndex < 0 || symIndex >= len(symtab) {
		return armerr.Errorf(armerr.MalformedElf, "elf32: relocation references symbol %d out of range (have %d)", symIndex, len(symtab))
	}
	sym := symtab[symIndex]

	symSecIndex := int(sym.SectionIndex())
	if symSecIndex < 0 || symSecIndex >= len(sections) {
		return armerr.Errorf(armerr.MalformedElf, "elf32: relocation symbol %q has section index %d out of range", sym.Name(strtab), symSecIndex)
	}
	symSection := sections[symSecIndex]

	word := byteio.ReadUint32(targetData, offset, order)
	if !isBranch(word) && word != 0 {
		return armerr.Errorf(armerr.UnsupportedRelocation, "elf32: relocation at %q+%#x targets non-branch word %#08x (symbol %q)", target.Name(strtab), offset, word, sym.Name(strtab))
	}
	if word == 0 {
		return nil
	}

	from := int64(target.Offset()) + int64(offset)
	to := int64(sym.Value()) + int64(symSection.Offset())

	disp := (to-from)>>2 - 2
	newWord := (word & branchOpMask) | (uint32(disp) & branchOffsetMask)

	armlog.Logf(logTag, "relocate %q: symbol %q from %#x to %#x, offset %#x", target.Name(strtab), sym.Name(strtab), from, to, disp)

	byteio.WriteUint32(targetData, offset, newWord, order)
	return nil
}
