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

// Package loader turns an ELF32 relocatable object file into a CPU
// ready to run: it validates the file header, applies the branch
// relocator, copies the image into a fresh Memory at the configured
// user RAM start, and resolves the entry point from the "main" symbol.
package loader

import (
	"github.com/armbox/armbox/arm"
	"github.com/armbox/armbox/armconfig"
	"github.com/armbox/armbox/armerr"
	"github.com/armbox/armbox/armlog"
	"github.com/armbox/armbox/elf32"
)

const logTag = "loader"

// entrySymbol is the name the loader resolves the entry point from.
const entrySymbol = "main"

// Load validates image as a little-endian 32-bit ARM relocatable
// object file, relocates its branch instructions, copies it into a
// fresh Memory sized per cfg, and returns a CPU primed by SetupRun at
// the resolved entry point. The caller drives execution from there
// with CPU.Run or repeated CPU.NextOperation calls.
func Load(image []byte, cfg armconfig.Config) (*arm.CPU, error) {
	h := elf32.NewFileHeader(image)

	if !h.IsELFFile() {
		return nil, armerr.Errorf(armerr.MalformedElf, "loader: not an ELF file")
	}
	if !h.Bits32() {
		return nil, armerr.Errorf(armerr.MalformedElf, "loader: not a 32-bit ELF file")
	}
	if !h.LittleEndian() {
		return nil, armerr.Errorf(armerr.MalformedElf, "loader: not a little-endian ELF file")
	}
	if h.Machine() != elf32.MachineARM {
		return nil, armerr.Errorf(armerr.MalformedElf, "loader: machine %d is not ARM", h.Machine())
	}
	if h.Type() != elf32.TypeRel {
		return nil, armerr.Errorf(armerr.MalformedElf, "loader: type %d is not relocatable", h.Type())
	}

	if err := elf32.Relocate(h); err != nil {
		return nil, armerr.Errorf(armerr.Other, "loader: relocate: %v", err)
	}

	entry, err := entryPoint(h)
	if err != nil {
		return nil, err
	}

	mem := arm.NewMemory(int(cfg.RAMSize))
	writeMemoryMap(mem, cfg)
	mem.Load(armconfig.UserRAMStart, image)

	cpu := arm.NewCPU(mem, cfg)
	cpu.SetupRun(entry + armconfig.UserRAMStart)

	armlog.Logf(logTag, "loaded %d byte image, entry=%#x", len(image), entry+armconfig.UserRAMStart)
	return cpu, nil
}

// entryPoint resolves the "main" symbol's (section_offset + value), per
// spec section 6's ELF32 input contract.
func entryPoint(h elf32.FileHeader) (uint32, error) {
	strTab, err := h.StringTable()
	if err != nil {
		return 0, armerr.Errorf(armerr.MalformedElf, "loader: %v", err)
	}

	sections := h.SectionHeaders()
	for _, sh := range sections {
		if sh.Type() != elf32.SHTSymtab {
			continue
		}
		symbols, err := sh.SymbolTableEntries()
		if err != nil {
			return 0, armerr.Errorf(armerr.MalformedElf, "loader: symbol table: %v", err)
		}
		for _, sym := range symbols {
			if sym.Name(strTab) != entrySymbol {
				continue
			}
			if !sym.Defined() {
				return 0, armerr.Errorf(armerr.MalformedElf, "loader: %q symbol is undefined", entrySymbol)
			}
			secIdx := int(sym.SectionIndex())
			if secIdx < 0 || secIdx >= len(sections) {
				return 0, armerr.Errorf(armerr.MalformedElf, "loader: %q symbol section index %d out of range", entrySymbol, secIdx)
			}
			return sym.Value() + sections[secIdx].Offset(), nil
		}
	}

	return 0, armerr.Errorf(armerr.MalformedElf, "loader: no %q symbol", entrySymbol)
}

// writeMemoryMap seeds the register block at the base of RAM, per spec
// section 6's memory map.
func writeMemoryMap(mem *arm.Memory, cfg armconfig.Config) {
	mem.WriteWord(armconfig.RegTotalRAMSize, cfg.RAMSize)
	mem.WriteByte(armconfig.RegScreenWidth, uint8(cfg.ScreenWidth))
	mem.WriteByte(armconfig.RegScreenWidth+1, uint8(cfg.ScreenWidth>>8))
	mem.WriteByte(armconfig.RegScreenHeight, uint8(cfg.ScreenHeight))
	mem.WriteByte(armconfig.RegScreenHeight+1, uint8(cfg.ScreenHeight>>8))
	mem.WriteByte(armconfig.RegScreenBPP, cfg.ScreenBPP)
	mem.WriteWord(armconfig.RegFramebufferAddr, cfg.FramebufferAddr)
}
