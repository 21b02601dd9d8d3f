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

package arm_test

import (
	"testing"

	"github.com/armbox/armbox/arm"
)

func TestMemoryReadWriteWord(t *testing.T) {
	mem := arm.NewMemory(64)
	mem.WriteWord(4, 0x12345678)

	if got := mem.ReadWord(4); got != 0x12345678 {
		t.Errorf("ReadWord(4) = %#x, want 0x12345678", got)
	}
	if got := mem.ReadByte(4); got != 0x78 {
		t.Errorf("ReadByte(4) = %#x, want 0x78 (little-endian low byte)", got)
	}
	if got := mem.ReadByte(7); got != 0x12 {
		t.Errorf("ReadByte(7) = %#x, want 0x12", got)
	}
}

func TestMemoryOutOfRangeReadIsZero(t *testing.T) {
	mem := arm.NewMemory(16)
	if got := mem.ReadByte(100); got != 0 {
		t.Errorf("ReadByte(100) = %#x, want 0", got)
	}
	if got := mem.ReadWord(100); got != 0 {
		t.Errorf("ReadWord(100) = %#x, want 0", got)
	}
}

func TestMemoryOutOfRangeWriteSetsStickyFlag(t *testing.T) {
	mem := arm.NewMemory(16)
	if mem.InvalidWrite() {
		t.Fatal("InvalidWrite() true before any write")
	}

	mem.WriteByte(100, 1)
	if !mem.InvalidWrite() {
		t.Error("InvalidWrite() false after an out-of-range write")
	}

	mem.ClearInvalidWrite()
	if mem.InvalidWrite() {
		t.Error("InvalidWrite() true after ClearInvalidWrite")
	}

	mem.WriteWord(0, 0xDEADBEEF)
	if mem.InvalidWrite() {
		t.Error("InvalidWrite() true after an in-range write")
	}
}

func TestMemoryLoad(t *testing.T) {
	mem := arm.NewMemory(16)
	mem.Load(4, []byte{0xAA, 0xBB, 0xCC, 0xDD})

	if got := mem.ReadWord(4); got != 0xDDCCBBAA {
		t.Errorf("ReadWord(4) after Load = %#x, want 0xDDCCBBAA", got)
	}
}
