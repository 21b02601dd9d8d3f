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

import "testing"

func TestDecodeCacheFetchWithinWindow(t *testing.T) {
	mem := NewMemory(decodeCacheWindow * 4 * 2)
	mem.WriteWord(0, 0xE3A00001)
	mem.WriteWord(4, 0xEA000000)

	c := newDecodeCache(mem, 0)

	ins, kind := c.fetch(mem, 0)
	if uint32(ins) != 0xE3A00001 || kind != DataProcessing {
		t.Errorf("fetch(0) = (%#08x, %s), want (0xE3A00001, DataProcessing)", uint32(ins), kind)
	}

	ins, kind = c.fetch(mem, 4)
	if uint32(ins) != 0xEA000000 || kind != Branch {
		t.Errorf("fetch(4) = (%#08x, %s), want (0xEA000000, Branch)", uint32(ins), kind)
	}
}

func TestDecodeCacheRefillsOutsideWindow(t *testing.T) {
	mem := NewMemory(decodeCacheWindow * 4 * 4)
	far := uint32(decodeCacheWindow * 4 * 2)
	mem.WriteWord(far, 0xEB000000)

	c := newDecodeCache(mem, 0)
	if c.inWindow(far) {
		t.Fatal("inWindow(far) true before refill, test setup is wrong")
	}

	ins, kind := c.fetch(mem, far)
	if uint32(ins) != 0xEB000000 || kind != Branch {
		t.Errorf("fetch(far) = (%#08x, %s), want (0xEB000000, Branch)", uint32(ins), kind)
	}
	if c.windowStart != far {
		t.Errorf("windowStart = %#x after refill, want %#x", c.windowStart, far)
	}
}

func TestDecodeCacheDoesNotSeeWritesWithinWindow(t *testing.T) {
	mem := NewMemory(decodeCacheWindow * 4 * 2)
	mem.WriteWord(0, 0xE3A00001)

	c := newDecodeCache(mem, 0)
	mem.WriteWord(0, 0xEA000000)

	_, kind := c.fetch(mem, 0)
	if kind != DataProcessing {
		t.Errorf("fetch(0) after in-window write = %s, want stale DataProcessing (cache does not auto-invalidate)", kind)
	}
}
