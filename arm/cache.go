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

// decodeCacheWindow is the number of pre-decoded entries held at once,
// N in spec section 4.8's baseline.
const decodeCacheWindow = 1024

type decodeCacheEntry struct {
	instruction Instruction
	kind        InstructionType
}

// decodeCache is a fixed-size window of pre-decoded instructions
// anchored at a word-aligned windowStart. It never invalidates on a
// memory write within its window: self-modifying code must either
// avoid writing inside the executing window, or the caller must call
// refill explicitly after such a write.
type decodeCache struct {
	windowStart uint32
	entries     [decodeCacheWindow]decodeCacheEntry
	filled      bool
}

func newDecodeCache(mem *Memory, pc uint32) *decodeCache {
	c := &decodeCache{}
	c.refill(mem, pc)
	return c
}

// refill rebases the window to start and re-decodes every entry from
// memory.
func (c *decodeCache) refill(mem *Memory, start uint32) {
	c.windowStart = start
	for i := range c.entries {
		word := mem.ReadWord(start + uint32(i)*4)
		c.entries[i] = decodeCacheEntry{
			instruction: Instruction(word),
			kind:        Decode(word),
		}
	}
	c.filled = true
}

func (c *decodeCache) inWindow(pc uint32) bool {
	if pc < c.windowStart {
		return false
	}
	offset := pc - c.windowStart
	return offset < decodeCacheWindow*4
}

// fetch returns the decoded entry at pc, refilling the window around
// pc first if it falls outside the current window.
func (c *decodeCache) fetch(mem *Memory, pc uint32) (Instruction, InstructionType) {
	if !c.filled || !c.inWindow(pc) {
		c.refill(mem, pc)
	}
	index := (pc - c.windowStart) / 4
	entry := c.entries[index]
	return entry.instruction, entry.kind
}
