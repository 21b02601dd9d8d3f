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

// Package byteio does endian-aware fixed-width reads from a borrowed byte
// slice at a given offset. It underlies the zero-copy ELF32 views in the
// elf32 package: nothing here allocates or copies the source slice.
//
// Bounds checking is the caller's responsibility. A read that runs past
// the end of data will panic with a slice-bounds error, same as indexing
// the slice directly would; the elf32 parser is expected to validate
// offsets before calling in.
package byteio

import "encoding/binary"

// Order selects which byte order a multi-byte read is interpreted with.
type Order int

const (
	LittleEndian Order = iota
	BigEndian
)

func (o Order) byteOrder() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ReadUint8 reads a single byte at offset. Endianness is irrelevant for a
// single byte.
func ReadUint8(data []byte, offset int) uint8 {
	return data[offset]
}

// ReadUint16 reads two bytes at offset, interpreted per order.
func ReadUint16(data []byte, offset int, order Order) uint16 {
	return order.byteOrder().Uint16(data[offset : offset+2])
}

// ReadUint32 reads four bytes at offset, interpreted per order.
func ReadUint32(data []byte, offset int, order Order) uint32 {
	return order.byteOrder().Uint32(data[offset : offset+4])
}

// ReadUint64 reads eight bytes at offset, interpreted per order.
func ReadUint64(data []byte, offset int, order Order) uint64 {
	return order.byteOrder().Uint64(data[offset : offset+8])
}

// WriteUint32 writes v as four bytes at offset, in order. Used by the
// relocator to rewrite branch immediates in place.
func WriteUint32(data []byte, offset int, v uint32, order Order) {
	order.byteOrder().PutUint32(data[offset:offset+4], v)
}
