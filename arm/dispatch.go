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

import "math/bits"

func (cpu *CPU) dispatch(kind InstructionType, ins Instruction) {
	switch kind {
	case DataProcessing:
		cpu.dataProcessing(DataProcessingFields(ins))
	case MultiplyLong:
		cpu.multiplyLong(MultiplyLongFields(ins))
	case SingleDataTransfer:
		cpu.singleDataTransfer(SingleDataTransferFields(ins))
	case Branch:
		cpu.branch(BranchFields(ins))
	case BlockDataTransfer:
		// REDESIGN: executed as load/store multiple rather than left
		// fatal; see DESIGN.md.
		cpu.loadAndStoreMultiple(BlockDataTransferFields(ins))
	default:
		cpu.unhandledInstruction(ins, kind)
	}
}

// secondOperand resolves operand 2 of a data-processing instruction,
// along with the carry it contributes if the instruction sets flags.
func (cpu *CPU) secondOperand(d DataProcessingFields) (carryOut bool, value uint32) {
	if d.ImmediateOperand() {
		_, _, carry, _ := cpu.Flags()
		return carry, d.OperandTwoImmediate()
	}

	var amount uint32
	if d.OperandTwoImmediateShift() {
		amount = d.OperandTwoShiftAmount()
	} else {
		amount = cpu.registers[d.OperandTwoShiftRegister()] & 0xFF
	}

	_, _, carry, _ := cpu.Flags()
	return Shift(carry, d.OperandTwoShiftType(), amount, cpu.registers[d.OperandTwoRegister()])
}

func (cpu *CPU) dataProcessing(d DataProcessingFields) {
	firstOperand := cpu.registers[d.OperandOneRegister()]
	carryOut, secondOperand := cpu.secondOperand(d)
	dest := d.DestinationRegister()

	updateLogical := func(write bool, result uint32) {
		if d.SetConditionCode() && dest != 15 {
			cpu.flags.carry = carryOut
			cpu.flags.zero = result == 0
			cpu.flags.negative = testBit(result, 31)
		}
		if write {
			cpu.registers[dest] = result
		}
	}

	arithmetic := func(write bool, op func(op1, op2 uint64, carryIn uint64) uint64) {
		var carryIn uint64
		if cpu.flags.carry {
			carryIn = 1
		}
		result := op(uint64(firstOperand), uint64(secondOperand), carryIn)

		if d.SetConditionCode() && dest != 15 {
			cpu.flags.zero = uint32(result) == 0
			cpu.flags.negative = testBit(uint32(result), 31)
			cpu.flags.carry = result&(1<<32) != 0

			firstSign := testBit(firstOperand, 31)
			secondSign := testBit(secondOperand, 31)
			resultSign := testBit(uint32(result), 31)
			cpu.flags.overflow = (firstSign == secondSign) && (resultSign != firstSign)
		}

		if write {
			cpu.registers[dest] = uint32(result)
		}
	}

	// SUB-family carry is inverted below so that C=1 means "no borrow",
	// the ARM convention; see spec section 9's open question.
	invertCarry := func(op func(op1, op2 uint64, carryIn uint64) uint64) func(op1, op2 uint64, carryIn uint64) uint64 {
		return func(op1, op2, carryIn uint64) uint64 {
			result := op(op1, op2, carryIn)
			return result ^ (1 << 32)
		}
	}

	switch d.Opcode() {
	case AND:
		updateLogical(true, firstOperand&secondOperand)
	case EOR:
		updateLogical(true, firstOperand^secondOperand)
	case TST:
		updateLogical(false, firstOperand&secondOperand)
	case TEQ:
		updateLogical(false, firstOperand^secondOperand)
	case ORR:
		updateLogical(true, firstOperand|secondOperand)
	case MOV:
		updateLogical(true, secondOperand)
	case BIC:
		updateLogical(true, firstOperand&^secondOperand)
	case MVN:
		updateLogical(true, ^secondOperand)

	case SUB:
		arithmetic(true, invertCarry(func(op1, op2, _ uint64) uint64 { return op1 - op2 }))
	case RSB:
		arithmetic(true, invertCarry(func(op1, op2, _ uint64) uint64 { return op2 - op1 }))
	case ADD:
		arithmetic(true, func(op1, op2, _ uint64) uint64 { return op1 + op2 })
	case ADC:
		arithmetic(true, func(op1, op2, c uint64) uint64 { return op1 + op2 + c })
	case SBC:
		arithmetic(true, invertCarry(func(op1, op2, c uint64) uint64 { return op1 - op2 + c - 1 }))
	case RSC:
		arithmetic(true, invertCarry(func(op1, op2, c uint64) uint64 { return op2 - op1 + c - 1 }))
	case CMP:
		arithmetic(false, invertCarry(func(op1, op2, _ uint64) uint64 { return op1 - op2 }))
	case CMN:
		arithmetic(false, func(op1, op2, _ uint64) uint64 { return op1 + op2 })
	}
}

func (cpu *CPU) branch(b BranchFields) {
	if b.Link() {
		cpu.registers[regLR] = cpu.registers[regPC]
	}
	cpu.registers[regPC] = uint32(int64(cpu.registers[regPC]) + int64(b.SignedOffset()) + 4)
}

// offsetShiftResult resolves the register-shifted offset of a
// single-data-transfer instruction. The carry-out of this shift is
// discarded: it has no architectural use in an addressing calculation.
func (cpu *CPU) offsetShiftResult(s SingleDataTransferFields) uint32 {
	_, result := Shift(cpu.flags.carry, s.OffsetShiftType(), s.OffsetShiftAmount(), cpu.registers[s.OffsetRegister()])
	return result
}

func (cpu *CPU) transferOffset(s SingleDataTransferFields) int64 {
	var off int64
	if s.ImmediateOffset() {
		off = int64(s.Offset())
	} else {
		off = int64(cpu.offsetShiftResult(s))
	}
	if s.UpIndexing() {
		return off
	}
	return -off
}

func (cpu *CPU) singleDataTransfer(s SingleDataTransferFields) {
	indexOffset := cpu.transferOffset(s)
	base := cpu.registers[s.BaseRegister()]
	preIndexed := s.PreIndexing()
	srcDest := s.SrcDestRegister()
	indexedLocation := uint32(int64(base) + indexOffset)

	location := base
	if preIndexed {
		location = indexedLocation
	}

	if s.ByteTransfer() {
		if s.Load() {
			cpu.registers[srcDest] = uint32(cpu.mem.ReadByte(location))
		} else {
			cpu.mem.WriteByte(location, uint8(cpu.registers[srcDest]))
		}
	} else {
		if s.Load() {
			cpu.registers[srcDest] = cpu.mem.ReadWord(location)
		} else {
			cpu.mem.WriteWord(location, cpu.registers[srcDest])
		}
	}

	if !preIndexed || s.WriteBack() {
		cpu.registers[s.BaseRegister()] = indexedLocation
	}
}

// loadAndStoreMultiple executes LDM/STM per spec section 4.9's
// addressing-mode table. PSR-bit-set (the ^ suffix, user-bank
// transfer) is not supported and is a fatal stop.
func (cpu *CPU) loadAndStoreMultiple(b BlockDataTransferFields) {
	if b.PSR() {
		cpu.fatal("UnsupportedEncoding", Instruction(b), BlockDataTransfer)
		return
	}

	list := b.RegisterList()
	count := uint32(bits.OnesCount16(list))
	base := cpu.registers[b.BaseRegister()]

	var addr uint32
	var step int32 = 4
	switch {
	case b.PreIndexing() && b.UpIndexing():
		addr = base + 4
	case !b.PreIndexing() && b.UpIndexing():
		addr = base
	case b.PreIndexing() && !b.UpIndexing():
		addr = base - 4*count
		step = -4
	default:
		addr = base - 4*count + 4
		step = -4
	}

	for r := uint32(0); r < 16; r++ {
		if list&(1<<r) == 0 {
			continue
		}
		if b.Load() {
			cpu.registers[r] = cpu.mem.ReadWord(addr)
		} else {
			cpu.mem.WriteWord(addr, cpu.registers[r])
		}
		addr = uint32(int64(addr) + int64(step))
	}

	if b.WriteBack() {
		cpu.registers[b.BaseRegister()] = uint32(int64(base) + int64(step)*int64(count))
	}
}

func (cpu *CPU) multiplyLong(m MultiplyLongFields) {
	lhs := cpu.registers[m.OperandOneRegister()]
	rhs := cpu.registers[m.OperandTwoRegister()]

	var product uint64
	if m.UnsignedMul() {
		product = uint64(lhs) * uint64(rhs)
	} else {
		product = uint64(int64(int32(lhs)) * int64(int32(rhs)))
	}

	hi := uint32(product >> 32)
	lo := uint32(product)

	if m.Accumulate() {
		cpu.registers[m.HighResultRegister()] += hi
		cpu.registers[m.LowResultRegister()] += lo
	} else {
		cpu.registers[m.HighResultRegister()] = hi
		cpu.registers[m.LowResultRegister()] = lo
	}

	if m.SetConditionCode() {
		cpu.flags.zero = product == 0
		cpu.flags.negative = testBit(hi, 31)
	}
}
