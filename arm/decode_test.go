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

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		word uint32
		want arm.InstructionType
	}{
		{"MOV R0,#1", 0xE3A00001, arm.DataProcessing},
		{"ADD R0,R1,R2", 0xE0810002, arm.DataProcessing},
		{"MUL R0,R1,R2", 0xE0000291, arm.Multiply},
		{"UMULL R0,R1,R2,R3", 0xE0810392, arm.MultiplyLong},
		{"SWP R0,R1,[R2]", 0xE1020091, arm.SingleDataSwap},
		{"LDR R0,[R1]", 0xE5910000, arm.SingleDataTransfer},
		{"STR R0,[R1]", 0xE5810000, arm.SingleDataTransfer},
		{"STM R0,{R5}", 0xEE100020, arm.BlockDataTransfer},
		{"B #0", 0xEA000000, arm.Branch},
		{"BL #0", 0xEB000000, arm.Branch},
		{"SWI #0", 0xEF000000, arm.SoftwareInterrupt},
		{"MRS R0,CPSR", 0xE10F0FFF, arm.MRS},
		{"CDP p0,0,c0,c0,c0,0", 0xEE000000, arm.CoprocessorDataOperation},
		{"MRC p0,0,R0,c0,c0,0", 0xEE100010, arm.CoprocessorRegisterTransfer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := arm.Decode(tt.word)
			if got != tt.want {
				t.Errorf("Decode(%#08x) = %s, want %s", tt.word, got, tt.want)
			}
		})
	}
}

func TestInstructionCondition(t *testing.T) {
	ins := arm.Instruction(0x0A000000)
	if ins.Condition() != arm.EQ {
		t.Errorf("Condition() = %v, want EQ", ins.Condition())
	}

	ins = arm.Instruction(0xEA000000)
	if ins.Condition() != arm.AL {
		t.Errorf("Condition() = %v, want AL", ins.Condition())
	}
}

func TestInstructionTypeString(t *testing.T) {
	if got := arm.DataProcessing.String(); got != "DataProcessing" {
		t.Errorf("String() = %q, want DataProcessing", got)
	}
	if got := arm.LoadAndStoreMultiple.String(); got != "LoadAndStoreMultiple" {
		t.Errorf("String() = %q, want LoadAndStoreMultiple", got)
	}
}
