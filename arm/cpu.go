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

import (
	"github.com/armbox/armbox/armconfig"
	"github.com/armbox/armbox/armlog"
)

const logTag = "ARM"

// regLR and regPC are the conventional register indices for R14 and R15.
const (
	regLR = 14
	regPC = 15
)

// Diagnostic records why the CPU stopped running on a fatal dispatch
// failure. It is the CORE's report to the host; the host decides
// whether to surface it, retry, or give up (spec section 9).
type Diagnostic struct {
	Kind        string
	Instruction Instruction
	Type        InstructionType
	PC          uint32
}

// TraceFunc is invoked with read-only access to the CPU before every
// instruction dispatches.
type TraceFunc func(cpu *CPU, pc uint32, instruction Instruction)

// CPU is the ARMv3 execution engine: sixteen registers, condition
// flags, a private decode cache, and the flat memory it reads and
// writes.
type CPU struct {
	registers [16]uint32
	flags     status

	mem   *Memory
	cache *decodeCache
	cfg   armconfig.Config

	halted     bool
	diagnostic *Diagnostic
	ticks      uint64
}

// NewCPU constructs a CPU over mem, configured per cfg. Registers and
// flags start zero; call SetupRun to seed SP/LR/PC and begin
// executing at an entry point.
func NewCPU(mem *Memory, cfg armconfig.Config) *CPU {
	cpu := &CPU{mem: mem, cfg: cfg}
	cpu.cache = newDecodeCache(mem, 0)
	return cpu
}

// Memory returns the CPU's backing memory, for a host that wants to
// inspect memory-mapped registers between ticks.
func (cpu *CPU) Memory() *Memory {
	return cpu.mem
}

// Register reads register i (0..15). Reading R15 returns the raw
// stored PC value (fetch address + 4 between operations), not the
// architectural PC+8 that data-processing dispatch sees.
func (cpu *CPU) Register(i uint32) uint32 {
	return cpu.registers[i&0xF]
}

// SetRegister writes register i.
func (cpu *CPU) SetRegister(i uint32, v uint32) {
	cpu.registers[i&0xF] = v
}

// Flags returns a copy of the current NZCV flags.
func (cpu *CPU) Flags() (negative, zero, carry, overflow bool) {
	return cpu.flags.negative, cpu.flags.zero, cpu.flags.carry, cpu.flags.overflow
}

// Diagnostic returns the fatal-stop diagnostic, if the CPU halted on
// an unhandled or unsupported encoding or on Run's cycle ceiling. It
// is nil while the CPU is still running, and after a clean termination.
func (cpu *CPU) Diagnostic() *Diagnostic {
	return cpu.diagnostic
}

// Halted reports whether a fatal stop has halted the CPU: an unhandled
// instruction, an unsupported encoding, or Run's cycle ceiling.
func (cpu *CPU) Halted() bool {
	return cpu.halted
}

// Ticks reports how many instructions have been dispatched (attempted
// or not; conditionally-skipped instructions still count as a tick).
func (cpu *CPU) Ticks() uint64 {
	return cpu.ticks
}

// SetupRun seeds LR with the termination sentinel, SP with the
// configured initial stack pointer, and PC with entry+4 (the
// prefetch-ahead convention; see NextOperation).
func (cpu *CPU) SetupRun(entry uint32) {
	cpu.registers[regLR] = cpu.cfg.TerminationSentinel()
	cpu.registers[13] = cpu.cfg.InitialSP
	cpu.registers[regPC] = entry + 4
	cpu.halted = false
	cpu.diagnostic = nil
	cpu.cache.refill(cpu.mem, entry)
}

// OperationsRemaining reports whether the CPU should keep running:
// false once PC reaches the termination sentinel, or once a fatal
// dispatch stop has set halted.
func (cpu *CPU) OperationsRemaining() bool {
	if cpu.halted {
		return false
	}
	return cpu.registers[regPC] != cpu.cfg.TerminationSentinel()
}

// NextOperation fetches one instruction via the decode cache, invokes
// trace (if non-nil) with the pre-dispatch PC, and dispatches it.
func (cpu *CPU) NextOperation(trace TraceFunc) {
	fetchPC := cpu.registers[regPC] - 4
	ins, kind := cpu.cache.fetch(cpu.mem, fetchPC)

	if trace != nil {
		trace(cpu, fetchPC, ins)
	}

	// account for prefetch
	cpu.registers[regPC] += 4
	cpu.ticks++

	if !ins.Condition().satisfied(cpu.flags) {
		return
	}

	cpu.dispatch(kind, ins)
}

// Run seeds the CPU at entry and dispatches until OperationsRemaining
// is false, optionally invoking trace before every instruction. If
// cfg.CycleCeiling is non-zero, Run also stops once that many ticks
// have been dispatched, leaving a diagnostic in place so the host can
// tell a runaway guest from a clean return.
func (cpu *CPU) Run(entry uint32, trace TraceFunc) {
	cpu.SetupRun(entry)
	for cpu.OperationsRemaining() {
		if cpu.cfg.CycleCeiling != 0 && cpu.ticks >= cpu.cfg.CycleCeiling {
			cpu.fatal("CycleCeilingExceeded", Instruction(cpu.mem.ReadWord(cpu.registers[regPC]-4)), Undefined)
			return
		}
		cpu.NextOperation(trace)
	}
}

func (cpu *CPU) fatal(kind string, ins Instruction, t InstructionType) {
	cpu.halted = true
	cpu.diagnostic = &Diagnostic{
		Kind:        kind,
		Instruction: ins,
		Type:        t,
		PC:          cpu.registers[regPC],
	}
	armlog.Logf(logTag, "fatal stop: %s at PC=%#x instruction=%#08x type=%s", kind, cpu.diagnostic.PC, uint32(ins), t)
}

func (cpu *CPU) unhandledInstruction(ins Instruction, t InstructionType) {
	cpu.fatal("UnhandledInstruction", ins, t)
}
