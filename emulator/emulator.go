package emulator

import (
	"github.gatech.edu/ECEInnovation/Hack-Assembler/assembler"
)

const (
	compSelectM = 0x40

	destM = 0b001
	destD = 0b010
	destA = 0b100

	jumpGT = 0b001
	jumpEQ = 0b010
	jumpLT = 0b100
)

// alu computes the Hack ALU output. control holds zx nx zy ny f no from
// the most significant bit down.
func alu(x, y, control uint16) uint16 {
	if control&0x20 != 0 {
		x = 0
	}
	if control&0x10 != 0 {
		x = ^x
	}
	if control&0x08 != 0 {
		y = 0
	}
	if control&0x04 != 0 {
		y = ^y
	}

	var out uint16
	if control&0x02 != 0 {
		out = x + y
	} else {
		out = x & y
	}

	if control&0x01 != 0 {
		out = ^out
	}
	return out
}

func shouldJump(out uint16, jump uint16) bool {
	negative := int16(out) < 0
	zero := out == 0
	return (jump&jumpLT != 0 && negative) ||
		(jump&jumpEQ != 0 && zero) ||
		(jump&jumpGT != 0 && !negative && !zero)
}

// isHaltLoop matches the idiomatic end of a Hack program: @N at address N
// followed by an unconditional jump.
func (inst *EmulatorInstance) isHaltLoop(target uint16, jump uint16) bool {
	return jump == 0b111 && int(target)+1 == int(inst.pc) && inst.rom[target] == target
}

// Step executes one instruction and returns false once the program can not
// continue.
func (inst *EmulatorInstance) Step() bool {
	if inst.faulted || inst.halted {
		return false
	}
	if int(inst.pc) >= len(inst.rom) {
		inst.newProgramCounterOutOfRangeException()
		return false
	}

	instruction := inst.rom[inst.pc]
	inst.executedInstructions++

	if !assembler.IsCInstruction(instruction) {
		inst.a = instruction
		inst.pc++
		return true
	}

	comp, dest, jump := assembler.DecodeCInstruction(instruction)
	address := inst.a // M and the jump target use A from before this instruction

	y := inst.a
	if comp&compSelectM != 0 {
		y = inst.memRead(address)
	}
	out := alu(inst.d, y, comp&0x3F)

	if dest&destM != 0 {
		inst.memWrite(address, out)
	}
	if dest&destA != 0 {
		inst.a = out
	}
	if dest&destD != 0 {
		inst.d = out
	}
	if inst.faulted {
		return false
	}

	if shouldJump(out, jump) {
		if inst.isHaltLoop(address, jump) {
			inst.halted = true
			return false
		}
		inst.pc = address
	} else {
		inst.pc++
	}
	return true
}

// Emulate runs until the program halts, faults, is terminated or the
// runtime limit is reached.
func (inst *EmulatorInstance) Emulate() {
	for inst.runtimeLimit == 0 || inst.executedInstructions < inst.runtimeLimit {
		if inst.terminated.Load() {
			return
		}
		if !inst.Step() {
			return
		}
	}
}
