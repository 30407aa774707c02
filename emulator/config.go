package emulator

// ResetRegisters clears the CPU registers and RAM but keeps the program.
func (inst *EmulatorInstance) ResetRegisters() {
	inst.a, inst.d, inst.pc = 0, 0, 0
	inst.ram = [ScreenBase]uint16{}
	inst.display.clear()
	inst.keyboard.Store(0)
	inst.executedInstructions = 0
	inst.halted = false
	inst.faulted = false
	inst.terminated.Store(false)
	inst.errors = []RuntimeException{}
}

func NewEmulator(config EmulatorConfig) *EmulatorInstance {
	rom := make([]uint16, len(config.Program))
	copy(rom, config.Program)

	return &EmulatorInstance{
		rom:                  rom,
		runtimeLimit:         config.RuntimeLimit,
		display:              &VirtualDisplay{},
		errors:               []RuntimeException{},
		runtimeErrorCallback: config.RuntimeErrorCallback,
	}
}

func (inst *EmulatorInstance) GetRegisters() (a, d, pc uint16) {
	return inst.a, inst.d, inst.pc
}

func (inst *EmulatorInstance) GetTotalInstructionsExecuted() uint64 {
	return inst.executedInstructions
}

func (inst *EmulatorInstance) GetDisplay() *VirtualDisplay {
	return inst.display
}

func (inst *EmulatorInstance) GetErrors() []RuntimeException {
	return inst.errors
}

// IsHalted reports whether the program reached a jump to itself.
func (inst *EmulatorInstance) IsHalted() bool {
	return inst.halted
}

func (inst *EmulatorInstance) Terminate() {
	inst.terminated.Store(true)
}

func (inst *EmulatorInstance) SetKey(code uint16) {
	inst.keyboard.Store(uint32(code))
}
