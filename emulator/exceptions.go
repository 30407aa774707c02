package emulator

import "fmt"

func (inst *EmulatorInstance) newException(format string, args ...interface{}) RuntimeException {
	exception := RuntimeException{
		PC:      inst.pc,
		A:       inst.a,
		D:       inst.d,
		message: fmt.Sprintf(format, args...),
	}

	inst.faulted = true
	inst.errors = append(inst.errors, exception)
	if inst.runtimeErrorCallback != nil {
		inst.runtimeErrorCallback(exception)
	}
	return exception
}

func (inst *EmulatorInstance) newProgramCounterOutOfRangeException() RuntimeException {
	return inst.newException("Program counter %d is past the end of the program (%d instructions)", inst.pc, len(inst.rom))
}

func (inst *EmulatorInstance) newSegmentationFaultException(addr uint16) RuntimeException {
	return inst.newException("Segmentation fault accessing RAM[%d]", addr)
}
