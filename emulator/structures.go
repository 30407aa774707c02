package emulator

import (
	"sync"
	"sync/atomic"
)

const (
	ROMSize      = 32768
	RAMSize      = 24577 // up to and including the keyboard register
	ScreenBase   = 16384
	ScreenWords  = 8192
	KeyboardAddr = 24576
	ScreenWidth  = 512
	ScreenHeight = 256
)

type EmulatorConfig struct {
	Program              []uint16
	RuntimeLimit         uint64 // instructions executed before Emulate gives up
	RuntimeErrorCallback func(RuntimeException)
}

type RuntimeException struct {
	PC      uint16
	A       uint16
	D       uint16
	message string
}

func (e RuntimeException) Error() string {
	return e.message
}

// VirtualDisplay backs the screen memory map. It is read by the standalone
// server while the program runs.
type VirtualDisplay struct {
	data          [ScreenWords]uint16
	dataMutex     sync.Mutex
	displayWrites atomic.Int64
}

type EmulatorInstance struct {
	rom                  []uint16
	ram                  [ScreenBase]uint16
	a                    uint16
	d                    uint16
	pc                   uint16
	runtimeLimit         uint64
	executedInstructions uint64
	halted               bool
	faulted              bool
	terminated           atomic.Bool
	keyboard             atomic.Uint32
	display              *VirtualDisplay
	errors               []RuntimeException
	runtimeErrorCallback func(RuntimeException)
}
