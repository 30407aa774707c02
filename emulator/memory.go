package emulator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.gatech.edu/ECEInnovation/Hack-Assembler/assembler"
)

func (inst *EmulatorInstance) memRead(addr uint16) uint16 {
	switch {
	case addr < ScreenBase:
		return inst.ram[addr]
	case addr < KeyboardAddr:
		return inst.display.read(addr - ScreenBase)
	case addr == KeyboardAddr:
		return uint16(inst.keyboard.Load())
	}
	inst.newSegmentationFaultException(addr)
	return 0
}

func (inst *EmulatorInstance) memWrite(addr uint16, value uint16) {
	switch {
	case addr < ScreenBase:
		inst.ram[addr] = value
	case addr < KeyboardAddr:
		inst.display.write(addr-ScreenBase, value)
	case addr == KeyboardAddr:
		// the keyboard register is read-only
	default:
		inst.newSegmentationFaultException(addr)
	}
}

// ReadRAM returns the word at addr, or 0 when addr is outside the memory map.
func (inst *EmulatorInstance) ReadRAM(addr uint16) uint16 {
	switch {
	case addr < ScreenBase:
		return inst.ram[addr]
	case addr < KeyboardAddr:
		return inst.display.read(addr - ScreenBase)
	case addr == KeyboardAddr:
		return uint16(inst.keyboard.Load())
	}
	return 0
}

// WriteRAM lets the host preset memory before running a program.
func (inst *EmulatorInstance) WriteRAM(addr uint16, value uint16) {
	if addr < KeyboardAddr {
		inst.memWrite(addr, value)
	}
}

// LoadHack parses machine code text, one 16 character binary word per line.
func LoadHack(text string) ([]uint16, error) {
	program := []uint16{}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		word, err := assembler.DecodeWord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		program = append(program, word)
	}

	if len(program) > ROMSize {
		return nil, fmt.Errorf("program has %d instructions, ROM holds %d", len(program), ROMSize)
	}
	return program, nil
}

// LoadProgramFile loads a .hack file, or assembles any other file.
func LoadProgramFile(path string) ([]uint16, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if filepath.Ext(path) == assembler.GetConfig().OutputExtension {
		return LoadHack(string(b))
	}

	res := assembler.Assemble(string(b))
	res.FileName = filepath.Base(path)
	text, err := res.Hack()
	if err != nil {
		return nil, err
	}
	return LoadHack(text)
}
