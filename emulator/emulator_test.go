package emulator_test

import (
	"strings"
	"testing"

	"github.gatech.edu/ECEInnovation/Hack-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/Hack-Assembler/emulator"
)

const maxProgram = `
	@R0
	D=M
	@R1
	D=D-M
	@OUTPUT_FIRST
	D;JGT
	@R1
	D=M
	@OUTPUT_D
	0;JMP
(OUTPUT_FIRST)
	@R0
	D=M
(OUTPUT_D)
	@R2
	M=D
(INFINITE_LOOP)
	@INFINITE_LOOP
	0;JMP
`

func load(t *testing.T, source string, limit uint64) *emulator.EmulatorInstance {
	t.Helper()
	text, err := assembler.Assemble(source).Hack()
	if err != nil {
		t.Fatalf("Could not assemble: %v", err)
	}
	program, err := emulator.LoadHack(text)
	if err != nil {
		t.Fatalf("Could not load: %v", err)
	}
	return emulator.NewEmulator(emulator.EmulatorConfig{Program: program, RuntimeLimit: limit})
}

func TestAddProgram(t *testing.T) {
	em := load(t, "@2\nD=A\n@3\nD=D+A\n@0\nM=D\n", 1000)
	em.Emulate()

	if got := em.ReadRAM(0); got != 5 {
		t.Errorf("Expected RAM[0] to be 5, got %d", got)
	}
	// the program has no halt loop and runs off the end of ROM
	if len(em.GetErrors()) != 1 || !strings.Contains(em.GetErrors()[0].Error(), "past the end") {
		t.Errorf("Expected one program counter exception, got %v", em.GetErrors())
	}
	if em.GetTotalInstructionsExecuted() != 6 {
		t.Errorf("Expected 6 instructions, got %d", em.GetTotalInstructionsExecuted())
	}
}

func TestMaxProgram(t *testing.T) {
	tests := []struct {
		r0, r1, want uint16
	}{
		{3, 9, 9},
		{9, 3, 9},
		{5, 0xFFFE, 5}, // -2
		{0x8000, 0x7FFF, 0x8000}, // the subtraction overflows
	}
	for _, tc := range tests {
		em := load(t, maxProgram, 1000)
		em.WriteRAM(0, tc.r0)
		em.WriteRAM(1, tc.r1)
		em.Emulate()

		if !em.IsHalted() {
			t.Errorf("Expected max(%d, %d) to halt", tc.r0, tc.r1)
		}
		if got := em.ReadRAM(2); got != tc.want {
			t.Errorf("Expected max(%d, %d) = %d, got %d", tc.r0, tc.r1, tc.want, got)
		}
		if len(em.GetErrors()) != 0 {
			t.Errorf("Expected no errors, got %v", em.GetErrors())
		}
	}
}

func TestScreenAndKeyboard(t *testing.T) {
	source := `
	@KBD
	D=M
	@SCREEN
	M=D
	@SCREEN
	D=A
	@32
	A=D+A
	M=-1
	(END)
	@END
	0;JMP
	`
	em := load(t, source, 1000)
	em.SetKey(1)
	em.Emulate()

	display := em.GetDisplay()
	if !display.Pixel(0, 0) || display.Pixel(1, 0) {
		t.Errorf("Expected only the first pixel of row 0 to be set")
	}
	for x := 0; x < 16; x++ {
		if !display.Pixel(x, 1) {
			t.Errorf("Expected pixel (%d, 1) to be set", x)
		}
	}
	if display.Pixel(16, 1) {
		t.Errorf("Expected pixel (16, 1) to be clear")
	}
	if b := display.Bytes(); len(b) != emulator.ScreenWords*2 || b[0] != 1 || b[64] != 0xFF || b[65] != 0xFF {
		t.Errorf("Unexpected screen bytes")
	}
	if display.Writes() != 2 {
		t.Errorf("Expected 2 screen writes, got %d", display.Writes())
	}
}

func TestRuntimeLimit(t *testing.T) {
	em := load(t, "(L)\n@L\nD;JEQ\n", 100)
	em.Emulate()

	if em.IsHalted() || len(em.GetErrors()) != 0 {
		t.Errorf("Expected the loop to run until the limit")
	}
	if em.GetTotalInstructionsExecuted() != 100 {
		t.Errorf("Expected 100 instructions, got %d", em.GetTotalInstructionsExecuted())
	}
}

func TestTerminate(t *testing.T) {
	em := load(t, "(L)\n@L\nD;JEQ\n", 0)
	em.Terminate()
	em.Emulate()
	if em.GetTotalInstructionsExecuted() != 0 {
		t.Errorf("Expected a terminated emulator not to run, got %d instructions", em.GetTotalInstructionsExecuted())
	}

	em.ResetRegisters()
	em.Step()
	if _, _, pc := em.GetRegisters(); pc != 1 {
		t.Errorf("Expected PC 1 after one step, got %d", pc)
	}
}

func TestSegmentationFault(t *testing.T) {
	var reported []emulator.RuntimeException
	text, _ := assembler.Assemble("@32767\nM=1\n").Hack()
	program, _ := emulator.LoadHack(text)
	em := emulator.NewEmulator(emulator.EmulatorConfig{
		Program:              program,
		RuntimeLimit:         10,
		RuntimeErrorCallback: func(e emulator.RuntimeException) { reported = append(reported, e) },
	})
	em.Emulate()

	if len(reported) != 1 || reported[0].PC != 1 || !strings.Contains(reported[0].Error(), "RAM[32767]") {
		t.Errorf("Expected a segmentation fault at PC 1, got %v", reported)
	}
}

func TestLoadHack(t *testing.T) {
	program, err := emulator.LoadHack("0000000000000010\r\n\n1110110000010000\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(program) != 2 || program[0] != 2 || program[1] != 0xEC10 {
		t.Errorf("Unexpected program %v", program)
	}

	if _, err := emulator.LoadHack("0000000000000010\n12\n"); err == nil || !strings.HasPrefix(err.Error(), "line 2") {
		t.Errorf("Expected an error on line 2, got %v", err)
	}
}
