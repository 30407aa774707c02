package emulator

import (
	"testing"

	"github.gatech.edu/ECEInnovation/Hack-Assembler/assembler"
)

func TestALU(t *testing.T) {
	d, a := uint16(5), uint16(3)
	tests := map[string]uint16{
		"0":   0,
		"1":   1,
		"-1":  0xFFFF,
		"D":   d,
		"A":   a,
		"!D":  ^d,
		"!A":  ^a,
		"-D":  -d,
		"-A":  -a,
		"D+1": d + 1,
		"A+1": a + 1,
		"D-1": d - 1,
		"A-1": a - 1,
		"D+A": d + a,
		"D-A": d - a,
		"A-D": a - d,
		"D&A": d & a,
		"D|A": d | a,
	}
	for mnemonic, want := range tests {
		bits, err := assembler.Comp(mnemonic)
		if err != nil {
			t.Fatal(err)
		}
		word, _ := assembler.DecodeWord("111" + bits + "000000")
		comp, _, _ := assembler.DecodeCInstruction(word)
		if got := alu(d, a, comp&0x3F); got != want {
			t.Errorf("alu(%s) = %d; want %d", mnemonic, got, want)
		}
	}
}

func TestShouldJump(t *testing.T) {
	tests := []struct {
		out  uint16
		jump uint16
		want bool
	}{
		{1, 0b001, true},
		{0, 0b001, false},
		{0, 0b010, true},
		{0xFFFF, 0b100, true},
		{0xFFFF, 0b011, false},
		{0, 0b110, true},
		{5, 0b101, true},
		{5, 0b000, false},
		{0x8000, 0b111, true},
	}
	for _, tc := range tests {
		if got := shouldJump(tc.out, tc.jump); got != tc.want {
			t.Errorf("shouldJump(%d, %03b) = %v; want %v", tc.out, tc.jump, got, tc.want)
		}
	}
}
