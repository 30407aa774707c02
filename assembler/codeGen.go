package assembler

import (
	"fmt"
	"strconv"
)

var destBits = map[string]string{
	"":    "000",
	"M":   "001",
	"D":   "010",
	"MD":  "011",
	"A":   "100",
	"AM":  "101",
	"AD":  "110",
	"AMD": "111",
}

// comp bits are a(1) c1..c6; a selects M instead of A
var compBits = map[string]string{
	"0":   "0101010",
	"1":   "0111111",
	"-1":  "0111010",
	"D":   "0001100",
	"A":   "0110000",
	"M":   "1110000",
	"!D":  "0001101",
	"!A":  "0110001",
	"!M":  "1110001",
	"-D":  "0001111",
	"-A":  "0110011",
	"-M":  "1110011",
	"D+1": "0011111",
	"A+1": "0110111",
	"M+1": "1110111",
	"D-1": "0001110",
	"A-1": "0110010",
	"M-1": "1110010",
	"D+A": "0000010",
	"D+M": "1000010",
	"D-A": "0010011",
	"D-M": "1010011",
	"A-D": "0000111",
	"M-D": "1000111",
	"D&A": "0000000",
	"D&M": "1000000",
	"D|A": "0010101",
	"D|M": "1010101",
}

var jumpBits = map[string]string{
	"":    "000",
	"JGT": "001",
	"JEQ": "010",
	"JGE": "011",
	"JLT": "100",
	"JNE": "101",
	"JLE": "110",
	"JMP": "111",
}

const (
	MaxAddress = 1<<15 - 1
	WordWidth  = 16
)

func Dest(mnemonic string) (string, error) {
	if bits, ok := destBits[mnemonic]; ok {
		return bits, nil
	}
	return "", &UnknownMnemonicError{Field: "dest", Mnemonic: mnemonic}
}

func Comp(mnemonic string) (string, error) {
	if bits, ok := compBits[mnemonic]; ok {
		return bits, nil
	}
	return "", &UnknownMnemonicError{Field: "comp", Mnemonic: mnemonic}
}

func Jump(mnemonic string) (string, error) {
	if bits, ok := jumpBits[mnemonic]; ok {
		return bits, nil
	}
	return "", &UnknownMnemonicError{Field: "jump", Mnemonic: mnemonic}
}

func makeAInstruction(address int) string {
	return fmt.Sprintf("0%015b", address)
}

func makeCInstruction(dest, comp, jump string) (string, error) {
	c, err := Comp(comp)
	if err != nil {
		return "", err
	}
	d, err := Dest(dest)
	if err != nil {
		return "", err
	}
	j, err := Jump(jump)
	if err != nil {
		return "", err
	}
	return "111" + c + d + j, nil
}

// DecodeWord parses a 16 character binary word.
func DecodeWord(word string) (uint16, error) {
	if len(word) != WordWidth {
		return 0, fmt.Errorf("word %q is not %d bits wide", word, WordWidth)
	}
	v, err := strconv.ParseUint(word, 2, WordWidth)
	if err != nil {
		return 0, fmt.Errorf("word %q is not binary: %w", word, err)
	}
	return uint16(v), nil
}

// DecodeCInstruction splits a C-instruction into its comp, dest and jump fields.
func DecodeCInstruction(instruction uint16) (comp, dest, jump uint16) {
	comp = (instruction >> 6) & 0x7F
	dest = (instruction >> 3) & 0x7
	jump = instruction & 0x7
	return
}

func IsCInstruction(instruction uint16) bool {
	return instruction&0x8000 != 0
}
