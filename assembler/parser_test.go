package assembler_test

import (
	"testing"

	"github.gatech.edu/ECEInnovation/Hack-Assembler/assembler"
)

func TestParseClassification(t *testing.T) {
	source := "@R1 // load\n(LOOP)\nMD = M+1 ; JLT\n0;JMP\nD\n"
	expected := assembler.Program{
		{Type: assembler.AddressCommand, Text: "@R1", Symbol: "R1", Line: 0, Column: 0, End: 3},
		{Type: assembler.LabelCommand, Text: "(LOOP)", Symbol: "LOOP", Line: 1, Column: 0, End: 6},
		{Type: assembler.ComputeCommand, Text: "MD=M+1;JLT", Dest: "MD", Comp: "M+1", Jump: "JLT", Line: 2, Column: 0, End: 14},
		{Type: assembler.ComputeCommand, Text: "0;JMP", Comp: "0", Jump: "JMP", Line: 3, Column: 0, End: 5},
		{Type: assembler.ComputeCommand, Text: "D", Comp: "D", Line: 4, Column: 0, End: 1},
	}

	program, diagnostics := assembler.Parse(source)
	if len(diagnostics) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", diagnostics)
	}
	if len(program) != len(expected) {
		t.Fatalf("Expected %d commands, got %d", len(expected), len(program))
	}
	for i, cmd := range program {
		if cmd != expected[i] {
			t.Errorf("Expected command %d to be %+v, got %+v", i, expected[i], cmd)
		}
	}
}

func TestParseCommentOnlyAndSlash(t *testing.T) {
	program, diagnostics := assembler.Parse("   // nothing here\n\t\n@a/b\n")
	if len(diagnostics) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", diagnostics)
	}
	if len(program) != 1 || program[0].Symbol != "a/b" || program[0].Column != 0 {
		t.Errorf("Expected a single @a/b command, got %+v", program)
	}
}

func TestParseMalformedRange(t *testing.T) {
	_, diagnostics := assembler.Parse("  @1\n    D =   // missing comp\n")
	if len(diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(diagnostics))
	}
	d := diagnostics[0]
	if d.Kind != assembler.MalformedCommand {
		t.Errorf("Expected MalformedCommand, got %s", d.Kind)
	}
	if d.Range.Start.Line != 1 || d.Range.Start.Char != 4 || d.Range.End.Char != 7 {
		t.Errorf("Unexpected range %+v", d.Range)
	}
	// the message quotes the line as written
	if d.Message != "Malformed command: \"D =   // missing comp\", missing comp" {
		t.Errorf("Unexpected message %q", d.Message)
	}
}
