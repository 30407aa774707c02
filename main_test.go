package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.gatech.edu/ECEInnovation/Hack-Assembler/assembler"
)

func TestAssembleCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "Add.asm")
	if err := os.WriteFile(source, []byte("@2\nD=A\n@3\nD=D+A\n@0\nM=D\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{source})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "Add.hack"))
	if err != nil {
		t.Fatal(err)
	}
	expected := "0000000000000010\n1110110000010000\n0000000000000011\n1110000010010000\n0000000000000000\n1110001100001000\n"
	if string(b) != expected {
		t.Errorf("Unexpected output:\n%s", b)
	}
}

func TestAssembleCommandFailure(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "Bad.asm")
	if err := os.WriteFile(source, []byte("@1\nD=X\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{source})
	cmd.SetErr(new(nopWriter))
	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected an error for an unknown mnemonic")
	}
	if _, err := os.Stat(filepath.Join(dir, "Bad.hack")); !os.IsNotExist(err) {
		t.Errorf("Expected no output file, got %v", err)
	}
}

func TestArgumentCount(t *testing.T) {
	for _, args := range [][]string{{}, {"a.asm", "b.asm"}} {
		cmd := newRootCommand()
		cmd.SetArgs(args)
		cmd.SetErr(new(nopWriter))
		cmd.SetOut(new(nopWriter))
		if err := cmd.Execute(); err == nil {
			t.Errorf("Expected a usage error for %v", args)
		}
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "Add.asm")
	if err := os.WriteFile(source, []byte("@2\nD=A\n@3\nD=D+A\n@0\nM=D\n(END)\n@END\n0;JMP\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{"run", source, "--cycles", "100"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestCycleBudget(t *testing.T) {
	conf := assembler.GetConfig()
	defer assembler.SetConfig(conf)
	custom := conf
	custom.MaxCycles = 0
	assembler.SetConfig(custom)

	tests := []struct {
		flag int
		want uint64
	}{
		{-1, 0}, // config value, unlimited
		{0, 0},
		{250, 250},
	}
	for _, tc := range tests {
		if got := cycleBudget(tc.flag); got != tc.want {
			t.Errorf("cycleBudget(%d) = %d, want %d", tc.flag, got, tc.want)
		}
	}

	custom.MaxCycles = 500
	assembler.SetConfig(custom)
	if got := cycleBudget(-1); got != 500 {
		t.Errorf("Expected the config budget of 500, got %d", got)
	}
}

type nopWriter struct{}

func (*nopWriter) Write(p []byte) (int, error) {
	return len(p), nil
}
