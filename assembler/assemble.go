package assembler

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

func isDecimal(str string) bool {
	if len(str) == 0 {
		return false
	}
	for _, char := range str {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

func (a *AssembledResult) commandRange(cmd Command) TextRange {
	return lineRange(cmd.Line, cmd.Column, cmd.End)
}

// resolveLabels is the first pass. Every label is bound to the ROM address of
// the instruction that follows it.
func (a *AssembledResult) resolveLabels() {
	romAddress := 0
	for _, cmd := range a.Program {
		if cmd.Type != LabelCommand {
			a.AddressToLine[romAddress] = cmd.Line
			a.LineToAddress[cmd.Line] = romAddress
			romAddress++
			continue
		}

		if kind, ok := a.Symbols.KindOf(cmd.Symbol); ok && kind == PredefinedSymbol {
			a.Diagnostics = append(a.Diagnostics, Errors.PredefinedLabel(cmd.Symbol, a.commandRange(cmd)))
			continue
		}
		if firstLine, ok := a.LabelToLineNumber[cmd.Symbol]; ok {
			if assemblerConfig.StrictLabels {
				a.Diagnostics = append(a.Diagnostics, Errors.DuplicateLabel(cmd.Symbol, firstLine, a.commandRange(cmd)))
			} else {
				a.Diagnostics = append(a.Diagnostics, Warnings.DuplicateLabel(cmd.Symbol, firstLine, a.commandRange(cmd)))
			}
		}
		a.Symbols.AddEntry(cmd.Symbol, romAddress)
		a.LabelToLineNumber[cmd.Symbol] = cmd.Line
		a.LineToAddress[cmd.Line] = romAddress
	}
}

// resolveAddress returns the value loaded by an A-instruction operand,
// allocating a variable on first use.
func (a *AssembledResult) resolveAddress(cmd Command) (int, bool) {
	if isDecimal(cmd.Symbol) {
		value, err := strconv.ParseUint(cmd.Symbol, 10, 64)
		if err != nil || value > MaxAddress {
			a.Diagnostics = append(a.Diagnostics, Errors.LiteralOverflow(cmd.Symbol, a.commandRange(cmd)))
			return 0, false
		}
		return int(value), true
	}

	if !a.Symbols.Contains(cmd.Symbol) {
		a.Symbols.AddVariable(cmd.Symbol, a.nextVariable)
		a.nextVariable++
	}

	address, ok := a.Symbols.GetAddress(cmd.Symbol)
	if !ok {
		a.Diagnostics = append(a.Diagnostics, Errors.UnresolvedSymbol(cmd.Symbol, a.commandRange(cmd)))
		return 0, false
	}
	return address, true
}

// encode is the second pass.
func (a *AssembledResult) encode() {
	for _, cmd := range a.Program {
		switch cmd.Type {
		case AddressCommand:
			address, ok := a.resolveAddress(cmd)
			if ok {
				a.ProgramText = append(a.ProgramText, makeAInstruction(address))
			}
		case ComputeCommand:
			word, err := makeCInstruction(cmd.Dest, cmd.Comp, cmd.Jump)
			if err != nil {
				var mnemonicErr *UnknownMnemonicError
				if errors.As(err, &mnemonicErr) {
					a.Diagnostics = append(a.Diagnostics, Errors.UnknownMnemonic(cmd.Text, mnemonicErr.Field, mnemonicErr.Mnemonic, a.commandRange(cmd)))
				}
				continue
			}
			a.ProgramText = append(a.ProgramText, word)
		}
	}
}

// Err returns nil when the program assembled without errors.
func (a *AssembledResult) Err() error {
	var errs []Diagnostic
	for _, d := range a.Diagnostics {
		if d.Severity == Error {
			errs = append(errs, d)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Range.Start.Line < errs[j].Range.Start.Line
	})
	return &AssemblyError{FileName: a.FileName, Diagnostics: errs}
}

// Hack renders the machine code, one newline terminated word per line. No
// text is produced for a program with errors.
func (a *AssembledResult) Hack() (string, error) {
	if err := a.Err(); err != nil {
		return "", err
	}
	b := strings.Builder{}
	for _, word := range a.ProgramText {
		b.WriteString(word)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func Assemble(input string) (res *AssembledResult) {
	res = new(AssembledResult)
	res.Symbols = NewSymbolTable()
	res.LabelToLineNumber = make(map[string]int)
	res.AddressToLine = make(map[int]int)
	res.LineToAddress = make(map[int]int)
	res.nextVariable = VariableBaseAddress
	res.fileContents = strings.Split(input, "\n")

	res.Program, res.Diagnostics = Parse(input)

	res.resolveLabels()

	res.encode()
	return
}
