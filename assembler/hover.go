package assembler

import (
	"fmt"
	"strconv"
)

func (a *AssembledResult) commandAtLine(line int) (Command, bool) {
	for _, cmd := range a.Program {
		if cmd.Line == line {
			return cmd, true
		}
	}
	return Command{}, false
}

func (a *AssembledResult) hoverAddressCommand(cmd Command) (string, bool) {
	if isDecimal(cmd.Symbol) {
		value, err := strconv.ParseUint(cmd.Symbol, 10, 64)
		if err != nil || value > MaxAddress {
			return "", false
		}
		return fmt.Sprintf(hoverInfoFormats.integerLiteral, cmd.Symbol, value, makeAInstruction(int(value))), true
	}

	address, ok := a.Symbols.GetAddress(cmd.Symbol)
	if !ok {
		return "", false
	}
	word := makeAInstruction(address)
	kind, _ := a.Symbols.KindOf(cmd.Symbol)
	switch kind {
	case LabelSymbol:
		return fmt.Sprintf(hoverInfoFormats.labelReference, cmd.Symbol, a.LabelToLineNumber[cmd.Symbol]+1, address, word), true
	case PredefinedSymbol:
		return fmt.Sprintf(hoverInfoFormats.predefined, cmd.Symbol, address, word), true
	default:
		return fmt.Sprintf(hoverInfoFormats.variable, cmd.Symbol, address, word), true
	}
}

func (a *AssembledResult) hoverComputeCommand(cmd Command) (string, bool) {
	word, err := makeCInstruction(cmd.Dest, cmd.Comp, cmd.Jump)
	if err != nil {
		return "", false
	}
	// the word is known to be valid, so the lookups cannot fail
	d, _ := Dest(cmd.Dest)
	c, _ := Comp(cmd.Comp)
	j, _ := Jump(cmd.Jump)
	fields := fmt.Sprintf(hoverInfoFormats.computeField, "comp", cmd.Comp, c) +
		fmt.Sprintf(hoverInfoFormats.computeField, "dest", displayMnemonic(cmd.Dest), d) +
		fmt.Sprintf(hoverInfoFormats.computeField, "jump", displayMnemonic(cmd.Jump), j)
	return fmt.Sprintf(hoverInfoFormats.compute, cmd.Text, fields, word), true
}

func displayMnemonic(m string) string {
	if m == "" {
		return "null"
	}
	return m
}

// EvaluateHover returns markdown describing the command under position, and
// false when there is nothing to show.
func (a *AssembledResult) EvaluateHover(position TextPosition) (string, bool) {
	cmd, ok := a.commandAtLine(position.Line)
	if !ok || position.Char < cmd.Column || position.Char >= cmd.End {
		return "", false
	}

	switch cmd.Type {
	case LabelCommand:
		address, ok := a.Symbols.GetAddress(cmd.Symbol)
		if !ok {
			return "", false
		}
		return fmt.Sprintf(hoverInfoFormats.labelDefinition, cmd.Symbol, address), true
	case AddressCommand:
		return a.hoverAddressCommand(cmd)
	default:
		return a.hoverComputeCommand(cmd)
	}
}
