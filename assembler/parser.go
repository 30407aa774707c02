package assembler

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalizeLine drops a trailing // comment and every whitespace character.
// start and end delimit the code portion of the raw line in bytes.
func normalizeLine(line string) (text string, start, end int) {
	b := strings.Builder{}
	start = -1
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r == '/' && strings.HasPrefix(line[i+size:], "/") {
			break
		}
		if !unicode.IsSpace(r) {
			if start == -1 {
				start = i
			}
			end = i + size
			b.WriteRune(r)
		}
		i += size
	}
	if start == -1 {
		start = 0
	}
	return b.String(), start, end
}

// splitCompute splits dest=comp;jump. ok is false with a reason when the
// text does not follow the grammar.
func splitCompute(text string) (dest, comp, jump string, reason string, ok bool) {
	buf := strings.Builder{}
	seenDest := false
	seenJump := false
	for _, c := range text {
		switch c {
		case '=':
			if seenDest || seenJump {
				return "", "", "", "unexpected '='", false
			}
			if buf.Len() == 0 {
				return "", "", "", "missing dest before '='", false
			}
			dest = buf.String()
			seenDest = true
			buf.Reset()
		case ';':
			if seenJump {
				return "", "", "", "unexpected ';'", false
			}
			comp = buf.String()
			seenJump = true
			buf.Reset()
		default:
			buf.WriteRune(c)
		}
	}

	if seenJump {
		jump = buf.String()
		if jump == "" {
			return "", "", "", "missing jump after ';'", false
		}
	} else {
		comp = buf.String()
	}

	if comp == "" {
		return "", "", "", "missing comp", false
	}
	return dest, comp, jump, "", true
}

// parseCommand classifies the normalized text of one line. raw is the line as
// written and is only used in diagnostics.
func parseCommand(raw, text string, lineNum, start, end int) (Command, *Diagnostic) {
	cmd := Command{Text: text, Line: lineNum, Column: start, End: end}
	malformed := func(reason string) (Command, *Diagnostic) {
		d := Errors.MalformedCommand(raw, reason, lineRange(lineNum, start, end))
		return Command{}, &d
	}

	switch text[0] {
	case '@':
		cmd.Type = AddressCommand
		cmd.Symbol = text[1:]
		if cmd.Symbol == "" {
			return malformed("missing address or symbol after '@'")
		}
	case '(':
		cmd.Type = LabelCommand
		if !strings.HasSuffix(text, ")") {
			return malformed("label must end with ')'")
		}
		cmd.Symbol = text[1 : len(text)-1]
		if cmd.Symbol == "" {
			return malformed("label name must not be empty")
		}
		if strings.ContainsAny(cmd.Symbol, "()") {
			return malformed("label name must not contain parentheses")
		}
		if unicode.IsDigit(rune(cmd.Symbol[0])) {
			return malformed("label name must not start with a digit")
		}
	default:
		cmd.Type = ComputeCommand
		dest, comp, jump, reason, ok := splitCompute(text)
		if !ok {
			return malformed(reason)
		}
		cmd.Dest, cmd.Comp, cmd.Jump = dest, comp, jump
	}
	return cmd, nil
}

// Parse converts source text into a Program. Lines that do not follow the
// grammar are reported and left out of the Program.
func Parse(input string) (Program, []Diagnostic) {
	program := Program{}
	var diagnostics []Diagnostic
	for i, line := range strings.Split(input, "\n") {
		text, start, end := normalizeLine(line)
		if text == "" {
			continue
		}
		cmd, diag := parseCommand(line, text, i, start, end)
		if diag != nil {
			diagnostics = append(diagnostics, *diag)
			continue
		}
		program = append(program, cmd)
	}
	return program, diagnostics
}

// InstructionCount is the number of commands that occupy a ROM word.
func (p Program) InstructionCount() int {
	n := 0
	for _, cmd := range p {
		if cmd.Type != LabelCommand {
			n++
		}
	}
	return n
}
