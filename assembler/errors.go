package assembler

import (
	"errors"
	"strconv"
	"strings"
)

func lineRange(line, start, end int) TextRange {
	return TextRange{
		Start: TextPosition{Line: line, Char: start},
		End:   TextPosition{Line: line, Char: end},
	}
}

// Errors
type assemblyError struct{}

var Errors assemblyError

func (assemblyError) MalformedCommand(raw, reason string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Malformed command: \"" + strings.TrimSpace(raw) + "\", " + reason,
		Source:   "Assembler",
		Severity: Error,
		Kind:     MalformedCommand,
	}
}

func (assemblyError) UnknownMnemonic(command, field, mnemonic string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Unknown " + field + " mnemonic \"" + mnemonic + "\" in \"" + command + "\"",
		Source:   "Assembler",
		Severity: Error,
		Kind:     UnknownMnemonic,
	}
}

func (assemblyError) UnresolvedSymbol(symbol string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Unresolved symbol name: \"" + symbol + "\"",
		Source:   "Assembler",
		Severity: Error,
		Kind:     UnresolvedSymbol,
	}
}

func (assemblyError) LiteralOverflow(literal string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Constant \"" + literal + "\" is out of range [0, " + strconv.Itoa(MaxAddress) + "]",
		Source:   "Assembler",
		Severity: Error,
		Kind:     LiteralOverflow,
	}
}

func (assemblyError) DuplicateLabel(label string, firstLine int, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Label \"" + label + "\" is already declared on line " + strconv.Itoa(firstLine+1),
		Source:   "Assembler",
		Severity: Error,
		Kind:     DuplicateLabel,
	}
}

// PredefinedLabel reports a label that would shadow SP, R0..R15, SCREEN or
// another predefined symbol.
func (assemblyError) PredefinedLabel(label string, r TextRange) Diagnostic {
	return Diagnostic{
		Range:    r,
		Message:  "Label \"" + label + "\" redefines a predefined symbol",
		Source:   "Assembler",
		Severity: Error,
		Kind:     DuplicateLabel,
	}
}

// Warnings
type assemblyWarning struct{}

var Warnings assemblyWarning

func (assemblyWarning) DuplicateLabel(label string, firstLine int, r TextRange) Diagnostic {
	d := Errors.DuplicateLabel(label, firstLine, r)
	d.Message += ", the last declaration wins"
	d.Severity = Warning
	return d
}

type UnknownMnemonicError struct {
	Field    string
	Mnemonic string
}

func (e *UnknownMnemonicError) Error() string {
	return "unknown " + e.Field + " mnemonic: \"" + e.Mnemonic + "\""
}

// AssemblyError carries every error diagnostic of a failed run.
type AssemblyError struct {
	FileName    string
	Diagnostics []Diagnostic
}

func (e *AssemblyError) Error() string {
	b := strings.Builder{}
	for i, d := range e.Diagnostics {
		if i > 0 {
			b.WriteByte('\n')
		}
		if e.FileName != "" {
			b.WriteString(e.FileName + ":")
		}
		b.WriteString(strconv.Itoa(d.Range.Start.Line+1) + ":" + strconv.Itoa(d.Range.Start.Char+1) + ": " + d.Message)
	}
	return b.String()
}

// Kind is the kind of the first error.
func (e *AssemblyError) Kind() ErrorKind {
	if len(e.Diagnostics) == 0 {
		return NoError
	}
	return e.Diagnostics[0].Kind
}

type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return "could not " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an assembly or I/O failure of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return kind == IOFailure
	}
	var asmErr *AssemblyError
	if !errors.As(err, &asmErr) {
		return false
	}
	for _, d := range asmErr.Diagnostics {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
