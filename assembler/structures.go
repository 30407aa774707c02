package assembler

type CommandType int

const (
	AddressCommand CommandType = iota // @symbol or @constant
	ComputeCommand                    // dest=comp;jump
	LabelCommand                      // (symbol)
)

func (t CommandType) String() string {
	switch t {
	case AddressCommand:
		return "A-instruction"
	case ComputeCommand:
		return "C-instruction"
	case LabelCommand:
		return "label"
	}
	return "unknown"
}

// Command is one normalized source line. Text has comments and whitespace removed.
type Command struct {
	Type   CommandType
	Text   string
	Symbol string // operand of an AddressCommand, name of a LabelCommand
	Dest   string
	Comp   string
	Jump   string
	Line   int // zero based line in the source file
	Column int // byte offset of the first code character
	End    int // byte offset past the last code character
}

// Program is the parsed source in program order. It is never reordered.
type Program []Command

type AssembledResult struct {
	Program           Program
	Symbols           *SymbolTable
	LabelToLineNumber map[string]int // label name to line number
	AddressToLine     map[int]int    // ROM address to line number
	LineToAddress     map[int]int    // line number to ROM address
	ProgramText       []string       // one 16 character word per instruction
	Diagnostics       []Diagnostic
	fileContents      []string // each line of the file
	FileName          string   // for reflection
	nextVariable      int
}

type TextPosition struct {
	Line int `json:"line"`
	Char int `json:"character"`
}

type TextRange struct {
	Start TextPosition `json:"start"`
	End   TextPosition `json:"end"`
}

type CodeDescription struct {
	URL string `json:"href"`
}

type DiagnosticSeverity int

const (
	Error       DiagnosticSeverity = 1
	Warning     DiagnosticSeverity = 2
	Information DiagnosticSeverity = 3
	Hint        DiagnosticSeverity = 4
)

type ErrorKind int

const (
	NoError ErrorKind = iota
	MalformedCommand
	UnknownMnemonic
	UnresolvedSymbol
	LiteralOverflow
	DuplicateLabel
	IOFailure
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedCommand:
		return "MalformedCommand"
	case UnknownMnemonic:
		return "UnknownMnemonic"
	case UnresolvedSymbol:
		return "UnresolvedSymbol"
	case LiteralOverflow:
		return "LiteralOverflow"
	case DuplicateLabel:
		return "DuplicateLabel"
	case IOFailure:
		return "IOFailure"
	}
	return "NoError"
}

type Diagnostic struct {
	Range           TextRange          `json:"range"`
	Message         string             `json:"message"`
	Source          string             `json:"source,omitempty"`
	CodeDescription *CodeDescription   `json:"codeDescription,omitempty"`
	Severity        DiagnosticSeverity `json:"severity,omitempty"`
	Kind            ErrorKind          `json:"-"`
}
