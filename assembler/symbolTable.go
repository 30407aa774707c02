package assembler

import "strconv"

type SymbolKind int

const (
	PredefinedSymbol SymbolKind = iota
	LabelSymbol
	VariableSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case PredefinedSymbol:
		return "predefined"
	case LabelSymbol:
		return "label"
	case VariableSymbol:
		return "variable"
	}
	return "unknown"
}

type symbolEntry struct {
	address int
	kind    SymbolKind
}

// SymbolTable maps symbol names to RAM or ROM addresses.
type SymbolTable struct {
	entries map[string]symbolEntry
}

const (
	ScreenAddress   = 16384
	KeyboardAddress = 24576

	// first RAM address handed out to variables
	VariableBaseAddress = 16
)

func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{entries: make(map[string]symbolEntry)}
	st.define("SP", 0, PredefinedSymbol)
	st.define("LCL", 1, PredefinedSymbol)
	st.define("ARG", 2, PredefinedSymbol)
	st.define("THIS", 3, PredefinedSymbol)
	st.define("THAT", 4, PredefinedSymbol)
	for i := 0; i < 16; i++ {
		st.define("R"+strconv.Itoa(i), i, PredefinedSymbol)
	}
	st.define("SCREEN", ScreenAddress, PredefinedSymbol)
	st.define("KBD", KeyboardAddress, PredefinedSymbol)
	return st
}

func (st *SymbolTable) define(name string, address int, kind SymbolKind) {
	st.entries[name] = symbolEntry{address: address, kind: kind}
}

// AddEntry binds name to address as a label. An existing label is
// overwritten; predefined symbols are never rebound and false is returned.
func (st *SymbolTable) AddEntry(name string, address int) bool {
	if e, ok := st.entries[name]; ok && e.kind == PredefinedSymbol {
		return false
	}
	st.define(name, address, LabelSymbol)
	return true
}

// AddVariable binds name to address as a RAM variable.
func (st *SymbolTable) AddVariable(name string, address int) {
	st.define(name, address, VariableSymbol)
}

func (st *SymbolTable) Contains(name string) bool {
	_, ok := st.entries[name]
	return ok
}

func (st *SymbolTable) GetAddress(name string) (int, bool) {
	e, ok := st.entries[name]
	return e.address, ok
}

func (st *SymbolTable) KindOf(name string) (SymbolKind, bool) {
	e, ok := st.entries[name]
	return e.kind, ok
}

// Map returns a copy of every binding.
func (st *SymbolTable) Map() map[string]int {
	out := make(map[string]int, len(st.entries))
	for name, e := range st.entries {
		out[name] = e.address
	}
	return out
}

func (st *SymbolTable) Len() int {
	return len(st.entries)
}
