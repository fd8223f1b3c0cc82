package symbols

import "cminus/internal/source"

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // top-level declarations
	ScopeFunction           // parameters and outermost locals of a function
	ScopeBlock              // nested compound statement
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope. Names are unique within a scope regardless of
// symbol kind, so NameIndex maps to a single symbol.
type Scope struct {
	Kind      ScopeKind
	Name      source.StringID // enclosing function, NoStringID for global
	Parent    ScopeID         // top of the stack when the scope was created
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID // declaration order
	Children  []ScopeID
}
