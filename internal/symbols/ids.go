package symbols

import "cminus/internal/ast"

// ScopeID identifies a scope in the table arena. It is the same handle the
// tree stores on compound statements.
type ScopeID = ast.ScopeID

// NoScopeID marks absence of scope.
const NoScopeID = ast.NoScopeID

// SymbolID identifies a symbol in the table arena.
type SymbolID uint32

// NoSymbolID marks absence of symbol.
const NoSymbolID SymbolID = 0

// IsValid reports whether the ID refers to a real symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
