package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"cminus/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table owns every scope and symbol of one analysis. Storage locations are
// issued from a counter owned by the table, so independent analyses never
// share numbering.
type Table struct {
	Scopes    *Scopes
	Symbols   *Symbols
	Strings   *source.Interner
	locations int
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// Locations reports how many storage locations have been issued.
func (t *Table) Locations() int { return t.locations }

func (t *Table) nextLocation() int {
	loc := t.locations
	t.locations++
	return loc
}

// Name returns the identifier of a symbol, or "" for an unknown ID.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	name, _ := t.Strings.Lookup(sym.Name)
	return name
}

// ScopeName returns the function name a scope belongs to, "" for global.
func (t *Table) ScopeName(id ScopeID) string {
	scope := t.Scopes.Get(id)
	if scope == nil {
		return ""
	}
	name, _ := t.Strings.Lookup(scope.Name)
	return name
}

// Find looks a name up in one scope without consulting any stack.
func (t *Table) Find(scopeID ScopeID, name string) (SymbolID, bool) {
	scope := t.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}
	nameID, ok := t.Strings.Find(name)
	if !ok {
		return NoSymbolID, false
	}
	id, ok := scope.NameIndex[nameID]
	return id, ok
}
