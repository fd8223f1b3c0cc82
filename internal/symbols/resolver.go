package symbols

import (
	"fmt"

	"cminus/internal/ast"
	"cminus/internal/source"
)

// KindMask restricts lookup to specific symbol kinds.
type KindMask uint32

const (
	// KindMaskNone filters out all kinds.
	KindMaskNone KindMask = 0
	// KindMaskAny allows all kinds.
	KindMaskAny KindMask = ^KindMask(0)
)

// Mask converts a symbol kind into a KindMask bit.
func (k SymbolKind) Mask() KindMask {
	return KindMask(1 << uint(k))
}

func matchKind(mask KindMask, kind SymbolKind) bool {
	return mask == KindMaskAny || mask&kind.Mask() != 0
}

// Resolver owns the scope stack of one pass over the tree. Lookups walk the
// stack from the top, so the innermost declaration wins.
type Resolver struct {
	table *Table
	stack []ScopeID
}

// NewResolver wires a resolver to table with an empty stack.
func NewResolver(table *Table) *Resolver {
	return &Resolver{
		table: table,
		stack: make([]ScopeID, 0, 8),
	}
}

// Table returns the table the resolver writes into.
func (r *Resolver) Table() *Table { return r.table }

// CreateScope allocates an empty scope whose parent is the current top. The
// stack is left untouched.
func (r *Resolver) CreateScope(kind ScopeKind, name source.StringID) ScopeID {
	return r.table.Scopes.New(kind, name, r.Top())
}

// Enter creates a scope and pushes it.
func (r *Resolver) Enter(kind ScopeKind, name source.StringID) ScopeID {
	id := r.CreateScope(kind, name)
	r.Push(id)
	return id
}

// Push makes an existing scope the innermost one.
func (r *Resolver) Push(id ScopeID) {
	if r.table.Scopes.Get(id) == nil {
		panic(fmt.Sprintf("symbols: push of unknown scope %d", id))
	}
	r.stack = append(r.stack, id)
}

// Pop removes and returns the innermost scope. Popping an empty stack means
// the walk is unbalanced and panics.
func (r *Resolver) Pop() ScopeID {
	if len(r.stack) == 0 {
		panic("symbols: pop on empty scope stack")
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return top
}

// Top returns the innermost scope or NoScopeID when the stack is empty.
func (r *Resolver) Top() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Depth reports the number of pushed scopes.
func (r *Resolver) Depth() int { return len(r.stack) }

// Insert declares name in the innermost scope and assigns it the next storage
// location. The caller has already checked that the name is free there.
func (r *Resolver) Insert(name source.StringID, decl ast.Node, kind SymbolKind, line int) SymbolID {
	scopeID := r.Top()
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		panic("symbols: insert with empty scope stack")
	}
	if prev, ok := scope.NameIndex[name]; ok {
		panic(fmt.Sprintf("symbols: %q already bound to symbol %d in scope %d", r.table.Strings.MustLookup(name), prev, scopeID))
	}
	id := r.table.Symbols.New(&Symbol{
		Name:     name,
		Kind:     kind,
		Scope:    scopeID,
		Decl:     decl,
		Line:     line,
		Location: r.table.nextLocation(),
	})
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[name] = id
	return id
}

// LookupCurrent searches the innermost scope only.
func (r *Resolver) LookupCurrent(name source.StringID) (SymbolID, bool) {
	return r.lookupIn(r.Top(), name, KindMaskAny)
}

// LookupCurrentFunction searches the innermost scope for a function symbol.
func (r *Resolver) LookupCurrentFunction(name source.StringID) (SymbolID, bool) {
	return r.lookupIn(r.Top(), name, SymbolFunction.Mask())
}

// Lookup walks the stack searching for a symbol with the given name.
func (r *Resolver) Lookup(name source.StringID) (SymbolID, bool) {
	return r.LookupOne(name, KindMaskAny)
}

// LookupFunction walks the stack skipping everything but functions, so a
// local that shadows the enclosing function's name does not hide it.
func (r *Resolver) LookupFunction(name source.StringID) (SymbolID, bool) {
	return r.LookupOne(name, SymbolFunction.Mask())
}

// LookupOne finds the innermost symbol with matching name and kind mask.
func (r *Resolver) LookupOne(name source.StringID, mask KindMask) (SymbolID, bool) {
	if mask == KindMaskNone {
		return NoSymbolID, false
	}
	for i := len(r.stack) - 1; i >= 0; i-- {
		if id, ok := r.lookupIn(r.stack[i], name, mask); ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

func (r *Resolver) lookupIn(scopeID ScopeID, name source.StringID, mask KindMask) (SymbolID, bool) {
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}
	id, ok := scope.NameIndex[name]
	if !ok {
		return NoSymbolID, false
	}
	if mask != KindMaskAny {
		sym := r.table.Symbols.Get(id)
		if sym == nil || !matchKind(mask, sym.Kind) {
			return NoSymbolID, false
		}
	}
	return id, true
}

// RecordUse appends a use line to the symbol.
func (r *Resolver) RecordUse(id SymbolID, line int) {
	if sym := r.table.Symbols.Get(id); sym != nil {
		sym.Uses = append(sym.Uses, line)
	}
}
