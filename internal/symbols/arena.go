package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"cminus/internal/source"
)

// slots is a 1-based arena: index 0 is a sentinel so that the zero ID of
// every table stays invalid.
type slots[T any] struct {
	data []T
}

func newSlots[T any](capacity uint32) slots[T] {
	return slots[T]{data: make([]T, 1, capacity+1)}
}

func (a *slots[T]) push(v T, what string) uint32 {
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", what, err))
	}
	a.data = append(a.data, v)
	return idx
}

func (a *slots[T]) at(idx uint32) *T {
	if idx == 0 || int(idx) >= len(a.data) {
		return nil
	}
	return &a.data[idx]
}

func (a *slots[T]) size() int { return len(a.data) - 1 }

// Scopes stores all allocated scopes.
type Scopes struct {
	slots[Scope]
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 16
	}
	return &Scopes{newSlots[Scope](capacity)}
}

// New allocates a scope and links it into its parent's children.
func (s *Scopes) New(kind ScopeKind, name source.StringID, parent ScopeID) ScopeID {
	id := ScopeID(s.push(Scope{
		Kind:      kind,
		Name:      name,
		Parent:    parent,
		NameIndex: make(map[source.StringID]SymbolID),
	}, "scopes"))
	if p := s.Get(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

// Get returns the scope pointer or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope { return s.at(uint32(id)) }

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return s.size() }

// Symbols stores declared symbols.
type Symbols struct {
	slots[Symbol]
}

// NewSymbols creates a symbol arena with optional capacity hint.
func NewSymbols(capacity uint32) *Symbols {
	if capacity == 0 {
		capacity = 32
	}
	return &Symbols{newSlots[Symbol](capacity)}
}

// New copies sym into the arena and returns its ID.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	return SymbolID(s.push(*sym, "symbols"))
}

// Get returns a symbol pointer or nil for invalid ID.
func (s *Symbols) Get(id SymbolID) *Symbol { return s.at(uint32(id)) }

// Len reports number of stored symbols excluding sentinel.
func (s *Symbols) Len() int { return s.size() }
