package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// Validate walks internal arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	// Scopes: kind, parent/child backlinks, name index.
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := &t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		if scope.Parent.IsValid() {
			if int(scope.Parent) >= len(t.Scopes.data) || scope.Parent == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
			} else if !containsScope(t.Scopes.data[scope.Parent].Children, scopeID) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		}
		for _, child := range scope.Children {
			if int(child) >= len(t.Scopes.data) || child == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid child %d", scopeID, child))
				continue
			}
			if t.Scopes.data[child].Parent != scopeID {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", scopeID, child))
			}
		}
		if len(scope.NameIndex) != len(scope.Symbols) {
			errs = append(errs, fmt.Errorf("scope %d indexes %d names for %d symbols", scopeID, len(scope.NameIndex), len(scope.Symbols)))
		}
		for name, id := range scope.NameIndex {
			sym := t.Symbols.Get(id)
			if sym == nil {
				errs = append(errs, fmt.Errorf("scope %d name index %d references missing symbol %d", scopeID, name, id))
				continue
			}
			if sym.Name != name {
				errs = append(errs, fmt.Errorf("scope %d name index %d points at symbol %d named %d", scopeID, name, id, sym.Name))
			}
		}
	}

	// Symbols: owning scope and unique storage locations.
	seen := make(map[int]SymbolID, len(t.Symbols.data))
	for idx := 1; idx < len(t.Symbols.data); idx++ {
		symbolID, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		symbol := &t.Symbols.data[idx]
		if prev, dup := seen[symbol.Location]; dup {
			errs = append(errs, fmt.Errorf("symbols %d and %d share location %d", prev, symbolID, symbol.Location))
		}
		seen[symbol.Location] = symbolID
		if symbol.Location < 0 || symbol.Location >= t.locations {
			errs = append(errs, fmt.Errorf("symbol %d location %d out of range", symbolID, symbol.Location))
		}
		scope := t.Scopes.Get(symbol.Scope)
		if scope == nil {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", symbolID, symbol.Scope))
			continue
		}
		if scope.NameIndex[symbol.Name] != symbolID {
			errs = append(errs, fmt.Errorf("symbol %d is missing from scope %d index", symbolID, symbol.Scope))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func containsScope(list []ScopeID, id ScopeID) bool {
	for _, item := range list {
		if item == id {
			return true
		}
	}
	return false
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
