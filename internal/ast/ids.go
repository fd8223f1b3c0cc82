package ast

// ScopeID is a handle into the symbol table's scope arena. The symbol pass
// stamps it on compound statements; the type checker reads it back.
type ScopeID uint32

// NoScopeID marks a compound statement that has not been analysed yet.
const NoScopeID ScopeID = 0

// IsValid reports whether the handle refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }
