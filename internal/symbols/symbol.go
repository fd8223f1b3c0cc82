package symbols

import (
	"cminus/internal/ast"
	"cminus/internal/source"
	"cminus/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolFunction
	SymbolVariable
	SymbolArray
	SymbolParam
	SymbolArrayParam
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolVariable:
		return "variable"
	case SymbolArray:
		return "array"
	case SymbolParam:
		return "param"
	case SymbolArrayParam:
		return "array param"
	default:
		return "invalid"
	}
}

// IsArray reports whether symbols of this kind hold an integer array.
func (k SymbolKind) IsArray() bool {
	return k == SymbolArray || k == SymbolArrayParam
}

// KindOf derives the symbol kind from the declaring node.
func KindOf(decl ast.Node) SymbolKind {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		return SymbolFunction
	case *ast.VarDecl:
		return SymbolVariable
	case *ast.ArrayDecl:
		return SymbolArray
	case *ast.Param:
		if d.IsArray() {
			return SymbolArrayParam
		}
		return SymbolParam
	default:
		return SymbolInvalid
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	SymbolFlagBuiltin SymbolFlags = 1 << iota
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	var labels []string
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	return labels
}

// Symbol describes a named entity available in a scope. The declaring node is
// the source of truth for its type and, for functions, its parameter list.
type Symbol struct {
	Name     source.StringID
	Kind     SymbolKind
	Scope    ScopeID
	Decl     ast.Node
	Line     int
	Location int
	Uses     []int // lines, append-only
	Flags    SymbolFlags
}

// Type returns the semantic type stamped on the declaring node.
func (s *Symbol) Type() types.Kind {
	if typed, ok := s.Decl.(ast.Typed); ok {
		return typed.SemType()
	}
	return types.Invalid
}

// Func returns the function declaration behind a function symbol.
func (s *Symbol) Func() (*ast.FuncDecl, bool) {
	fn, ok := s.Decl.(*ast.FuncDecl)
	return fn, ok && fn != nil
}

// IsBuiltin reports whether the symbol was installed by the prelude.
func (s *Symbol) IsBuiltin() bool { return s.Flags&SymbolFlagBuiltin != 0 }
