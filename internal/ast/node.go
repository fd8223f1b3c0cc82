package ast

import "cminus/internal/types"

// Family groups node kinds the way the parser produces them.
type Family uint8

const (
	FamilyDecl Family = iota + 1
	FamilyStmt
	FamilyExpr
	FamilyParam
	FamilyType
)

func (f Family) String() string {
	switch f {
	case FamilyDecl:
		return "decl"
	case FamilyStmt:
		return "stmt"
	case FamilyExpr:
		return "expr"
	case FamilyParam:
		return "param"
	case FamilyType:
		return "type"
	default:
		return "invalid"
	}
}

// Node is implemented by every syntax tree node.
type Node interface {
	Line() int
	Family() Family
}

// Typed is implemented by nodes that carry a resolved semantic type:
// declarations, parameters and expressions.
type Typed interface {
	Node
	SemType() types.Kind
	SetSemType(types.Kind)
}

// Decl is a top-level or local declaration.
type Decl interface {
	Typed
	DeclName() string
	declNode()
}

// Stmt is a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression. Expressions start out as types.Invalid.
type Expr interface {
	Typed
	exprNode()
}

// File is the root of a parsed program: the sequence of top-level declarations.
type File struct {
	Decls []Decl
}

// Line returns the line of the first declaration, 0 for an empty file.
func (f *File) Line() int {
	if f == nil || len(f.Decls) == 0 || f.Decls[0] == nil {
		return 0
	}
	return f.Decls[0].Line()
}

// Family of a file is reported as a declaration sequence.
func (*File) Family() Family { return FamilyDecl }

// TypeKind is the keyword written in a type specifier.
type TypeKind uint8

const (
	TypeInt TypeKind = iota
	TypeVoid
)

func (k TypeKind) String() string {
	if k == TypeVoid {
		return "void"
	}
	return "int"
}

// TypeSpec is the `int`/`void` keyword of a declaration or parameter.
type TypeSpec struct {
	LineNo int
	Kind   TypeKind
}

func (t *TypeSpec) Line() int    { return t.LineNo }
func (*TypeSpec) Family() Family { return FamilyType }
func (t *TypeSpec) IsVoid() bool { return t != nil && t.Kind == TypeVoid }
