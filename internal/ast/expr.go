package ast

import "cminus/internal/types"

// AssignExpr is `Target = Value`. Target is an Ident or IndexExpr.
type AssignExpr struct {
	LineNo int
	Target Expr
	Value  Expr
	Type   types.Kind
}

// BinaryExpr applies an arithmetic or relational operator.
type BinaryExpr struct {
	LineNo int
	Op     BinOp
	Left   Expr
	Right  Expr
	Type   types.Kind
}

// ConstExpr is an integer literal.
type ConstExpr struct {
	LineNo int
	Value  int
	Type   types.Kind
}

// Ident is a use of a scalar variable, a whole array, or a parameter.
type Ident struct {
	LineNo int
	Name   string
	Type   types.Kind
}

// IndexExpr is `Name[Index]`.
type IndexExpr struct {
	LineNo int
	Name   string
	Index  Expr
	Type   types.Kind
}

// CallExpr is `Name(Args...)`.
type CallExpr struct {
	LineNo int
	Name   string
	Args   []Expr
	Type   types.Kind
}

func (e *AssignExpr) Line() int               { return e.LineNo }
func (*AssignExpr) Family() Family            { return FamilyExpr }
func (e *AssignExpr) SemType() types.Kind     { return e.Type }
func (e *AssignExpr) SetSemType(k types.Kind) { e.Type = k }
func (*AssignExpr) exprNode()                 {}

func (e *BinaryExpr) Line() int               { return e.LineNo }
func (*BinaryExpr) Family() Family            { return FamilyExpr }
func (e *BinaryExpr) SemType() types.Kind     { return e.Type }
func (e *BinaryExpr) SetSemType(k types.Kind) { e.Type = k }
func (*BinaryExpr) exprNode()                 {}

func (e *ConstExpr) Line() int               { return e.LineNo }
func (*ConstExpr) Family() Family            { return FamilyExpr }
func (e *ConstExpr) SemType() types.Kind     { return e.Type }
func (e *ConstExpr) SetSemType(k types.Kind) { e.Type = k }
func (*ConstExpr) exprNode()                 {}

func (e *Ident) Line() int               { return e.LineNo }
func (*Ident) Family() Family            { return FamilyExpr }
func (e *Ident) SemType() types.Kind     { return e.Type }
func (e *Ident) SetSemType(k types.Kind) { e.Type = k }
func (*Ident) exprNode()                 {}

func (e *IndexExpr) Line() int               { return e.LineNo }
func (*IndexExpr) Family() Family            { return FamilyExpr }
func (e *IndexExpr) SemType() types.Kind     { return e.Type }
func (e *IndexExpr) SetSemType(k types.Kind) { e.Type = k }
func (*IndexExpr) exprNode()                 {}

func (e *CallExpr) Line() int               { return e.LineNo }
func (*CallExpr) Family() Family            { return FamilyExpr }
func (e *CallExpr) SemType() types.Kind     { return e.Type }
func (e *CallExpr) SetSemType(k types.Kind) { e.Type = k }
func (*CallExpr) exprNode()                 {}
