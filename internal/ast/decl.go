package ast

import "cminus/internal/types"

// FuncDecl declares a function. Type holds the declared return type once
// the symbol pass has run.
type FuncDecl struct {
	LineNo int
	Name   string
	Result *TypeSpec
	Params []*Param
	Body   *CompoundStmt
	Type   types.Kind
}

// VarDecl declares a scalar variable.
type VarDecl struct {
	LineNo int
	Name   string
	Spec   *TypeSpec
	Type   types.Kind
}

// ArrayDecl declares a fixed-size integer array.
type ArrayDecl struct {
	LineNo int
	Name   string
	Size   int
	Spec   *TypeSpec
	Type   types.Kind
}

func (d *FuncDecl) Line() int                { return d.LineNo }
func (*FuncDecl) Family() Family             { return FamilyDecl }
func (d *FuncDecl) SemType() types.Kind      { return d.Type }
func (d *FuncDecl) SetSemType(k types.Kind)  { d.Type = k }
func (d *FuncDecl) DeclName() string         { return d.Name }
func (*FuncDecl) declNode()                  {}
func (d *VarDecl) Line() int                 { return d.LineNo }
func (*VarDecl) Family() Family              { return FamilyDecl }
func (d *VarDecl) SemType() types.Kind       { return d.Type }
func (d *VarDecl) SetSemType(k types.Kind)   { d.Type = k }
func (d *VarDecl) DeclName() string          { return d.Name }
func (*VarDecl) declNode()                   {}
func (d *ArrayDecl) Line() int               { return d.LineNo }
func (*ArrayDecl) Family() Family            { return FamilyDecl }
func (d *ArrayDecl) SemType() types.Kind     { return d.Type }
func (d *ArrayDecl) SetSemType(k types.Kind) { d.Type = k }
func (d *ArrayDecl) DeclName() string        { return d.Name }
func (*ArrayDecl) declNode()                 {}

// ParamKind distinguishes `int x` from `int x[]`.
type ParamKind uint8

const (
	ParamScalar ParamKind = iota
	ParamArray
)

// Param is one formal parameter of a function.
type Param struct {
	LineNo int
	Name   string
	Kind   ParamKind
	Spec   *TypeSpec
	Type   types.Kind
}

func (p *Param) Line() int               { return p.LineNo }
func (*Param) Family() Family            { return FamilyParam }
func (p *Param) SemType() types.Kind     { return p.Type }
func (p *Param) SetSemType(k types.Kind) { p.Type = k }
func (p *Param) IsArray() bool           { return p.Kind == ParamArray }
