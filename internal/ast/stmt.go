package ast

// CompoundStmt is a `{ locals; statements }` block. Scope is stamped by the
// symbol pass; a function body shares the scope of its parameters.
type CompoundStmt struct {
	LineNo int
	Locals []Decl
	Body   []Stmt
	Scope  ScopeID
}

// IfStmt is `if (Cond) Then else Else`; Else may be nil.
type IfStmt struct {
	LineNo int
	Cond   Expr
	Then   Stmt
	Else   Stmt
}

// WhileStmt is `while (Cond) Body`.
type WhileStmt struct {
	LineNo int
	Cond   Expr
	Body   Stmt
}

// ReturnStmt is `return Result;`; Result is nil for a bare return.
type ReturnStmt struct {
	LineNo int
	Result Expr
}

// ExprStmt wraps an expression used as a statement. X is nil for `;`.
type ExprStmt struct {
	LineNo int
	X      Expr
}

func (s *CompoundStmt) Line() int    { return s.LineNo }
func (*CompoundStmt) Family() Family { return FamilyStmt }
func (*CompoundStmt) stmtNode()      {}
func (s *IfStmt) Line() int          { return s.LineNo }
func (*IfStmt) Family() Family       { return FamilyStmt }
func (*IfStmt) stmtNode()            {}
func (s *WhileStmt) Line() int       { return s.LineNo }
func (*WhileStmt) Family() Family    { return FamilyStmt }
func (*WhileStmt) stmtNode()         {}
func (s *ReturnStmt) Line() int      { return s.LineNo }
func (*ReturnStmt) Family() Family   { return FamilyStmt }
func (*ReturnStmt) stmtNode()        {}
func (s *ExprStmt) Line() int        { return s.LineNo }
func (*ExprStmt) Family() Family     { return FamilyStmt }
func (*ExprStmt) stmtNode()          {}
