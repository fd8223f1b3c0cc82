package treeio

import (
	"errors"
	"fmt"

	"cminus/internal/ast"
)

// ErrMalformed is wrapped by every structural decoding error.
var ErrMalformed = errors.New("malformed tree")

func malformed(n *Node, format string, args ...any) error {
	line := 0
	if n != nil {
		line = n.Line
	}
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, line, fmt.Sprintf(format, args...))
}

// FromWire converts wire records into a syntax tree. Expressions start out
// untyped and compound statements without a scope.
func FromWire(wire *File) (*ast.File, error) {
	if wire == nil {
		return nil, malformed(nil, "missing root")
	}
	file := &ast.File{Decls: make([]ast.Decl, 0, len(wire.Decls))}
	for _, n := range wire.Decls {
		d, err := decodeDecl(n, true)
		if err != nil {
			return nil, err
		}
		file.Decls = append(file.Decls, d)
	}
	return file, nil
}

func decodeTypeSpec(n *Node) (*ast.TypeSpec, error) {
	line := n.TypeLine
	if line == 0 {
		line = n.Line
	}
	switch n.Type {
	case "", TypeInt:
		return &ast.TypeSpec{LineNo: line, Kind: ast.TypeInt}, nil
	case TypeVoid:
		return &ast.TypeSpec{LineNo: line, Kind: ast.TypeVoid}, nil
	default:
		return nil, malformed(n, "unknown type %q", n.Type)
	}
}

func decodeDecl(n *Node, topLevel bool) (ast.Decl, error) {
	if n == nil {
		return nil, malformed(nil, "nil declaration")
	}
	if n.Name == "" {
		return nil, malformed(n, "%s declaration without a name", n.Kind)
	}
	spec, err := decodeTypeSpec(n)
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case KindFunc:
		if !topLevel {
			return nil, malformed(n, "function %s declared inside a block", n.Name)
		}
		fn := &ast.FuncDecl{LineNo: n.Line, Name: n.Name, Result: spec}
		for _, p := range n.Params {
			param, err := decodeParam(p)
			if err != nil {
				return nil, err
			}
			fn.Params = append(fn.Params, param)
		}
		if n.Body == nil || n.Body.Kind != KindCompound {
			return nil, malformed(n, "function %s needs a compound body", n.Name)
		}
		if fn.Body, err = decodeCompound(n.Body); err != nil {
			return nil, err
		}
		return fn, nil
	case KindVar:
		return &ast.VarDecl{LineNo: n.Line, Name: n.Name, Spec: spec}, nil
	case KindArray:
		if n.Size < 0 {
			return nil, malformed(n, "array %s has negative size %d", n.Name, n.Size)
		}
		return &ast.ArrayDecl{LineNo: n.Line, Name: n.Name, Size: n.Size, Spec: spec}, nil
	default:
		return nil, malformed(n, "expected declaration, got %q", n.Kind)
	}
}

func decodeParam(n *Node) (*ast.Param, error) {
	if n == nil {
		return nil, malformed(nil, "nil parameter")
	}
	var kind ast.ParamKind
	switch n.Kind {
	case KindParam:
		kind = ast.ParamScalar
	case KindArrayParam:
		kind = ast.ParamArray
	default:
		return nil, malformed(n, "expected parameter, got %q", n.Kind)
	}
	if n.Name == "" {
		return nil, malformed(n, "parameter without a name")
	}
	spec, err := decodeTypeSpec(n)
	if err != nil {
		return nil, err
	}
	return &ast.Param{LineNo: n.Line, Name: n.Name, Kind: kind, Spec: spec}, nil
}

func decodeCompound(n *Node) (*ast.CompoundStmt, error) {
	block := &ast.CompoundStmt{LineNo: n.Line}
	for _, l := range n.Locals {
		d, err := decodeDecl(l, false)
		if err != nil {
			return nil, err
		}
		block.Locals = append(block.Locals, d)
	}
	for _, s := range n.Stmts {
		st, err := decodeStmt(s)
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, st)
	}
	return block, nil
}

// decodeStmt also accepts a bare expression and wraps it in an ExprStmt.
func decodeStmt(n *Node) (ast.Stmt, error) {
	if n == nil {
		return nil, malformed(nil, "nil statement")
	}
	switch n.Kind {
	case KindCompound:
		return decodeCompound(n)
	case KindIf:
		cond, err := decodeExpr(n.Cond, "if condition")
		if err != nil {
			return nil, err
		}
		then, err := decodeStmt(n.Then)
		if err != nil {
			return nil, err
		}
		stmt := &ast.IfStmt{LineNo: n.Line, Cond: cond, Then: then}
		if n.Else != nil {
			if stmt.Else, err = decodeStmt(n.Else); err != nil {
				return nil, err
			}
		}
		return stmt, nil
	case KindWhile:
		cond, err := decodeExpr(n.Cond, "while condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{LineNo: n.Line, Cond: cond, Body: body}, nil
	case KindReturn:
		stmt := &ast.ReturnStmt{LineNo: n.Line}
		if n.X != nil {
			x, err := decodeExpr(n.X, "return value")
			if err != nil {
				return nil, err
			}
			stmt.Result = x
		}
		return stmt, nil
	case KindExpr:
		stmt := &ast.ExprStmt{LineNo: n.Line}
		if n.X != nil {
			x, err := decodeExpr(n.X, "expression statement")
			if err != nil {
				return nil, err
			}
			stmt.X = x
		}
		return stmt, nil
	case KindAssign, KindBinary, KindConst, KindID, KindIndex, KindCall:
		x, err := decodeExpr(n, "statement")
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{LineNo: n.Line, X: x}, nil
	default:
		return nil, malformed(n, "expected statement, got %q", n.Kind)
	}
}

func decodeExpr(n *Node, what string) (ast.Expr, error) {
	if n == nil {
		return nil, malformed(nil, "missing %s", what)
	}
	switch n.Kind {
	case KindAssign:
		target, err := decodeExpr(n.Target, "assignment target")
		if err != nil {
			return nil, err
		}
		switch target.(type) {
		case *ast.Ident, *ast.IndexExpr:
		default:
			return nil, malformed(n, "assignment target must be a variable, got %q", n.Target.Kind)
		}
		value, err := decodeExpr(n.Value, "assigned value")
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{LineNo: n.Line, Target: target, Value: value}, nil
	case KindBinary:
		op, err := ast.ParseOp(n.Op)
		if err != nil {
			return nil, malformed(n, "%v", err)
		}
		left, err := decodeExpr(n.Left, "left operand")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(n.Right, "right operand")
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{LineNo: n.Line, Op: op, Left: left, Right: right}, nil
	case KindConst:
		return &ast.ConstExpr{LineNo: n.Line, Value: n.Const}, nil
	case KindID:
		if n.Name == "" {
			return nil, malformed(n, "identifier without a name")
		}
		return &ast.Ident{LineNo: n.Line, Name: n.Name}, nil
	case KindIndex:
		if n.Name == "" {
			return nil, malformed(n, "indexed identifier without a name")
		}
		idx, err := decodeExpr(n.X, "index")
		if err != nil {
			return nil, err
		}
		return &ast.IndexExpr{LineNo: n.Line, Name: n.Name, Index: idx}, nil
	case KindCall:
		if n.Name == "" {
			return nil, malformed(n, "call without a callee")
		}
		call := &ast.CallExpr{LineNo: n.Line, Name: n.Name}
		for _, a := range n.Args {
			arg, err := decodeExpr(a, "argument")
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
		return call, nil
	default:
		return nil, malformed(n, "expected %s expression, got %q", what, n.Kind)
	}
}
