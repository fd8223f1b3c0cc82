package sema

import (
	"context"
	"fmt"
	"testing"

	"cminus/internal/ast"
	"cminus/internal/diag"
)

func intSpec(line int) *ast.TypeSpec  { return &ast.TypeSpec{LineNo: line, Kind: ast.TypeInt} }
func voidSpec(line int) *ast.TypeSpec { return &ast.TypeSpec{LineNo: line, Kind: ast.TypeVoid} }

func fn(line int, result ast.TypeKind, name string, params []*ast.Param, body *ast.CompoundStmt) *ast.FuncDecl {
	return &ast.FuncDecl{
		LineNo: line,
		Name:   name,
		Result: &ast.TypeSpec{LineNo: line, Kind: result},
		Params: params,
		Body:   body,
	}
}

func param(line int, name string) *ast.Param {
	return &ast.Param{LineNo: line, Name: name, Kind: ast.ParamScalar, Spec: intSpec(line)}
}

func arrayParam(line int, name string) *ast.Param {
	return &ast.Param{LineNo: line, Name: name, Kind: ast.ParamArray, Spec: intSpec(line)}
}

func intVar(line int, name string) *ast.VarDecl {
	return &ast.VarDecl{LineNo: line, Name: name, Spec: intSpec(line)}
}

func intArray(line int, name string, size int) *ast.ArrayDecl {
	return &ast.ArrayDecl{LineNo: line, Name: name, Size: size, Spec: intSpec(line)}
}

func block(line int, locals []ast.Decl, body ...ast.Stmt) *ast.CompoundStmt {
	return &ast.CompoundStmt{LineNo: line, Locals: locals, Body: body}
}

func decls(d ...ast.Decl) []ast.Decl { return d }

func stmt(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{LineNo: e.Line(), X: e} }

func ret(line int, e ast.Expr) *ast.ReturnStmt { return &ast.ReturnStmt{LineNo: line, Result: e} }

func num(line, v int) *ast.ConstExpr { return &ast.ConstExpr{LineNo: line, Value: v} }

func id(line int, name string) *ast.Ident { return &ast.Ident{LineNo: line, Name: name} }

func index(line int, name string, i ast.Expr) *ast.IndexExpr {
	return &ast.IndexExpr{LineNo: line, Name: name, Index: i}
}

func call(line int, name string, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{LineNo: line, Name: name, Args: args}
}

func assign(line int, target, value ast.Expr) *ast.AssignExpr {
	return &ast.AssignExpr{LineNo: line, Target: target, Value: value}
}

func bin(line int, op ast.BinOp, l, r ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{LineNo: line, Op: op, Left: l, Right: r}
}

func file(d ...ast.Decl) *ast.File { return &ast.File{Decls: d} }

func analyze(t *testing.T, f *ast.File, opts Options) (*Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	opts.Reporter = diag.BagReporter{Bag: bag}
	res, err := Analyze(context.Background(), f, opts)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.Errors != bag.ErrorCount() {
		t.Fatalf("result counts %d errors, bag holds %d", res.Errors, bag.ErrorCount())
	}
	return res, bag
}

// listing renders diagnostics the way the compiler listing shows them.
func listing(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, fmt.Sprintf("line %d: %s", d.Primary.Line, d.Message))
	}
	return out
}
