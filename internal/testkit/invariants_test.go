package testkit

import (
	"context"
	"strings"
	"testing"

	"cminus/internal/ast"
	"cminus/internal/sema"
)

func program() *ast.File {
	body := &ast.CompoundStmt{
		LineNo: 1,
		Locals: []ast.Decl{&ast.VarDecl{LineNo: 2, Name: "x", Spec: &ast.TypeSpec{LineNo: 2}}},
		Body: []ast.Stmt{
			&ast.WhileStmt{
				LineNo: 3,
				Cond:   &ast.Ident{LineNo: 3, Name: "x"},
				Body:   &ast.CompoundStmt{LineNo: 3},
			},
		},
	}
	return &ast.File{Decls: []ast.Decl{
		&ast.FuncDecl{LineNo: 1, Name: "main", Result: &ast.TypeSpec{LineNo: 1, Kind: ast.TypeVoid}, Body: body},
	}}
}

func TestCheckAnnotationsAfterAnalysis(t *testing.T) {
	file := program()
	res, err := sema.Analyze(context.Background(), file, sema.Options{})
	if err != nil || !res.OK() {
		t.Fatalf("analysis failed: err=%v errors=%d", err, res.Errors)
	}
	if err := CheckAnnotations(file, res.Table, true); err != nil {
		t.Fatal(err)
	}
}

func TestCheckAnnotationsCatchesUnstampedBlock(t *testing.T) {
	file := program()
	res, err := sema.Analyze(context.Background(), file, sema.Options{})
	if err != nil {
		t.Fatal(err)
	}
	inner := file.Decls[0].(*ast.FuncDecl).Body.Body[0].(*ast.WhileStmt).Body.(*ast.CompoundStmt)
	inner.Scope = ast.NoScopeID
	err = CheckAnnotations(file, res.Table, false)
	if err == nil || !strings.Contains(err.Error(), "line 3: compound statement has no scope") {
		t.Fatalf("err = %v", err)
	}
}
