// Package testkit holds checks shared by tests of the analysis passes.
package testkit

import (
	"fmt"

	"cminus/internal/ast"
	"cminus/internal/symbols"
	"cminus/internal/types"
)

// CheckAnnotations walks an analysed tree and verifies:
//  1. every compound statement is stamped with a function or block scope of table
//  2. when clean is set (no diagnostics), every expression and declaration has a
//     semantic type other than Invalid
func CheckAnnotations(file *ast.File, table *symbols.Table, clean bool) error {
	if file == nil || table == nil {
		return fmt.Errorf("nil file or table")
	}
	var first error
	fail := func(format string, args ...any) {
		if first == nil {
			first = fmt.Errorf(format, args...)
		}
	}
	ast.Inspect(file, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.CompoundStmt:
			scope := table.Scopes.Get(n.Scope)
			if scope == nil {
				fail("line %d: compound statement has no scope", n.Line())
				return
			}
			if scope.Kind != symbols.ScopeFunction && scope.Kind != symbols.ScopeBlock {
				fail("line %d: compound statement stamped with %s scope #%d", n.Line(), scope.Kind, n.Scope)
			}
		case ast.Expr:
			if clean && n.SemType() == types.Invalid {
				fail("line %d: %T left untyped", n.Line(), n)
			}
		case ast.Decl:
			if clean && n.SemType() == types.Invalid {
				fail("line %d: declaration %s left untyped", n.Line(), n.DeclName())
			}
		}
	})
	return first
}
