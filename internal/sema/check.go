package sema

import (
	"context"
	"errors"
	"strconv"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/trace"
	"cminus/internal/types"
)

// ErrNoSymbols is returned by TypeCheck for a context BuildSymbols has not
// populated.
var ErrNoSymbols = errors.New("sema: type check needs the symbol table of BuildSymbols")

// TypeCheck runs the type-checking pass over a tree BuildSymbols has already
// processed with the same context, then applies the whole-program rule that
// main must exist. Without that prior run it returns ErrNoSymbols and
// touches nothing.
//
// An operand left types.Invalid belongs to an error reported earlier; rules
// stay silent about it so one mistake yields one diagnostic.
func TypeCheck(ctx context.Context, c *Context, file *ast.File) error {
	if !c.global.IsValid() {
		return ErrNoSymbols
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "check", trace.CurrentSpan(ctx).SpanID)
	errsBefore := c.errors

	c.funcName = ""
	c.resolver.Push(c.global)
	ast.Walk(&typeChecker{c: c, tracer: tracer, parent: span.ID()}, file)
	c.resolver.Pop()

	if c.mainCount == 0 {
		c.report(diag.SemaEntrypointNotFound, file.Line(), "main function not declared")
	}
	span.WithExtra("errors", strconv.Itoa(c.errors-errsBefore)).End("")
	return nil
}

type typeChecker struct {
	c      *Context
	tracer trace.Tracer
	parent uint64
	fnSpan *trace.Span
}

func (tc *typeChecker) Pre(n ast.Node) {
	switch n := n.(type) {
	case *ast.FuncDecl:
		tc.fnSpan = trace.Begin(tc.tracer, trace.ScopeNode, "check:"+n.Name, tc.parent)
		tc.c.funcName = n.Name
	case *ast.CompoundStmt:
		tc.c.resolver.Push(n.Scope)
	}
}

func (tc *typeChecker) Post(n ast.Node) {
	switch n := n.(type) {
	case *ast.FuncDecl:
		tc.fnSpan.End("")
		tc.fnSpan = nil
	case *ast.CompoundStmt:
		tc.c.resolver.Pop()
	case *ast.WhileStmt:
		tc.checkCondition(n.Cond, "while test has void value")
	case *ast.ReturnStmt:
		tc.checkReturn(n)
	case *ast.AssignExpr:
		tc.checkAssign(n)
	case *ast.BinaryExpr:
		tc.checkBinary(n)
	case *ast.ConstExpr:
		n.Type = types.Integer
	case *ast.Ident:
		if id, ok := tc.c.resolver.Lookup(tc.c.intern(n.Name)); ok {
			n.Type = tc.c.symbol(id).Type()
		}
	case *ast.IndexExpr:
		tc.checkIndex(n)
	case *ast.CallExpr:
		tc.checkCall(n)
	}
}

func (tc *typeChecker) checkCondition(cond ast.Expr, msg string) {
	if typeOf(cond) == types.Void {
		tc.c.report(diag.SemaVoidCondition, cond.Line(), "%s", msg)
	}
}

func (tc *typeChecker) checkReturn(ret *ast.ReturnStmt) {
	c := tc.c
	id, ok := c.resolver.LookupFunction(c.intern(c.funcName))
	if !ok {
		return
	}
	value := typeOf(ret.Result)
	switch c.symbol(id).Type() {
	case types.Void:
		if ret.Result != nil && isValue(value) {
			c.report(diag.SemaUnexpectedReturnValue, ret.LineNo, "expected no return value")
		}
	case types.Integer:
		if ret.Result == nil || value == types.Void {
			c.report(diag.SemaMissingReturnValue, ret.LineNo, "expected return value")
		}
	}
}

func (tc *typeChecker) checkAssign(assign *ast.AssignExpr) {
	target, value := typeOf(assign.Target), typeOf(assign.Value)
	line := lineOf(assign.Target, assign.LineNo)
	switch {
	case target == types.IntegerArray:
		tc.c.report(diag.SemaArrayAssign, line, "assignment to array variable")
	case value == types.Void:
		tc.c.report(diag.SemaVoidAssign, line, "assignment of void value")
	default:
		assign.Type = target
	}
}

func (tc *typeChecker) checkBinary(bin *ast.BinaryExpr) {
	left, right := typeOf(bin.Left), typeOf(bin.Right)
	switch {
	case left == types.Void || right == types.Void:
		tc.c.report(diag.SemaVoidOperand, bin.LineNo, "two operands should have non-void type")
	case !left.IsValid() || !right.IsValid():
		// already reported
	case left.IsArray() && right.IsArray():
		tc.c.report(diag.SemaInvalidBinaryOperands, bin.LineNo, "not both of operands can be array")
	case bin.Op == ast.OpSub && left == types.Integer && right.IsArray():
		tc.c.report(diag.SemaInvalidBinaryOperands, bin.LineNo, "invalid operands to binary expression")
	case bin.Op.IsMultiplicative() && (left.IsArray() || right.IsArray()):
		tc.c.report(diag.SemaInvalidBinaryOperands, bin.LineNo, "invalid operands to binary expression")
	default:
		bin.Type = types.Integer
	}
}

func (tc *typeChecker) checkIndex(idx *ast.IndexExpr) {
	c := tc.c
	id, ok := c.resolver.Lookup(c.intern(idx.Name))
	if !ok {
		return
	}
	index := typeOf(idx.Index)
	switch {
	case !c.symbol(id).Kind.IsArray():
		c.report(diag.SemaExpectArray, idx.LineNo, "expected array symbol")
	case index == types.Integer:
		idx.Type = types.Integer
	case index.IsValid():
		c.report(diag.SemaIndexNotInteger, idx.LineNo, "index expression should have integer type")
	}
}

func (tc *typeChecker) checkCall(call *ast.CallExpr) {
	c := tc.c
	id, ok := c.resolver.Lookup(c.intern(call.Name))
	if !ok {
		if _, reported := c.unresolvedCalls[call]; !reported {
			c.report(diag.SemaUndeclaredFunction, call.LineNo, "undeclared function")
		}
		return
	}
	fn, ok := c.symbol(id).Func()
	if !ok {
		c.report(diag.SemaNotAFunction, call.LineNo, "expected function symbol")
		return
	}
	tc.checkArgs(call, fn)
	call.Type = fn.Type
}

// checkArgs matches arguments against parameters pairwise and stops at the
// first mismatch.
func (tc *typeChecker) checkArgs(call *ast.CallExpr, fn *ast.FuncDecl) {
	c := tc.c
	for i, arg := range call.Args {
		line := lineOf(arg, call.LineNo)
		if i >= len(fn.Params) {
			c.report(diag.SemaArgCount, line, "the number of parameters is wrong")
			return
		}
		got, want := typeOf(arg), paramType(fn.Params[i])
		switch {
		case got.IsArray() && !want.IsArray():
			c.report(diag.SemaArgShape, line, "expected non-array value")
			return
		case got == types.Integer && want.IsArray():
			c.report(diag.SemaArgShape, line, "expected array value")
			return
		case got == types.Void:
			c.report(diag.SemaVoidArgument, line, "void value cannot be passed as an argument")
			return
		}
	}
	if len(call.Args) < len(fn.Params) {
		c.report(diag.SemaArgCount, call.LineNo, "the number of parameters is wrong")
	}
}

func typeOf(e ast.Expr) types.Kind {
	if e == nil {
		return types.Invalid
	}
	return e.SemType()
}

func lineOf(n ast.Node, fallback int) int {
	if n == nil {
		return fallback
	}
	return n.Line()
}

// isValue reports whether k is something a return statement can yield.
func isValue(k types.Kind) bool {
	return k == types.Integer || k == types.IntegerArray
}
