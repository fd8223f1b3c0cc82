package sema

import (
	"context"
	"fmt"
	"strconv"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/source"
	"cminus/internal/symbols"
	"cminus/internal/trace"
	"cminus/internal/types"
)

// BuildSymbols runs the construction pass: it opens the global scope,
// optionally installs the prelude, declares every name of file and stamps
// scope handles on compound statements. The stack is empty on return.
//
// The only error is a failed write of the TraceSymbols listing.
func BuildSymbols(ctx context.Context, c *Context, file *ast.File) error {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "symbols", trace.CurrentSpan(ctx).SpanID)
	errsBefore := c.errors

	c.funcName = ""
	c.reuseScope = false
	c.global = c.resolver.Enter(symbols.ScopeGlobal, source.NoStringID)
	if c.opts.Prelude {
		c.resolver.InstallPrelude(symbols.Prelude())
	}
	ast.Walk(&symbolBuilder{c: c, tracer: tracer, parent: span.ID()}, file)
	c.resolver.Pop()

	span.WithExtra("symbols", strconv.Itoa(c.table.Symbols.Len())).
		WithExtra("errors", strconv.Itoa(c.errors-errsBefore)).
		End("")

	if w := c.opts.TraceSymbols; w != nil {
		if _, err := fmt.Fprint(w, "\nSymbol table:\n\n"); err != nil {
			return fmt.Errorf("trace symbols: %w", err)
		}
		if err := symbols.Dump(w, c.table); err != nil {
			return fmt.Errorf("trace symbols: %w", err)
		}
	}
	return nil
}

type symbolBuilder struct {
	c      *Context
	tracer trace.Tracer
	parent uint64
	fnSpan *trace.Span
}

func (b *symbolBuilder) Pre(n ast.Node) {
	switch n := n.(type) {
	case *ast.FuncDecl:
		b.fnSpan = trace.Begin(b.tracer, trace.ScopeNode, "symbols:"+n.Name, b.parent)
		b.declareFunc(n)
	case *ast.VarDecl:
		b.declareVar(n, n.Name, n.Spec, symbols.SymbolVariable, types.Integer)
	case *ast.ArrayDecl:
		b.declareVar(n, n.Name, n.Spec, symbols.SymbolArray, types.IntegerArray)
	case *ast.Param:
		b.declareParam(n)
	case *ast.CompoundStmt:
		b.enterBlock(n)
	case *ast.Ident:
		b.use(n.Name, n.LineNo, diag.SemaUnresolvedSymbol, "undeclared symbol")
	case *ast.IndexExpr:
		b.use(n.Name, n.LineNo, diag.SemaUnresolvedSymbol, "undeclared symbol")
	case *ast.CallExpr:
		if !b.use(n.Name, n.LineNo, diag.SemaUndeclaredFunction, "undeclared function") {
			b.c.unresolvedCalls[n] = struct{}{}
		}
	}
}

func (b *symbolBuilder) Post(n ast.Node) {
	switch n.(type) {
	case *ast.CompoundStmt:
		b.c.resolver.Pop()
	case *ast.FuncDecl:
		// a function without a body never consumed its scope
		if b.c.reuseScope {
			b.c.reuseScope = false
			b.c.resolver.Pop()
		}
		b.fnSpan.End("")
		b.fnSpan = nil
	}
}

func (b *symbolBuilder) declareFunc(fn *ast.FuncDecl) {
	c := b.c
	c.funcName = fn.Name
	if fn.Name == "main" {
		c.mainCount++
	}
	name := c.intern(fn.Name)
	if prev, ok := c.resolver.LookupCurrent(name); ok {
		b.notePrevious(c.errorAt(diag.SemaFunctionRedeclared, fn.LineNo, "function already declared"), prev).Emit()
	} else {
		c.resolver.Insert(name, fn, symbols.SymbolFunction, fn.LineNo)
	}
	// a rejected redeclaration still gets its own scope, so its parameters
	// and locals stay out of the enclosing one
	c.resolver.Enter(symbols.ScopeFunction, name)
	c.reuseScope = true
	if fn.Result.IsVoid() {
		fn.Type = types.Void
	} else {
		fn.Type = types.Integer
	}
}

func (b *symbolBuilder) declareVar(decl ast.Decl, name string, spec *ast.TypeSpec, kind symbols.SymbolKind, typ types.Kind) {
	c := b.c
	line := decl.Line()
	if spec.IsVoid() {
		c.report(diag.SemaVoidVariable, line, "variable should have non-void type")
		return
	}
	decl.SetSemType(typ)
	id := c.intern(name)
	// function clash first: names are unique across kinds, so the plain
	// duplicate check would otherwise swallow it
	if prev, ok := c.resolver.LookupCurrentFunction(id); ok {
		b.notePrevious(c.errorAt(diag.SemaFunctionNameClash, line, "function already declared with symbol name"), prev).Emit()
		return
	}
	if prev, ok := c.resolver.LookupCurrent(id); ok {
		b.notePrevious(c.errorAt(diag.SemaDuplicateSymbol, line, "symbol already declared for current scope"), prev).Emit()
		return
	}
	c.resolver.Insert(id, decl, kind, line)
}

func (b *symbolBuilder) declareParam(p *ast.Param) {
	c := b.c
	if p.Spec.IsVoid() {
		c.report(diag.SemaVoidParam, p.Spec.LineNo, "void type parameter is not allowed")
	}
	p.Type = paramType(p)
	name := c.intern(p.Name)
	if prev, ok := c.resolver.LookupCurrent(name); ok {
		b.notePrevious(c.errorAt(diag.SemaDuplicateSymbol, p.LineNo, "symbol already declared for current scope"), prev).Emit()
		return
	}
	c.resolver.Insert(name, p, symbols.KindOf(p), p.LineNo)
}

func (b *symbolBuilder) enterBlock(block *ast.CompoundStmt) {
	c := b.c
	if c.reuseScope {
		c.reuseScope = false
	} else {
		c.resolver.Enter(symbols.ScopeBlock, c.intern(c.funcName))
	}
	block.Scope = c.resolver.Top()
}

// use records a use of name at line, reporting code when it is not visible.
func (b *symbolBuilder) use(name string, line int, code diag.Code, msg string) bool {
	c := b.c
	id, ok := c.resolver.Lookup(c.intern(name))
	if !ok {
		c.report(code, line, "%s", msg)
		return false
	}
	c.resolver.RecordUse(id, line)
	return true
}

func (b *symbolBuilder) notePrevious(builder *diag.ReportBuilder, prev symbols.SymbolID) *diag.ReportBuilder {
	sym := b.c.symbol(prev)
	if sym == nil {
		return builder
	}
	if sym.IsBuiltin() {
		return builder.WithNote(b.c.pos(sym.Line), "built-in declaration here")
	}
	return builder.WithNote(b.c.pos(sym.Line), "previous declaration here")
}

func paramType(p *ast.Param) types.Kind {
	if p.IsArray() {
		return types.IntegerArray
	}
	return types.Integer
}
