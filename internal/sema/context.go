package sema

import (
	"fmt"
	"io"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/source"
	"cminus/internal/symbols"
)

// Options configure one analysis.
type Options struct {
	Reporter diag.Reporter
	// File is stamped on every diagnostic position.
	File source.FileID
	// Strings is shared with the table; nil allocates a fresh interner.
	Strings *source.Interner
	// Prelude declares the built-in input/output functions before the walk.
	Prelude bool
	// TraceSymbols receives a listing of the table after construction.
	TraceSymbols io.Writer
}

// Context carries every piece of state the passes thread through the walk.
type Context struct {
	table    *symbols.Table
	resolver *symbols.Resolver
	reporter diag.Reporter
	file     source.FileID
	opts     Options

	global     symbols.ScopeID
	funcName   string
	reuseScope bool // next compound statement is a function body
	mainCount  int
	errors     int

	// calls the construction pass already reported as undeclared
	unresolvedCalls map[*ast.CallExpr]struct{}
}

// NewContext returns a fresh context with an empty table.
func NewContext(opts Options) *Context {
	table := symbols.NewTable(symbols.Hints{}, opts.Strings)
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Context{
		table:           table,
		resolver:        symbols.NewResolver(table),
		reporter:        reporter,
		file:            opts.File,
		opts:            opts,
		unresolvedCalls: make(map[*ast.CallExpr]struct{}),
	}
}

// Table returns the symbol table populated by the construction pass.
func (c *Context) Table() *symbols.Table { return c.table }

// Global returns the outermost scope, NoScopeID before construction.
func (c *Context) Global() symbols.ScopeID { return c.global }

// Errors reports how many errors the passes have emitted so far.
func (c *Context) Errors() int { return c.errors }

// MainCount reports how many functions named main were seen.
func (c *Context) MainCount() int { return c.mainCount }

// Depth exposes the scope stack depth; zero between passes.
func (c *Context) Depth() int { return c.resolver.Depth() }

func (c *Context) intern(name string) source.StringID {
	return c.table.Strings.Intern(name)
}

func (c *Context) pos(line int) source.Pos {
	return source.LinePos(c.file, line)
}

// errorAt starts an error diagnostic at line; the caller emits it.
func (c *Context) errorAt(code diag.Code, line int, msg string) *diag.ReportBuilder {
	c.errors++
	return diag.ReportError(c.reporter, code, c.pos(line), msg)
}

func (c *Context) report(code diag.Code, line int, format string, args ...any) {
	c.errorAt(code, line, fmt.Sprintf(format, args...)).Emit()
}

func (c *Context) symbol(id symbols.SymbolID) *symbols.Symbol {
	return c.table.Symbols.Get(id)
}
