package sema

import (
	"context"

	"cminus/internal/ast"
	"cminus/internal/symbols"
)

// Result summarises one analysis.
type Result struct {
	Table     *symbols.Table
	Global    symbols.ScopeID
	Errors    int
	MainCount int
}

// OK reports whether the program passed both passes without errors.
func (r *Result) OK() bool { return r != nil && r.Errors == 0 }

// Result snapshots the context counters.
func (c *Context) Result() *Result {
	return &Result{
		Table:     c.table,
		Global:    c.global,
		Errors:    c.errors,
		MainCount: c.mainCount,
	}
}

// Analyze runs both passes over file with a fresh context. The tree is
// annotated in place. A non-nil error means the passes did not complete:
// either ctx was cancelled or the symbol trace could not be written.
func Analyze(ctx context.Context, file *ast.File, opts Options) (*Result, error) {
	c := NewContext(opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := BuildSymbols(ctx, c, file); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := TypeCheck(ctx, c, file); err != nil {
		return nil, err
	}
	return c.Result(), nil
}
