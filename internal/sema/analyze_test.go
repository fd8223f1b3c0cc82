package sema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/symbols"
	"cminus/internal/types"
)

// int main(void) { return 0; }
func TestAnalyzeValidMain(t *testing.T) {
	zero := num(1, 0)
	body := block(1, nil, ret(1, zero))
	main := fn(1, ast.TypeInt, "main", nil, body)
	res, bag := analyze(t, file(main), Options{})

	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", listing(bag))
	}
	if !res.OK() || res.MainCount != 1 {
		t.Fatalf("result = %+v", res)
	}
	symID, ok := res.Table.Find(res.Global, "main")
	if !ok {
		t.Fatalf("main not declared in the global scope")
	}
	sym := res.Table.Symbols.Get(symID)
	if sym.Kind != symbols.SymbolFunction || sym.Type() != types.Integer {
		t.Fatalf("main = %s %s", sym.Kind, sym.Type())
	}
	if zero.Type != types.Integer {
		t.Fatalf("literal typed %s", zero.Type)
	}
	if scope := res.Table.Scopes.Get(body.Scope); scope == nil || scope.Kind != symbols.ScopeFunction {
		t.Fatalf("function body does not own the function scope")
	}
}

// void main(void) { int x; x = f(); }
func TestAnalyzeUndeclaredCallReportedOnce(t *testing.T) {
	f := call(3, "f")
	main := fn(1, ast.TypeVoid, "main", nil,
		block(1, decls(intVar(2, "x")),
			stmt(assign(3, id(3, "x"), f))))
	_, bag := analyze(t, file(main), Options{})

	if diff := deep.Equal(listing(bag), []string{"line 3: undeclared function"}); diff != nil {
		t.Fatal(diff)
	}
	if f.Type != types.Invalid {
		t.Fatalf("unresolved call typed %s", f.Type)
	}
	if bag.Items()[0].Code != diag.SemaUndeclaredFunction {
		t.Fatalf("code = %s", bag.Items()[0].Code.ID())
	}
}

// int a[10]; int main(void) { a = 5; return 0; }
func TestAnalyzeAssignToArray(t *testing.T) {
	f := file(
		intArray(1, "a", 10),
		fn(2, ast.TypeInt, "main", nil,
			block(2, nil,
				stmt(assign(3, id(3, "a"), num(3, 5))),
				ret(4, num(4, 0)))),
	)
	_, bag := analyze(t, f, Options{})
	if diff := deep.Equal(listing(bag), []string{"line 3: assignment to array variable"}); diff != nil {
		t.Fatal(diff)
	}
}

func TestAnalyzeFunctionVariableClash(t *testing.T) {
	t.Run("function first", func(t *testing.T) {
		use := call(4, "x")
		f := file(
			fn(1, ast.TypeInt, "x", nil, block(1, nil, ret(1, num(1, 1)))),
			intVar(2, "x"),
			fn(3, ast.TypeInt, "main", nil, block(3, nil, ret(4, use))),
		)
		_, bag := analyze(t, f, Options{})
		if diff := deep.Equal(listing(bag), []string{"line 2: function already declared with symbol name"}); diff != nil {
			t.Fatal(diff)
		}
		if use.Type != types.Integer {
			t.Fatalf("call after the clash typed %s", use.Type)
		}
		notes := bag.Items()[0].Notes
		if len(notes) != 1 || notes[0].Pos.Line != 1 {
			t.Fatalf("notes = %+v", notes)
		}
	})
	t.Run("variable first", func(t *testing.T) {
		f := file(
			intVar(1, "x"),
			fn(2, ast.TypeInt, "x", nil, block(2, nil, ret(2, num(2, 1)))),
			fn(3, ast.TypeInt, "main", nil, block(3, nil, ret(4, id(4, "x")))),
		)
		_, bag := analyze(t, f, Options{})
		if diff := deep.Equal(listing(bag), []string{"line 2: function already declared"}); diff != nil {
			t.Fatal(diff)
		}
	})
}

func TestAnalyzeMissingMain(t *testing.T) {
	t.Run("only diagnostic", func(t *testing.T) {
		f := file(fn(5, ast.TypeInt, "f", nil, block(5, nil, ret(6, num(6, 1)))))
		_, bag := analyze(t, f, Options{})
		if diff := deep.Equal(listing(bag), []string{"line 5: main function not declared"}); diff != nil {
			t.Fatal(diff)
		}
		if bag.Items()[0].Code != diag.SemaEntrypointNotFound {
			t.Fatalf("code = %s", bag.Items()[0].Code.ID())
		}
	})
	t.Run("other errors survive", func(t *testing.T) {
		f := file(fn(1, ast.TypeVoid, "f", nil, block(1, nil, stmt(id(2, "y")))))
		_, bag := analyze(t, f, Options{})
		want := []string{"line 2: undeclared symbol", "line 1: main function not declared"}
		if diff := deep.Equal(listing(bag), want); diff != nil {
			t.Fatal(diff)
		}
	})
	t.Run("empty program", func(t *testing.T) {
		_, bag := analyze(t, file(), Options{})
		if diff := deep.Equal(listing(bag), []string{"line 0: main function not declared"}); diff != nil {
			t.Fatal(diff)
		}
	})
}

func TestAnalyzeDuplicateMain(t *testing.T) {
	f := file(
		fn(1, ast.TypeVoid, "main", nil, block(1, nil)),
		fn(2, ast.TypeVoid, "main", nil, block(2, nil)),
	)
	res, bag := analyze(t, f, Options{})
	if diff := deep.Equal(listing(bag), []string{"line 2: function already declared"}); diff != nil {
		t.Fatal(diff)
	}
	if res.MainCount != 2 {
		t.Fatalf("main count = %d", res.MainCount)
	}
}

// int x;
// int main(void) { int x; x = 1; { int x; x = 2; } x = 3; return x; }
func TestAnalyzeShadowing(t *testing.T) {
	inner := block(4, decls(intVar(4, "x")), stmt(assign(5, id(5, "x"), num(5, 2))))
	body := block(2, decls(intVar(2, "x")),
		stmt(assign(3, id(3, "x"), num(3, 1))),
		inner,
		stmt(assign(7, id(7, "x"), num(7, 3))),
		ret(8, id(8, "x")),
	)
	f := file(intVar(1, "x"), fn(2, ast.TypeInt, "main", nil, body))
	res, bag := analyze(t, f, Options{})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", listing(bag))
	}

	uses := func(scope symbols.ScopeID) []int {
		id, ok := res.Table.Find(scope, "x")
		if !ok {
			t.Fatalf("x missing from scope %d", scope)
		}
		return res.Table.Symbols.Get(id).Uses
	}
	if got := uses(res.Global); len(got) != 0 {
		t.Fatalf("global x used at %v", got)
	}
	if diff := deep.Equal(uses(body.Scope), []int{3, 7, 8}); diff != nil {
		t.Fatal(diff)
	}
	if diff := deep.Equal(uses(inner.Scope), []int{5}); diff != nil {
		t.Fatal(diff)
	}
	if res.Table.Scopes.Get(inner.Scope).Parent != body.Scope {
		t.Fatalf("inner scope parent is not the function scope")
	}
}

type symbolRecord struct {
	Name     string
	Kind     symbols.SymbolKind
	Line     int
	Location int
	Uses     []int
}

func records(table *symbols.Table) []symbolRecord {
	var out []symbolRecord
	for i := 1; i <= table.Symbols.Len(); i++ {
		sid := symbols.SymbolID(i)
		sym := table.Symbols.Get(sid)
		out = append(out, symbolRecord{table.Name(sid), sym.Kind, sym.Line, sym.Location, sym.Uses})
	}
	return out
}

func TestAnalyzeFreshTablesAgree(t *testing.T) {
	f := file(
		intArray(1, "buf", 4),
		fn(2, ast.TypeInt, "sum", []*ast.Param{arrayParam(2, "v"), param(2, "n")},
			block(2, decls(intVar(3, "i"), intVar(3, "s")),
				stmt(assign(4, id(4, "s"), num(4, 0))),
				&ast.WhileStmt{LineNo: 5, Cond: bin(5, ast.OpLt, id(5, "i"), id(5, "n")),
					Body: stmt(assign(6, id(6, "s"), bin(6, ast.OpAdd, id(6, "s"), index(6, "v", id(6, "i")))))},
				ret(7, id(7, "s")))),
		fn(8, ast.TypeInt, "main", nil, block(8, nil, ret(9, call(9, "sum", id(9, "buf"), num(9, 4))))),
	)
	first, bag1 := analyze(t, f, Options{})
	second, bag2 := analyze(t, f, Options{})
	if bag1.Len() != 0 || bag2.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v / %v", listing(bag1), listing(bag2))
	}
	if diff := deep.Equal(records(first.Table), records(second.Table)); diff != nil {
		t.Fatal(diff)
	}
	if first.Table.Locations() != 7 {
		t.Fatalf("locations = %d, want 7", first.Table.Locations())
	}
	if err := first.Table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestPassesLeaveStackEmpty(t *testing.T) {
	f := file(
		intVar(1, "x"),
		fn(2, ast.TypeVoid, "main", []*ast.Param{param(2, "p")},
			block(2, nil,
				&ast.IfStmt{LineNo: 3, Cond: id(3, "p"), Then: block(3, nil), Else: block(4, nil, block(4, nil))})),
		// duplicate: parameter and body scope must still balance
		fn(5, ast.TypeVoid, "main", []*ast.Param{param(5, "q")}, block(5, nil)),
		&ast.FuncDecl{LineNo: 6, Name: "nobody", Result: intSpec(6)},
	)
	c := NewContext(Options{})
	if err := BuildSymbols(context.Background(), c, f); err != nil {
		t.Fatalf("build: %v", err)
	}
	if c.Depth() != 0 {
		t.Fatalf("depth after construction = %d", c.Depth())
	}
	if err := TypeCheck(context.Background(), c, f); err != nil {
		t.Fatalf("check: %v", err)
	}
	if c.Depth() != 0 {
		t.Fatalf("depth after checking = %d", c.Depth())
	}
	if _, ok := c.Table().Find(c.Global(), "q"); ok {
		t.Fatalf("parameter of the rejected main leaked into the global scope")
	}
}

func TestAnalyzePrelude(t *testing.T) {
	program := func() *ast.File {
		return file(fn(1, ast.TypeVoid, "main", nil,
			block(1, nil, stmt(call(2, "output", call(2, "input"))))))
	}

	_, bag := analyze(t, program(), Options{Prelude: true})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics with prelude: %v", listing(bag))
	}
	_, bag = analyze(t, program(), Options{})
	want := []string{"line 2: undeclared function", "line 2: undeclared function"}
	if diff := deep.Equal(listing(bag), want); diff != nil {
		t.Fatal(diff)
	}

	redeclared := file(
		fn(3, ast.TypeInt, "input", nil, block(3, nil, ret(3, num(3, 0)))),
		fn(4, ast.TypeVoid, "main", nil, block(4, nil)),
	)
	_, bag = analyze(t, redeclared, Options{Prelude: true})
	if diff := deep.Equal(listing(bag), []string{"line 3: function already declared"}); diff != nil {
		t.Fatal(diff)
	}
	if notes := bag.Items()[0].Notes; len(notes) != 1 || notes[0].Msg != "built-in declaration here" {
		t.Fatalf("notes = %+v", notes)
	}
}

func TestAnalyzeTraceSymbols(t *testing.T) {
	var sb strings.Builder
	f := file(fn(1, ast.TypeVoid, "main", nil, block(1, nil)))
	analyze(t, f, Options{TraceSymbols: &sb})
	out := sb.String()
	if !strings.HasPrefix(out, "\nSymbol table:\n\n") || !strings.Contains(out, "main") {
		t.Fatalf("trace output:\n%s", out)
	}
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Analyze(ctx, file(), Options{}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

// int f(int a) { return a; }
// int f(int b) { return b; }
// int main(void) { return b; }
func TestAnalyzeRedeclaredFunctionKeepsItsParameters(t *testing.T) {
	f := file(
		fn(1, ast.TypeInt, "f", []*ast.Param{param(1, "a")}, block(1, nil, ret(1, id(1, "a")))),
		fn(2, ast.TypeInt, "f", []*ast.Param{param(2, "b")}, block(2, nil, ret(2, id(2, "b")))),
		fn(3, ast.TypeInt, "main", nil, block(3, nil, ret(3, id(3, "b")))),
	)
	res, bag := analyze(t, f, Options{})
	want := []string{"line 2: function already declared", "line 3: undeclared symbol"}
	if diff := deep.Equal(listing(bag), want); diff != nil {
		t.Fatal(diff)
	}
	if _, ok := res.Table.Find(res.Global, "b"); ok {
		t.Fatalf("parameter of the rejected f leaked into the global scope")
	}
	body := f.Decls[1].(*ast.FuncDecl).Body
	if scope := res.Table.Scopes.Get(body.Scope); scope == nil || scope.Kind != symbols.ScopeFunction {
		t.Fatalf("rejected f body scope = %+v", scope)
	}
	if _, ok := res.Table.Find(body.Scope, "b"); !ok {
		t.Fatalf("parameter b missing from the rejected f scope")
	}
}

func TestTypeCheckWithoutSymbols(t *testing.T) {
	bag := diag.NewBag(0)
	c := NewContext(Options{Reporter: diag.BagReporter{Bag: bag}})
	f := file(fn(1, ast.TypeVoid, "main", nil, block(1, nil)))
	if err := TypeCheck(context.Background(), c, f); !errors.Is(err, ErrNoSymbols) {
		t.Fatalf("err = %v", err)
	}
	if bag.Len() != 0 || c.Depth() != 0 {
		t.Fatalf("fresh context touched: %v depth %d", listing(bag), c.Depth())
	}
}
