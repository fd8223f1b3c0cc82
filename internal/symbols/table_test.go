package symbols

import (
	"strings"
	"testing"

	"cminus/internal/ast"
	"cminus/internal/types"
)

func TestResolverLifecycle(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table)

	global := res.Enter(ScopeGlobal, 0)
	mainName := table.Strings.Intern("main")
	fn := &ast.FuncDecl{LineNo: 1, Name: "main", Type: types.Void}
	res.Insert(mainName, fn, SymbolFunction, 1)

	scope := res.Enter(ScopeFunction, mainName)
	x := &ast.VarDecl{LineNo: 2, Name: "x", Type: types.Integer}
	res.Insert(table.Strings.Intern("x"), x, SymbolVariable, 2)

	if res.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", res.Depth())
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := res.Pop(); got != scope {
		t.Fatalf("pop = %d, want %d", got, scope)
	}
	if got := res.Pop(); got != global {
		t.Fatalf("pop = %d, want %d", got, global)
	}
	if res.Depth() != 0 || res.Top().IsValid() {
		t.Fatalf("stack not empty after balanced pops")
	}
	if got := table.ScopeName(scope); got != "main" {
		t.Fatalf("scope name = %q", got)
	}
	if s := table.Scopes.Get(scope); s.Parent != global {
		t.Fatalf("parent = %d, want %d", s.Parent, global)
	}
}

func TestLocationsAreMonotonicPerTable(t *testing.T) {
	for range 2 {
		table := NewTable(Hints{}, nil)
		res := NewResolver(table)
		res.Enter(ScopeGlobal, 0)
		a := res.Insert(table.Strings.Intern("a"), &ast.VarDecl{Name: "a"}, SymbolVariable, 1)
		b := res.Insert(table.Strings.Intern("b"), &ast.ArrayDecl{Name: "b", Size: 4}, SymbolArray, 2)
		if table.Symbols.Get(a).Location != 0 || table.Symbols.Get(b).Location != 1 {
			t.Fatalf("locations = %d, %d", table.Symbols.Get(a).Location, table.Symbols.Get(b).Location)
		}
		if table.Locations() != 2 {
			t.Fatalf("Locations = %d, want 2", table.Locations())
		}
	}
}

func TestLookupInnermostWins(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table)
	name := table.Strings.Intern("x")

	res.Enter(ScopeGlobal, 0)
	outer := res.Insert(name, &ast.VarDecl{Name: "x"}, SymbolVariable, 1)
	res.Enter(ScopeBlock, 0)
	inner := res.Insert(name, &ast.VarDecl{Name: "x"}, SymbolVariable, 3)

	if got, ok := res.Lookup(name); !ok || got != inner {
		t.Fatalf("lookup = %d, want inner %d", got, inner)
	}
	res.Pop()
	if got, ok := res.Lookup(name); !ok || got != outer {
		t.Fatalf("lookup after pop = %d, want outer %d", got, outer)
	}
	if _, ok := res.Lookup(table.Strings.Intern("y")); ok {
		t.Fatalf("lookup of unknown name succeeded")
	}
}

func TestLookupCurrentIgnoresOuterScopes(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table)
	name := table.Strings.Intern("g")

	res.Enter(ScopeGlobal, 0)
	res.Insert(name, &ast.VarDecl{Name: "g"}, SymbolVariable, 1)
	res.Enter(ScopeBlock, 0)
	if _, ok := res.LookupCurrent(name); ok {
		t.Fatalf("LookupCurrent found a symbol from the outer scope")
	}
	if _, ok := res.Lookup(name); !ok {
		t.Fatalf("Lookup missed the outer symbol")
	}
}

func TestFunctionMaskSkipsShadowingLocal(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table)
	name := table.Strings.Intern("f")

	res.Enter(ScopeGlobal, 0)
	fn := res.Insert(name, &ast.FuncDecl{Name: "f"}, SymbolFunction, 1)
	res.Enter(ScopeFunction, name)
	res.Insert(name, &ast.VarDecl{Name: "f"}, SymbolVariable, 2)

	if _, ok := res.LookupCurrentFunction(name); ok {
		t.Fatalf("LookupCurrentFunction matched a variable")
	}
	if got, ok := res.LookupFunction(name); !ok || got != fn {
		t.Fatalf("LookupFunction = %d, want %d", got, fn)
	}
	if _, ok := res.LookupOne(name, KindMaskNone); ok {
		t.Fatalf("KindMaskNone matched")
	}
}

func TestRecordUseAppends(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table)
	res.Enter(ScopeGlobal, 0)
	id := res.Insert(table.Strings.Intern("x"), &ast.VarDecl{Name: "x"}, SymbolVariable, 1)
	res.RecordUse(id, 4)
	res.RecordUse(id, 4)
	res.RecordUse(id, 7)
	res.RecordUse(NoSymbolID, 9)
	if got := table.Symbols.Get(id).Uses; len(got) != 3 || got[0] != 4 || got[2] != 7 {
		t.Fatalf("uses = %v", got)
	}
}

func TestPopEmptyStackPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewResolver(NewTable(Hints{}, nil)).Pop()
}

func TestPushUnknownScopePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewResolver(NewTable(Hints{}, nil)).Push(ScopeID(7))
}

func TestSymbolTypeFollowsDeclaration(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table)
	res.Enter(ScopeGlobal, 0)
	decl := &ast.ArrayDecl{Name: "a", Size: 3}
	id := res.Insert(table.Strings.Intern("a"), decl, KindOf(decl), 1)
	sym := table.Symbols.Get(id)
	if sym.Type() != types.Invalid {
		t.Fatalf("type before stamping = %s", sym.Type())
	}
	decl.Type = types.IntegerArray
	if sym.Type() != types.IntegerArray || !sym.Kind.IsArray() {
		t.Fatalf("type = %s, kind = %s", sym.Type(), sym.Kind)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		node ast.Node
		want SymbolKind
	}{
		{&ast.FuncDecl{}, SymbolFunction},
		{&ast.VarDecl{}, SymbolVariable},
		{&ast.ArrayDecl{}, SymbolArray},
		{&ast.Param{Kind: ast.ParamScalar}, SymbolParam},
		{&ast.Param{Kind: ast.ParamArray}, SymbolArrayParam},
		{&ast.ConstExpr{}, SymbolInvalid},
	}
	for _, tc := range cases {
		if got := KindOf(tc.node); got != tc.want {
			t.Fatalf("KindOf(%T) = %s, want %s", tc.node, got, tc.want)
		}
	}
}

func TestValidateDetectsBrokenIndex(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table)
	global := res.Enter(ScopeGlobal, 0)
	res.Insert(table.Strings.Intern("x"), &ast.VarDecl{Name: "x"}, SymbolVariable, 1)

	delete(table.Scopes.Get(global).NameIndex, table.Strings.Intern("x"))
	err := table.Validate()
	if err == nil || !strings.Contains(err.Error(), "missing from scope") {
		t.Fatalf("validate = %v", err)
	}
}

func TestPreludeInstall(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table)
	res.Enter(ScopeGlobal, 0)
	ids := res.InstallPrelude(Prelude())
	if len(ids) != 2 {
		t.Fatalf("installed %d builtins, want 2", len(ids))
	}
	in := table.Symbols.Get(ids[0])
	out := table.Symbols.Get(ids[1])
	if table.Name(ids[0]) != "input" || in.Type() != types.Integer || !in.IsBuiltin() {
		t.Fatalf("input = %+v", in)
	}
	if row := SymbolRow(table, ids[0]); row[len(row)-1] != "builtin" {
		t.Fatalf("input row = %q", row)
	}
	fn, ok := out.Func()
	if !ok || out.Type() != types.Void || len(fn.Params) != 1 || fn.Params[0].Type != types.Integer {
		t.Fatalf("output = %+v", out)
	}
	if again := res.InstallPrelude(Prelude()); len(again) != 0 {
		t.Fatalf("reinstall declared %d symbols", len(again))
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDump(t *testing.T) {
	table := NewTable(Hints{}, nil)
	res := NewResolver(table)
	res.Enter(ScopeGlobal, 0)
	id := res.Insert(table.Strings.Intern("g"), &ast.VarDecl{Name: "g", Type: types.Integer}, SymbolVariable, 1)
	res.RecordUse(id, 3)
	res.RecordUse(id, 5)
	main := table.Strings.Intern("main")
	res.Insert(main, &ast.FuncDecl{Name: "main", Type: types.Void}, SymbolFunction, 2)
	res.Enter(ScopeFunction, main)

	var sb strings.Builder
	if err := Dump(&sb, table); err != nil {
		t.Fatalf("dump: %v", err)
	}
	want := "" +
		"scope #1 global\n" +
		"  Name  Kind      Type  Line  Loc  Uses  Flags\n" +
		"  g     variable  int   1     0    3 5\n" +
		"  main  function  void  2     1\n" +
		"scope #2 function main (parent #1)\n" +
		"  Name  Kind  Type  Line  Loc  Uses  Flags\n"
	if sb.String() != want {
		t.Fatalf("dump mismatch:\n%s\nwant:\n%s", sb.String(), want)
	}
}
