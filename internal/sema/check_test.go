package sema

import (
	"testing"

	"github.com/go-test/deep"

	"cminus/internal/ast"
	"cminus/internal/types"
)

// checkProgram analyses
//
//	int a[2]; int b[2];
//	void v(void) { }
//	int f(int p, int q[]) { return p; }
//	int main(void) { int x; <body> return 0; }
//
// and returns the listing of diagnostics.
func checkProgram(t *testing.T, body ...ast.Stmt) []string {
	t.Helper()
	stmts := append(body, ret(20, num(20, 0)))
	f := file(
		intArray(1, "a", 2),
		intArray(1, "b", 2),
		fn(2, ast.TypeVoid, "v", nil, block(2, nil)),
		fn(3, ast.TypeInt, "f", []*ast.Param{param(3, "p"), arrayParam(3, "q")},
			block(3, nil, ret(3, id(3, "p")))),
		fn(5, ast.TypeInt, "main", nil, block(5, decls(intVar(6, "x")), stmts...)),
	)
	_, bag := analyze(t, f, Options{})
	return listing(bag)
}

func TestTypeRules(t *testing.T) {
	const line = 10
	cases := []struct {
		name string
		body func() ast.Stmt
		want []string
	}{
		{"array plus array", func() ast.Stmt { return stmt(bin(line, ast.OpAdd, id(line, "a"), id(line, "b"))) },
			[]string{"line 10: not both of operands can be array"}},
		{"int minus array", func() ast.Stmt { return stmt(bin(line, ast.OpSub, id(line, "x"), id(line, "a"))) },
			[]string{"line 10: invalid operands to binary expression"}},
		{"array minus int", func() ast.Stmt { return stmt(bin(line, ast.OpSub, id(line, "a"), id(line, "x"))) }, nil},
		{"array plus int", func() ast.Stmt { return stmt(bin(line, ast.OpAdd, id(line, "a"), id(line, "x"))) }, nil},
		{"array times int", func() ast.Stmt { return stmt(bin(line, ast.OpMul, id(line, "a"), id(line, "x"))) },
			[]string{"line 10: invalid operands to binary expression"}},
		{"int over array", func() ast.Stmt { return stmt(bin(line, ast.OpDiv, id(line, "x"), id(line, "a"))) },
			[]string{"line 10: invalid operands to binary expression"}},
		{"void operand", func() ast.Stmt { return stmt(bin(line, ast.OpAdd, call(line, "v"), num(line, 1))) },
			[]string{"line 10: two operands should have non-void type"}},
		{"comparison", func() ast.Stmt { return stmt(bin(line, ast.OpLt, id(line, "x"), num(line, 1))) }, nil},
		{"void while test", func() ast.Stmt {
			return &ast.WhileStmt{LineNo: line, Cond: call(line, "v"), Body: &ast.ExprStmt{LineNo: line}}
		}, []string{"line 10: while test has void value"}},
		{"void if test is accepted", func() ast.Stmt {
			return &ast.IfStmt{LineNo: line, Cond: call(line, "v"), Then: &ast.ExprStmt{LineNo: line}}
		}, nil},
		{"index scalar", func() ast.Stmt { return stmt(index(line, "x", num(line, 1))) },
			[]string{"line 10: expected array symbol"}},
		{"index by array", func() ast.Stmt { return stmt(index(line, "a", id(line, "b"))) },
			[]string{"line 10: index expression should have integer type"}},
		{"index by void", func() ast.Stmt { return stmt(index(line, "a", call(line, "v"))) },
			[]string{"line 10: index expression should have integer type"}},
		{"assign void", func() ast.Stmt { return stmt(assign(line, id(line, "x"), call(line, "v"))) },
			[]string{"line 10: assignment of void value"}},
		{"call variable", func() ast.Stmt { return stmt(call(line, "x")) },
			[]string{"line 10: expected function symbol"}},
		{"too few args", func() ast.Stmt { return stmt(call(line, "f", num(line, 1))) },
			[]string{"line 10: the number of parameters is wrong"}},
		{"too many args", func() ast.Stmt { return stmt(call(line, "f", num(line, 1), id(line, "a"), num(11, 2))) },
			[]string{"line 11: the number of parameters is wrong"}},
		{"array for scalar", func() ast.Stmt { return stmt(call(line, "f", id(11, "a"), id(line, "a"))) },
			[]string{"line 11: expected non-array value"}},
		{"scalar for array", func() ast.Stmt { return stmt(call(line, "f", num(line, 1), num(11, 1))) },
			[]string{"line 11: expected array value"}},
		{"void argument stops the walk", func() ast.Stmt { return stmt(call(line, "f", call(11, "v"))) },
			[]string{"line 11: void value cannot be passed as an argument"}},
		{"matching call", func() ast.Stmt {
			return stmt(call(line, "f", bin(line, ast.OpAdd, index(line, "a", num(line, 0)), num(line, 1)), id(line, "b")))
		}, nil},
		{"undeclared operand is reported once", func() ast.Stmt { return stmt(bin(line, ast.OpAdd, id(line, "y"), num(line, 1))) },
			[]string{"line 10: undeclared symbol"}},
		{"undeclared array is reported once", func() ast.Stmt { return stmt(index(line, "y", num(line, 1))) },
			[]string{"line 10: undeclared symbol"}},
		{"undeclared call in condition", func() ast.Stmt {
			return &ast.WhileStmt{LineNo: line, Cond: call(line, "g"), Body: &ast.ExprStmt{LineNo: line}}
		}, []string{"line 10: undeclared function"}},
		{"bare return in int function", func() ast.Stmt { return ret(line, nil) },
			[]string{"line 10: expected return value"}},
		{"void return value in int function", func() ast.Stmt { return ret(line, call(line, "v")) },
			[]string{"line 10: expected return value"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := deep.Equal(checkProgram(t, tc.body()), tc.want); diff != nil {
				t.Fatal(diff)
			}
		})
	}
}

func TestVoidFunctionReturningValue(t *testing.T) {
	f := file(
		fn(1, ast.TypeVoid, "g", nil, block(1, nil, ret(2, num(2, 1)), ret(3, nil))),
		fn(4, ast.TypeVoid, "main", nil, block(4, nil)),
	)
	_, bag := analyze(t, f, Options{})
	if diff := deep.Equal(listing(bag), []string{"line 2: expected no return value"}); diff != nil {
		t.Fatal(diff)
	}
}

func TestReturnResolvesShadowedFunction(t *testing.T) {
	// int g(void) { int g; g = 1; return g; }
	f := file(
		fn(1, ast.TypeInt, "g", nil, block(1, nil,
			block(2, decls(intVar(2, "g")),
				stmt(assign(3, id(3, "g"), num(3, 1))),
				ret(4, id(4, "g"))))),
		fn(5, ast.TypeVoid, "main", nil, block(5, nil)),
	)
	_, bag := analyze(t, f, Options{})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", listing(bag))
	}
}

func TestExpressionTypesAreStamped(t *testing.T) {
	sum := bin(10, ast.OpSub, id(10, "a"), id(10, "x"))
	store := assign(11, index(11, "a", num(11, 0)), call(11, "f", id(11, "x"), id(11, "b")))
	whole := id(12, "a")
	if got := checkProgram(t, stmt(sum), stmt(store), stmt(whole)); got != nil {
		t.Fatalf("unexpected diagnostics: %v", got)
	}
	checks := []struct {
		name string
		got  types.Kind
		want types.Kind
	}{
		{"a - x", sum.Type, types.Integer},
		{"a[0] = f(x, b)", store.Type, types.Integer},
		{"f(x, b)", store.Value.SemType(), types.Integer},
		{"a[0]", store.Target.SemType(), types.Integer},
		{"a", whole.Type, types.IntegerArray},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Fatalf("%s typed %s, want %s", c.name, c.got, c.want)
		}
	}
}
