package ast

import (
	"strings"
	"testing"

	"cminus/internal/types"
)

func TestFprint(t *testing.T) {
	file := sampleFile()
	fn := file.Decls[1].(*FuncDecl)
	fn.Type = types.Integer
	fn.Body.Scope = ScopeID(2)

	var b strings.Builder
	if err := Fprint(&b, file); err != nil {
		t.Fatalf("Fprint: %v", err)
	}
	want := `Variable declaration: g
  Type: int
Function declaration: main <int>
  Type: int
  Compound statement (scope #2)
    Variable declaration: x
      Type: int
    Assign:
      Id: x
      Op: +
        Id: g
        Const: 1
    Return
      Id: x
`
	if got := b.String(); got != want {
		t.Fatalf("unexpected listing:\nwant:\n%s\ngot:\n%s", want, got)
	}
}
