package symbols

import (
	"cminus/internal/ast"
	"cminus/internal/types"
)

// Prelude returns fresh declarations of the runtime I/O functions:
//
//	int input(void)
//	void output(int arg)
//
// They sit at line 0 since they have no source position.
func Prelude() []*ast.FuncDecl {
	return []*ast.FuncDecl{
		{
			Name:   "input",
			Result: &ast.TypeSpec{Kind: ast.TypeInt},
			Type:   types.Integer,
		},
		{
			Name:   "output",
			Result: &ast.TypeSpec{Kind: ast.TypeVoid},
			Params: []*ast.Param{{
				Name: "arg",
				Kind: ast.ParamScalar,
				Spec: &ast.TypeSpec{Kind: ast.TypeInt},
				Type: types.Integer,
			}},
			Type: types.Void,
		},
	}
}

// InstallPrelude declares decls in the innermost scope as built-in functions.
// Names already bound there are skipped.
func (r *Resolver) InstallPrelude(decls []*ast.FuncDecl) []SymbolID {
	ids := make([]SymbolID, 0, len(decls))
	for _, decl := range decls {
		name := r.table.Strings.Intern(decl.Name)
		if _, ok := r.LookupCurrent(name); ok {
			continue
		}
		id := r.Insert(name, decl, SymbolFunction, decl.LineNo)
		r.table.Symbols.Get(id).Flags |= SymbolFlagBuiltin
		ids = append(ids, id)
	}
	return ids
}
