package treeio

import "cminus/internal/ast"

// ToWire converts a syntax tree into wire records. Semantic annotations are
// not part of the interchange format and are dropped.
func ToWire(file *ast.File) *File {
	wire := &File{Decls: []*Node{}}
	if file == nil {
		return wire
	}
	for _, d := range file.Decls {
		wire.Decls = append(wire.Decls, encodeNode(d))
	}
	return wire
}

func typeName(spec *ast.TypeSpec) (string, int) {
	if spec == nil {
		return "", 0
	}
	return spec.Kind.String(), spec.LineNo
}

// withType sets the type keyword, keeping type_line only when it differs
// from the node line.
func withType(n *Node, spec *ast.TypeSpec) *Node {
	n.Type, n.TypeLine = typeName(spec)
	if n.TypeLine == n.Line {
		n.TypeLine = 0
	}
	return n
}

func encodeList[T ast.Node](items []T) []*Node {
	if len(items) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(items))
	for _, item := range items {
		out = append(out, encodeNode(item))
	}
	return out
}

func encodeNode(n ast.Node) *Node {
	switch n := n.(type) {
	case nil:
		return nil
	case *ast.FuncDecl:
		return withType(&Node{
			Kind:   KindFunc,
			Line:   n.LineNo,
			Name:   n.Name,
			Params: encodeList(n.Params),
			Body:   encodeNode(n.Body),
		}, n.Result)
	case *ast.VarDecl:
		return withType(&Node{Kind: KindVar, Line: n.LineNo, Name: n.Name}, n.Spec)
	case *ast.ArrayDecl:
		return withType(&Node{Kind: KindArray, Line: n.LineNo, Name: n.Name, Size: n.Size}, n.Spec)
	case *ast.Param:
		kind := KindParam
		if n.IsArray() {
			kind = KindArrayParam
		}
		return withType(&Node{Kind: kind, Line: n.LineNo, Name: n.Name}, n.Spec)
	case *ast.CompoundStmt:
		if n == nil {
			return nil
		}
		return &Node{Kind: KindCompound, Line: n.LineNo, Locals: encodeList(n.Locals), Stmts: encodeList(n.Body)}
	case *ast.IfStmt:
		return &Node{Kind: KindIf, Line: n.LineNo, Cond: encodeNode(n.Cond), Then: encodeNode(n.Then), Else: encodeNode(n.Else)}
	case *ast.WhileStmt:
		return &Node{Kind: KindWhile, Line: n.LineNo, Cond: encodeNode(n.Cond), Body: encodeNode(n.Body)}
	case *ast.ReturnStmt:
		return &Node{Kind: KindReturn, Line: n.LineNo, X: encodeNode(n.Result)}
	case *ast.ExprStmt:
		return &Node{Kind: KindExpr, Line: n.LineNo, X: encodeNode(n.X)}
	case *ast.AssignExpr:
		return &Node{Kind: KindAssign, Line: n.LineNo, Target: encodeNode(n.Target), Value: encodeNode(n.Value)}
	case *ast.BinaryExpr:
		return &Node{Kind: KindBinary, Line: n.LineNo, Op: n.Op.String(), Left: encodeNode(n.Left), Right: encodeNode(n.Right)}
	case *ast.ConstExpr:
		return &Node{Kind: KindConst, Line: n.LineNo, Const: n.Value}
	case *ast.Ident:
		return &Node{Kind: KindID, Line: n.LineNo, Name: n.Name}
	case *ast.IndexExpr:
		return &Node{Kind: KindIndex, Line: n.LineNo, Name: n.Name, X: encodeNode(n.Index)}
	case *ast.CallExpr:
		return &Node{Kind: KindCall, Line: n.LineNo, Name: n.Name, Args: encodeList(n.Args)}
	default:
		return nil
	}
}
