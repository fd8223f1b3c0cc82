package ast

// Visitor receives every node of a traversal twice: Pre before the node's
// children are visited and Post after the last child, before the next
// sibling.
type Visitor interface {
	Pre(n Node)
	Post(n Node)
}

// VisitorFuncs adapts a pair of closures to Visitor. A nil func is a no-op,
// which gives preorder-only or postorder-only walks.
type VisitorFuncs struct {
	PreVisit  func(Node)
	PostVisit func(Node)
}

func (v VisitorFuncs) Pre(n Node) {
	if v.PreVisit != nil {
		v.PreVisit(n)
	}
}

func (v VisitorFuncs) Post(n Node) {
	if v.PostVisit != nil {
		v.PostVisit(n)
	}
}

// Walk traverses the tree rooted at n in the fixed child order of each node
// kind. A nil subtree is a no-op.
func Walk(v Visitor, n Node) {
	if isNil(n) {
		return
	}
	v.Pre(n)
	switch n := n.(type) {
	case *File:
		for _, d := range n.Decls {
			Walk(v, d)
		}
	case *FuncDecl:
		Walk(v, n.Result)
		for _, p := range n.Params {
			Walk(v, p)
		}
		Walk(v, n.Body)
	case *VarDecl:
		Walk(v, n.Spec)
	case *ArrayDecl:
		Walk(v, n.Spec)
	case *Param:
		Walk(v, n.Spec)
	case *CompoundStmt:
		for _, d := range n.Locals {
			Walk(v, d)
		}
		for _, s := range n.Body {
			Walk(v, s)
		}
	case *IfStmt:
		Walk(v, n.Cond)
		Walk(v, n.Then)
		Walk(v, n.Else)
	case *WhileStmt:
		Walk(v, n.Cond)
		Walk(v, n.Body)
	case *ReturnStmt:
		Walk(v, n.Result)
	case *ExprStmt:
		Walk(v, n.X)
	case *AssignExpr:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *IndexExpr:
		Walk(v, n.Index)
	case *CallExpr:
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *ConstExpr, *Ident, *TypeSpec:
		// leaves
	}
	v.Post(n)
}

// isNil catches typed nil pointers stored in interface slots.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *File:
		return n == nil
	case *FuncDecl:
		return n == nil
	case *VarDecl:
		return n == nil
	case *ArrayDecl:
		return n == nil
	case *Param:
		return n == nil
	case *TypeSpec:
		return n == nil
	case *CompoundStmt:
		return n == nil
	case *IfStmt:
		return n == nil
	case *WhileStmt:
		return n == nil
	case *ReturnStmt:
		return n == nil
	case *ExprStmt:
		return n == nil
	case *AssignExpr:
		return n == nil
	case *BinaryExpr:
		return n == nil
	case *ConstExpr:
		return n == nil
	case *Ident:
		return n == nil
	case *IndexExpr:
		return n == nil
	case *CallExpr:
		return n == nil
	}
	return false
}

// Inspect calls fn for every node in preorder.
func Inspect(n Node, fn func(Node)) {
	Walk(VisitorFuncs{PreVisit: fn}, n)
}
