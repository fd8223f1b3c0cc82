package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented listing of the tree rooted at n, two spaces per
// level. Resolved types and scope handles are appended once analysis ran.
func Fprint(w io.Writer, n Node) error {
	p := &printer{w: w}
	Walk(p, n)
	return p.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (p *printer) Pre(n Node) {
	label := nodeLabel(n)
	if label == "" {
		return
	}
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth), label)
	}
	p.depth++
}

func (p *printer) Post(n Node) {
	if nodeLabel(n) == "" {
		return
	}
	p.depth--
}

func nodeLabel(n Node) string {
	var label string
	switch n := n.(type) {
	case *FuncDecl:
		label = "Function declaration: " + n.Name
	case *VarDecl:
		label = "Variable declaration: " + n.Name
	case *ArrayDecl:
		label = fmt.Sprintf("Array declaration: %s[%d]", n.Name, n.Size)
	case *Param:
		if n.IsArray() {
			label = "Array parameter: " + n.Name
		} else {
			label = "Parameter: " + n.Name
		}
	case *TypeSpec:
		return "Type: " + n.Kind.String()
	case *CompoundStmt:
		if n.Scope.IsValid() {
			return fmt.Sprintf("Compound statement (scope #%d)", n.Scope)
		}
		return "Compound statement"
	case *IfStmt:
		return "If"
	case *WhileStmt:
		return "While"
	case *ReturnStmt:
		return "Return"
	case *AssignExpr:
		label = "Assign:"
	case *BinaryExpr:
		label = "Op: " + n.Op.String()
	case *ConstExpr:
		label = fmt.Sprintf("Const: %d", n.Value)
	case *Ident:
		label = "Id: " + n.Name
	case *IndexExpr:
		label = "Index: " + n.Name
	case *CallExpr:
		label = "Call: " + n.Name
	default:
		// File and ExprStmt are transparent.
		return ""
	}
	if typed, ok := n.(Typed); ok && typed.SemType().IsValid() {
		label += " <" + typed.SemType().String() + ">"
	}
	return label
}
