package ast

import "fmt"

// BinOp enumerates binary operators.
type BinOp uint8

const (
	OpAdd BinOp = iota + 1
	OpSub
	OpMul
	OpDiv
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
)

var opText = map[BinOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpLt:  "<",
	OpLe:  "<=",
	OpGt:  ">",
	OpGe:  ">=",
	OpEq:  "==",
	OpNe:  "!=",
}

func (op BinOp) String() string {
	if s, ok := opText[op]; ok {
		return s
	}
	return fmt.Sprintf("BinOp(%d)", op)
}

// IsMultiplicative reports whether op is `*` or `/`.
func (op BinOp) IsMultiplicative() bool { return op == OpMul || op == OpDiv }

// ParseOp maps operator text back to a BinOp.
func ParseOp(s string) (BinOp, error) {
	for op, text := range opText {
		if text == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}
