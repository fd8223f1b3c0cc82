package treeio

// Node kinds.
const (
	KindFunc       = "func"
	KindVar        = "var"
	KindArray      = "array"
	KindParam      = "param"
	KindArrayParam = "array_param"
	KindCompound   = "compound"
	KindIf         = "if"
	KindWhile      = "while"
	KindReturn     = "return"
	KindExpr       = "expr"
	KindAssign     = "assign"
	KindBinary     = "binary"
	KindConst      = "const"
	KindID         = "id"
	KindIndex      = "index"
	KindCall       = "call"
)

// Type keywords.
const (
	TypeInt  = "int"
	TypeVoid = "void"
)

// File is the root record.
type File struct {
	Decls []*Node `json:"decls" msgpack:"decls"`
}

// Node is one tree node. Which fields are meaningful depends on Kind:
//
//	func        name type [type_line] params body
//	var         name type [type_line]
//	array       name type [type_line] size
//	param       name type [type_line]
//	array_param name type [type_line]
//	compound    locals stmts
//	if          cond then [else]
//	while       cond body
//	return      [x]
//	expr        [x]
//	assign      target value
//	binary      op left right
//	const       const
//	id          name
//	index       name x
//	call        name args
type Node struct {
	Kind     string  `json:"kind" msgpack:"kind"`
	Line     int     `json:"line" msgpack:"line"`
	Name     string  `json:"name,omitempty" msgpack:"name,omitempty"`
	Op       string  `json:"op,omitempty" msgpack:"op,omitempty"`
	Const    int     `json:"const,omitempty" msgpack:"const,omitempty"`
	Size     int     `json:"size,omitempty" msgpack:"size,omitempty"`
	Type     string  `json:"type,omitempty" msgpack:"type,omitempty"`
	TypeLine int     `json:"type_line,omitempty" msgpack:"type_line,omitempty"`
	Cond     *Node   `json:"cond,omitempty" msgpack:"cond,omitempty"`
	Then     *Node   `json:"then,omitempty" msgpack:"then,omitempty"`
	Else     *Node   `json:"else,omitempty" msgpack:"else,omitempty"`
	Body     *Node   `json:"body,omitempty" msgpack:"body,omitempty"`
	X        *Node   `json:"x,omitempty" msgpack:"x,omitempty"`
	Target   *Node   `json:"target,omitempty" msgpack:"target,omitempty"`
	Value    *Node   `json:"value,omitempty" msgpack:"value,omitempty"`
	Left     *Node   `json:"left,omitempty" msgpack:"left,omitempty"`
	Right    *Node   `json:"right,omitempty" msgpack:"right,omitempty"`
	Params   []*Node `json:"params,omitempty" msgpack:"params,omitempty"`
	Args     []*Node `json:"args,omitempty" msgpack:"args,omitempty"`
	Locals   []*Node `json:"locals,omitempty" msgpack:"locals,omitempty"`
	Stmts    []*Node `json:"stmts,omitempty" msgpack:"stmts,omitempty"`
}
