// Package treeio reads and writes syntax trees in the interchange format the
// external parser emits. A tree is stored either as JSON (`.ast.json`) or as
// MessagePack (`.ast.mp`); both encode the same Node records.
//
//	{"decls": [
//	  {"kind": "func", "line": 1, "name": "main", "type": "int",
//	   "body": {"kind": "compound", "line": 1, "stmts": [
//	     {"kind": "return", "line": 1, "x": {"kind": "const", "line": 1, "const": 0}}]}}]}
package treeio
