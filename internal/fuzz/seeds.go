package fuzztests

import (
	"testing"

	"cminus/internal/treeio"
)

const maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса

// treeSeeds cover every node kind and the common error shapes.
var treeSeeds = []string{
	`{"decls": []}`,
	`{"decls": [{"kind": "var", "line": 1, "name": "g", "type": "int"}]}`,
	`{"decls": [
	  {"kind": "array", "line": 1, "name": "a", "size": 4},
	  {"kind": "func", "line": 2, "name": "f", "type": "int",
	   "params": [{"kind": "param", "line": 2, "name": "p"}, {"kind": "array_param", "line": 2, "name": "q"}],
	   "body": {"kind": "compound", "line": 2, "stmts": [
	     {"kind": "return", "line": 3, "x": {"kind": "index", "line": 3, "name": "q", "x": {"kind": "id", "line": 3, "name": "p"}}}]}},
	  {"kind": "func", "line": 5, "name": "main", "type": "void",
	   "body": {"kind": "compound", "line": 5,
	     "locals": [{"kind": "var", "line": 6, "name": "x", "type": "int"}],
	     "stmts": [
	       {"kind": "while", "line": 7,
	        "cond": {"kind": "binary", "line": 7, "op": "<", "left": {"kind": "id", "line": 7, "name": "x"}, "right": {"kind": "const", "line": 7, "const": 10}},
	        "body": {"kind": "compound", "line": 7, "stmts": [
	          {"kind": "assign", "line": 8, "target": {"kind": "id", "line": 8, "name": "x"},
	           "value": {"kind": "call", "line": 8, "name": "f", "args": [{"kind": "id", "line": 8, "name": "x"}, {"kind": "id", "line": 8, "name": "a"}]}}]}},
	       {"kind": "if", "line": 9, "cond": {"kind": "id", "line": 9, "name": "x"},
	        "then": {"kind": "return", "line": 9}, "else": {"kind": "expr", "line": 9}}]}}
	]}`,
	`{"decls": [{"kind": "func", "line": 1, "name": "main", "type": "void", "params": [{"kind": "param", "line": 1, "name": "v", "type": "void"}]}]}`,
	`{"decls": [{"kind": "func", "line": 1, "name": "main", "type": "void",
	  "body": {"kind": "compound", "line": 1, "stmts": [
	    {"kind": "assign", "line": 2, "target": {"kind": "id", "line": 2, "name": "y"}, "value": {"kind": "call", "line": 2, "name": "g"}}]}}]}`,
}

func addJSONSeeds(f *testing.F) {
	for _, seed := range treeSeeds {
		f.Add([]byte(seed))
	}
}

// addMsgPackSeeds re-encodes the JSON seeds so the binary fuzzer starts
// from well-formed inputs.
func addMsgPackSeeds(f *testing.F) {
	for _, seed := range treeSeeds {
		file, err := treeio.Unmarshal([]byte(seed), treeio.FormatJSON)
		if err != nil {
			f.Fatalf("seed does not decode: %v", err)
		}
		data, err := treeio.Marshal(file, treeio.FormatMsgPack)
		if err != nil {
			f.Fatalf("seed does not encode: %v", err)
		}
		if len(data) <= maxSeedBytes {
			f.Add(data)
		}
	}
}
