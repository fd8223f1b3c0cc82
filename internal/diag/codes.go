package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	SemaInfo  Code = 3000
	SemaError Code = 3001

	// Declaration errors
	SemaDuplicateSymbol    Code = 3002 // symbol already declared in the current scope
	SemaFunctionRedeclared Code = 3006 // function name already taken in the current scope
	SemaFunctionNameClash  Code = 3007 // variable named like a function of the same scope
	SemaVoidVariable       Code = 3008 // variable declared void
	SemaVoidParam          Code = 3009 // parameter declared void

	// Resolution errors
	SemaUnresolvedSymbol   Code = 3005
	SemaUndeclaredFunction Code = 3010

	// Type errors
	SemaVoidCondition         Code = 3011
	SemaUnexpectedReturnValue Code = 3012
	SemaMissingReturnValue    Code = 3051
	SemaArrayAssign           Code = 3013
	SemaVoidAssign            Code = 3014
	SemaVoidOperand           Code = 3015
	SemaInvalidBinaryOperands Code = 3016
	SemaExpectArray           Code = 3017
	SemaIndexNotInteger       Code = 3018
	SemaNotAFunction          Code = 3019
	SemaArgCount              Code = 3020
	SemaArgShape              Code = 3021
	SemaVoidArgument          Code = 3022

	// Whole-program errors
	SemaEntrypointNotFound Code = 3056

	// Ошибки I/O
	IOLoadFileError   Code = 4001
	IODecodeTreeError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:               "Unknown error",
	SemaInfo:                  "Semantic information",
	SemaError:                 "Semantic error",
	SemaDuplicateSymbol:       "Duplicate symbol",
	SemaFunctionRedeclared:    "Function redeclared",
	SemaFunctionNameClash:     "Variable clashes with function name",
	SemaVoidVariable:          "Void variable",
	SemaVoidParam:             "Void parameter",
	SemaUnresolvedSymbol:      "Undeclared symbol",
	SemaUndeclaredFunction:    "Undeclared function",
	SemaVoidCondition:         "Void loop condition",
	SemaUnexpectedReturnValue: "Unexpected return value",
	SemaMissingReturnValue:    "Missing return value",
	SemaArrayAssign:           "Assignment to array",
	SemaVoidAssign:            "Assignment of void value",
	SemaVoidOperand:           "Void operand",
	SemaInvalidBinaryOperands: "Invalid binary operands",
	SemaExpectArray:           "Expected array",
	SemaIndexNotInteger:       "Non-integer index",
	SemaNotAFunction:          "Not a function",
	SemaArgCount:              "Wrong number of arguments",
	SemaArgShape:              "Array/scalar argument mismatch",
	SemaVoidArgument:          "Void argument",
	SemaEntrypointNotFound:    "Missing main function",
	IOLoadFileError:           "Cannot load file",
	IODecodeTreeError:         "Malformed syntax tree",
}

// ID renders the stable short identifier, e.g. SEM3005.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
