package types

import "fmt"

// Kind enumerates the semantic types of the language.
type Kind uint8

const (
	// Invalid marks a node that has not been typed yet. After checking it
	// only survives on nodes downstream of a reported error.
	Invalid Kind = iota
	Void
	Integer
	IntegerArray
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Void:
		return "void"
	case Integer:
		return "int"
	case IntegerArray:
		return "int[]"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsValid reports whether k is a resolved type.
func (k Kind) IsValid() bool { return k != Invalid }

// IsArray reports whether k is the integer array type.
func (k Kind) IsArray() bool { return k == IntegerArray }

// IsVoid reports whether k is void.
func (k Kind) IsVoid() bool { return k == Void }
