package types

import "testing"

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Invalid:      "invalid",
		Void:         "void",
		Integer:      "int",
		IntegerArray: "int[]",
		Kind(42):     "Kind(42)",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", uint8(kind), got, want)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	if Invalid.IsValid() {
		t.Fatalf("Invalid must not be valid")
	}
	if !IntegerArray.IsArray() || Integer.IsArray() {
		t.Fatalf("unexpected IsArray result")
	}
	if !Void.IsVoid() || Integer.IsVoid() {
		t.Fatalf("unexpected IsVoid result")
	}
}
