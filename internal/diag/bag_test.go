package diag

import (
	"testing"

	"cminus/internal/source"
)

func TestBagCapKeepsErrorFlag(t *testing.T) {
	bag := NewBag(1)
	if !bag.Add(NewError(SemaVoidVariable, source.Pos{Line: 1}, "first")) {
		t.Fatalf("first diagnostic must be kept")
	}
	if bag.Add(NewError(SemaUnresolvedSymbol, source.Pos{Line: 2}, "second")) {
		t.Fatalf("second diagnostic must be dropped")
	}
	if bag.Len() != 1 || bag.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d", bag.Len(), bag.Dropped())
	}
	if !bag.HasErrors() {
		t.Fatalf("bag must report errors")
	}
}

func TestBagDroppedErrorsStillCount(t *testing.T) {
	bag := NewBag(1)
	bag.Add(New(SevWarning, SemaInfo, source.Pos{Line: 1}, "just a warning"))
	bag.Add(NewError(SemaUnresolvedSymbol, source.Pos{Line: 2}, "undeclared symbol"))
	if !bag.HasErrors() {
		t.Fatalf("an error past the cap must still fail the compilation")
	}
	if bag.ErrorCount() != 0 {
		t.Fatalf("ErrorCount only counts kept diagnostics")
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	bag := NewBag(0)
	bag.Add(NewError(SemaArrayAssign, source.Pos{File: 1, Line: 9}, "c"))
	bag.Add(NewError(SemaVoidVariable, source.Pos{File: 1, Line: 2}, "b"))
	bag.Add(New(SevWarning, SemaInfo, source.Pos{File: 1, Line: 2}, "w"))
	bag.Add(NewError(SemaUnresolvedSymbol, source.Pos{File: 1, Line: 2}, "a"))
	bag.Sort()

	want := []Code{SemaUnresolvedSymbol, SemaVoidVariable, SemaInfo, SemaArrayAssign}
	got := bag.Codes()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: want %s, got %s", i, want[i].ID(), got[i].ID())
		}
	}
}

func TestBagMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SemaVoidVariable, source.Pos{Line: 1}, "a"))
	b := NewBag(4)
	b.Add(NewError(SemaVoidParam, source.Pos{Line: 2}, "b"))
	b.Add(NewError(SemaVoidParam, source.Pos{Line: 3}, "c"))
	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("merge must grow the cap, len=%d", a.Len())
	}
}
