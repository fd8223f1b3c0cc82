package observ

import (
	"strings"
	"testing"
)

func TestTimerMergeAndSummary(t *testing.T) {
	file := NewTimer()
	idx := file.Begin("symbols")
	file.End(idx, "12 symbols")
	file.End(idx+5, "ignored")

	run := NewTimer()
	run.Merge("a.ast.json", file)
	run.Merge("", nil)

	phases := run.Phases()
	if len(phases) != 1 || phases[0].Name != "a.ast.json:symbols" {
		t.Fatalf("phases = %+v", phases)
	}
	summary := run.Summary()
	if !strings.HasPrefix(summary, "timings:\n") || !strings.Contains(summary, "// 12 symbols") {
		t.Fatalf("summary:\n%s", summary)
	}
	if !strings.Contains(summary, "total") {
		t.Fatalf("missing total:\n%s", summary)
	}
	if len(NewTimer().Report().Phases) != 0 {
		t.Fatal("empty timer must report no phases")
	}
}
