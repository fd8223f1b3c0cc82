package fuzztests

import (
	"context"
	"testing"

	"cminus/internal/diag"
	"cminus/internal/sema"
	"cminus/internal/treeio"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func fuzzAnalyze(t *testing.T, input []byte, format treeio.Format) {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	file, err := treeio.Unmarshal(input, format)
	if err != nil {
		return
	}
	bag := diag.NewBag(64)
	c := sema.NewContext(sema.Options{Reporter: diag.BagReporter{Bag: bag}, Prelude: true})
	if err := sema.BuildSymbols(context.Background(), c, file); err != nil {
		t.Fatalf("BuildSymbols: %v", err)
	}
	if c.Depth() != 0 {
		t.Fatalf("scope stack depth %d after construction", c.Depth())
	}
	if err := sema.TypeCheck(context.Background(), c, file); err != nil {
		t.Fatalf("TypeCheck: %v", err)
	}
	if c.Depth() != 0 {
		t.Fatalf("scope stack depth %d after checking", c.Depth())
	}
	if c.Errors() > 0 && !bag.HasErrors() {
		t.Fatalf("%d errors counted but none reported", c.Errors())
	}
}

func FuzzAnalyzeJSON(f *testing.F) {
	addJSONSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fuzzAnalyze(t, input, treeio.FormatJSON)
	})
}

func FuzzAnalyzeMsgPack(f *testing.F) {
	addMsgPackSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fuzzAnalyze(t, input, treeio.FormatMsgPack)
	})
}
