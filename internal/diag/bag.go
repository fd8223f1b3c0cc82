package diag

import (
	"sort"
)

// Bag collects diagnostics up to a fixed cap.
type Bag struct {
	items         []Diagnostic
	max           int
	dropped       int
	droppedErrors bool
}

// NewBag returns a bag that keeps at most max diagnostics; max <= 0 means
// unlimited.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 64
	}
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
		max:   max,
	}
}

// Add appends d unless the cap is reached; it reports whether d was kept.
// Dropped diagnostics are still counted so HasErrors stays truthful.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		if d.Severity >= SevError {
			b.droppedErrors = true
		}
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Dropped reports how many diagnostics exceeded the cap.
func (b *Bag) Dropped() int { return b.dropped }

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	if b.droppedErrors {
		return true
	}
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// ErrorCount counts kept diagnostics with error severity.
func (b *Bag) ErrorCount() int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the diagnostics in emission order. The slice aliases the
// bag's storage and must not be modified.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends all diagnostics of other, growing the cap when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
	b.droppedErrors = b.droppedErrors || other.droppedErrors
}

// Sort orders diagnostics by file, line, severity (desc) and code so the
// output is deterministic regardless of pass order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Line != dj.Primary.Line {
			return di.Primary.Line < dj.Primary.Line
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Codes lists the codes of kept diagnostics in order. Handy in tests.
func (b *Bag) Codes() []Code {
	out := make([]Code, 0, len(b.items))
	for _, d := range b.items {
		out = append(out, d.Code)
	}
	return out
}
