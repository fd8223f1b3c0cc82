package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Pos locates a diagnostic: the tree file and the source line the parser
// recorded on the node. Line 0 is used for built-ins and whole-program
// findings on an empty program.
type Pos struct {
	File FileID
	Line uint32
}

// LinePos builds a position from a parser line number. Negative lines
// collapse to 0.
func LinePos(file FileID, line int) Pos {
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		l = 0
	}
	return Pos{File: file, Line: l}
}

// IsZero reports whether p carries no location at all.
func (p Pos) IsZero() bool { return p == Pos{} }

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.File, p.Line)
}
