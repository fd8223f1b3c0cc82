package symbols

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

var dumpHeader = []string{"Name", "Kind", "Type", "Line", "Loc", "Uses", "Flags"}

// Dump writes every scope of the table with its symbols in declaration
// order. Columns are padded by display width so non-ASCII identifiers line up.
func Dump(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for idx := 1; idx <= t.Scopes.Len(); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			return err
		}
		scope := t.Scopes.Get(scopeID)
		bw.WriteString(ScopeTitle(t, scopeID))
		bw.WriteByte('\n')

		rows := make([][]string, 0, len(scope.Symbols)+1)
		rows = append(rows, dumpHeader)
		for _, id := range scope.Symbols {
			rows = append(rows, SymbolRow(t, id))
		}
		writeColumns(bw, rows)
	}
	return bw.Flush()
}

// ScopeTitle renders the line Dump prints above a scope's symbols:
// "scope #N kind [name] [(parent #P)]".
func ScopeTitle(t *Table, id ScopeID) string {
	scope := t.Scopes.Get(id)
	if scope == nil {
		return fmt.Sprintf("scope #%d invalid", id)
	}
	title := fmt.Sprintf("scope #%d %s", id, scope.Kind)
	if name := t.ScopeName(id); name != "" {
		title += " " + name
	}
	if scope.Parent.IsValid() {
		title += fmt.Sprintf(" (parent #%d)", scope.Parent)
	}
	return title
}

// SymbolRow renders one symbol as the Dump columns.
func SymbolRow(t *Table, id SymbolID) []string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return make([]string, len(dumpHeader))
	}
	uses := make([]string, len(sym.Uses))
	for i, line := range sym.Uses {
		uses[i] = strconv.Itoa(line)
	}
	return []string{
		t.Name(id),
		sym.Kind.String(),
		sym.Type().String(),
		strconv.Itoa(sym.Line),
		strconv.Itoa(sym.Location),
		strings.Join(uses, " "),
		strings.Join(sym.Flags.Strings(), ","),
	}
}

// DumpHeader returns the column titles used by Dump.
func DumpHeader() []string {
	return append([]string(nil), dumpHeader...)
}

func writeColumns(bw *bufio.Writer, rows [][]string) {
	widths := make([]int, len(dumpHeader))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		var line strings.Builder
		line.WriteString("  ")
		for i, cell := range row {
			line.WriteString(runewidth.FillRight(cell, widths[i]))
			line.WriteString("  ")
		}
		bw.WriteString(strings.TrimRight(line.String(), " "))
		bw.WriteByte('\n')
	}
}
