package main

import (
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"cminus/internal/diagfmt"
	"cminus/internal/driver"
	"cminus/internal/symbols"
)

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols [flags] <tree.json|tree.mp>",
		Short: "Analyse a tree file and print its symbol table",
		Args:  cobra.ExactArgs(1),
		RunE:  runSymbols,
	}
	cmd.Flags().Bool("prelude", false, "declare the built-in input and output functions")
	cmd.Flags().Bool("plain", false, "print the plain column listing instead of bordered tables")
	return cmd
}

func runSymbols(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	plain, err := cmd.Flags().GetBool("plain")
	if err != nil {
		return fmt.Errorf("failed to get plain flag: %w", err)
	}
	res, err := analyzeOne(cmd, s, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if res.Sema == nil {
		// the tree never loaded; there is no table to show
		return reportFailure(out, res)
	}
	if plain || !s.useColor(os.Stdout) {
		if err := symbols.Dump(out, res.Sema.Table); err != nil {
			return err
		}
	} else if err := renderSymbolTables(out, res.Sema.Table); err != nil {
		return err
	}
	if !res.OK() {
		return reportFailure(cmd.ErrOrStderr(), res)
	}
	return nil
}

// analyzeOne runs the driver on a single file without the cache; the
// caller needs the annotated tree and the table.
func analyzeOne(cmd *cobra.Command, s *settings, path string) (*driver.FileResult, error) {
	res, err := driver.AnalyzeFile(cmd.Context(), path, driver.Options{
		MaxDiagnostics: s.Output.MaxDiagnostics,
		Prelude:        s.Analysis.Prelude,
		Sort:           s.Output.Sort,
	})
	if err != nil {
		dumpTraceRing(cmd)
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	return res, nil
}

func reportFailure(w io.Writer, res *driver.FileResult) error {
	if err := diagfmt.Listing(w, res.Bag); err != nil {
		return err
	}
	return errDiagnostics
}

var (
	scopeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	headerStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	builtinStyle    = cellStyle.Foreground(lipgloss.Color("8"))
)

func renderSymbolTables(w io.Writer, t *symbols.Table) error {
	for idx := 1; idx <= t.Scopes.Len(); idx++ {
		raw, err := safecast.Conv[uint32](idx)
		if err != nil {
			return err
		}
		scopeID := symbols.ScopeID(raw)
		scope := t.Scopes.Get(scopeID)
		rows := make([][]string, 0, len(scope.Symbols))
		builtin := make(map[int]bool)
		for _, id := range scope.Symbols {
			if sym := t.Symbols.Get(id); sym != nil && sym.IsBuiltin() {
				builtin[len(rows)] = true
			}
			rows = append(rows, symbols.SymbolRow(t, id))
		}
		tbl := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers(symbols.DumpHeader()...).
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				// data rows follow the header
				if builtin[row-table.HeaderRow-1] {
					return builtinStyle
				}
				return cellStyle
			})
		if _, err := fmt.Fprintf(w, "%s\n%s\n", scopeTitleStyle.Render(symbols.ScopeTitle(t, scopeID)), tbl.Render()); err != nil {
			return err
		}
	}
	return nil
}
