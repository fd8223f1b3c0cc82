package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cminus/internal/diag"
	"cminus/internal/diagfmt"
	"cminus/internal/driver"
	"cminus/internal/project"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <tree.json|tree.mp>...",
		Short: "Build symbol tables and type-check syntax tree files",
		Long: `Run both semantic passes over each tree file. Diagnostics are printed
per file in input order; the exit status is 1 when any file has errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", project.FormatListing, "output format (listing|pretty|json)")
	cmd.Flags().Bool("prelude", false, "declare the built-in input and output functions")
	cmd.Flags().Bool("trace-symbols", false, "print the symbol table of each file after construction")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("sort", false, "sort diagnostics by line")
	cmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	cmd.Flags().String("path", "auto", "file paths in pretty and json output (auto|absolute|basename)")
	cmd.Flags().Bool("with-notes", true, "include diagnostic notes in pretty and json output")
	cmd.Flags().Bool("cache", false, "reuse results of unchanged files from the disk cache")
	cmd.Flags().Bool("clear-cache", false, "drop every cached result before checking")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	pathFlag, err := cmd.Flags().GetString("path")
	if err != nil {
		return fmt.Errorf("failed to get path flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathFlag)
	if !ok {
		return fmt.Errorf("invalid --path value %q (expected auto|absolute|basename)", pathFlag)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}

	opts := driver.Options{
		MaxDiagnostics: s.Output.MaxDiagnostics,
		Prelude:        s.Analysis.Prelude,
		TraceSymbols:   s.Analysis.TraceSymbols,
		Sort:           s.Output.Sort,
		Jobs:           s.Output.Jobs,
		BaseDir:        s.Root,
	}
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("cminus")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	var results []*driver.FileResult
	if shouldUseTUI(mode) && !s.Quiet {
		results, err = runCheckWithUI(cmd.Context(), cmd.OutOrStdout(), args, opts)
	} else {
		results, err = driver.AnalyzeFiles(cmd.Context(), args, opts)
	}
	if err != nil {
		dumpTraceRing(cmd)
		return fmt.Errorf("analysis failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := renderResults(out, s, results, pathMode, withNotes); err != nil {
		return err
	}
	if s.Timings && !s.Quiet {
		fmt.Fprint(cmd.ErrOrStderr(), driver.Timings(results).Summary())
	}

	for _, r := range results {
		if !r.OK() {
			dumpTraceRing(cmd)
			return errDiagnostics
		}
	}
	return nil
}

func renderResults(out io.Writer, s *settings, results []*driver.FileResult, pathMode diagfmt.PathMode, withNotes bool) error {
	if len(results) == 0 {
		return nil
	}
	if s.Output.Format == project.FormatJSON {
		// one document for all files
		merged := driver.Merge(results)
		return diagfmt.JSON(out, merged, results[0].Files, diagfmt.JSONOpts{
			PathMode:     pathMode,
			IncludeNotes: withNotes,
		})
	}
	multi := len(results) > 1
	for _, r := range results {
		if s.Analysis.TraceSymbols && len(r.SymbolTrace) > 0 {
			if _, err := out.Write(r.SymbolTrace); err != nil {
				return err
			}
		}
		if err := renderFile(out, s, r, pathMode, withNotes, multi); err != nil {
			return err
		}
	}
	return nil
}

func renderFile(out io.Writer, s *settings, r *driver.FileResult, pathMode diagfmt.PathMode, withNotes, multi bool) error {
	switch s.Output.Format {
	case project.FormatPretty:
		return diagfmt.Pretty(out, r.Bag, r.Files, diagfmt.PrettyOpts{
			Color:     s.useColor(os.Stdout),
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	default:
		if multi && (r.Bag.Len() > 0 || !s.Quiet) {
			if _, err := fmt.Fprintf(out, "%s:\n", r.Path); err != nil {
				return err
			}
		}
		if err := diagfmt.Listing(out, r.Bag); err != nil {
			return err
		}
		return listingDropped(out, r.Bag)
	}
}

func listingDropped(out io.Writer, bag *diag.Bag) error {
	if bag.Dropped() == 0 {
		return nil
	}
	_, err := fmt.Fprintf(out, "... %d more diagnostics not shown\n", bag.Dropped())
	return err
}
