package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cminus/internal/version"
)

// errDiagnostics is returned when the analysis itself succeeded but
// reported errors; main exits 1 without printing it.
var errDiagnostics = errors.New("semantic errors found")

// newRootCmd builds the command tree; tests build a fresh one per case.
// finish must run after Execute, whatever it returned.
func newRootCmd() (rootCmd *cobra.Command, finish func()) {
	var cleanups []func()
	finish = func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		cleanups = nil
	}
	rootCmd = &cobra.Command{
		Use:           "cminus",
		Short:         "Semantic analyzer for C-minus syntax trees",
		Long:          `cminus builds symbol tables for C-minus syntax trees and type-checks them`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			stopProfiling, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopProfiling)
			stopTracing, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopTracing)
			return nil
		},
	}

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show per file (0 = unlimited)")
	flags.String("config", "", "path to cminus.toml (default: search upwards from the working directory)")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newSymbolsCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd, finish
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rootCmd, finish := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	finish()
	stop()
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
