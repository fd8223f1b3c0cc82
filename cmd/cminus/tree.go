package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cminus/internal/ast"
	"cminus/internal/treeio"
)

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [flags] <tree.json|tree.mp>",
		Short: "Analyse a tree file and print the annotated tree",
		Long: `Print the syntax tree after both passes: expressions carry their
semantic type and compound statements their scope. With --emit the
annotated tree is re-encoded (json|msgpack) instead.`,
		Args: cobra.ExactArgs(1),
		RunE: runTree,
	}
	cmd.Flags().Bool("prelude", false, "declare the built-in input and output functions")
	cmd.Flags().String("emit", "", "re-encode the tree in the given format (json|msgpack)")
	return cmd
}

func runTree(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	emit, err := cmd.Flags().GetString("emit")
	if err != nil {
		return fmt.Errorf("failed to get emit flag: %w", err)
	}
	var format treeio.Format
	if emit != "" {
		if format, err = treeio.ParseFormat(emit); err != nil {
			return err
		}
	}
	res, err := analyzeOne(cmd, s, args[0])
	if err != nil {
		return err
	}
	if res.Tree == nil {
		return reportFailure(cmd.OutOrStdout(), res)
	}
	out := cmd.OutOrStdout()
	if emit != "" {
		err = treeio.Encode(out, res.Tree, format)
	} else {
		err = ast.Fprint(out, res.Tree)
	}
	if err != nil {
		return err
	}
	if !res.OK() {
		return reportFailure(cmd.ErrOrStderr(), res)
	}
	return nil
}
