package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tristanpoland/DivinePL/internal/diagfmt"
	"github.com/tristanpoland/DivinePL/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.divine",
	Short: "Parse a scripture file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := driver.Parse(args[0], driverOptions(cmd))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag.Items(), result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}

	diagfmt.FormatAST(os.Stdout, result.Program)
	if result.Bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}
