package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tristanpoland/DivinePL/internal/diagfmt"
	"github.com/tristanpoland/DivinePL/internal/driver"
	"github.com/tristanpoland/DivinePL/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] file.divine",
	Short: "Run a scripture file",
	Long:  `Run checks a scripture file for sin and then executes its genesis entry point`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Bool("no-stages", false, "skip the creation-stage sequence")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !driver.IsScripture(path) {
		return fmt.Errorf("%s is not a scripture file (.divine or .dpl)", path)
	}

	noStages, _ := cmd.Flags().GetBool("no-stages")
	if !noStages && !quiet(cmd) {
		if err := ui.RunCreationStages(os.Stdout, isTerminal(os.Stdout)); err != nil {
			return err
		}
	}

	result, err := driver.Run(path, driverOptions(cmd), os.Stdout)
	if err != nil {
		return err
	}

	report := result.Confess.Report
	if len(report.Diagnostics) > 0 {
		diagfmt.Pretty(os.Stderr, report.Diagnostics, result.Confess.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
	}

	if !result.Ran || report.Blocking() {
		os.Exit(1)
	}
	if !result.Salvation {
		if !quiet(cmd) {
			fmt.Fprintln(os.Stderr, "genesis did not reach salvation")
		}
		os.Exit(1)
	}
	return nil
}
