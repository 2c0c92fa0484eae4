package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/driver"
)

var prophesyCmd = &cobra.Command{
	Use:   "prophesy [flags] file.divine",
	Short: "List the prophecies recorded in a scripture file",
	Long:  `Prophesy collects every @prophesy annotation with its location`,
	Args:  cobra.ExactArgs(1),
	RunE:  runProphesy,
}

func runProphesy(cmd *cobra.Command, args []string) error {
	result, err := driver.Confess(args[0], driverOptions(cmd))
	if err != nil {
		return err
	}

	count := 0
	for _, d := range result.Report.Diagnostics {
		if d.Code != diag.LintProphecy {
			continue
		}
		start, _ := result.FileSet.Resolve(d.Primary)
		fmt.Fprintf(os.Stdout, "%s:%d:%d: %s\n",
			result.File.Path, start.Line, start.Col, d.Message)
		count++
	}
	if count == 0 && !quiet(cmd) {
		fmt.Fprintln(os.Stdout, "no prophecies recorded")
	}
	return nil
}
