package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/diagfmt"
	"github.com/tristanpoland/DivinePL/internal/driver"
	"github.com/tristanpoland/DivinePL/internal/source"
)

var confessCmd = &cobra.Command{
	Use:   "confess [flags] path",
	Short: "Check scripture for sin without running it",
	Long:  `Confess lexes, parses, and lints a file or every scripture file under a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfess,
}

func init() {
	confessCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	confessCmd.Flags().Int("jobs", 0, "parallel workers for directory checks (0 = all CPUs)")
}

func runConfess(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, _ := cmd.Flags().GetString("format")
	jobs, _ := cmd.Flags().GetInt("jobs")

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return confessDir(cmd, path, format, jobs)
	}
	return confessFile(cmd, path, format)
}

func confessFile(cmd *cobra.Command, path, format string) error {
	result, err := driver.Confess(path, driverOptions(cmd))
	if err != nil {
		return err
	}
	if err := emitReport(cmd, result.Report, result.FileSet, format); err != nil {
		return err
	}
	if format == "pretty" && !quiet(cmd) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, sinSummary(result.Report))
	}
	if result.Report.Blocking() {
		os.Exit(1)
	}
	return nil
}

// sinSummary counts blocking and non-blocking findings in confessional
// terms: errors are mortal sins, warnings venial.
func sinSummary(report diag.Report) string {
	mortal, venial := 0, 0
	for _, d := range report.Diagnostics {
		switch {
		case d.Severity >= diag.SevError:
			mortal++
		case d.Severity == diag.SevWarning:
			venial++
		}
	}
	if mortal == 0 && venial == 0 {
		return "no sins found"
	}
	return fmt.Sprintf("%d mortal, %d venial", mortal, venial)
}

func confessDir(cmd *cobra.Command, dir, format string, jobs int) error {
	fs, results, err := driver.ConfessDir(cmd.Context(), dir, driverOptions(cmd), jobs)
	if err != nil {
		return err
	}
	blocking := false
	for _, r := range results {
		if r.LoadErr != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Path, r.LoadErr)
			blocking = true
			continue
		}
		if err := emitReport(cmd, r.Report, fs, format); err != nil {
			return err
		}
		if format == "pretty" && !quiet(cmd) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", r.Path, sinSummary(r.Report))
		}
		if r.Report.Blocking() {
			blocking = true
		}
	}
	if blocking {
		os.Exit(1)
	}
	return nil
}

func emitReport(cmd *cobra.Command, report diag.Report, fs *source.FileSet, format string) error {
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stderr, report.Diagnostics, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			ShowNotes: true,
		})
		return nil
	case "json":
		return diagfmt.JSON(os.Stdout, report, fs, diagfmt.JSONOpts{IncludePositions: true})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
