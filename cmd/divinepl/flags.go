package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tristanpoland/DivinePL/internal/driver"
)

// useColor resolves the --color persistent flag against the output
// stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// driverOptions builds pipeline options from the persistent flags.
func driverOptions(cmd *cobra.Command) driver.Options {
	flags := cmd.Root().PersistentFlags()
	maxDiags, _ := flags.GetInt("max-diagnostics")
	dev, _ := flags.GetBool("dev")
	override, _ := flags.GetBool("override-sabbath")
	return driver.Options{
		MaxDiagnostics:  maxDiags,
		Dev:             dev,
		OverrideSabbath: override,
	}
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}
