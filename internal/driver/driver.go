// Package driver wires the pipeline phases together: load, tokenize,
// parse, lint, run. Commands call the driver instead of the phases
// directly.
package driver

import (
	"path/filepath"
	"time"

	"github.com/tristanpoland/DivinePL/internal/commandments"
)

// Options configures a pipeline invocation.
type Options struct {
	// MaxDiagnostics caps collected diagnostics; 0 means DefaultMaxDiagnostics.
	MaxDiagnostics int

	// Dev enables developer mode; with OverrideSabbath it passes the
	// sabbath gate.
	Dev             bool
	OverrideSabbath bool

	// Config overrides the commandments discovered next to the script.
	Config *commandments.Config

	// Now is injected into the linter for sabbath testing.
	Now func() time.Time
}

// DefaultMaxDiagnostics is used when Options.MaxDiagnostics is zero.
const DefaultMaxDiagnostics = 100

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// config resolves the effective commandments for a script path.
func (o Options) config(scriptPath string) (commandments.Config, error) {
	if o.Config != nil {
		return *o.Config, nil
	}
	return commandments.ForScript(scriptPath)
}

// IsScripture reports whether a path carries a recognized source
// extension.
func IsScripture(path string) bool {
	switch filepath.Ext(path) {
	case ".divine", ".dpl":
		return true
	}
	return false
}
