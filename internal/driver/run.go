package driver

import (
	"errors"
	"io"

	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/interp"
)

// RunResult is the outcome of executing a scripture file.
type RunResult struct {
	Confess *ConfessResult

	// Ran is false when static checks blocked execution.
	Ran bool
	// Value is the genesis result when the program ran to completion.
	Value interp.Value
	// Salvation is true when genesis returned the success sentinel.
	Salvation bool
}

// Run executes one file after its static checks pass. Blocking
// diagnostics (errors or the sabbath gate) skip execution; an
// uncaught sin is folded into the report as a runtime diagnostic.
func Run(path string, opts Options, stdout io.Writer) (*RunResult, error) {
	confessed, err := Confess(path, opts)
	if err != nil {
		return nil, err
	}
	res := &RunResult{Confess: confessed}
	if confessed.Report.Blocking() {
		return res, nil
	}

	in := interp.New(interp.WithStdout(stdout))
	value, runErr := in.Run(confessed.Program)
	res.Ran = true

	if runErr != nil {
		var rt *interp.RuntimeError
		if errors.As(runErr, &rt) {
			bag := diag.NewBag(opts.maxDiagnostics())
			for _, d := range confessed.Report.Diagnostics {
				bag.Add(d)
			}
			bag.Add(diag.NewError(rt.Code, rt.Sp, rt.Error()))
			confessed.Report = diag.BuildReport(bag, diag.PhaseRuntime)
			return res, nil
		}
		return nil, runErr
	}

	res.Value = value
	res.Salvation = interp.IsSalvation(value)
	confessed.Report.PhaseReached = diag.PhaseRuntime
	return res, nil
}
