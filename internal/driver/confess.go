package driver

import (
	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/lint"
	"github.com/tristanpoland/DivinePL/internal/source"
)

// ConfessResult is the full static-check outcome for one file.
type ConfessResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program
	Report  diag.Report
}

// Confess runs lex, parse, and lint on one file and folds everything
// into a single sorted report. A fatal lint diagnostic (the sabbath
// gate) stops the phase chain there.
func Confess(path string, opts Options) (*ConfessResult, error) {
	parsed, err := Parse(path, opts)
	if err != nil {
		return nil, err
	}
	cfg, err := opts.config(path)
	if err != nil {
		return nil, err
	}

	bag := parsed.Bag
	lint.Check(parsed.Program, lint.Options{
		Reporter:        diag.BagReporter{Bag: bag},
		Config:          cfg,
		Now:             opts.Now,
		Dev:             opts.Dev,
		OverrideSabbath: opts.OverrideSabbath,
	})
	bag.Dedup()

	return &ConfessResult{
		FileSet: parsed.FileSet,
		File:    parsed.File,
		Program: parsed.Program,
		Report:  diag.BuildReport(bag, diag.PhaseLint),
	}, nil
}
