package driver

import (
	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/lexer"
	"github.com/tristanpoland/DivinePL/internal/parser"
	"github.com/tristanpoland/DivinePL/internal/source"
)

// ParseResult carries one file's syntax tree and its diagnostics.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program
	Bag     *diag.Bag
}

// Parse lexes and parses a single scripture file. The tree is always
// non-nil; check the bag before trusting it.
func Parse(path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.maxDiagnostics())
	prog := parseFile(file, bag, opts)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Program: prog,
		Bag:     bag,
	}, nil
}

func parseFile(file *source.File, bag *diag.Bag, opts Options) *ast.Program {
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return parser.ParseFile(file, lx, parser.Options{
		Reporter:  reporter,
		MaxErrors: uint(opts.maxDiagnostics()),
	})
}
