package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/lint"
	"github.com/tristanpoland/DivinePL/internal/source"
)

// ConfessDirResult is one file's outcome from a directory-wide check.
type ConfessDirResult struct {
	Path    string
	FileID  source.FileID
	Program *ast.Program
	Report  diag.Report
	LoadErr error
}

// listScriptureFiles returns every .divine and .dpl file under dir,
// sorted for deterministic output.
func listScriptureFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsScripture(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ConfessDir checks every scripture file under dir in parallel. Files
// are preloaded into one FileSet; each worker owns its slot in the
// result slice, so no locking is needed.
func ConfessDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []ConfessDirResult, error) {
	files, err := listScriptureFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]ConfessDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				results[i] = ConfessDirResult{Path: path, LoadErr: loadErr}
				return nil
			}

			cfg, err := opts.config(path)
			if err != nil {
				results[i] = ConfessDirResult{Path: path, LoadErr: err}
				return nil
			}

			id := fileIDs[path]
			file := fileSet.Get(id)
			bag := diag.NewBag(opts.maxDiagnostics())
			prog := parseFile(file, bag, opts)
			lint.Check(prog, lint.Options{
				Reporter:        diag.BagReporter{Bag: bag},
				Config:          cfg,
				Now:             opts.Now,
				Dev:             opts.Dev,
				OverrideSabbath: opts.OverrideSabbath,
			})
			bag.Dedup()

			results[i] = ConfessDirResult{
				Path:    path,
				FileID:  id,
				Program: prog,
				Report:  diag.BuildReport(bag, diag.PhaseLint),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}
