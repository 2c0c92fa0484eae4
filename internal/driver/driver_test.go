package driver_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/driver"
)

var monday = func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) }

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func weekdayOpts() driver.Options {
	return driver.Options{Now: monday}
}

const goodScript = `
bless Program {
	genesis() {
		revelation("let there be light")
		return salvation
	}
}
`

func TestIsScripture(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"genesis.divine", true},
		{"psalm.dpl", true},
		{"notes.txt", false},
		{"psalm.DIVINE", false},
		{"divine", false},
	}
	for _, tc := range cases {
		if got := driver.IsScripture(tc.path); got != tc.want {
			t.Errorf("IsScripture(%q) = %v", tc.path, got)
		}
	}
}

func TestRunGoodScript(t *testing.T) {
	path := writeScript(t, t.TempDir(), "main.divine", goodScript)
	var out bytes.Buffer
	res, err := driver.Run(path, weekdayOpts(), &out)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Ran || !res.Salvation {
		t.Errorf("ran=%v salvation=%v", res.Ran, res.Salvation)
	}
	if out.String() != "let there be light\n" {
		t.Errorf("output %q", out.String())
	}
	if res.Confess.Report.Blocking() {
		t.Errorf("unexpected blocking report: %+v", res.Confess.Report)
	}
	if res.Confess.Report.PhaseReached != diag.PhaseRuntime {
		t.Errorf("phase %v", res.Confess.Report.PhaseReached)
	}
}

func TestRunBlockedByLint(t *testing.T) {
	path := writeScript(t, t.TempDir(), "main.divine", `
function helper() { return 1 }
`+goodScript)
	var out bytes.Buffer
	res, err := driver.Run(path, weekdayOpts(), &out)
	if err != nil {
		t.Fatal(err)
	}
	if res.Ran {
		t.Error("lint error must block execution")
	}
	if out.Len() != 0 {
		t.Errorf("blocked run still wrote output %q", out.String())
	}
}

func TestRunFoldsRuntimeError(t *testing.T) {
	path := writeScript(t, t.TempDir(), "main.divine", `
bless Program {
	genesis() {
		return 1 / 0
	}
}
`)
	var out bytes.Buffer
	res, err := driver.Run(path, weekdayOpts(), &out)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Ran {
		t.Fatal("execution should have started")
	}
	found := false
	for _, d := range res.Confess.Report.Diagnostics {
		if d.Code == diag.RunZeroDivision {
			found = true
		}
	}
	if !found {
		t.Errorf("runtime fault missing from report: %+v", res.Confess.Report.Diagnostics)
	}
	if res.Salvation {
		t.Error("failed run reported salvation")
	}
}

func TestConfessSabbathBlocks(t *testing.T) {
	path := writeScript(t, t.TempDir(), "main.divine", goodScript)
	opts := driver.Options{
		Now: func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	res, err := driver.Confess(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Report.Blocking() {
		t.Error("Sunday run should be blocked")
	}
	if !res.Report.Fatal {
		t.Error("sabbath gate should be fatal")
	}
}

func TestConfessHonorsManifest(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "commandments.toml", "[blessings]\nfunctions = false\n")
	path := writeScript(t, dir, "main.divine", `
function helper() { return 1 }
`+goodScript)
	res, err := driver.Confess(path, weekdayOpts())
	if err != nil {
		t.Fatal(err)
	}
	if res.Report.Blocking() {
		t.Errorf("manifest disabled marker check but report blocks: %+v", res.Report.Diagnostics)
	}
}

func TestParseReportsErrors(t *testing.T) {
	path := writeScript(t, t.TempDir(), "broken.divine", "let = 1")
	res, err := driver.Parse(path, weekdayOpts())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bag.HasErrors() {
		t.Error("broken file produced no parse errors")
	}
	if res.Program == nil {
		t.Error("recovery should still produce a tree")
	}
}

func TestTokenize(t *testing.T) {
	path := writeScript(t, t.TempDir(), "main.divine", "let x = 1")
	res, err := driver.Tokenize(path, weekdayOpts())
	if err != nil {
		t.Fatal(err)
	}
	// let, x, =, 1, EOF
	if len(res.Tokens) != 5 {
		t.Errorf("%d tokens", len(res.Tokens))
	}
}

func TestConfessDir(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "good.divine", goodScript)
	writeScript(t, dir, "bad.dpl", "function helper() { return 1 }")
	writeScript(t, dir, "ignored.txt", "not scripture")

	_, results, err := driver.ConfessDir(context.Background(), dir, weekdayOpts(), 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("%d results, want 2", len(results))
	}
	// Results are sorted by path: bad.dpl before good.divine.
	if filepath.Base(results[0].Path) != "bad.dpl" {
		t.Errorf("first result %q", results[0].Path)
	}
	if !results[0].Report.Blocking() {
		t.Error("bad.dpl should block")
	}
	if results[1].Report.Blocking() {
		t.Errorf("good.divine should pass: %+v", results[1].Report.Diagnostics)
	}
}
