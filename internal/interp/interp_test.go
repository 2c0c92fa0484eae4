package interp_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/interp"
	"github.com/tristanpoland/DivinePL/internal/lexer"
	"github.com/tristanpoland/DivinePL/internal/parser"
	"github.com/tristanpoland/DivinePL/internal/source"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.divine", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	prog := parser.ParseFile(file, lx, parser.Options{Reporter: reporter})
	for _, d := range reporter.diagnostics {
		if d.Severity >= diag.SevError {
			t.Fatalf("parse error in fixture: %v", d)
		}
	}
	return prog
}

// runProgram executes a fixture and returns the genesis result and
// everything revelation wrote.
func runProgram(t *testing.T, input string) (interp.Value, string, error) {
	t.Helper()
	prog := parseProgram(t, input)
	var out bytes.Buffer
	in := interp.New(interp.WithStdout(&out))
	v, err := in.Run(prog)
	return v, out.String(), err
}

func runOK(t *testing.T, input string) (interp.Value, string) {
	t.Helper()
	v, out, err := runProgram(t, input)
	if err != nil {
		t.Fatalf("run failed: %v\noutput:\n%s", err, out)
	}
	return v, out
}

func lines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func runtimeCode(t *testing.T, err error) diag.Code {
	t.Helper()
	var re *interp.RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("error %v is not a RuntimeError", err)
	}
	return re.Code
}

func TestGenesisReachesSalvation(t *testing.T) {
	v, _ := runOK(t, `
bless Program {
	genesis() {
		return salvation
	}
}`)
	if !interp.IsSalvation(v) {
		t.Errorf("genesis returned %s", v.Inspect())
	}
}

func TestMissingGenesis(t *testing.T) {
	_, _, err := runProgram(t, "let x = 1")
	if runtimeCode(t, err) != diag.RunNoGenesis {
		t.Errorf("error %v", err)
	}
}

func TestRevelationFormatting(t *testing.T) {
	_, out := runOK(t, `
bless Program {
	genesis() {
		revelation(100)
		revelation(2.5)
		revelation("word")
		revelation(true)
		revelation([1, "two"])
		return salvation
	}
}`)
	want := []string{"100", "2.5", "word", "true", `[1, "two"]`}
	got := lines(out)
	if len(got) != len(want) {
		t.Fatalf("output %q", out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHoistingOrder(t *testing.T) {
	// Functions are visible before their textual position; top-level
	// statements still run before genesis.
	_, out := runOK(t, `
let greeting = hello()
revelation(greeting)

bless hello() { return "light" }

bless Program {
	genesis() {
		revelation("genesis")
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 2 || got[0] != "light" || got[1] != "genesis" {
		t.Errorf("output %q", out)
	}
}

func TestCovenantViolation(t *testing.T) {
	_, _, err := runProgram(t, `
covenant MAX = 100
bless Program {
	genesis() {
		MAX = 5
		return salvation
	}
}`)
	if runtimeCode(t, err) != diag.RunCovenantViolated {
		t.Errorf("error %v", err)
	}
	if !strings.Contains(err.Error(), "MAX") {
		t.Errorf("message %q does not name the covenant", err.Error())
	}
}

func TestCovenantViolationIsCatchable(t *testing.T) {
	_, out := runOK(t, `
covenant MAX = 100
bless Program {
	genesis() {
		confess {
			MAX = 5
		} forgive (e) {
			revelation(e)
		}
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 1 || !strings.Contains(got[0], "covenant") {
		t.Errorf("output %q", out)
	}
}

func TestZeroDivision(t *testing.T) {
	_, _, err := runProgram(t, `
bless Program {
	genesis() {
		return 1 / 0
	}
}`)
	if runtimeCode(t, err) != diag.RunZeroDivision {
		t.Errorf("error %v", err)
	}
}

func TestThrowAndForgiveBindsMessage(t *testing.T) {
	_, out := runOK(t, `
bless Program {
	genesis() {
		confess {
			confess new Sin("x")
		} forgive (e) {
			revelation(e.message)
			revelation(e.name)
			revelation(e)
		}
		return salvation
	}
}`)
	got := lines(out)
	want := []string{"x", "Sin", "Sin: x"}
	if len(got) != len(want) {
		t.Fatalf("output %q", out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUncaughtSin(t *testing.T) {
	_, _, err := runProgram(t, `
bless Program {
	genesis() {
		confess new Sin("unrepented")
	}
}`)
	if runtimeCode(t, err) != diag.RunUncaughtSin {
		t.Errorf("error %v", err)
	}
	if !strings.Contains(err.Error(), "unrepented") {
		t.Errorf("message %q", err.Error())
	}
}

func TestUnknownName(t *testing.T) {
	_, _, err := runProgram(t, `
bless Program {
	genesis() {
		return mystery
	}
}`)
	if runtimeCode(t, err) != diag.RunUnknownName {
		t.Errorf("error %v", err)
	}
}

func TestMiracleMemoization(t *testing.T) {
	_, out := runOK(t, `
miracle double(n) {
	revelation("computing")
	return n * 2
}
bless Program {
	genesis() {
		revelation(double(21))
		revelation(double(21))
		revelation(double(5))
		return salvation
	}
}`)
	got := lines(out)
	want := []string{"computing", "42", "42", "computing", "10"}
	if len(got) != len(want) {
		t.Fatalf("output %q", out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMiracleMemoKeyedByFunction(t *testing.T) {
	_, out := runOK(t, `
miracle f(n) {
	return n * 2
}
bless Program {
	genesis() {
		revelation(f(10))
		miracle f(n) {
			return n + 1
		}
		revelation(f(10))
		return salvation
	}
}`)
	got := lines(out)
	want := []string{"20", "11"}
	if len(got) != len(want) {
		t.Fatalf("output %q", out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMiracleDeepCopiesArguments(t *testing.T) {
	_, out := runOK(t, `
miracle grow(list) {
	push(list, 1)
	return len(list)
}
let xs = []
bless Program {
	genesis() {
		revelation(grow(xs))
		revelation(len(xs))
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 2 || got[0] != "1" || got[1] != "0" {
		t.Errorf("output %q: caller array must stay untouched", out)
	}
}

func TestBlessedFunctionSharesArguments(t *testing.T) {
	_, out := runOK(t, `
bless grow(list) {
	push(list, 1)
}
let xs = []
bless Program {
	genesis() {
		grow(xs)
		revelation(len(xs))
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 1 || got[0] != "1" {
		t.Errorf("output %q: blessed call shares the array", out)
	}
}

func TestRecursionDepthLimit(t *testing.T) {
	prog := parseProgram(t, `
bless loop(n) { return loop(n + 1) }
bless Program {
	genesis() {
		return loop(0)
	}
}`)
	var out bytes.Buffer
	in := interp.New(interp.WithStdout(&out), interp.WithMaxDepth(64))
	_, err := in.Run(prog)
	if runtimeCode(t, err) != diag.RunStackOverflow {
		t.Errorf("error %v", err)
	}
}

func TestBuiltins(t *testing.T) {
	_, out := runOK(t, `
bless Program {
	genesis() {
		revelation(min(150, 100))
		revelation(max(1, 7))
		revelation(abs(0 - 3))
		revelation(floor(2.9))
		revelation(ceil(2.1))
		revelation(len("свет"))
		revelation(exalt("amen"))
		revelation(humble("AMEN"))
		return salvation
	}
}`)
	got := lines(out)
	want := []string{"100", "7", "3", "2", "3", "4", "AMEN", "amen"}
	if len(got) != len(want) {
		t.Fatalf("output %q", out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKeysAndPush(t *testing.T) {
	_, out := runOK(t, `
bless Program {
	genesis() {
		let o = {first: 1, second: 2}
		revelation(keys(o))
		let xs = [1]
		revelation(push(xs, 2))
		revelation(xs)
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 3 {
		t.Fatalf("output %q", out)
	}
	if got[0] != `["first", "second"]` {
		t.Errorf("keys order: %q", got[0])
	}
	if got[1] != "2" || got[2] != "[1, 2]" {
		t.Errorf("push result: %q %q", got[1], got[2])
	}
}

func TestBuiltinShadowing(t *testing.T) {
	_, out := runOK(t, `
bless len(x) { return "mine" }
bless Program {
	genesis() {
		revelation(len([1, 2]))
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 1 || got[0] != "mine" {
		t.Errorf("output %q: user definition must shadow the builtin", out)
	}
}

func TestTemplateInterpolation(t *testing.T) {
	_, out := runOK(t, `
bless Program {
	genesis() {
		let n = 1 + 2
		revelation(`+"`n is ${n}!`"+`)
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 1 || got[0] != "n is 3!" {
		t.Errorf("output %q", out)
	}
}

func TestStringConcatAndComparison(t *testing.T) {
	_, out := runOK(t, `
bless Program {
	genesis() {
		revelation("let there be " + "light")
		revelation("count: " + 7)
		revelation("abel" < "cain")
		return salvation
	}
}`)
	got := lines(out)
	want := []string{"let there be light", "count: 7", "true"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: %q, want %q", i, got[i], want[i])
		}
	}
}

func TestShortCircuit(t *testing.T) {
	_, out := runOK(t, `
bless boom() {
	confess new Sin("must not run")
}
bless Program {
	genesis() {
		revelation(false && boom())
		revelation(true || boom())
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 2 || got[0] != "false" || got[1] != "true" {
		t.Errorf("output %q", out)
	}
}

func TestLoops(t *testing.T) {
	_, out := runOK(t, `
bless Program {
	genesis() {
		let total = 0
		for (let i = 1; i <= 4; i = i + 1) {
			total = total + i
		}
		revelation(total)
		let n = 3
		while (n > 0) {
			n = n - 1
		}
		revelation(n)
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 2 || got[0] != "10" || got[1] != "0" {
		t.Errorf("output %q", out)
	}
}

func TestArrowFunctionsAndClosures(t *testing.T) {
	_, out := runOK(t, `
bless makeCounter() {
	let n = 0
	return () => {
		n = n + 1
		return n
	}
}
bless Program {
	genesis() {
		let next = makeCounter()
		revelation(next())
		revelation(next())
		let add = (a, b) => a + b
		revelation(add(2, 3))
		return salvation
	}
}`)
	got := lines(out)
	want := []string{"1", "2", "5"}
	if len(got) != len(want) {
		t.Fatalf("output %q", out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: %q, want %q", i, got[i], want[i])
		}
	}
}

func TestContainerMethods(t *testing.T) {
	_, out := runOK(t, `
bless Ark {
	bless capacity() { return 2 }
}
bless Program {
	genesis() {
		revelation(Ark.capacity())
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 1 || got[0] != "2" {
		t.Errorf("output %q", out)
	}
}

func TestMemberAndIndexAccess(t *testing.T) {
	_, out := runOK(t, `
bless Program {
	genesis() {
		let o = {name: "Adam"}
		revelation(o.name)
		revelation(o.missing)
		let xs = [10, 20]
		revelation(xs[1])
		revelation(xs.length)
		revelation("word".length)
		return salvation
	}
}`)
	got := lines(out)
	want := []string{"Adam", "undefined", "20", "2", "4"}
	if len(got) != len(want) {
		t.Fatalf("output %q", out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIndexOutOfRange(t *testing.T) {
	_, out := runOK(t, `
bless Program {
	genesis() {
		let xs = [1]
		confess {
			revelation(xs[5])
		} forgive (e) {
			revelation(e)
		}
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 1 || !strings.Contains(got[0], "index") {
		t.Errorf("output %q", out)
	}
}

func TestBlockScoping(t *testing.T) {
	_, out := runOK(t, `
bless Program {
	genesis() {
		let x = "outer"
		{
			let x = "inner"
			revelation(x)
		}
		revelation(x)
		return salvation
	}
}`)
	got := lines(out)
	if len(got) != 2 || got[0] != "inner" || got[1] != "outer" {
		t.Errorf("output %q", out)
	}
}
