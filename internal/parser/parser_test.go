package parser_test

import (
	"testing"

	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/diag"
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

func (r *testReporter) errorCount() int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}

func parseSource(t *testing.T, input string) (*ast.Program, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.divine", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	prog := parser.ParseFile(file, lx, parser.Options{Reporter: reporter})
	if prog == nil {
		t.Fatal("parser returned nil program")
	}
	return prog, reporter
}

func parseClean(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, reporter := parseSource(t, input)
	if reporter.errorCount() != 0 {
		t.Fatalf("unexpected parse errors: %v", reporter.diagnostics)
	}
	return prog
}

func TestFnMarkers(t *testing.T) {
	cases := []struct {
		input string
		kind  ast.FnKind
	}{
		{"bless f() { return 1 }", ast.FnBlessed},
		{"miracle f() { return 1 }", ast.FnMiracle},
		{"function f() { return 1 }", ast.FnUnmarked},
	}
	for _, tc := range cases {
		prog := parseClean(t, tc.input)
		if len(prog.Items) != 1 {
			t.Fatalf("%q: %d items", tc.input, len(prog.Items))
		}
		fn, ok := prog.Items[0].(*ast.FnDecl)
		if !ok {
			t.Fatalf("%q: item is %T", tc.input, prog.Items[0])
		}
		if fn.Kind != tc.kind {
			t.Errorf("%q: kind %s, want %s", tc.input, fn.Kind, tc.kind)
		}
		if fn.Name != "f" {
			t.Errorf("%q: name %q", tc.input, fn.Name)
		}
	}
}

func TestProgramContainer(t *testing.T) {
	prog := parseClean(t, `
bless Program {
	genesis() {
		return salvation
	}
	bless helper(x) {
		return x
	}
}`)
	cont, ok := prog.Items[0].(*ast.ContainerDecl)
	if !ok {
		t.Fatalf("item is %T", prog.Items[0])
	}
	if !cont.IsProgram() {
		t.Error("container is not Program")
	}
	if len(cont.Members) != 2 {
		t.Fatalf("%d members", len(cont.Members))
	}
	if _, ok := cont.Members[0].(*ast.EntryPointDecl); !ok {
		t.Errorf("first member is %T, want EntryPointDecl", cont.Members[0])
	}
	helper, ok := cont.Members[1].(*ast.FnDecl)
	if !ok {
		t.Fatalf("second member is %T", cont.Members[1])
	}
	if helper.Name != "helper" || len(helper.Params) != 1 {
		t.Errorf("helper parsed as %q with %d params", helper.Name, len(helper.Params))
	}
	entries := prog.EntryPoints()
	if len(entries) != 1 {
		t.Errorf("EntryPoints returned %d", len(entries))
	}
}

func TestGenesisWithMarker(t *testing.T) {
	prog := parseClean(t, "bless Program { bless genesis() { return salvation } }")
	if len(prog.EntryPoints()) != 1 {
		t.Error("marked genesis not recognized as entry point")
	}
}

func TestGenesisWithParamsIsPlainMethod(t *testing.T) {
	prog := parseClean(t, "bless Program { bless genesis(x) { return x } }")
	if len(prog.EntryPoints()) != 0 {
		t.Error("genesis with parameters counted as an entry point")
	}
	cont := prog.Items[0].(*ast.ContainerDecl)
	if _, ok := cont.Members[0].(*ast.FnDecl); !ok {
		t.Errorf("member is %T, want plain FnDecl", cont.Members[0])
	}
}

func TestLetAndCovenant(t *testing.T) {
	prog := parseClean(t, "let x = 1\ncovenant MAX = 100")
	letD := prog.Items[0].(*ast.LetDecl)
	covD := prog.Items[1].(*ast.LetDecl)
	if !letD.Mutable {
		t.Error("let binding not mutable")
	}
	if covD.Mutable {
		t.Error("covenant binding marked mutable")
	}
	if covD.Name != "MAX" {
		t.Errorf("covenant name %q", covD.Name)
	}
}

func TestImportVerse(t *testing.T) {
	prog := parseClean(t, `import verse "wisdom"`)
	imp, ok := prog.Items[0].(*ast.ImportDecl)
	if !ok {
		t.Fatalf("item is %T", prog.Items[0])
	}
	if imp.Topic != "wisdom" {
		t.Errorf("topic %q", imp.Topic)
	}
}

func TestConfessThrow(t *testing.T) {
	prog := parseClean(t, `bless f() { confess new Sin("bad") }`)
	fn := prog.Items[0].(*ast.FnDecl)
	throw, ok := fn.Body.Stmts[0].(*ast.ThrowStmt)
	if !ok {
		t.Fatalf("stmt is %T, want ThrowStmt", fn.Body.Stmts[0])
	}
	if throw.TypeName != "Sin" {
		t.Errorf("TypeName %q", throw.TypeName)
	}
	if _, ok := throw.Value.(*ast.NewExpr); !ok {
		t.Errorf("thrown value is %T", throw.Value)
	}
}

func TestConfessGuard(t *testing.T) {
	prog := parseClean(t, `bless f() {
	confess {
		revelation("trying")
	} forgive (e) {
		revelation(e)
	}
}`)
	fn := prog.Items[0].(*ast.FnDecl)
	guard, ok := fn.Body.Stmts[0].(*ast.GuardStmt)
	if !ok {
		t.Fatalf("stmt is %T, want GuardStmt", fn.Body.Stmts[0])
	}
	if guard.HandlerName != "e" {
		t.Errorf("handler name %q", guard.HandlerName)
	}
	if len(guard.Body.Stmts) != 1 || len(guard.Handler.Stmts) != 1 {
		t.Errorf("body/handler stmt counts %d/%d", len(guard.Body.Stmts), len(guard.Handler.Stmts))
	}
}

func TestPrecedence(t *testing.T) {
	prog := parseClean(t, "let x = 1 + 2 * 3")
	letD := prog.Items[0].(*ast.LetDecl)
	add, ok := letD.Init.(*ast.BinaryExpr)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("root is %T %v", letD.Init, ok)
	}
	mul, ok := add.R.(*ast.BinaryExpr)
	if !ok || mul.Op != ast.OpMul {
		t.Errorf("right operand is %T, want multiplication", add.R)
	}
}

func TestComparisonAndLogic(t *testing.T) {
	prog := parseClean(t, "let x = a < b && c == d")
	letD := prog.Items[0].(*ast.LetDecl)
	and, ok := letD.Init.(*ast.BinaryExpr)
	if !ok || and.Op != ast.OpAnd {
		t.Fatalf("root op %v", letD.Init)
	}
}

func TestAssignRightAssociative(t *testing.T) {
	prog := parseClean(t, "bless f() { a = b = 1 }")
	fn := prog.Items[0].(*ast.FnDecl)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	outer, ok := stmt.X.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("stmt expr is %T", stmt.X)
	}
	if _, ok := outer.Value.(*ast.AssignExpr); !ok {
		t.Errorf("inner value is %T, want nested assignment", outer.Value)
	}
}

func TestBadAssignTarget(t *testing.T) {
	_, reporter := parseSource(t, "bless f() { 1 + 2 = 3 }")
	found := false
	for _, d := range reporter.diagnostics {
		if d.Code == diag.SynBadAssignTarget {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SynBadAssignTarget, got %v", reporter.diagnostics)
	}
}

func TestArrowFunctions(t *testing.T) {
	prog := parseClean(t, "let f = (x) => x + 1\nlet g = () => 5\nlet h = (a, b) => { return a }")
	f := prog.Items[0].(*ast.LetDecl).Init.(*ast.ArrowFn)
	if len(f.Params) != 1 || f.Params[0].Name != "x" || f.ExprBody == nil {
		t.Errorf("single-param arrow parsed wrong: %+v", f)
	}
	g := prog.Items[1].(*ast.LetDecl).Init.(*ast.ArrowFn)
	if len(g.Params) != 0 || g.ExprBody == nil {
		t.Errorf("zero-param arrow parsed wrong: %+v", g)
	}
	h := prog.Items[2].(*ast.LetDecl).Init.(*ast.ArrowFn)
	if len(h.Params) != 2 || h.BlockBody == nil {
		t.Errorf("two-param block arrow parsed wrong: %+v", h)
	}
}

func TestGroupedExprIsNotArrow(t *testing.T) {
	prog := parseClean(t, "let x = (1 + 2) * 3")
	letD := prog.Items[0].(*ast.LetDecl)
	mul, ok := letD.Init.(*ast.BinaryExpr)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("root is %T", letD.Init)
	}
}

func TestTemplateString(t *testing.T) {
	prog := parseClean(t, "let s = `Hello ${name}!`")
	tmpl, ok := prog.Items[0].(*ast.LetDecl).Init.(*ast.TemplateString)
	if !ok {
		t.Fatalf("init is %T", prog.Items[0].(*ast.LetDecl).Init)
	}
	if len(tmpl.Parts) != 3 {
		t.Fatalf("%d parts", len(tmpl.Parts))
	}
	if tmpl.Parts[0].Chunk != "Hello " || tmpl.Parts[0].Expr != nil {
		t.Errorf("part 0: %+v", tmpl.Parts[0])
	}
	if tmpl.Parts[1].Expr == nil {
		t.Errorf("part 1 missing interpolation")
	}
	if tmpl.Parts[2].Chunk != "!" {
		t.Errorf("part 2: %+v", tmpl.Parts[2])
	}
}

func TestArrayAndObjectLiterals(t *testing.T) {
	prog := parseClean(t, `let a = [1, 2, 3]
let o = {name: "Adam", "age": 930}`)
	arr := prog.Items[0].(*ast.LetDecl).Init.(*ast.ArrayLit)
	if len(arr.Elems) != 3 {
		t.Errorf("%d array elems", len(arr.Elems))
	}
	obj := prog.Items[1].(*ast.LetDecl).Init.(*ast.ObjectLit)
	if len(obj.Entries) != 2 || obj.Entries[0].Key != "name" || obj.Entries[1].Key != "age" {
		t.Errorf("object entries %+v", obj.Entries)
	}
}

func TestPostfixChain(t *testing.T) {
	prog := parseClean(t, "let x = obj.list[0].run(1, 2)")
	call, ok := prog.Items[0].(*ast.LetDecl).Init.(*ast.CallExpr)
	if !ok {
		t.Fatalf("root is %T", prog.Items[0].(*ast.LetDecl).Init)
	}
	if len(call.Args) != 2 {
		t.Errorf("%d call args", len(call.Args))
	}
	if _, ok := call.Callee.(*ast.MemberExpr); !ok {
		t.Errorf("callee is %T", call.Callee)
	}
}

func TestProphecyAttachesToFn(t *testing.T) {
	prog := parseClean(t, `@prophesy("rewrite someday")
bless f() { return 1 }`)
	fn := prog.Items[0].(*ast.FnDecl)
	if fn.Prophecy == nil {
		t.Fatal("prophecy not attached")
	}
	if fn.Prophecy.Note != "rewrite someday" {
		t.Errorf("note %q", fn.Prophecy.Note)
	}
}

func TestStrayAnnotation(t *testing.T) {
	_, reporter := parseSource(t, `@prophesy("floating")
1 + 1`)
	found := false
	for _, d := range reporter.diagnostics {
		if d.Code == diag.SynStrayAnnotation {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SynStrayAnnotation, got %v", reporter.diagnostics)
	}
}

func TestForLoop(t *testing.T) {
	prog := parseClean(t, "bless f() { for (let i = 0; i < 10; i = i + 1) { revelation(i) } }")
	fn := prog.Items[0].(*ast.FnDecl)
	loop, ok := fn.Body.Stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("stmt is %T", fn.Body.Stmts[0])
	}
	if loop.Init == nil || loop.Cond == nil || loop.Post == nil {
		t.Errorf("missing loop clause: %+v", loop)
	}
}

func TestIfElseChain(t *testing.T) {
	prog := parseClean(t, `bless f(x) {
	if (x > 0) { return 1 } else if (x < 0) { return -1 } else { return 0 }
}`)
	fn := prog.Items[0].(*ast.FnDecl)
	ifStmt, ok := fn.Body.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("stmt is %T", fn.Body.Stmts[0])
	}
	elif, ok := ifStmt.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("else branch is %T", ifStmt.Else)
	}
	if _, ok := elif.Else.(*ast.Block); !ok {
		t.Errorf("final else is %T", elif.Else)
	}
}

func TestConfessNonNewOperandWarns(t *testing.T) {
	prog, reporter := parseSource(t, `bless f() { confess "bare message" }`)
	if reporter.errorCount() != 0 {
		t.Fatalf("unexpected parse errors: %v", reporter.diagnostics)
	}
	warns := 0
	for _, d := range reporter.diagnostics {
		if d.Code == diag.SynThrowOperand && d.Severity == diag.SevWarning {
			warns++
		}
	}
	if warns != 1 {
		t.Errorf("expected one throw-operand warning, got %v", reporter.diagnostics)
	}
	fn := prog.Items[0].(*ast.FnDecl)
	throw := fn.Body.Stmts[0].(*ast.ThrowStmt)
	if throw.TypeName != "" {
		t.Errorf("TypeName %q for a non-constructor operand", throw.TypeName)
	}
}

func TestConfessNewOperandDoesNotWarn(t *testing.T) {
	_, reporter := parseSource(t, `bless f() { confess new Sin("bad") }`)
	for _, d := range reporter.diagnostics {
		if d.Code == diag.SynThrowOperand {
			t.Errorf("unexpected warning: %v", d)
		}
	}
}

func TestRecoveryKeepsLaterDecls(t *testing.T) {
	prog, reporter := parseSource(t, `let = 1
bless f() { return 2 }`)
	if reporter.errorCount() == 0 {
		t.Error("broken let produced no errors")
	}
	found := false
	for _, item := range prog.Items {
		if fn, ok := item.(*ast.FnDecl); ok && fn.Name == "f" {
			found = true
		}
	}
	if !found {
		t.Error("recovery lost the following function")
	}
}

func TestMaxErrorsStopsReporting(t *testing.T) {
	_, reporter := parseSource(t, "let = 1\nlet = 2\nlet = 3")
	if reporter.errorCount() == 0 {
		t.Error("expected at least one error")
	}
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.divine", []byte("let = 1\nlet = 2\nlet = 3"))
	file := fs.Get(fileID)
	capped := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: capped})
	parser.ParseFile(file, lx, parser.Options{Reporter: capped, MaxErrors: 1})
	if capped.errorCount() > 1 {
		t.Errorf("MaxErrors=1 but %d errors reported", capped.errorCount())
	}
}
