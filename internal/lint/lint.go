// Package lint runs the static checks between parsing and execution:
// blessing markers, genesis cardinality, forbidden practices, duplicate
// verse imports, prophecy collection, and the sabbath gate.
package lint

import (
	"fmt"
	"strings"
	"time"

	"github.com/tristanpoland/DivinePL/internal/ast"
	"github.com/tristanpoland/DivinePL/internal/commandments"
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/source"
)

// Options configures one lint pass.
type Options struct {
	Reporter diag.Reporter
	Config   commandments.Config

	// Now is injected so the sabbath gate can be tested on any
	// weekday. Nil means time.Now.
	Now func() time.Time

	// Dev and OverrideSabbath must both be set to pass the gate on a
	// Sunday.
	Dev             bool
	OverrideSabbath bool
}

type linter struct {
	opts   Options
	topics map[string]source.Span
}

// Check lints one parsed program. Diagnostics go to the options
// reporter; the walk never mutates the tree.
func Check(prog *ast.Program, opts Options) {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	l := &linter{
		opts:   opts,
		topics: make(map[string]source.Span),
	}
	l.checkSabbath(prog.Sp)
	l.checkGenesis(prog)
	for _, item := range prog.Items {
		l.checkNode(item)
	}
}

func (l *linter) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	l.opts.Reporter.Report(code, sev, sp, msg, nil)
}

// checkSabbath refuses to proceed on Sundays unless both the override
// flag and dev mode are set.
func (l *linter) checkSabbath(sp source.Span) {
	if !l.opts.Config.Sabbath.Enforce {
		return
	}
	now := time.Now
	if l.opts.Now != nil {
		now = l.opts.Now
	}
	if now().Weekday() != time.Sunday {
		return
	}
	if l.opts.OverrideSabbath && l.opts.Dev {
		return
	}
	l.report(diag.LintSabbath, diag.SevFatal, sp,
		"RestError: Remember the Sabbath day, to keep it holy (Exodus 20:8)")
}

// checkGenesis enforces exactly one genesis entry point.
func (l *linter) checkGenesis(prog *ast.Program) {
	entries := prog.EntryPoints()
	switch len(entries) {
	case 1:
	case 0:
		l.report(diag.LintGenesisCount, diag.SevError, prog.Sp,
			"program has no genesis() entry point inside Program")
	default:
		l.report(diag.LintGenesisCount, diag.SevError, entries[1].Sp,
			fmt.Sprintf("program declares %d genesis() entry points; exactly one is allowed", len(entries)))
	}
}

func (l *linter) checkNode(n ast.Node) {
	switch n := n.(type) {
	case *ast.ImportDecl:
		l.checkImport(n)
	case *ast.LetDecl:
		l.checkProphecy(n.Prophecy)
		l.checkName(n.Name, n.NameSpan)
		l.checkExpr(n.Init)
	case *ast.FnDecl:
		l.checkFn(n)
	case *ast.EntryPointDecl:
		l.checkProphecy(n.Prophecy)
		l.checkBlock(n.Body)
	case *ast.ContainerDecl:
		l.checkProphecy(n.Prophecy)
		required := l.opts.Config.Blessings.Containers
		if n.IsProgram() {
			required = l.opts.Config.Blessings.Modules
		}
		if n.Kind == ast.FnUnmarked && required {
			l.report(diag.LintUnblessedFunction, diag.SevError, n.NameSpan,
				fmt.Sprintf("container '%s' lacks divine blessing; mark it bless or miracle", n.Name))
		}
		for _, m := range n.Members {
			l.checkNode(m)
		}
	case ast.Stmt:
		l.checkStmt(n)
	}
}

func (l *linter) checkImport(d *ast.ImportDecl) {
	if _, dup := l.topics[d.Topic]; dup {
		l.report(diag.LintDuplicateVerse, diag.SevWarning, d.TopicSpan,
			fmt.Sprintf("verse %q is already imported", d.Topic))
		return
	}
	l.topics[d.Topic] = d.TopicSpan
}

func (l *linter) checkFn(d *ast.FnDecl) {
	l.checkProphecy(d.Prophecy)
	if d.Kind == ast.FnUnmarked && l.opts.Config.Blessings.Functions {
		l.report(diag.LintUnblessedFunction, diag.SevError, d.MarkerSpan,
			fmt.Sprintf("function '%s' lacks divine blessing; mark it bless or miracle", d.Name))
	}
	l.checkName(d.Name, d.NameSpan)
	l.checkBlock(d.Body)
}

func (l *linter) checkProphecy(a *ast.Annotation) {
	if a == nil {
		return
	}
	l.report(diag.LintProphecy, diag.SevInfo, a.Sp, a.Note)
}

// checkName flags bindings and identifier uses whose name carries a
// forbidden fragment, unless the exact name is allow-listed.
func (l *linter) checkName(name string, sp source.Span) {
	for _, allowed := range l.opts.Config.Practices.Allowed {
		if name == allowed {
			return
		}
	}
	lower := strings.ToLower(name)
	for _, frag := range l.opts.Config.Practices.Forbidden {
		if frag != "" && strings.Contains(lower, strings.ToLower(frag)) {
			l.report(diag.LintForbiddenPractice, diag.SevError, sp,
				fmt.Sprintf("'%s' is a forbidden practice", name))
			return
		}
	}
}

func (l *linter) checkBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		l.checkStmt(s)
	}
}

func (l *linter) checkStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Block:
		l.checkBlock(s)
	case *ast.LetDecl:
		l.checkProphecy(s.Prophecy)
		l.checkName(s.Name, s.NameSpan)
		l.checkExpr(s.Init)
	case *ast.FnDecl:
		l.checkFn(s)
	case *ast.IfStmt:
		l.checkExpr(s.Cond)
		l.checkBlock(s.Then)
		if s.Else != nil {
			l.checkStmt(s.Else)
		}
	case *ast.WhileStmt:
		l.checkExpr(s.Cond)
		l.checkBlock(s.Body)
	case *ast.ForStmt:
		if s.Init != nil {
			l.checkStmt(s.Init)
		}
		l.checkExpr(s.Cond)
		l.checkExpr(s.Post)
		l.checkBlock(s.Body)
	case *ast.ReturnStmt:
		l.checkExpr(s.Value)
	case *ast.GuardStmt:
		l.checkBlock(s.Body)
		l.checkBlock(s.Handler)
	case *ast.ThrowStmt:
		l.checkExpr(s.Value)
	case *ast.LogStmt:
		l.checkExpr(s.Value)
	case *ast.ExprStmt:
		l.checkExpr(s.X)
	}
}

func (l *linter) checkExpr(e ast.Expr) {
	switch e := e.(type) {
	case nil:
	case *ast.Ident:
		l.checkName(e.Name, e.Sp)
	case *ast.TemplateString:
		for _, part := range e.Parts {
			l.checkExpr(part.Expr)
		}
	case *ast.ArrayLit:
		for _, el := range e.Elems {
			l.checkExpr(el)
		}
	case *ast.ObjectLit:
		for _, entry := range e.Entries {
			l.checkExpr(entry.Value)
		}
	case *ast.UnaryExpr:
		l.checkExpr(e.X)
	case *ast.BinaryExpr:
		l.checkExpr(e.L)
		l.checkExpr(e.R)
	case *ast.AssignExpr:
		l.checkExpr(e.Target)
		l.checkExpr(e.Value)
	case *ast.CallExpr:
		l.checkExpr(e.Callee)
		for _, a := range e.Args {
			l.checkExpr(a)
		}
	case *ast.MemberExpr:
		l.checkExpr(e.Obj)
	case *ast.IndexExpr:
		l.checkExpr(e.Obj)
		l.checkExpr(e.Index)
	case *ast.NewExpr:
		for _, a := range e.Args {
			l.checkExpr(a)
		}
	case *ast.ArrowFn:
		l.checkExpr(e.ExprBody)
		l.checkBlock(e.BlockBody)
	}
}
