package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/tristanpoland/DivinePL/internal/ast"
)

// FormatAST prints an indented tree of the program. Meant for the
// parse command and debugging, not for machine consumption.
func FormatAST(w io.Writer, prog *ast.Program) {
	p := astPrinter{w: w}
	fmt.Fprintf(w, "Program (%d items)\n", len(prog.Items))
	for _, item := range prog.Items {
		p.node(item, 1)
	}
}

type astPrinter struct {
	w io.Writer
}

func (p *astPrinter) line(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *astPrinter) node(n ast.Node, depth int) {
	switch n := n.(type) {
	case *ast.ImportDecl:
		p.line(depth, "Import verse %q", n.Topic)
	case *ast.LetDecl:
		kw := "covenant"
		if n.Mutable {
			kw = "let"
		}
		p.line(depth, "%s %s =", kw, n.Name)
		p.expr(n.Init, depth+1)
	case *ast.FnDecl:
		p.line(depth, "Fn %s %s(%s)", n.Kind, n.Name, paramNames(n.Params))
		p.block(n.Body, depth+1)
	case *ast.EntryPointDecl:
		p.line(depth, "Genesis")
		p.block(n.Body, depth+1)
	case *ast.ContainerDecl:
		p.line(depth, "Container %s %s", n.Kind, n.Name)
		for _, m := range n.Members {
			p.node(m, depth+1)
		}
	case ast.Stmt:
		p.stmt(n, depth)
	default:
		p.line(depth, "%T", n)
	}
}

func (p *astPrinter) block(b *ast.Block, depth int) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		p.stmt(s, depth)
	}
}

func (p *astPrinter) stmt(s ast.Stmt, depth int) {
	switch s := s.(type) {
	case *ast.Block:
		p.line(depth, "Block")
		p.block(s, depth+1)
	case *ast.LetDecl, *ast.FnDecl:
		p.node(s, depth)
	case *ast.IfStmt:
		p.line(depth, "If")
		p.expr(s.Cond, depth+1)
		p.line(depth, "Then")
		p.block(s.Then, depth+1)
		if s.Else != nil {
			p.line(depth, "Else")
			p.stmt(s.Else, depth+1)
		}
	case *ast.WhileStmt:
		p.line(depth, "While")
		p.expr(s.Cond, depth+1)
		p.block(s.Body, depth+1)
	case *ast.ForStmt:
		p.line(depth, "For")
		if s.Init != nil {
			p.stmt(s.Init, depth+1)
		}
		if s.Cond != nil {
			p.expr(s.Cond, depth+1)
		}
		if s.Post != nil {
			p.expr(s.Post, depth+1)
		}
		p.block(s.Body, depth+1)
	case *ast.ReturnStmt:
		p.line(depth, "Return")
		p.expr(s.Value, depth+1)
	case *ast.GuardStmt:
		p.line(depth, "Confess")
		p.block(s.Body, depth+1)
		p.line(depth, "Forgive (%s)", s.HandlerName)
		p.block(s.Handler, depth+1)
	case *ast.ThrowStmt:
		p.line(depth, "Throw %s", s.TypeName)
		p.expr(s.Value, depth+1)
	case *ast.LogStmt:
		p.line(depth, "Revelation")
		p.expr(s.Value, depth+1)
	case *ast.ExprStmt:
		p.expr(s.X, depth)
	default:
		p.line(depth, "%T", s)
	}
}

func (p *astPrinter) expr(e ast.Expr, depth int) {
	switch e := e.(type) {
	case nil:
	case *ast.NumberLit:
		p.line(depth, "Number %v", e.Value)
	case *ast.StringLit:
		p.line(depth, "String %q", e.Value)
	case *ast.BoolLit:
		p.line(depth, "Bool %v", e.Value)
	case *ast.NullLit:
		p.line(depth, "Null")
	case *ast.UndefinedLit:
		p.line(depth, "Undefined")
	case *ast.Ident:
		p.line(depth, "Ident %s", e.Name)
	case *ast.TemplateString:
		p.line(depth, "Template (%d parts)", len(e.Parts))
		for _, part := range e.Parts {
			if part.Expr != nil {
				p.expr(part.Expr, depth+1)
			} else {
				p.line(depth+1, "Chunk %q", part.Chunk)
			}
		}
	case *ast.ArrayLit:
		p.line(depth, "Array (%d)", len(e.Elems))
		for _, el := range e.Elems {
			p.expr(el, depth+1)
		}
	case *ast.ObjectLit:
		p.line(depth, "Object (%d)", len(e.Entries))
		for _, entry := range e.Entries {
			p.line(depth+1, "Key %s", entry.Key)
			p.expr(entry.Value, depth+2)
		}
	case *ast.UnaryExpr:
		p.line(depth, "Unary %s", e.Op)
		p.expr(e.X, depth+1)
	case *ast.BinaryExpr:
		p.line(depth, "Binary %s", e.Op)
		p.expr(e.L, depth+1)
		p.expr(e.R, depth+1)
	case *ast.AssignExpr:
		p.line(depth, "Assign")
		p.expr(e.Target, depth+1)
		p.expr(e.Value, depth+1)
	case *ast.CallExpr:
		p.line(depth, "Call (%d args)", len(e.Args))
		p.expr(e.Callee, depth+1)
		for _, a := range e.Args {
			p.expr(a, depth+1)
		}
	case *ast.MemberExpr:
		p.line(depth, "Member .%s", e.Name)
		p.expr(e.Obj, depth+1)
	case *ast.IndexExpr:
		p.line(depth, "Index")
		p.expr(e.Obj, depth+1)
		p.expr(e.Index, depth+1)
	case *ast.NewExpr:
		p.line(depth, "New %s (%d args)", e.TypeName, len(e.Args))
		for _, a := range e.Args {
			p.expr(a, depth+1)
		}
	case *ast.ArrowFn:
		p.line(depth, "Arrow (%s)", paramNames(e.Params))
		if e.ExprBody != nil {
			p.expr(e.ExprBody, depth+1)
		}
		p.block(e.BlockBody, depth+1)
	default:
		p.line(depth, "%T", e)
	}
}

func paramNames(params []ast.Param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
