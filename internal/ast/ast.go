// Package ast defines the DivinePL syntax tree. Nodes own their
// children exclusively; there are no back edges and no sharing. Every
// node carries the source span it was parsed from.
package ast

import (
	"github.com/tristanpoland/DivinePL/internal/source"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Span() source.Span
}

// Decl is a declaration: import, binding, function, or container.
type Decl interface {
	Node
	declNode()
}

// Stmt is an executable statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed scripture file. Items holds
// declarations and top-level statements in source order.
type Program struct {
	File  source.FileID
	Items []Node
	Sp    source.Span
}

func (p *Program) Span() source.Span { return p.Sp }

// Imports returns the verse imports in source order.
func (p *Program) Imports() []*ImportDecl {
	var out []*ImportDecl
	for _, it := range p.Items {
		if imp, ok := it.(*ImportDecl); ok {
			out = append(out, imp)
		}
	}
	return out
}

// EntryPoints returns every genesis declaration found, in source order.
// Cardinality is the linter's business, not the parser's.
func (p *Program) EntryPoints() []*EntryPointDecl {
	var out []*EntryPointDecl
	for _, it := range p.Items {
		c, ok := it.(*ContainerDecl)
		if !ok {
			continue
		}
		for _, m := range c.Members {
			if ep, ok := m.(*EntryPointDecl); ok {
				out = append(out, ep)
			}
		}
	}
	return out
}
