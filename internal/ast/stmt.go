package ast

import (
	"github.com/tristanpoland/DivinePL/internal/source"
)

// Block is a braced statement list with its own scope.
type Block struct {
	Stmts []Stmt
	Sp    source.Span
}

func (s *Block) Span() source.Span { return s.Sp }
func (s *Block) stmtNode()         {}

// IfStmt is if/else. Else may be nil, another IfStmt, or a Block.
type IfStmt struct {
	Cond Expr
	Then *Block
	Else Stmt
	Sp   source.Span
}

func (s *IfStmt) Span() source.Span { return s.Sp }
func (s *IfStmt) stmtNode()         {}

// WhileStmt loops while the condition is truthy.
type WhileStmt struct {
	Cond Expr
	Body *Block
	Sp   source.Span
}

func (s *WhileStmt) Span() source.Span { return s.Sp }
func (s *WhileStmt) stmtNode()         {}

// ForStmt is the C-style three-clause loop. Any clause may be nil.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Post Expr
	Body *Block
	Sp   source.Span
}

func (s *ForStmt) Span() source.Span { return s.Sp }
func (s *ForStmt) stmtNode()         {}

// ReturnStmt returns from the enclosing function. Value may be nil.
type ReturnStmt struct {
	Value Expr
	Sp    source.Span
}

func (s *ReturnStmt) Span() source.Span { return s.Sp }
func (s *ReturnStmt) stmtNode()         {}

// GuardStmt is the structured error handler:
// confess { body } forgive (name) { handler }.
type GuardStmt struct {
	Body        *Block
	HandlerName string
	HandlerSpan source.Span
	Handler     *Block
	Sp          source.Span
}

func (s *GuardStmt) Span() source.Span { return s.Sp }
func (s *GuardStmt) stmtNode()         {}

// ThrowStmt raises a sin: `confess new Sin("message")`. TypeName keeps
// the constructed error type verbatim for diagnostic formatting; it is
// empty when the thrown expression is not a constructor call.
type ThrowStmt struct {
	Value    Expr
	TypeName string
	Sp       source.Span
}

func (s *ThrowStmt) Span() source.Span { return s.Sp }
func (s *ThrowStmt) stmtNode()         {}

// LogStmt is `revelation(expr)`: stringify and emit one log line.
type LogStmt struct {
	Value Expr
	Sp    source.Span
}

func (s *LogStmt) Span() source.Span { return s.Sp }
func (s *LogStmt) stmtNode()         {}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	X  Expr
	Sp source.Span
}

func (s *ExprStmt) Span() source.Span { return s.Sp }
func (s *ExprStmt) stmtNode()         {}
