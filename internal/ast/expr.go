package ast

import (
	"github.com/tristanpoland/DivinePL/internal/source"
)

// BinaryOp is a binary operator spelling.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpMod BinaryOp = "%"
	OpLt  BinaryOp = "<"
	OpGt  BinaryOp = ">"
	OpLe  BinaryOp = "<="
	OpGe  BinaryOp = ">="
	OpEq  BinaryOp = "=="
	OpNe  BinaryOp = "!="
	OpAnd BinaryOp = "&&"
	OpOr  BinaryOp = "||"
)

// UnaryOp is a unary operator spelling.
type UnaryOp string

const (
	OpNeg UnaryOp = "-"
	OpNot UnaryOp = "!"
)

// NumberLit is a numeric literal; all numbers are float64.
type NumberLit struct {
	Value float64
	Sp    source.Span
}

func (e *NumberLit) Span() source.Span { return e.Sp }
func (e *NumberLit) exprNode()         {}

// StringLit is a quoted string literal, already unescaped.
type StringLit struct {
	Value string
	Sp    source.Span
}

func (e *StringLit) Span() source.Span { return e.Sp }
func (e *StringLit) exprNode()         {}

// BoolLit is true or false.
type BoolLit struct {
	Value bool
	Sp    source.Span
}

func (e *BoolLit) Span() source.Span { return e.Sp }
func (e *BoolLit) exprNode()         {}

// NullLit is the null literal.
type NullLit struct {
	Sp source.Span
}

func (e *NullLit) Span() source.Span { return e.Sp }
func (e *NullLit) exprNode()         {}

// UndefinedLit is the undefined literal.
type UndefinedLit struct {
	Sp source.Span
}

func (e *UndefinedLit) Span() source.Span { return e.Sp }
func (e *UndefinedLit) exprNode()         {}

// Ident is a name reference.
type Ident struct {
	Name string
	Sp   source.Span
}

func (e *Ident) Span() source.Span { return e.Sp }
func (e *Ident) exprNode()         {}

// TemplatePart is one piece of a template string: either a literal
// chunk (Expr nil) or an interpolated expression (Chunk empty).
type TemplatePart struct {
	Chunk string
	Expr  Expr
	Sp    source.Span
}

// TemplateString is a backtick string with ${...} interpolation.
type TemplateString struct {
	Parts []TemplatePart
	Sp    source.Span
}

func (e *TemplateString) Span() source.Span { return e.Sp }
func (e *TemplateString) exprNode()         {}

// ArrayLit is [a, b, c].
type ArrayLit struct {
	Elems []Expr
	Sp    source.Span
}

func (e *ArrayLit) Span() source.Span { return e.Sp }
func (e *ArrayLit) exprNode()         {}

// ObjectEntry is one key: value pair of an object literal.
type ObjectEntry struct {
	Key   string
	Value Expr
	Sp    source.Span
}

// ObjectLit is {k: v, ...}; insertion order is preserved at runtime.
type ObjectLit struct {
	Entries []ObjectEntry
	Sp      source.Span
}

func (e *ObjectLit) Span() source.Span { return e.Sp }
func (e *ObjectLit) exprNode()         {}

// UnaryExpr is -x or !x.
type UnaryExpr struct {
	Op UnaryOp
	X  Expr
	Sp source.Span
}

func (e *UnaryExpr) Span() source.Span { return e.Sp }
func (e *UnaryExpr) exprNode()         {}

// BinaryExpr is a binary operation; && and || short-circuit.
type BinaryExpr struct {
	Op   BinaryOp
	L, R Expr
	Sp   source.Span
}

func (e *BinaryExpr) Span() source.Span { return e.Sp }
func (e *BinaryExpr) exprNode()         {}

// AssignExpr writes to an Ident, MemberExpr, or IndexExpr target.
// Right-associative.
type AssignExpr struct {
	Target Expr
	Value  Expr
	Sp     source.Span
}

func (e *AssignExpr) Span() source.Span { return e.Sp }
func (e *AssignExpr) exprNode()         {}

// CallExpr invokes a callee with positional arguments.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Sp     source.Span
}

func (e *CallExpr) Span() source.Span { return e.Sp }
func (e *CallExpr) exprNode()         {}

// MemberExpr is obj.name.
type MemberExpr struct {
	Obj  Expr
	Name string
	Sp   source.Span
}

func (e *MemberExpr) Span() source.Span { return e.Sp }
func (e *MemberExpr) exprNode()         {}

// IndexExpr is obj[index].
type IndexExpr struct {
	Obj   Expr
	Index Expr
	Sp    source.Span
}

func (e *IndexExpr) Span() source.Span { return e.Sp }
func (e *IndexExpr) exprNode()         {}

// NewExpr is `new TypeName(args)`. The constructed type name is kept
// verbatim for sin diagnostics.
type NewExpr struct {
	TypeName string
	Args     []Expr
	Sp       source.Span
}

func (e *NewExpr) Span() source.Span { return e.Sp }
func (e *NewExpr) exprNode()         {}

// ArrowFn is an anonymous closure: (a, b) => expr or (a, b) => { ... }.
// Exactly one of ExprBody and BlockBody is set.
type ArrowFn struct {
	Params    []Param
	ExprBody  Expr
	BlockBody *Block
	Sp        source.Span
}

func (e *ArrowFn) Span() source.Span { return e.Sp }
func (e *ArrowFn) exprNode()         {}
