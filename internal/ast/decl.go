package ast

import (
	"github.com/tristanpoland/DivinePL/internal/source"
)

// Annotation is a @prophesy("...") marker attached to a declaration.
// The note is opaque metadata; nothing interprets it.
type Annotation struct {
	Name string
	Note string
	Sp   source.Span
}

// FnKind classifies how a function declaration was marked.
type FnKind uint8

const (
	// FnBlessed is an ordinary, bless-marked function.
	FnBlessed FnKind = iota
	// FnMiracle is an enhanced function: argument deep-copy plus
	// per-run memoization.
	FnMiracle
	// FnUnmarked lacks the required marker. It parses fine; the linter
	// rejects it.
	FnUnmarked
)

func (k FnKind) String() string {
	switch k {
	case FnBlessed:
		return "bless"
	case FnMiracle:
		return "miracle"
	case FnUnmarked:
		return "unmarked"
	default:
		return "fn"
	}
}

// ImportDecl is `import verse "topic"`. Imports resolve to program
// metadata only; there is no cross-file symbol table.
type ImportDecl struct {
	Topic     string
	TopicSpan source.Span
	Sp        source.Span
}

func (d *ImportDecl) Span() source.Span { return d.Sp }
func (d *ImportDecl) declNode()         {}

// LetDecl binds a name: `let` (mutable) or `covenant` (immutable).
// It doubles as a statement inside blocks.
type LetDecl struct {
	Name     string
	NameSpan source.Span
	Init     Expr
	Mutable  bool
	Prophecy *Annotation
	Sp       source.Span
}

func (d *LetDecl) Span() source.Span { return d.Sp }
func (d *LetDecl) declNode()         {}
func (d *LetDecl) stmtNode()         {}

// Param is a single function parameter.
type Param struct {
	Name string
	Sp   source.Span
}

// FnDecl is a function declaration. It appears at top level, as a
// container member, or as a statement. MarkerSpan covers the bless or
// miracle keyword; for unmarked declarations it is the name span, so
// lint diagnostics still point somewhere useful.
type FnDecl struct {
	Name       string
	NameSpan   source.Span
	MarkerSpan source.Span
	Kind       FnKind
	Params     []Param
	Body       *Block
	Prophecy   *Annotation
	Sp         source.Span
}

func (d *FnDecl) Span() source.Span { return d.Sp }
func (d *FnDecl) declNode()         {}
func (d *FnDecl) stmtNode()         {}

// EntryPointDecl is the zero-argument genesis method inside the Program
// container. At most one is meaningful; the parser records them all and
// the linter enforces cardinality.
type EntryPointDecl struct {
	Body     *Block
	Prophecy *Annotation
	Sp       source.Span
}

func (d *EntryPointDecl) Span() source.Span { return d.Sp }
func (d *EntryPointDecl) declNode()         {}

// ContainerDecl is a marker-prefixed braced declaration holding
// methods: `bless Program { genesis() { ... } }`.
type ContainerDecl struct {
	Name     string
	NameSpan source.Span
	Kind     FnKind
	Members  []Decl // *FnDecl or *EntryPointDecl
	Prophecy *Annotation
	Sp       source.Span
}

func (d *ContainerDecl) Span() source.Span { return d.Sp }
func (d *ContainerDecl) declNode()         {}

// IsProgram reports whether this is the reserved Program container.
func (d *ContainerDecl) IsProgram() bool { return d.Name == "Program" }
