package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token produced during recovery.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwBless marks an ordinary function declaration.
	KwBless // bless
	// KwMiracle marks an enhanced function declaration.
	KwMiracle // miracle
	// KwFunction is the secular declarator; it parses but the linter flags it.
	KwFunction // function
	// KwLet declares a mutable binding.
	KwLet // let
	// KwCovenant declares an immutable binding.
	KwCovenant // covenant
	// KwConfess opens a guarded block or raises a sin, depending on what follows.
	KwConfess // confess
	// KwForgive introduces the handler clause of a guarded block.
	KwForgive // forgive
	// KwRevelation is the log statement keyword.
	KwRevelation // revelation
	// KwImport begins a verse import.
	KwImport // import
	// KwVerse names the import subject.
	KwVerse // verse
	// KwNew introduces a constructor call.
	KwNew // new
	KwIf
	KwElse
	KwWhile
	KwFor
	KwReturn
	KwTrue
	KwFalse
	KwNull
	KwUndefined

	// NumberLit represents a numeric literal token.
	NumberLit
	// StringLit represents a quoted string literal token.
	StringLit

	// TemplateStart is the opening backtick of a template string.
	TemplateStart
	// TemplateChunk is a literal text segment inside a template string.
	TemplateChunk
	// TemplateExprStart is the ${ opening an interpolated expression.
	TemplateExprStart
	// TemplateExprEnd is the } closing an interpolated expression.
	TemplateExprEnd
	// TemplateEnd is the closing backtick of a template string.
	TemplateEnd

	// Annotation is a whole @name("text") marker lexed as one token.
	// Text carries the quoted argument, verbatim.
	Annotation

	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Assign  // =
	EqEq    // ==
	Bang    // !
	BangEq  // !=
	Lt      // <
	LtEq    // <=
	Gt      // >
	GtEq    // >=
	AndAnd  // &&
	OrOr    // ||
	Arrow   // =>

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Dot       // .
	Colon     // :
	Semicolon // ;
)

var kindNames = map[Kind]string{
	Invalid:           "invalid",
	EOF:               "eof",
	Ident:             "ident",
	KwBless:           "bless",
	KwMiracle:         "miracle",
	KwFunction:        "function",
	KwLet:             "let",
	KwCovenant:        "covenant",
	KwConfess:         "confess",
	KwForgive:         "forgive",
	KwRevelation:      "revelation",
	KwImport:          "import",
	KwVerse:           "verse",
	KwNew:             "new",
	KwIf:              "if",
	KwElse:            "else",
	KwWhile:           "while",
	KwFor:             "for",
	KwReturn:          "return",
	KwTrue:            "true",
	KwFalse:           "false",
	KwNull:            "null",
	KwUndefined:       "undefined",
	NumberLit:         "number",
	StringLit:         "string",
	TemplateStart:     "template-start",
	TemplateChunk:     "template-chunk",
	TemplateExprStart: "template-expr-start",
	TemplateExprEnd:   "template-expr-end",
	TemplateEnd:       "template-end",
	Annotation:        "annotation",
	Plus:              "+",
	Minus:             "-",
	Star:              "*",
	Slash:             "/",
	Percent:           "%",
	Assign:            "=",
	EqEq:              "==",
	Bang:              "!",
	BangEq:            "!=",
	Lt:                "<",
	LtEq:              "<=",
	Gt:                ">",
	GtEq:              ">=",
	AndAnd:            "&&",
	OrOr:              "||",
	Arrow:             "=>",
	LParen:            "(",
	RParen:            ")",
	LBrace:            "{",
	RBrace:            "}",
	LBracket:          "[",
	RBracket:          "]",
	Comma:             ",",
	Dot:               ".",
	Colon:             ":",
	Semicolon:         ";",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", k)
}
