package token

import (
	"github.com/tristanpoland/DivinePL/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal or a literal keyword.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, KwTrue, KwFalse, KwNull, KwUndefined:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwBless, KwMiracle, KwFunction, KwLet, KwCovenant, KwConfess, KwForgive,
		KwRevelation, KwImport, KwVerse, KwNew, KwIf, KwElse, KwWhile, KwFor,
		KwReturn, KwTrue, KwFalse, KwNull, KwUndefined:
		return true
	default:
		return false
	}
}

// IsFnMarker reports whether the token marks a function declaration kind.
func (t Token) IsFnMarker() bool {
	switch t.Kind {
	case KwBless, KwMiracle, KwFunction:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
