package lexer

import (
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/token"
)

// scanOperatorOrPunct scans operators and punctuation, tracking brace
// nesting while inside a template interpolation so the closing } hands
// control back to string lexing.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	mk := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
	}

	switch b {
	case '+':
		return mk(token.Plus)
	case '-':
		return mk(token.Minus)
	case '*':
		return mk(token.Star)
	case '/':
		return mk(token.Slash)
	case '%':
		return mk(token.Percent)
	case '=':
		if lx.cursor.Eat('=') {
			return mk(token.EqEq)
		}
		if lx.cursor.Eat('>') {
			return mk(token.Arrow)
		}
		return mk(token.Assign)
	case '!':
		if lx.cursor.Eat('=') {
			return mk(token.BangEq)
		}
		return mk(token.Bang)
	case '<':
		if lx.cursor.Eat('=') {
			return mk(token.LtEq)
		}
		return mk(token.Lt)
	case '>':
		if lx.cursor.Eat('=') {
			return mk(token.GtEq)
		}
		return mk(token.Gt)
	case '&':
		if lx.cursor.Eat('&') {
			return mk(token.AndAnd)
		}
	case '|':
		if lx.cursor.Eat('|') {
			return mk(token.OrOr)
		}
	case '(':
		return mk(token.LParen)
	case ')':
		return mk(token.RParen)
	case '{':
		if lx.mode().mode == modeTemplateExpr {
			lx.mode().braceDepth++
		}
		return mk(token.LBrace)
	case '}':
		if fr := lx.mode(); fr.mode == modeTemplateExpr {
			if fr.braceDepth == 0 {
				lx.popMode() // back to template string lexing
				return mk(token.TemplateExprEnd)
			}
			fr.braceDepth--
		}
		return mk(token.RBrace)
	case '[':
		return mk(token.LBracket)
	case ']':
		return mk(token.RBracket)
	case ',':
		return mk(token.Comma)
	case '.':
		return mk(token.Dot)
	case ':':
		return mk(token.Colon)
	case ';':
		return mk(token.Semicolon)
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character "+lx.text(sp))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanAnnotation scans a whole @name("text") marker as one token. A
// malformed annotation still yields an Annotation token covering what
// was consumed, plus a diagnostic.
func (lx *Lexer) scanAnnotation() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '@'

	if !isIdentStartByte(lx.cursor.Peek()) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadAnnotation, sp, "expected annotation name after @")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if !lx.cursor.Eat('(') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadAnnotation, sp, "annotation requires a parenthesized string argument")
		return token.Token{Kind: token.Annotation, Span: sp, Text: lx.text(sp)}
	}
	for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() != '"' {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadAnnotation, sp, "annotation argument must be a string literal")
		return token.Token{Kind: token.Annotation, Span: sp, Text: lx.text(sp)}
	}
	str := lx.scanString()
	if str.Kind == token.Invalid {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Annotation, Span: sp, Text: lx.text(sp)}
	}
	for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
		lx.cursor.Bump()
	}
	if !lx.cursor.Eat(')') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadAnnotation, sp, "annotation is missing its closing )")
		return token.Token{Kind: token.Annotation, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Annotation, Span: sp, Text: lx.text(sp)}
}
