// Package lexer converts scripture source into tokens. It never fails
// hard: malformed input produces an Invalid token plus a diagnostic so
// downstream phases can keep going.
package lexer

import (
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/source"
	"github.com/tristanpoland/DivinePL/internal/token"
)

// lexMode tracks where the lexer is relative to template strings.
type lexMode uint8

const (
	modeNormal lexMode = iota
	// modeTemplate: between the backticks, scanning chunks.
	modeTemplate
	// modeTemplateExpr: inside ${...}, scanning ordinary tokens while
	// counting brace nesting.
	modeTemplateExpr
)

type modeFrame struct {
	mode       lexMode
	braceDepth int
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // accumulated leading trivia
	modes  []modeFrame
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		modes:  []modeFrame{{mode: modeNormal}},
	}
}

func (lx *Lexer) mode() *modeFrame {
	return &lx.modes[len(lx.modes)-1]
}

func (lx *Lexer) pushMode(m lexMode) {
	lx.modes = append(lx.modes, modeFrame{mode: m})
}

func (lx *Lexer) popMode() {
	if len(lx.modes) > 1 {
		lx.modes = lx.modes[:len(lx.modes)-1]
	}
}

// Next returns the next significant token with its leading trivia
// attached. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// Inside a template string, chunks are significant; no trivia.
	if lx.mode().mode == modeTemplate {
		return lx.scanTemplatePart()
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		tok := token.Token{
			Kind:    token.EOF,
			Span:    lx.EmptySpan(),
			Leading: lx.hold,
		}
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '`':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.pushMode(modeTemplate)
		tok = token.Token{Kind: token.TemplateStart, Span: lx.cursor.SpanFrom(start), Text: "`"}

	case ch == '@':
		tok = lx.scanAnnotation()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan is a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// scanTemplatePart scans one piece of a template string: a literal
// chunk, a ${ opener, or the closing backtick.
func (lx *Lexer) scanTemplatePart() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.EOF() {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedTmpl, sp, "unterminated template string")
		lx.popMode()
		return token.Token{Kind: token.TemplateEnd, Span: sp}
	}

	if lx.cursor.Peek() == '`' {
		lx.cursor.Bump()
		lx.popMode()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.TemplateEnd, Span: sp, Text: "`"}
	}

	if lx.cursor.Peek() == '$' && lx.cursor.PeekAt(1) == '{' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		lx.pushMode(modeTemplateExpr)
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.TemplateExprStart, Span: sp, Text: "${"}
	}

	// Literal chunk up to `, ${, or EOF.
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '`' {
			break
		}
		if b == '$' && lx.cursor.PeekAt(1) == '{' {
			break
		}
		if b == '\\' {
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.TemplateChunk, Span: sp, Text: lx.text(sp)}
}
