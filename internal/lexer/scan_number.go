package lexer

import (
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/token"
)

// scanNumber scans a decimal literal with optional fraction and
// exponent. All DivinePL numbers are double-precision floats.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		afterSign := lx.cursor.PeekAt(2)
		switch {
		case isDec(next):
			lx.cursor.Bump()
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		case (next == '+' || next == '-') && isDec(afterSign):
			lx.cursor.Bump()
			lx.cursor.Bump()
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	// A trailing identifier glued to the number is one malformed token,
	// not two: report it and keep going.
	if b := lx.cursor.Peek(); isIdentStartByte(b) || b >= utf8RuneSelf {
		for !lx.cursor.EOF() && (isIdentContinueByte(lx.cursor.Peek()) || lx.cursor.Peek() >= utf8RuneSelf) {
			if lx.cursor.HasPrefix(prayerMarker) {
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "malformed number literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
}
