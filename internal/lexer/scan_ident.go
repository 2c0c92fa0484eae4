package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/token"
)

// scanIdentOrKeyword scans an identifier, resolving keywords after NFC
// normalization so visually identical unicode names compare equal.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b >= utf8RuneSelf {
			r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
			if r == utf8.RuneError && size == 1 {
				break
			}
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			for i := 0; i < size; i++ {
				lx.cursor.Bump()
			}
			continue
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if sp.Empty() {
		// A lone invalid byte that looked like a rune start.
		lx.cursor.Bump()
		sp = lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "invalid character in source")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	if !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
	}

	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
