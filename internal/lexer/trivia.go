package lexer

import (
	"strings"

	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/token"
)

// collectLeadingTrivia gathers whitespace, // comments, and prayers
// preceding the next significant token.
//   - runs of spaces/tabs coalesce into one TriviaSpace
//   - runs of newlines coalesce into one TriviaNewline
//   - "//" to end of line -> TriviaLineComment
//   - 🙏 ... 🙏 on one line -> TriviaPrayerLine
//   - 🙏 BEGIN PRAYER 🙏 ... 🙏 END PRAYER 🙏 -> TriviaPrayerBlock,
//     all enclosed text (newlines included) discarded as one span
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' && lx.cursor.PeekAt(1) == '/' {
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaLineComment, start)
			continue
		}

		if lx.cursor.HasPrefix(prayerMarker) {
			lx.scanPrayerIntoHold()
			continue
		}

		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: lx.text(sp),
	})
}

// scanPrayerIntoHold consumes a prayer starting at the 🙏 under the
// cursor. The block form opens when BEGIN follows the marker.
func (lx *Lexer) scanPrayerIntoHold() {
	start := lx.cursor.Mark()
	lx.skipPrayerMarker()

	if lx.peekWordAfterSpaces("BEGIN") {
		lx.scanPrayerBlock(start)
		return
	}

	// Single line: content until the closing 🙏 on the same line.
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedPrayer, sp, "prayer is missing its closing 🙏 on the same line")
			lx.pushTrivia(token.TriviaPrayerLine, start)
			return
		}
		if lx.cursor.HasPrefix(prayerMarker) {
			lx.skipPrayerMarker()
			lx.pushTrivia(token.TriviaPrayerLine, start)
			return
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedPrayer, sp, "prayer is missing its closing 🙏")
	lx.pushTrivia(token.TriviaPrayerLine, start)
}

// scanPrayerBlock consumes everything until a 🙏 followed by END,
// through the end of that line.
func (lx *Lexer) scanPrayerBlock(start Mark) {
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix(prayerMarker) {
			mark := lx.cursor.Mark()
			lx.skipPrayerMarker()
			if lx.peekWordAfterSpaces("END") {
				// Consume through the end of the END line, closing
				// marker included.
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				lx.pushTrivia(token.TriviaPrayerBlock, start)
				return
			}
			lx.cursor.Reset(mark)
			lx.cursor.Bump()
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedPrayer, sp, "prayer block is missing its 🙏 END PRAYER 🙏 close")
	lx.pushTrivia(token.TriviaPrayerBlock, start)
}

func (lx *Lexer) skipPrayerMarker() {
	for i := 0; i < len(prayerMarker); i++ {
		lx.cursor.Bump()
	}
}

// peekWordAfterSpaces reports whether, after skipping spaces and tabs,
// the input continues with word. Nothing is consumed on failure; the
// skipped spaces are consumed on success.
func (lx *Lexer) peekWordAfterSpaces(word string) bool {
	mark := lx.cursor.Mark()
	for lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t' {
		lx.cursor.Bump()
	}
	if lx.cursor.HasPrefix(word) {
		after := lx.cursor.PeekAt(uint32(len(word)))
		if !isIdentContinueByte(after) {
			return true
		}
	}
	lx.cursor.Reset(mark)
	return false
}

// SplitAnnotation extracts the name and note from a raw annotation
// token text of the shape @name("note").
func SplitAnnotation(text string) (name, note string) {
	text = strings.TrimPrefix(text, "@")
	open := strings.IndexByte(text, '(')
	if open < 0 {
		return text, ""
	}
	name = text[:open]
	arg := strings.TrimSuffix(text[open+1:], ")")
	arg = strings.TrimSpace(arg)
	arg = strings.TrimPrefix(arg, "\"")
	arg = strings.TrimSuffix(arg, "\"")
	return name, arg
}
