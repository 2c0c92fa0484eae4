package token

import "github.com/tristanpoland/DivinePL/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	// TriviaPrayerLine is a single-line prayer: content between two 🙏
	// markers on one line, discarded as one span.
	TriviaPrayerLine
	// TriviaPrayerBlock spans from "🙏 BEGIN PRAYER 🙏" to
	// "🙏 END PRAYER 🙏" inclusive, newlines and all.
	TriviaPrayerBlock
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line-comment"
	case TriviaPrayerLine:
		return "prayer-line"
	case TriviaPrayerBlock:
		return "prayer-block"
	default:
		return "trivia"
	}
}

// Trivia is discarded source text attached to the following significant
// token: whitespace, comments, prayers.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
