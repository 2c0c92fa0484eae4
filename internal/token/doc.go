// Package token defines lexical token kinds and trivia for DivinePL.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Prayers (🙏 ... 🙏, and the BEGIN/END PRAYER block form) are
//     leading Trivia and never appear in the main token stream.
//   - Annotations (@name("...")) are lexed as one Annotation token whose
//     Text holds the string argument.
//   - Reserved identifiers (genesis, Program, salvation) stay Ident;
//     the parser and linter give them meaning.
package token
