package token

var keywords = map[string]Kind{
	"bless":      KwBless,
	"miracle":    KwMiracle,
	"function":   KwFunction,
	"let":        KwLet,
	"covenant":   KwCovenant,
	"confess":    KwConfess,
	"forgive":    KwForgive,
	"revelation": KwRevelation,
	"import":     KwImport,
	"verse":      KwVerse,
	"new":        KwNew,
	"if":         KwIf,
	"else":       KwElse,
	"while":      KwWhile,
	"for":        KwFor,
	"return":     KwReturn,
	"true":       KwTrue,
	"false":      KwFalse,
	"null":       KwNull,
	"undefined":  KwUndefined,
}

// Reserved identifiers that stay Ident tokens but carry fixed meaning
// for the parser and linter.
const (
	// IdentGenesis names the entry-point method.
	IdentGenesis = "genesis"
	// IdentProgram names the container the entry point must live in.
	IdentProgram = "Program"
	// IdentSalvation is the success sentinel.
	IdentSalvation = "salvation"
)

// LookupKeyword returns the keyword kind for an identifier spelling.
// Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
