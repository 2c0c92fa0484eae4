package diag

import "fmt"

// Code identifies a diagnostic rule. Ranges are reserved per phase:
// 1xxx lexical, 2xxx syntactic, 3xxx lint, 4xxx runtime.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedPrayer Code = 1003
	LexBadNumber          Code = 1004
	LexBadAnnotation      Code = 1005
	LexUnterminatedTmpl   Code = 1006

	// Syntactic
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectVerseString  Code = 2005
	SynExpectHandler      Code = 2006
	SynExpectBlock        Code = 2007
	SynUnclosedDelimiter  Code = 2008
	SynBadAssignTarget    Code = 2009
	SynStrayAnnotation    Code = 2010
	SynThrowOperand       Code = 2011

	// Lint
	LintInfo              Code = 3000
	LintUnblessedFunction Code = 3001
	LintGenesisCount      Code = 3002
	LintForbiddenPractice Code = 3003
	LintSabbath           Code = 3004
	LintDuplicateVerse    Code = 3005
	LintProphecy          Code = 3006

	// Runtime
	RunInfo             Code = 4000
	RunCovenantViolated Code = 4001
	RunZeroDivision     Code = 4002
	RunBadOperand       Code = 4003
	RunNotCallable      Code = 4004
	RunUnknownName      Code = 4005
	RunBadMember        Code = 4006
	RunUncaughtSin      Code = 4007
	RunNoGenesis        Code = 4008
	RunStackOverflow    Code = 4009
)

// Phase returns the pipeline phase the code's range belongs to.
func (c Code) Phase() Phase {
	switch {
	case c >= 4000:
		return PhaseRuntime
	case c >= 3000:
		return PhaseLint
	case c >= 2000:
		return PhaseParse
	default:
		return PhaseLex
	}
}

// ID returns a stable textual identifier, e.g. "DPL3002".
func (c Code) ID() string {
	return fmt.Sprintf("DPL%04d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}
