package interp

import (
	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/source"
)

// returnSignal unwinds to the nearest function call.
type returnSignal struct {
	value Value
}

func (returnSignal) Error() string { return "return outside a function" }

// sinSignal unwinds to the nearest confess/forgive guard, carrying the
// sin value the handler binds. Both user throws and runtime faults
// travel this way, so a guard catches either; the diagnostic code
// distinguishes them when a sin escapes uncaught.
type sinSignal struct {
	sin  *Sin
	code diag.Code
	sp   source.Span
}

func (s *sinSignal) Error() string {
	return s.sin.Inspect()
}

// throwSin raises a user sin from a confess statement.
func throwSin(sin *Sin, sp source.Span) *sinSignal {
	if sin.TypeName == "" {
		sin.TypeName = "Sin"
	}
	return &sinSignal{
		sin:  sin,
		code: diag.RunUncaughtSin,
		sp:   sp,
	}
}

// fault raises a runtime error. Faults are catchable like sins but
// keep their own diagnostic code for uncaught reporting.
func fault(code diag.Code, typeName, msg string, sp source.Span) *sinSignal {
	return &sinSignal{
		sin:  &Sin{TypeName: typeName, Message: msg},
		code: code,
		sp:   sp,
	}
}
