package diag

// Phase identifies which stage of the pipeline produced a diagnostic.
type Phase uint8

const (
	PhaseLex Phase = iota
	PhaseParse
	PhaseLint
	PhaseRuntime
)

func (p Phase) String() string {
	switch p {
	case PhaseLex:
		return "lex"
	case PhaseParse:
		return "parse"
	case PhaseLint:
		return "lint"
	case PhaseRuntime:
		return "runtime"
	}
	return "unknown"
}
