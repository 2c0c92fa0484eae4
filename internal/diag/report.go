package diag

// Report is the combined outcome of a pipeline run: every diagnostic in
// source order, the last phase reached, and whether a fatal diagnostic
// blocked further phases.
type Report struct {
	Diagnostics  []Diagnostic
	PhaseReached Phase
	Fatal        bool
}

// BuildReport snapshots a bag into an immutable report.
func BuildReport(bag *Bag, reached Phase) Report {
	bag.Sort()
	items := bag.Items()
	out := make([]Diagnostic, len(items))
	copy(out, items)
	return Report{
		Diagnostics:  out,
		PhaseReached: reached,
		Fatal:        bag.HasFatal(),
	}
}

// Blocking reports whether evaluation must not proceed: any Error or
// Fatal diagnostic. Warnings never block.
func (r Report) Blocking() bool {
	for _, d := range r.Diagnostics {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}
