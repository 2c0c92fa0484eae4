package diagfmt

// PrettyOpts configures human-readable diagnostic output.
type PrettyOpts struct {
	Color bool
	// ShowNotes includes secondary notes under each diagnostic.
	ShowNotes bool
}

// JSONOpts configures machine-readable diagnostic output.
type JSONOpts struct {
	// IncludePositions adds line/col alongside byte offsets.
	IncludePositions bool
	// Max truncates the emitted list; 0 means no limit.
	Max int
}
