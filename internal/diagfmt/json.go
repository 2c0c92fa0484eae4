package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/source"
)

// LocationJSON is a span resolved for machine consumers.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is a secondary note attached to a diagnostic.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one diagnostic in the JSON report.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Phase    string       `json:"phase"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// ReportJSON is the root of the JSON report.
type ReportJSON struct {
	Diagnostics  []DiagnosticJSON `json:"diagnostics"`
	Count        int              `json:"count"`
	PhaseReached string           `json:"phase_reached"`
	Fatal        bool             `json:"fatal,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, includePositions bool) LocationJSON {
	f := fs.Get(span.File)
	loc := LocationJSON{
		File:      f.Path,
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		start, end := fs.Resolve(span)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}

// BuildReportJSON converts a report into its JSON shape without
// serializing it.
func BuildReportJSON(report diag.Report, fs *source.FileSet, opts JSONOpts) ReportJSON {
	items := report.Diagnostics
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	out := ReportJSON{
		Diagnostics:  make([]DiagnosticJSON, 0, len(items)),
		Count:        len(report.Diagnostics),
		PhaseReached: report.PhaseReached.String(),
		Fatal:        report.Fatal,
	}
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Phase:    d.Phase().String(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.IncludePositions),
		}
		for _, n := range d.Notes {
			dj.Notes = append(dj.Notes, NoteJSON{
				Message:  n.Msg,
				Location: makeLocation(n.Span, fs, opts.IncludePositions),
			})
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

// JSON writes a report as indented JSON.
func JSON(w io.Writer, report diag.Report, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReportJSON(report, fs, opts))
}
