package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/tristanpoland/DivinePL/internal/diag"
	"github.com/tristanpoland/DivinePL/internal/source"
)

var (
	fatalColor = color.New(color.FgRed, color.Bold)
	errorColor = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
	infoColor  = color.New(color.FgCyan)
	codeColor  = color.New(color.Bold)
)

func severityPainter(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevFatal:
		return fatalColor
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

// Pretty renders diagnostics for a terminal. Each entry prints
// path:line:col, severity, code and message, then the offending source
// line with a caret underline sized to the span.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range diags {
		writeEntry(w, d, fs, opts)
	}
}

func writeEntry(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)
	file := fs.Get(d.Primary.File)

	sevText := d.Severity.String()
	codeText := d.Code.ID()
	if opts.Color {
		sevText = severityPainter(d.Severity).Sprint(sevText)
		codeText = codeColor.Sprint(codeText)
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		file.Path, start.Line, start.Col, sevText, codeText, d.Message)
	writeCaretLine(w, file, d.Primary, start, opts)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nStart, _ := fs.Resolve(n.Span)
			nFile := fs.Get(n.Span.File)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				nFile.Path, nStart.Line, nStart.Col, n.Msg)
		}
	}
}

// writeCaretLine prints the source line and a ^~~~ underline aligned
// by display width, so wide runes do not skew the caret.
func writeCaretLine(w io.Writer, file *source.File, sp source.Span, start source.LineCol, opts PrettyOpts) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	prefix := line
	if int(start.Col-1) <= len(line) {
		prefix = line[:start.Col-1]
	}
	pad := runewidth.StringWidth(prefix)

	width := 1
	if !sp.Empty() {
		end := int(start.Col-1) + int(sp.Len())
		if end > len(line) {
			end = len(line)
		}
		if end > int(start.Col-1) {
			width = runewidth.StringWidth(line[start.Col-1 : end])
		}
	}
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	if opts.Color {
		underline = codeColor.Sprint(underline)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), underline)
}
