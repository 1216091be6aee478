package diag

import (
	"fmt"
	"strings"

	"strata/internal/source"
)

// FormatShort renders diagnostics one per line as
// "severity CODE file:line:col message", keeping the input order.
// Notes follow their diagnostic with the "note" severity when includeNotes is set.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i := range diags {
		d := &diags[i]
		writeShortLine(&b, d.Severity.Label(), d.Code, fs, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			writeShortLine(&b, "note", d.Code, fs, n.Span, n.Msg)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeShortLine(b *strings.Builder, sev string, code Code, fs *source.FileSet, sp source.Span, msg string) {
	path := source.UnnamedDisplay
	var start source.LineCol
	if fs.Has(sp.File) {
		path = fs.Get(sp.File).DisplayName()
		start, _ = fs.Resolve(sp)
	}
	// переводы строк ломают однострочный формат
	msg = strings.Join(strings.Fields(msg), " ")
	fmt.Fprintf(b, "%s %s %s:%d:%d %s\n", sev, code.ID(), path, start.Line, start.Col, msg)
}
