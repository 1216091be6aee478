package diagfmt

import (
	"encoding/json"
	"io"

	"strata/internal/diag"
	"strata/internal/source"
)

// LocationJSON представляет местоположение в единице для JSON.
// Строки и колонки 1-based, колонка считается в байтах.
type LocationJSON struct {
	File      string `json:"file"`
	Line      uint32 `json:"line"`
	Column    uint32 `json:"column"`
	EndLine   uint32 `json:"end_line"`
	EndColumn uint32 `json:"end_column"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
}

// DiagnosticJSON представляет диагностику в JSON формате.
// Заметки имеют ту же форму с severity "note".
type DiagnosticJSON struct {
	Severity string           `json:"severity"`
	Code     string           `json:"code,omitempty"`
	Message  string           `json:"message"`
	Location LocationJSON     `json:"location"`
	Notes    []DiagnosticJSON `json:"notes,omitempty"`
}

// ReportJSON is the report an engine hands back for one parse call.
type ReportJSON struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(fs, span.File, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
		Line:      1,
		Column:    1,
		EndLine:   1,
		EndColumn: 1,
	}
	if fs != nil && fs.Has(span.File) {
		startPos, endPos := fs.Resolve(span)
		loc.Line, loc.Column = startPos.Line, startPos.Col
		loc.EndLine, loc.EndColumn = endPos.Line, endPos.Col
	}
	return loc
}

// BuildReport формирует структуру отчёта без сериализации.
func BuildReport(diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) ReportJSON {
	count := len(diags)
	if opts.Max > 0 && opts.Max < count {
		count = opts.Max
	}
	out := make([]DiagnosticJSON, 0, count)
	for _, d := range diags[:count] {
		item := DiagnosticJSON{
			Severity: d.Severity.Label(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			item.Notes = make([]DiagnosticJSON, len(d.Notes))
			for j, note := range d.Notes {
				item.Notes[j] = DiagnosticJSON{
					Severity: "note",
					Message:  note.Msg,
					Location: makeLocation(note.Span, fs, opts.PathMode),
				}
			}
		}
		out = append(out, item)
	}
	return ReportJSON{Diagnostics: out, Count: len(out)}
}

// EncodeReport сериализует полный отчёт (с заметками) в компактный JSON.
// Пустой список даёт nil: "диагностик нет".
func EncodeReport(diags []diag.Diagnostic, fs *source.FileSet) ([]byte, error) {
	if len(diags) == 0 {
		return nil, nil
	}
	return json.Marshal(BuildReport(diags, fs, JSONOpts{IncludeNotes: true}))
}

// JSON форматирует диагностики bag в JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	if opts.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(BuildReport(bag.Items(), fs, opts))
}
