package messages

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedReport is wrapped by Decode for every rejected payload.
var ErrMalformedReport = errors.New("malformed diagnostic report")

// wire shapes use pointers so missing fields can be told from zero values.
type wireLocation struct {
	File      *string `json:"file"`
	Line      *int    `json:"line"`
	Column    *int    `json:"column"`
	EndLine   int     `json:"end_line"`
	EndColumn int     `json:"end_column"`
	StartByte int     `json:"start_byte"`
	EndByte   int     `json:"end_byte"`
}

type wireMessage struct {
	Severity *string        `json:"severity"`
	Code     string         `json:"code"`
	Message  *string        `json:"message"`
	Location *wireLocation  `json:"location"`
	Notes    []*wireMessage `json:"notes"`
}

type wireReport struct {
	Diagnostics []*wireMessage `json:"diagnostics"`
	Count       *int           `json:"count"`
}

// Decode parses a serialized report. Nothing is returned unless the whole
// payload is valid.
func Decode(data []byte) ([]Message, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedReport)
	}
	var rep wireReport
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&rep); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedReport, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedReport)
	}
	if rep.Count == nil {
		return nil, fmt.Errorf("%w: missing count", ErrMalformedReport)
	}
	if *rep.Count != len(rep.Diagnostics) {
		return nil, fmt.Errorf("%w: count %d does not match %d diagnostics", ErrMalformedReport, *rep.Count, len(rep.Diagnostics))
	}
	out := make([]Message, 0, len(rep.Diagnostics))
	for i, w := range rep.Diagnostics {
		m, err := convert(w, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: diagnostic %d: %w", ErrMalformedReport, i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// notes deeper than this are rejected; the engine never nests past one level
const maxNoteDepth = 8

func convert(w *wireMessage, depth int) (Message, error) {
	if w == nil {
		return Message{}, errors.New("null entry")
	}
	if depth > maxNoteDepth {
		return Message{}, errors.New("notes nested too deeply")
	}
	if w.Severity == nil {
		return Message{}, errors.New("missing severity")
	}
	sev, ok := ParseSeverity(*w.Severity)
	if !ok {
		return Message{}, fmt.Errorf("unknown severity %q", *w.Severity)
	}
	if w.Message == nil {
		return Message{}, errors.New("missing message")
	}
	loc, err := convertLocation(w.Location)
	if err != nil {
		return Message{}, err
	}
	m := Message{
		Severity: sev,
		Code:     w.Code,
		Text:     *w.Message,
		Location: loc,
	}
	if len(w.Notes) > 0 {
		m.Notes = make([]Message, 0, len(w.Notes))
		for i, n := range w.Notes {
			note, err := convert(n, depth+1)
			if err != nil {
				return Message{}, fmt.Errorf("note %d: %w", i, err)
			}
			m.Notes = append(m.Notes, note)
		}
	}
	return m, nil
}

func convertLocation(w *wireLocation) (Location, error) {
	switch {
	case w == nil:
		return Location{}, errors.New("missing location")
	case w.File == nil:
		return Location{}, errors.New("missing location.file")
	case w.Line == nil:
		return Location{}, errors.New("missing location.line")
	case w.Column == nil:
		return Location{}, errors.New("missing location.column")
	case *w.Line < 1 || *w.Column < 1:
		return Location{}, fmt.Errorf("location %d:%d is not 1-based", *w.Line, *w.Column)
	case w.StartByte < 0 || w.EndByte < w.StartByte:
		return Location{}, fmt.Errorf("bad byte range %d..%d", w.StartByte, w.EndByte)
	}
	loc := Location{
		File:      *w.File,
		Line:      *w.Line,
		Column:    *w.Column,
		EndLine:   w.EndLine,
		EndColumn: w.EndColumn,
		StartByte: w.StartByte,
		EndByte:   w.EndByte,
	}
	if loc.EndLine == 0 {
		loc.EndLine, loc.EndColumn = loc.Line, loc.Column
	}
	return loc, nil
}

// AddFromJSON decodes a report and appends its messages in order.
// On any error nothing is appended and false is returned.
func (l *List) AddFromJSON(data []byte) bool {
	ms, err := Decode(data)
	if err != nil {
		return false
	}
	l.Append(ms...)
	return true
}
