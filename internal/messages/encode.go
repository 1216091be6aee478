package messages

import "encoding/json"

type outLocation struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_column"`
	StartByte int    `json:"start_byte"`
	EndByte   int    `json:"end_byte"`
}

type outMessage struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code,omitempty"`
	Message  string       `json:"message"`
	Location outLocation  `json:"location"`
	Notes    []outMessage `json:"notes,omitempty"`
}

type outReport struct {
	Diagnostics []outMessage `json:"diagnostics"`
	Count       int          `json:"count"`
}

func toWire(m Message) outMessage {
	o := outMessage{
		Severity: m.Severity.String(),
		Code:     m.Code,
		Message:  m.Text,
		Location: outLocation{
			File:      m.Location.File,
			Line:      m.Location.Line,
			Column:    m.Location.Column,
			EndLine:   m.Location.EndLine,
			EndColumn: m.Location.EndColumn,
			StartByte: m.Location.StartByte,
			EndByte:   m.Location.EndByte,
		},
	}
	for _, n := range m.Notes {
		o.Notes = append(o.Notes, toWire(n))
	}
	return o
}

// MarshalJSON writes the report shape accepted by AddFromJSON.
func (l *List) MarshalJSON() ([]byte, error) {
	rep := outReport{Diagnostics: make([]outMessage, 0, l.Len())}
	for _, m := range l.Messages() {
		rep.Diagnostics = append(rep.Diagnostics, toWire(m))
	}
	rep.Count = len(rep.Diagnostics)
	return json.Marshal(rep)
}
