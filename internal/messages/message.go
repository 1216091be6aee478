// Package messages holds diagnostics on the caller's side of a parse
// session. A List is owned by the caller and only ever grows.
package messages

import (
	"fmt"
	"strings"
)

// Severity of a message. Order matters: higher is worse.
type Severity uint8

const (
	SeverityNote Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{"note", "info", "warning", "error"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

// ParseSeverity maps a wire label to a Severity.
func ParseSeverity(label string) (Severity, bool) {
	for i, name := range severityNames {
		if name == label {
			return Severity(i), true //nolint:gosec // bounded by severityNames
		}
	}
	return SeverityNote, false
}

// Location points into a unit. Lines and columns are 1-based.
type Location struct {
	File      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	StartByte int
	EndByte   int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Message is one diagnostic with optional nested notes.
type Message struct {
	Severity Severity
	Code     string
	Text     string
	Location Location
	Notes    []Message
}

// IsError reports whether the message has error severity.
func (m Message) IsError() bool { return m.Severity == SeverityError }

// String renders "file:line:col: severity: text", with the code when known.
func (m Message) String() string {
	var sb strings.Builder
	sb.WriteString(m.Location.String())
	sb.WriteString(": ")
	sb.WriteString(m.Severity.String())
	if m.Code != "" {
		sb.WriteString(" " + m.Code)
	}
	sb.WriteString(": ")
	sb.WriteString(m.Text)
	return sb.String()
}
