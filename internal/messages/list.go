package messages

import "strings"

// Status summarises a list.
type Status uint8

const (
	StatusClean Status = iota
	StatusWarnings
	StatusErrors
)

func (s Status) String() string {
	switch s {
	case StatusWarnings:
		return "warnings"
	case StatusErrors:
		return "errors"
	default:
		return "clean"
	}
}

// List is an append-only sequence of messages.
// The zero value is ready to use.
type List struct {
	items []Message
}

// Add appends one message.
func (l *List) Add(m Message) {
	l.items = append(l.items, m)
}

// Append appends messages in order.
func (l *List) Append(ms ...Message) {
	l.items = append(l.items, ms...)
}

// Merge appends every message of other.
func (l *List) Merge(other *List) {
	if other == nil {
		return
	}
	l.items = append(l.items, other.items...)
}

// Messages returns a read-only view. Callers must not modify it.
func (l *List) Messages() []Message {
	if l == nil {
		return nil
	}
	return l.items[:len(l.items):len(l.items)]
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// HasErrors is the single answer to "did it succeed".
func (l *List) HasErrors() bool {
	return l.Count(SeverityError) > 0
}

func (l *List) HasWarnings() bool {
	return l.Count(SeverityWarning) > 0
}

// Count returns the number of top-level messages with severity sev.
func (l *List) Count(sev Severity) int {
	if l == nil {
		return 0
	}
	n := 0
	for _, m := range l.items {
		if m.Severity == sev {
			n++
		}
	}
	return n
}

// Status classifies the list by its worst top-level severity.
func (l *List) Status() Status {
	switch {
	case l.HasErrors():
		return StatusErrors
	case l.HasWarnings():
		return StatusWarnings
	default:
		return StatusClean
	}
}

// String renders one line per message; notes are indented below.
func (l *List) String() string {
	if l.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for _, m := range l.items {
		sb.WriteString(m.String())
		sb.WriteByte('\n')
		for _, n := range m.Notes {
			sb.WriteString("  ")
			sb.WriteString(n.String())
			sb.WriteByte('\n')
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
