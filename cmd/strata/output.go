package main

import (
	"fmt"
	"io"

	"strata/internal/diagfmt"
	"strata/internal/driver"
	"strata/internal/messages"
)

type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatJSON   outputFormat = "json"
	formatShort  outputFormat = "short"
)

func readFormat(value string) (outputFormat, error) {
	switch f := outputFormat(value); f {
	case formatPretty, formatJSON, formatShort:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected pretty|json|short)", value)
	}
}

func sourceLookup(units []driver.Unit) diagfmt.SourceLookup {
	byName := make(map[string]string, len(units))
	for _, u := range units {
		byName[u.Name] = u.Text
	}
	return func(file string) (string, bool) {
		text, ok := byName[file]
		return text, ok
	}
}

func printMessages(w io.Writer, list *messages.List, units []driver.Unit, format outputFormat, st *runState, withNotes bool) error {
	switch format {
	case formatJSON:
		return diagfmt.JSONMessages(w, list, true)
	case formatShort:
		return diagfmt.ShortMessages(w, list)
	default:
		diagfmt.PrettyMessages(w, list, sourceLookup(units), diagfmt.PrettyOpts{
			Color:     st.color,
			ShowNotes: withNotes,
		})
		return nil
	}
}

// summaryLine is printed after pretty output.
func summaryLine(list *messages.List, units int, cached bool) string {
	line := fmt.Sprintf("%d units: %d errors, %d warnings",
		units, list.Count(messages.SeverityError), list.Count(messages.SeverityWarning))
	if cached {
		line += " (cached)"
	}
	return line
}
