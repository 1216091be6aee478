package diagfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"strata/internal/messages"
	"strata/internal/source"
)

// SourceLookup returns the text of a unit by the name used in messages.
type SourceLookup func(file string) (string, bool)

func (p palette) messageSeverity(sev messages.Severity) *color.Color {
	switch sev {
	case messages.SeverityError:
		return p.err
	case messages.SeverityWarning:
		return p.warn
	case messages.SeverityNote:
		return p.note
	default:
		return p.info
	}
}

// PrettyMessages prints decoded session messages the way Pretty prints a
// bag. Snippets need lookup; without it only headers are printed.
func PrettyMessages(w io.Writer, list *messages.List, lookup SourceLookup, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, m := range list.Messages() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		code := ""
		if m.Code != "" {
			code = " " + pal.code.Sprint(m.Code)
		}
		fmt.Fprintf(w, "%s:%d:%d: %s%s: %s\n",
			pal.path.Sprint(displayName(m.Location.File, opts.PathMode)), m.Location.Line, m.Location.Column,
			pal.messageSeverity(m.Severity).Sprint(m.Severity.String()),
			code, m.Text)
		writeMessageSnippet(w, m.Location, lookup, pal, pal.caret, opts.Width)
		if !opts.ShowNotes {
			continue
		}
		for _, note := range m.Notes {
			fmt.Fprintf(w, "  %s: %s\n", pal.note.Sprint("note"), note.Text)
			fmt.Fprintf(w, "   %s %s:%d:%d\n", pal.gutter.Sprint("-->"),
				displayName(note.Location.File, opts.PathMode), note.Location.Line, note.Location.Column)
			writeMessageSnippet(w, note.Location, lookup, pal, pal.note, opts.Width)
		}
	}
}

func displayName(file string, mode PathMode) string {
	if file == "" {
		return source.UnnamedDisplay
	}
	if mode == PathModeBasename {
		return source.BaseName(file)
	}
	return file
}

func writeMessageSnippet(w io.Writer, loc messages.Location, lookup SourceLookup, pal palette, marker *color.Color, width uint8) {
	if lookup == nil {
		return
	}
	text, ok := lookup(loc.File)
	if !ok {
		return
	}
	lines := strings.Split(text, "\n")
	if loc.Line < 1 || loc.Line > len(lines) {
		return
	}
	start := source.LineCol{Line: uint32(loc.Line), Col: uint32(max(loc.Column, 1))} //nolint:gosec // validated by the decoder
	end := source.LineCol{Line: uint32(max(loc.EndLine, 0)), Col: uint32(max(loc.EndColumn, 1))} //nolint:gosec // validated by the decoder
	writeLine(w, lines[loc.Line-1], start, end, pal, marker, width)
}

// ShortMessages prints one line per message.
func ShortMessages(w io.Writer, list *messages.List) error {
	if list.Len() == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, list.String())
	return err
}

// JSONMessages writes the list in the report shape.
func JSONMessages(w io.Writer, list *messages.List, indent bool) error {
	data, err := list.MarshalJSON()
	if err != nil {
		return err
	}
	if indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
