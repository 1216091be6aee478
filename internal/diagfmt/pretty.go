package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"strata/internal/diag"
	"strata/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	code, path, gutter    *color.Color
	caret                 *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Faint),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <sev> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		start, _ := resolve(fs, d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			pal.path.Sprint(formatPath(fs, d.Primary.File, opts.PathMode)), start.Line, start.Col,
			pal.severity(d.Severity).Sprint(d.Severity.Label()),
			pal.code.Sprint(d.Code.ID()),
			d.Message)
		writeSnippet(w, fs, d.Primary, pal, pal.caret, opts.Width)

		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			noteStart, _ := resolve(fs, note.Span)
			fmt.Fprintf(w, "  %s: %s\n", pal.note.Sprint("note"), note.Msg)
			fmt.Fprintf(w, "   %s %s:%d:%d\n", pal.gutter.Sprint("-->"),
				formatPath(fs, note.Span.File, opts.PathMode), noteStart.Line, noteStart.Col)
			writeSnippet(w, fs, note.Span, pal, pal.note, opts.Width)
		}
	}
}

func resolve(fs *source.FileSet, span source.Span) (start, end source.LineCol) {
	if fs == nil || !fs.Has(span.File) {
		return source.LineCol{Line: 1, Col: 1}, source.LineCol{Line: 1, Col: 1}
	}
	return fs.Resolve(span)
}

func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, pal palette, marker *color.Color, width uint8) {
	if fs == nil || !fs.Has(span.File) {
		return
	}
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	writeLine(w, file.GetLine(start.Line), start, end, pal, marker, width)
}

// writeLine печатает одну строку исходника с подчёркиванием от start до end.
func writeLine(w io.Writer, line string, start, end source.LineCol, pal palette, marker *color.Color, width uint8) {
	line = strings.TrimSuffix(line, "\r")
	gutter := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(w, " %s %s\n", pad, pal.gutter.Sprint("|"))

	col := min(int(start.Col-1), len(line))
	prefix := expandTabs(line[:col])
	shown := expandTabs(line)
	if width > 0 && runewidth.StringWidth(shown) > int(width) {
		shown = runewidth.Truncate(shown, int(width), "...")
	}
	fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprint(gutter), pal.gutter.Sprint("|"), shown)

	// подчёркивание только в пределах первой строки диапазона
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(int(end.Col-1), len(line))
	}
	underline := 1
	if endCol > col {
		underline = max(runewidth.StringWidth(expandTabs(line[col:endCol])), 1)
	}
	carets := "^" + strings.Repeat("~", underline-1)
	fmt.Fprintf(w, " %s %s %s%s\n", pad, pal.gutter.Sprint("|"),
		strings.Repeat(" ", runewidth.StringWidth(prefix)), marker.Sprint(carets))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
