package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"strata/internal/diag"
	"strata/internal/source"
)

func TestPrettyPlain(t *testing.T) {
	fs, diags := sampleDiagnostics()
	bag := diag.NewBag(0)
	bag.Add(diags[0])

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()

	wantLines := []string{
		"b.st:2:5: error SEM3001: duplicate declaration of 'x'",
		" 2 | let x = 2;",
		"   |     ^",
		"  note: previous declaration here",
		"   --> a.st:1:5",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("color escapes must be disabled:\n%s", out)
	}
}

func TestPrettyUnderlineWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	src := "let 名前 = x;"
	id := fs.AddVirtual("w.st", []byte(src))
	start := uint32(strings.Index(src, "x"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: id, Start: start, End: start + 1}, "unresolved symbol 'x'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	var caret string
	for _, l := range lines {
		if strings.HasSuffix(l, "^") {
			caret = l
		}
	}
	// "let " (4) + two wide runes (4) + " = " (3) = 11 columns before x
	if want := "   | " + strings.Repeat(" ", 11) + "^"; caret != want {
		t.Fatalf("caret line = %q, want %q", caret, want)
	}
}

func TestPrettyHidesNotesByDefault(t *testing.T) {
	fs, diags := sampleDiagnostics()
	bag := diag.NewBag(0)
	bag.Add(diags[0])
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes must be hidden:\n%s", buf.String())
	}
}
