package diag

import (
	"testing"

	"strata/internal/source"
)

func TestBagLimitAndClassification(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, SemaShadowSymbol, source.Span{}, "w")) {
		t.Fatalf("first add must succeed")
	}
	if b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("expected only warnings")
	}
	b.Add(NewError(SemaTypeMismatch, source.Span{}, "e"))
	if b.Add(NewError(SemaTypeMismatch, source.Span{}, "over")) {
		t.Fatalf("limit exceeded but Add returned true")
	}
	if b.Len() != 2 || b.Dropped() != 1 || !b.HasErrors() {
		t.Fatalf("len=%d dropped=%d", b.Len(), b.Dropped())
	}
}

func TestBagUnlimited(t *testing.T) {
	b := NewBag(0)
	for i := 0; i < 200; i++ {
		b.Add(NewError(SynUnexpectedToken, source.Span{}, "x"))
	}
	if b.Len() != 200 {
		t.Fatalf("Len = %d", b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 5, End: 6}, "b"))
	b.Add(New(SevWarning, SemaShadowSymbol, source.Span{File: 0, Start: 3, End: 4}, "a"))
	b.Add(NewError(SemaTypeMismatch, source.Span{File: 0, Start: 3, End: 4}, "a2"))
	b.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 5, End: 6}, "b"))
	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup left %d items", b.Len())
	}
	b.Sort()
	items := b.Items()
	if items[0].Code != SemaTypeMismatch || items[1].Code != SemaShadowSymbol || items[2].Primary.File != 1 {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	b := ReportError(r, SemaDuplicateSymbol, source.Span{Start: 1, End: 2}, "dup").
		WithNote(source.Span{Start: 0, End: 1}, "previous declaration here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit must be idempotent, got %d", bag.Len())
	}
	if got := bag.Items()[0]; len(got.Notes) != 1 || got.Notes[0].Msg != "previous declaration here" {
		t.Fatalf("notes lost: %+v", got)
	}
	var nilBuilder *ReportBuilder
	nilBuilder.WithNote(source.Span{}, "x").Emit()
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 2, End: 3}
	r.Report(LexUnknownChar, SevError, sp, "unknown character '$'", nil)
	r.Report(LexUnknownChar, SevError, sp, "unknown character '$'", nil)
	r.Report(LexUnknownChar, SevError, sp, "other", nil)
	if bag.Len() != 2 {
		t.Fatalf("Len = %d", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{SemaTypeMismatch, "SEM3005"},
		{ObsTimings, "OBS6001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Fatalf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Fatalf("unknown title fallback broken")
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.AddVirtual("a.st", []byte("let x = 1;\nlet x = 2;\n"))
	b := fs.AddVirtual("", []byte("y"))
	diags := []Diagnostic{
		NewError(SemaDuplicateSymbol, source.Span{File: a, Start: 15, End: 16}, "duplicate\ndeclaration").
			WithNote(source.Span{File: a, Start: 4, End: 5}, "previous declaration here"),
		New(SevWarning, SemaUnresolvedSymbol, source.Span{File: b, Start: 0, End: 1}, "unresolved"),
	}
	want := "error SEM3001 a.st:2:5 duplicate declaration\n" +
		"note SEM3001 a.st:1:5 previous declaration here\n" +
		"warning SEM3002 <input>:1:1 unresolved"
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("unexpected short output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
	if FormatShort(nil, fs, true) != "" {
		t.Fatalf("empty input must render empty")
	}
}
