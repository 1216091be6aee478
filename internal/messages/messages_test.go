package messages

import (
	"errors"
	"strings"
	"testing"
)

const goodReport = `{"diagnostics":[
 {"severity":"error","code":"SEM3002","message":"unresolved symbol 'y'",
  "location":{"file":"a.st","line":2,"column":9,"end_line":2,"end_column":10,"start_byte":20,"end_byte":21}},
 {"severity":"warning","code":"SEM3003","message":"declaration of 'x' shadows an outer one",
  "location":{"file":"a.st","line":3,"column":5,"end_line":3,"end_column":6,"start_byte":30,"end_byte":31},
  "notes":[{"severity":"note","message":"previous declaration here","location":{"file":"a.st","line":1,"column":5}}]}
],"count":2}`

func TestAddFromJSONAppendsInOrder(t *testing.T) {
	var l List
	l.Add(Message{Severity: SeverityInfo, Text: "before", Location: Location{File: "x", Line: 1, Column: 1}})
	if !l.AddFromJSON([]byte(goodReport)) {
		t.Fatalf("AddFromJSON rejected a valid report")
	}
	ms := l.Messages()
	if len(ms) != 3 {
		t.Fatalf("len = %d, want 3", len(ms))
	}
	if ms[0].Text != "before" || ms[1].Code != "SEM3002" || ms[2].Code != "SEM3003" {
		t.Fatalf("unexpected order: %+v", ms)
	}
	if got := ms[1].Location; got.File != "a.st" || got.Line != 2 || got.Column != 9 || got.EndByte != 21 {
		t.Fatalf("location = %+v", got)
	}
	if len(ms[2].Notes) != 1 || ms[2].Notes[0].Severity != SeverityNote {
		t.Fatalf("notes = %+v", ms[2].Notes)
	}
	// конец диапазона по умолчанию совпадает с началом
	if n := ms[2].Notes[0].Location; n.EndLine != 1 || n.EndColumn != 5 {
		t.Fatalf("note end = %d:%d", n.EndLine, n.EndColumn)
	}
}

func TestAddFromJSONRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"not json", `diagnostics`},
		{"missing count", `{"diagnostics":[]}`},
		{"count mismatch", `{"diagnostics":[],"count":1}`},
		{"missing severity", `{"diagnostics":[{"message":"m","location":{"file":"a","line":1,"column":1}}],"count":1}`},
		{"unknown severity", `{"diagnostics":[{"severity":"fatal","message":"m","location":{"file":"a","line":1,"column":1}}],"count":1}`},
		{"missing message", `{"diagnostics":[{"severity":"error","location":{"file":"a","line":1,"column":1}}],"count":1}`},
		{"missing location", `{"diagnostics":[{"severity":"error","message":"m"}],"count":1}`},
		{"missing file", `{"diagnostics":[{"severity":"error","message":"m","location":{"line":1,"column":1}}],"count":1}`},
		{"missing line", `{"diagnostics":[{"severity":"error","message":"m","location":{"file":"a","column":1}}],"count":1}`},
		{"missing column", `{"diagnostics":[{"severity":"error","message":"m","location":{"file":"a","line":1}}],"count":1}`},
		{"zero line", `{"diagnostics":[{"severity":"error","message":"m","location":{"file":"a","line":0,"column":1}}],"count":1}`},
		{"bad note", `{"diagnostics":[{"severity":"error","message":"m","location":{"file":"a","line":1,"column":1},"notes":[{"severity":"note"}]}],"count":1}`},
		{"null entry", `{"diagnostics":[null],"count":1}`},
		{"trailing", `{"diagnostics":[],"count":0} {}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var l List
			if l.AddFromJSON([]byte(tc.data)) {
				t.Fatalf("AddFromJSON accepted %s", tc.data)
			}
			if l.Len() != 0 {
				t.Fatalf("rejected payload appended %d messages", l.Len())
			}
			if _, err := Decode([]byte(tc.data)); !errors.Is(err, ErrMalformedReport) {
				t.Fatalf("Decode error = %v, want ErrMalformedReport", err)
			}
		})
	}
}

func TestEmptyReportIsValid(t *testing.T) {
	var l List
	if !l.AddFromJSON([]byte(`{"diagnostics":[],"count":0}`)) {
		t.Fatalf("empty report rejected")
	}
	if l.Status() != StatusClean {
		t.Fatalf("status = %v", l.Status())
	}
}

func TestStatusAndCounts(t *testing.T) {
	var l List
	if l.Status() != StatusClean || l.HasErrors() || l.HasWarnings() {
		t.Fatalf("zero list not clean")
	}
	l.Add(Message{Severity: SeverityWarning})
	if l.Status() != StatusWarnings {
		t.Fatalf("status = %v, want warnings", l.Status())
	}
	l.Add(Message{Severity: SeverityError})
	l.Add(Message{Severity: SeverityError})
	if l.Status() != StatusErrors || l.Count(SeverityError) != 2 || l.Count(SeverityWarning) != 1 {
		t.Fatalf("status = %v errors=%d", l.Status(), l.Count(SeverityError))
	}
	// ошибки в заметках не считаются
	var n List
	n.Add(Message{Severity: SeverityWarning, Notes: []Message{{Severity: SeverityError}}})
	if n.HasErrors() {
		t.Fatalf("nested note counted as error")
	}
}

func TestMergeAndString(t *testing.T) {
	var a, b List
	a.Add(Message{Severity: SeverityError, Code: "SEM3002", Text: "boom", Location: Location{File: "a.st", Line: 1, Column: 2}})
	b.Add(Message{Severity: SeverityWarning, Text: "hmm", Location: Location{File: "b.st", Line: 3, Column: 4}})
	a.Merge(&b)
	a.Merge(nil)
	if a.Len() != 2 {
		t.Fatalf("len = %d", a.Len())
	}
	want := "a.st:1:2: error SEM3002: boom\nb.st:3:4: warning: hmm"
	if got := a.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	a.Merge(&a)
	if a.Len() != 4 {
		t.Fatalf("self merge len = %d", a.Len())
	}
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	var l List
	if !l.AddFromJSON([]byte(goodReport)) {
		t.Fatalf("setup failed")
	}
	data, err := l.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var back List
	if !back.AddFromJSON(data) {
		t.Fatalf("own output rejected: %s", data)
	}
	if back.String() != l.String() {
		t.Fatalf("round trip differs:\n%s\n---\n%s", back.String(), l.String())
	}
	var empty List
	data, err = empty.MarshalJSON()
	if err != nil || !strings.Contains(string(data), `"diagnostics":[]`) {
		t.Fatalf("empty marshal = %s, %v", data, err)
	}
}
