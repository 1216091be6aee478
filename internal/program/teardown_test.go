package program

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"strata/internal/messages"
	"strata/internal/provider"
	"strata/internal/syntaxtree"
)

// fakeEngine records what its programs see so tests can check ordering.
type fakeEngine struct {
	created  int
	released []int64 // lib.Refs() observed when a program released itself
	report   []byte
	panicOn  string
}

type fakeProgram struct {
	eng *fakeEngine
	lib *provider.Library
}

func (e *fakeEngine) NewProgram(lib *provider.Library) (provider.EngineProgram, error) {
	e.created++
	return &fakeProgram{eng: e, lib: lib}, nil
}

func (f *fakeProgram) ParseUnit(name string, _ []byte) *provider.Buffer {
	if name == f.eng.panicOn {
		panic("boom")
	}
	if f.eng.report == nil {
		return nil
	}
	return f.lib.NewBuffer(f.eng.report)
}

func (f *fakeProgram) SyntaxTree([]byte) *provider.Buffer {
	return f.lib.NewBuffer([]byte(`{"type":"Program","units":[]}`))
}

func (f *fakeProgram) Release() {
	f.eng.released = append(f.eng.released, f.lib.Refs())
	f.lib.Release()
}

func fakeRegistry(eng *fakeEngine) *provider.Registry {
	reg := provider.NewRegistry()
	reg.Register("fake", func() (provider.Engine, error) { return eng, nil })
	return reg
}

func libraryOf(t *testing.T, reg *provider.Registry) *provider.Library {
	t.Helper()
	lib, err := reg.Acquire("fake")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	t.Cleanup(lib.Release)
	return lib
}

func TestTeardownReleasesEngineBeforeLibrary(t *testing.T) {
	eng := &fakeEngine{}
	reg := fakeRegistry(eng)
	lib := libraryOf(t, reg)
	// реестр + наша ссылка
	const base = 2

	p := New(Options{Registry: reg, Engine: "fake"})
	for cycle := range 5 {
		var sink messages.List
		for range 3 {
			if !p.Parse(&sink, "a.st", "x") {
				t.Fatalf("cycle %d: Parse: %v", cycle, p.LastError())
			}
		}
		// сессия + программа
		if lib.Refs() != base+2 {
			t.Fatalf("cycle %d: refs = %d, want %d", cycle, lib.Refs(), base+2)
		}
		p.Reset()
		if lib.Refs() != base {
			t.Fatalf("cycle %d: refs after reset = %d, want %d", cycle, lib.Refs(), base)
		}
	}
	if eng.created != 5 || len(eng.released) != 5 {
		t.Fatalf("created %d, released %d", eng.created, len(eng.released))
	}
	for i, refs := range eng.released {
		if refs != base+2 {
			t.Fatalf("release %d saw %d refs: library dropped before the program", i, refs)
		}
	}
}

func TestEnginePanicIsProtocolFailure(t *testing.T) {
	eng := &fakeEngine{panicOn: "bad.st"}
	reg := fakeRegistry(eng)
	lib := libraryOf(t, reg)
	p := New(Options{Registry: reg, Engine: "fake"})
	defer p.Close()

	var sink messages.List
	if !p.Parse(&sink, "ok.st", "") {
		t.Fatalf("Parse: %v", p.LastError())
	}
	if p.Parse(&sink, "bad.st", "") {
		t.Fatalf("panicking engine reported success")
	}
	if !errors.Is(p.LastError(), ErrEnginePanic) {
		t.Fatalf("LastError = %v", p.LastError())
	}
	if p.State() != StateEmpty || lib.Refs() != 2 {
		t.Fatalf("state = %v refs = %d", p.State(), lib.Refs())
	}
	if !p.Parse(&sink, "ok.st", "") || p.LastError() != nil {
		t.Fatalf("session unusable after panic: %v", p.LastError())
	}
}

func TestUndecodableReport(t *testing.T) {
	eng := &fakeEngine{report: []byte(`{"diagnostics":[{"severity":"error"}],"count":1}`)}
	reg := fakeRegistry(eng)
	lib := libraryOf(t, reg)
	p := New(Options{Registry: reg, Engine: "fake"})
	defer p.Close()

	var sink messages.List
	if p.Parse(&sink, "a.st", "") {
		t.Fatalf("malformed report accepted")
	}
	if !errors.Is(p.LastError(), messages.ErrMalformedReport) {
		t.Fatalf("LastError = %v", p.LastError())
	}
	if sink.Len() != 0 {
		t.Fatalf("malformed report appended %d messages", sink.Len())
	}
	if lib.OutstandingBuffers() != 0 {
		t.Fatalf("report buffer leaked")
	}
	// движок привязан и принял единицу: сессия уже не пустая
	if p.State() != StateActive {
		t.Fatalf("state = %v, want %v", p.State(), StateActive)
	}
	if got := p.SyntaxTree(syntaxtree.Options{}); got != `{"type":"Program","units":[]}` {
		t.Fatalf("SyntaxTree = %q", got)
	}
	if lib.OutstandingBuffers() != 0 {
		t.Fatalf("tree buffer leaked")
	}
}

func TestPanickingFactoryStaysInsideParse(t *testing.T) {
	reg := provider.NewRegistry()
	reg.Register("broken", func() (provider.Engine, error) { panic("load failed") })
	p := New(Options{Registry: reg, Engine: "broken"})
	defer p.Close()

	var sink messages.List
	for i := range 2 {
		if p.Parse(&sink, "a.st", "let x = 1;") {
			t.Fatalf("call %d: Parse succeeded without an engine", i)
		}
		if !errors.Is(p.LastError(), provider.ErrEngineUnavailable) {
			t.Fatalf("call %d: LastError = %v", i, p.LastError())
		}
		if p.State() != StateEmpty || sink.Len() != 0 {
			t.Fatalf("call %d: state = %v sink = %d", i, p.State(), sink.Len())
		}
	}
}

type panickyEngine struct{}

func (panickyEngine) NewProgram(*provider.Library) (provider.EngineProgram, error) {
	panic("no program")
}

func TestPanickingNewProgramReleasesLibrary(t *testing.T) {
	reg := provider.NewRegistry()
	reg.Register("panicky", func() (provider.Engine, error) { return panickyEngine{}, nil })
	lib, err := reg.Acquire("panicky")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lib.Release()
	p := New(Options{Registry: reg, Engine: "panicky"})
	defer p.Close()

	var sink messages.List
	if p.Parse(&sink, "a.st", "") {
		t.Fatalf("Parse succeeded")
	}
	if !errors.Is(p.LastError(), ErrEnginePanic) {
		t.Fatalf("LastError = %v", p.LastError())
	}
	// реестр и наш Acquire
	if lib.Refs() != 2 || p.State() != StateEmpty {
		t.Fatalf("refs = %d state = %v", lib.Refs(), p.State())
	}
}

func TestDroppedSessionIsCleanedUp(t *testing.T) {
	eng := &fakeEngine{}
	reg := fakeRegistry(eng)
	lib := libraryOf(t, reg)

	func() {
		p := New(Options{Registry: reg, Engine: "fake"})
		var sink messages.List
		p.Parse(&sink, "a.st", "")
	}()

	deadline := time.Now().Add(2 * time.Second)
	for lib.Refs() != 2 {
		if time.Now().After(deadline) {
			t.Fatalf("refs = %d after GC, want 2", lib.Refs())
		}
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if len(eng.released) != 1 || eng.released[0] != 4 {
		t.Fatalf("cleanup released in wrong order: %v", eng.released)
	}
}
