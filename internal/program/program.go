package program

import (
	"errors"
	"fmt"
	"runtime"

	"strata/internal/frontend"
	"strata/internal/messages"
	"strata/internal/provider"
	"strata/internal/syntaxtree"
	"strata/internal/trace"
)

var (
	// ErrClosed is reported by calls on a closed session.
	ErrClosed = errors.New("session closed")
	// ErrEnginePanic wraps a panic recovered from the engine.
	ErrEnginePanic = errors.New("engine panic")
	// ErrNoSyntaxTree is recorded when a bound engine returns no document.
	ErrNoSyntaxTree = errors.New("engine returned no syntax tree")
)

// Options configure a session. The zero value uses the strata engine from
// the default registry.
type Options struct {
	Engine   string
	Registry *provider.Registry
	Tracer   trace.Tracer
	// MaxDiagnostics caps diagnostics per unit; 0 means unlimited.
	MaxDiagnostics int
}

// session holds what must be released. It never points back to Program so a
// cleanup can own it.
type session struct {
	lib    *provider.Library
	engine provider.EngineProgram
}

// release frees the engine program strictly before the library reference.
func (s *session) release() {
	if s.engine != nil {
		s.engine.Release()
		s.engine = nil
	}
	if s.lib != nil {
		s.lib.Release()
		s.lib = nil
	}
}

// Program is a parse session.
type Program struct {
	opts    Options
	tracer  trace.Tracer
	state   State
	sess    *session
	cleanup runtime.Cleanup
	lastErr error
}

// New creates an empty session. Nothing is loaded until the first Parse.
func New(opts Options) *Program {
	if opts.Engine == "" {
		opts.Engine = frontend.EngineName
	}
	if opts.Registry == nil {
		opts.Registry = provider.Default()
	}
	tr := opts.Tracer
	if tr == nil {
		tr = trace.Nop
	}
	return &Program{opts: opts, tracer: tr}
}

// State returns the current state.
func (p *Program) State() State { return p.state }

// LastError returns the protocol failure of the last call, or nil.
func (p *Program) LastError() error { return p.lastErr }

func (p *Program) point(name, detail string) {
	trace.Point(p.tracer, trace.ScopeDriver, name, detail, 0)
}

type tracerSetter interface{ SetTracer(trace.Tracer) }

type limitSetter interface{ SetMaxDiagnostics(int) }

// open acquires the library and creates the engine program. A panic in the
// engine is returned as ErrEnginePanic and leaves nothing bound.
func (p *Program) open() error {
	lib, err := p.opts.Registry.Acquire(p.opts.Engine)
	if err != nil {
		return err
	}
	var engine provider.EngineProgram
	if gerr := guard(func() { engine, err = lib.CreateProgram() }); gerr != nil {
		err = gerr
	}
	if err != nil {
		lib.Release()
		return err
	}
	if err := guard(func() {
		if ts, ok := engine.(tracerSetter); ok {
			ts.SetTracer(p.tracer)
		}
		if ls, ok := engine.(limitSetter); ok {
			ls.SetMaxDiagnostics(p.opts.MaxDiagnostics)
		}
	}); err != nil {
		(&session{lib: lib, engine: engine}).release()
		return err
	}
	p.sess = &session{lib: lib, engine: engine}
	p.cleanup = runtime.AddCleanup(p, func(s *session) { s.release() }, p.sess)
	return nil
}

// teardown releases the session, if any.
func (p *Program) teardown() {
	if p.sess == nil {
		return
	}
	p.cleanup.Stop()
	p.sess.release()
	p.sess = nil
}

// guard runs fn and turns an engine panic into an error.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrEnginePanic, r)
		}
	}()
	fn()
	return nil
}

// Parse submits one unit and appends its diagnostics to sink. It returns
// false only when the pipeline could not run: the engine is unavailable or
// panicked, or its report could not be decoded. Error diagnostics in the
// source still return true; check sink for them.
func (p *Program) Parse(sink *messages.List, unitName, unitText string) bool {
	if p.state == StateClosed {
		p.lastErr = ErrClosed
		return false
	}
	sp := trace.Begin(p.tracer, trace.ScopeDriver, "parse", 0).WithExtra("unit", unitName)
	ok, detail := p.parse(sink, unitName, unitText)
	sp.End(detail)
	return ok
}

func (p *Program) parse(sink *messages.List, unitName, unitText string) (bool, string) {
	p.lastErr = nil
	if p.sess == nil {
		if err := p.open(); err != nil {
			p.lastErr = fmt.Errorf("open session: %w", err)
			return false, "open failed"
		}
		p.transition(StateActive)
	}

	var buf *provider.Buffer
	if err := guard(func() { buf = p.sess.engine.ParseUnit(unitName, []byte(unitText)) }); err != nil {
		// состояние движка неизвестно: сессию не переиспользуем
		p.teardown()
		p.transition(StateEmpty)
		p.lastErr = fmt.Errorf("parse %q: %w", unitName, err)
		return false, "panic"
	}
	defer buf.Release()

	var got messages.List
	// движок уже принял единицу: сессия остаётся в текущем состоянии
	if buf != nil && !got.AddFromJSON(buf.Bytes()) {
		p.lastErr = fmt.Errorf("parse %q: %w", unitName, messages.ErrMalformedReport)
		return false, "bad report"
	}
	if sink != nil {
		sink.Merge(&got)
	}
	if got.HasErrors() {
		p.transition(StateFailed)
		return true, "errors"
	}
	p.transition(StateActive)
	return true, ""
}

// Reset drops every unit and returns the session to Empty. The engine
// program is released before the library. Reset on a closed session does
// nothing.
func (p *Program) Reset() {
	if p.state == StateClosed {
		return
	}
	sp := trace.Begin(p.tracer, trace.ScopeDriver, "reset", 0)
	p.teardown()
	p.lastErr = nil
	p.transition(StateEmpty)
	sp.End("")
}

// Close releases the session for good. Later Parse calls fail with
// ErrClosed and SyntaxTree returns the neutral document.
func (p *Program) Close() error {
	if p.state == StateClosed {
		return nil
	}
	p.teardown()
	p.transition(StateClosed)
	return nil
}

// SyntaxTree exports everything parsed so far. It never changes the session;
// an empty or closed session yields "{}". When a bound session still yields
// "{}", LastError says why.
func (p *Program) SyntaxTree(opts syntaxtree.Options) string {
	p.lastErr = nil
	if p.state == StateClosed {
		p.lastErr = ErrClosed
		return syntaxtree.Empty
	}
	if p.sess == nil {
		return syntaxtree.Empty
	}
	blob := opts.Encode()
	if _, err := syntaxtree.DecodeOptions(blob); err != nil {
		return p.treeFailed(err)
	}
	var buf *provider.Buffer
	if err := guard(func() { buf = p.sess.engine.SyntaxTree(blob) }); err != nil {
		return p.treeFailed(err)
	}
	if buf == nil {
		return p.treeFailed(ErrNoSyntaxTree)
	}
	defer buf.Release()
	return buf.String()
}

func (p *Program) treeFailed(err error) string {
	p.lastErr = fmt.Errorf("syntax tree: %w", err)
	p.point("syntax-tree", err.Error())
	return syntaxtree.Empty
}

// Units lists the units registered in this session.
func (p *Program) Units() []provider.Unit {
	if p.sess == nil {
		return nil
	}
	if ul, ok := p.sess.engine.(provider.UnitLister); ok {
		return ul.Units()
	}
	return nil
}
