package provider

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrEngineUnavailable reports an engine that is not registered or failed
// to load.
var ErrEngineUnavailable = errors.New("engine unavailable")

// ErrLibraryReleased is returned when a program is requested from a library
// whose references are all gone.
var ErrLibraryReleased = errors.New("library released")

// EngineProgram is one engine-side program: the accumulated units of a
// session. Implementations are not safe for concurrent use.
type EngineProgram interface {
	// ParseUnit submits a unit; nil means no diagnostics for this call.
	ParseUnit(name string, text []byte) *Buffer
	// SyntaxTree exports the program; the blob encodes export options.
	SyntaxTree(optionsBlob []byte) *Buffer
	// Release frees engine state and then the program's library reference.
	Release()
}

// Engine is the loaded form of a registered factory.
type Engine interface {
	// NewProgram creates a program owning the given library reference.
	NewProgram(lib *Library) (EngineProgram, error)
}

// Factory loads an engine. It runs at most once per registration.
type Factory func() (Engine, error)

// Library is a shared handle to a loaded engine.
type Library struct {
	name    string
	engine  Engine
	refs    atomic.Int64
	buffers atomic.Int64
}

func newLibrary(name string, engine Engine) *Library {
	lib := &Library{name: name, engine: engine}
	lib.refs.Store(1) // ссылка реестра
	return lib
}

// Name returns the registered engine name.
func (l *Library) Name() string { return l.name }

// Refs reports the current reference count.
func (l *Library) Refs() int64 { return l.refs.Load() }

// OutstandingBuffers reports buffers handed out and not yet released.
func (l *Library) OutstandingBuffers() int64 { return l.buffers.Load() }

// Retain adds a reference and returns the library for chaining.
func (l *Library) Retain() *Library {
	l.refs.Add(1)
	return l
}

// Release drops one reference.
func (l *Library) Release() {
	if l.refs.Add(-1) < 0 {
		panic(fmt.Sprintf("provider: library %q released more times than retained", l.name))
	}
}

// NewBuffer wraps data as a buffer owned by this library.
func (l *Library) NewBuffer(data []byte) *Buffer {
	if data == nil {
		data = []byte{}
	}
	l.buffers.Add(1)
	return &Buffer{data: data, owner: l}
}

// CreateProgram asks the engine for a fresh program. The program receives its
// own library reference.
func (l *Library) CreateProgram() (EngineProgram, error) {
	if l.refs.Load() <= 0 {
		return nil, fmt.Errorf("create program for %q: %w", l.name, ErrLibraryReleased)
	}
	ref := l.Retain()
	defer func() {
		// паника движка не должна уносить ссылку программы
		if r := recover(); r != nil {
			ref.Release()
			panic(r)
		}
	}()
	prog, err := l.engine.NewProgram(ref)
	if err != nil {
		ref.Release()
		return nil, fmt.Errorf("create program for %q: %w", l.name, err)
	}
	if prog == nil {
		ref.Release()
		return nil, fmt.Errorf("create program for %q: engine returned no program", l.name)
	}
	return prog, nil
}
