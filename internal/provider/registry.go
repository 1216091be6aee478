package provider

import (
	"fmt"
	"slices"
	"sync"
)

type entry struct {
	factory Factory
	once    sync.Once
	lib     *Library
	err     error
}

// Registry maps engine names to lazily loaded libraries.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register installs a factory. Re-registering a name replaces a factory that
// has not been loaded yet.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &entry{factory: f}
}

// Names lists registered engines in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Acquire returns a retained library for name, loading the engine on first
// use. The caller owns the returned reference.
func (r *Registry) Acquire(name string) (*Library, error) {
	r.mu.Lock()
	e, ok := r.entries[name]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("acquire %q: %w", name, ErrEngineUnavailable)
	}
	e.once.Do(func() {
		// упавшая фабрика помечает движок недоступным навсегда
		defer func() {
			if r := recover(); r != nil {
				e.lib = nil
				e.err = fmt.Errorf("load %q: %w: panic: %v", name, ErrEngineUnavailable, r)
			}
		}()
		engine, err := e.factory()
		if err != nil {
			e.err = fmt.Errorf("load %q: %w: %w", name, ErrEngineUnavailable, err)
			return
		}
		if engine == nil {
			e.err = fmt.Errorf("load %q: %w", name, ErrEngineUnavailable)
			return
		}
		e.lib = newLibrary(name, engine)
	})
	if e.err != nil {
		return nil, e.err
	}
	return e.lib.Retain(), nil
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// Register installs a factory in the default registry.
func Register(name string, f Factory) { defaultRegistry.Register(name, f) }

// Acquire loads name from the default registry.
func Acquire(name string) (*Library, error) { return defaultRegistry.Acquire(name) }
