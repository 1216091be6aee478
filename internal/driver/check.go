package driver

import (
	"context"
	"fmt"
	"time"

	"strata/internal/messages"
	"strata/internal/observ"
	"strata/internal/pipeline"
	"strata/internal/program"
	"strata/internal/syntaxtree"
	"strata/internal/trace"
)

// Options configure a driver run.
type Options struct {
	Engine         string
	MaxDiagnostics int
	Jobs           int
	Tracer         trace.Tracer
	// Sink receives progress events; may be nil.
	Sink pipeline.Sink
	// Cache is consulted by Check only; nil disables it.
	Cache *DiskCache
	// Timer records phases when set.
	Timer *observ.Timer
}

func (o Options) sink() pipeline.Sink {
	if o.Sink == nil {
		return pipeline.NopSink{}
	}
	return o.Sink
}

func (o Options) phase(name string) func(note string) {
	if o.Timer == nil {
		return func(string) {}
	}
	idx := o.Timer.Begin(name)
	return func(note string) { o.Timer.End(idx, note) }
}

// CheckResult is the outcome of feeding units to one session.
type CheckResult struct {
	Units    []Unit
	Messages *messages.List
	// Cached is set when the messages came from the disk cache.
	Cached bool
}

// HasErrors reports whether any unit produced an error-severity message.
func (r *CheckResult) HasErrors() bool {
	return r != nil && r.Messages.HasErrors()
}

// Check loads paths and feeds them, in order, to one session. Diagnostics of
// every unit end up in the result; a protocol failure is an error.
func Check(ctx context.Context, paths []string, opts Options) (*CheckResult, error) {
	sp := trace.Begin(opts.Tracer, trace.ScopeDriver, "check", 0)
	defer sp.End("")

	done := opts.phase("load")
	units, err := LoadUnits(ctx, paths, opts.Jobs, opts.sink())
	done(fmt.Sprintf("%d units", len(units)))
	if err != nil {
		return nil, err
	}

	key := CacheKey(opts.Engine, opts.MaxDiagnostics, units)
	if res, ok := lookupCache(opts, key, units); ok {
		sp.WithExtra("cache", "hit")
		return res, nil
	}

	list := &messages.List{}
	p := program.New(programOptions(opts))
	defer p.Close()
	done = opts.phase("parse")
	for _, u := range units {
		if err := feed(ctx, p, list, u, opts.sink()); err != nil {
			done("failed")
			return nil, err
		}
	}
	done(fmt.Sprintf("%d diagnostics", list.Len()))

	if opts.Cache != nil {
		storeCache(opts, key, units, list)
	}
	return &CheckResult{Units: units, Messages: list}, nil
}

// Tree loads paths, feeds them to a session and exports the syntax tree.
func Tree(ctx context.Context, paths []string, treeOpts syntaxtree.Options, opts Options) (string, *messages.List, error) {
	sp := trace.Begin(opts.Tracer, trace.ScopeDriver, "tree", 0)
	defer sp.End("")

	done := opts.phase("load")
	units, err := LoadUnits(ctx, paths, opts.Jobs, opts.sink())
	done(fmt.Sprintf("%d units", len(units)))
	if err != nil {
		return "", nil, err
	}
	list := &messages.List{}
	p := program.New(programOptions(opts))
	defer p.Close()
	done = opts.phase("parse")
	for _, u := range units {
		if err := feed(ctx, p, list, u, opts.sink()); err != nil {
			done("failed")
			return "", nil, err
		}
	}
	done("")
	done = opts.phase("syntax-tree")
	out := p.SyntaxTree(treeOpts)
	if err := p.LastError(); err != nil {
		done("failed")
		return "", list, err
	}
	done(fmt.Sprintf("%d bytes", len(out)))
	return out, list, nil
}

func programOptions(opts Options) program.Options {
	return program.Options{
		Engine:         opts.Engine,
		Tracer:         opts.Tracer,
		MaxDiagnostics: opts.MaxDiagnostics,
	}
}

func feed(ctx context.Context, p *program.Program, list *messages.List, u Unit, sink pipeline.Sink) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	sink.OnEvent(pipeline.Event{File: u.Path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	var got messages.List
	if !p.Parse(&got, u.Name, u.Text) {
		err := p.LastError()
		sink.OnEvent(pipeline.Event{File: u.Path, Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: err})
		return fmt.Errorf("parse %s: %w", u.Path, err)
	}
	list.Merge(&got)
	status := pipeline.StatusDone
	if got.HasErrors() {
		status = pipeline.StatusError
	}
	sink.OnEvent(pipeline.Event{
		File:        u.Path,
		Stage:       pipeline.StageParse,
		Status:      status,
		Elapsed:     time.Since(start),
		Diagnostics: got.Len(),
	})
	return nil
}

func lookupCache(opts Options, key Digest, units []Unit) (*CheckResult, bool) {
	if opts.Cache == nil {
		return nil, false
	}
	var payload CachePayload
	ok, err := opts.Cache.Get(key, &payload)
	if err != nil {
		// битая запись: просто пересчитываем
		trace.Point(opts.Tracer, trace.ScopeDriver, "cache", err.Error(), 0)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	list := &messages.List{}
	if len(payload.Report) > 0 && !list.AddFromJSON(payload.Report) {
		return nil, false
	}
	sink := opts.sink()
	for _, u := range units {
		sink.OnEvent(pipeline.Event{File: u.Path, Stage: pipeline.StageParse, Status: pipeline.StatusDone})
	}
	return &CheckResult{Units: units, Messages: list, Cached: true}, true
}

func storeCache(opts Options, key Digest, units []Unit, list *messages.List) {
	report, err := list.MarshalJSON()
	if err != nil {
		return
	}
	names := make([]string, 0, len(units))
	for _, u := range units {
		names = append(names, u.Name)
	}
	payload := &CachePayload{Engine: opts.Engine, Units: names, Report: report, HasErrors: list.HasErrors()}
	if err := opts.Cache.Put(key, payload); err != nil {
		trace.Point(opts.Tracer, trace.ScopeDriver, "cache", err.Error(), 0)
	}
}
