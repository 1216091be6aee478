// Package pipeline carries per-unit progress events from the driver to
// whatever displays them.
package pipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageLoad reads a unit from disk.
	StageLoad Stage = "load"
	// StageParse feeds a unit to the session.
	StageParse Stage = "parse"
	// StageExport renders the syntax tree.
	StageExport Stage = "export"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusError: the unit has error diagnostics or failed to load.
	StatusError Status = "error"
)

// Event reports progress for a unit (or for the overall run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Diagnostics appended by this step.
	Diagnostics int
}

// Terminal reports whether the event finishes its unit.
func (e Event) Terminal() bool {
	return e.Status == StatusDone || e.Status == StatusError
}

// Sink consumes progress events.
type Sink interface {
	OnEvent(Event)
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}
