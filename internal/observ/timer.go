package observ

import (
	"fmt"
	"strings"
	"time"

	"strata/internal/diag"
	"strata/internal/source"
)

// Phase records the duration of one step of a check run.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	open  bool
}

// Timer tracks the phases of a run in the order they were started.
// Not safe for concurrent use.
type Timer struct {
	phases []Phase
	now    func() time.Time
}

func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), now: time.Now}
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: t.now(), open: true})
	return len(t.phases) - 1
}

// End finishes a phase by its index. Ending twice keeps the first result.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) || !t.phases[idx].open {
		return
	}
	p := &t.phases[idx]
	p.Dur = t.now().Sub(p.Start)
	p.Note = note
	p.open = false
}

// Measure runs fn as a phase.
func (t *Timer) Measure(name string, fn func() string) {
	idx := t.Begin(name)
	t.End(idx, fn())
}

// PhaseReport: сжатая информация о фазе для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report: агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report returns finished phases and their total in milliseconds.
func (t *Timer) Report() Report {
	report := Report{Phases: make([]PhaseReport, 0, len(t.phases))}
	var total time.Duration
	for _, phase := range t.phases {
		if phase.open {
			continue
		}
		total += phase.Dur
		report.Phases = append(report.Phases, PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		})
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary returns a human-readable table of finished phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// Diagnostic packs the report as an info diagnostic with one note per phase,
// so timings can travel with the other diagnostics of a run.
func (t *Timer) Diagnostic() diag.Diagnostic {
	report := t.Report()
	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, fmt.Sprintf("total %.2f ms", report.TotalMS))
	for _, p := range report.Phases {
		msg := fmt.Sprintf("%s: %.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			msg += " (" + p.Note + ")"
		}
		d = d.WithNote(source.Span{}, msg)
	}
	return d
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
