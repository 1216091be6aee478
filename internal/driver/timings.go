package driver

import (
	"fmt"

	"strata/internal/diag"
	"strata/internal/messages"
	"strata/internal/observ"
)

// TimingMessage packs a timer report as an info message so timings can be
// printed with the other diagnostics of a run.
func TimingMessage(t *observ.Timer, path string) messages.Message {
	report := t.Report()
	msg := fmt.Sprintf("timings: total %.2f ms", report.TotalMS)
	loc := messages.Location{File: path, Line: 1, Column: 1, EndLine: 1, EndColumn: 1}
	m := messages.Message{
		Severity: messages.SeverityInfo,
		Code:     diag.ObsTimings.ID(),
		Text:     msg,
		Location: loc,
	}
	for _, p := range report.Phases {
		text := fmt.Sprintf("%s: %.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			text += " (" + p.Note + ")"
		}
		m.Notes = append(m.Notes, messages.Message{Severity: messages.SeverityNote, Text: text, Location: loc})
	}
	return m
}
