package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"strata/internal/pipeline"
)

// Run drives the progress view until events is closed. Output goes to w;
// the view never reads stdin.
func Run(w io.Writer, title string, files []string, events <-chan pipeline.Event) error {
	p := tea.NewProgram(
		NewProgressModel(title, files, events),
		tea.WithOutput(w),
		tea.WithInput(nil),
	)
	_, err := p.Run()
	return err
}
