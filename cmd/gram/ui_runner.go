package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gram/internal/driver"
	"gram/internal/ui"
)

type checkOutcome struct {
	comp *driver.Compilation
	err  error
}

// runCheckWithUI runs CheckDir behind a Bubble Tea progress screen. The
// driver reports through a channel observer; the UI quits when the driver
// closes the channel.
func runCheckWithUI(ctx context.Context, title, dir string, opts driver.Options) (*driver.Compilation, error) {
	files, err := driver.ListGrammarFiles(dir)
	if err != nil {
		return nil, err
	}

	events := make(chan ui.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Observer = ui.ChannelObserver(events)
		comp, err := driver.CheckDir(ctx, dir, optsCopy)
		outcomeCh <- checkOutcome{comp: comp, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.comp, uiErr
	}
	return outcome.comp, outcome.err
}
