package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"texconv/internal/driver"
	"texconv/internal/ui"
)

type batchOutcome struct {
	items []driver.BatchItem
	err   error
}

// runBatchWithUI converts reqs while a Bubble Tea program on stderr renders
// the progress events.
func runBatchWithUI(ctx context.Context, title string, reqs []driver.Request, opts driver.BatchOptions) ([]driver.BatchItem, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink(events)
		items, err := driver.ConvertBatch(ctx, reqs, opts)
		outcomeCh <- batchOutcome{items: items, err: err}
		close(events)
	}()

	labels := make([]string, len(reqs))
	for i, req := range reqs {
		labels[i] = req.Name
	}
	model := ui.NewProgressModel(title, labels, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// UI мог выйти раньше батча: дочитываем события, чтобы он не заблокировался
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.items, uiErr
	}
	return outcome.items, outcome.err
}
