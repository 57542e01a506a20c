package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"bigcalc/internal/batch"
	"bigcalc/internal/ui"
)

type batchOutcome struct {
	results []batch.Result
	err     error
}

// runBatchWithUI runs req while a progress view renders its events on out.
// Quitting the view cancels the batch.
func runBatchWithUI(ctx context.Context, out io.Writer, title string, req batch.Request) ([]batch.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		req.Sink = batch.ChannelSink{Ch: events}
		res, err := batch.Run(ctx, req)
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Items, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()

	// The view may stop before the batch does; stop the batch and keep
	// draining so its workers never block on a full channel.
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err != nil {
		return outcome.results, outcome.err
	}
	return outcome.results, uiErr
}
