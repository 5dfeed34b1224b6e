package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"rdmd/internal/driver"
	"rdmd/internal/pipeline"
	"rdmd/internal/ui"
)

type convertOutcome struct {
	result *driver.Result
	err    error
}

// runConvertWithUI runs the package conversion behind a Bubble Tea
// progress view. The conversion happens in a goroutine; the UI quits
// when the event channel closes.
func runConvertWithUI(ctx context.Context, opts driver.Options) (*driver.Result, error) {
	files, err := driver.ListRdFiles(opts.InputDir, opts.Recursive)
	if err != nil {
		return nil, err
	}

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan convertOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = pipeline.ChannelSink{Ch: events}
		res, runErr := driver.ConvertPackage(ctx, optsCopy)
		outcomeCh <- convertOutcome{result: res, err: runErr}
		close(events)
	}()

	title := "converting " + filepath.Base(opts.InputDir)
	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
