package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/driver"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/ui"
)

type checkOutcome struct {
	results []driver.CheckResult
	err     error
}

// runCheckWithUI runs the scan in the background and renders its progress
// until every file is finished.
func runCheckWithUI(ctx context.Context, out io.Writer, title string, files []string, opts driver.CheckOptions) ([]driver.CheckResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckFiles(ctx, files, opts)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()

	var outcome checkOutcome
	select {
	case outcome = <-outcomeCh:
	default:
		// the UI quit before the scan finished (ctrl-c); stop the workers
		// and keep draining so their sends do not block
		cancel()
		go func() {
			for range events {
			}
		}()
		outcome = <-outcomeCh
	}
	if outcome.err != nil {
		return outcome.results, outcome.err
	}
	return outcome.results, uiErr
}
