package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pilgerone/PHP-CS-Fixer/internal/progress"
	"github.com/pilgerone/PHP-CS-Fixer/internal/runner"
	"github.com/pilgerone/PHP-CS-Fixer/internal/ui"
)

type runOutcome struct {
	summary *runner.Summary
	err     error
}

// runWithUI drives r in the background and renders its events with the
// progress model until the run finishes.
func runWithUI(ctx context.Context, title string, r runner.Runner, files []string) (*runner.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan progress.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		r.Sink = progress.MultiSink{r.Sink, progress.ChannelSink{Ch: events}}
		summary, err := r.Run(ctx, files)
		outcomeCh <- runOutcome{summary: summary, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// окно закрыто (ctrl+c): останавливаем прогон и дочитываем события
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.summary, uiErr
	}
	return outcome.summary, outcome.err
}
