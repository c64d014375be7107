package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/dataquery/internal/assistant"
	"github.com/csheth/dataquery/internal/reveal"
)

func queryJob(seq uint64, client assistant.Client, prompt string) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		if client == nil {
			err := errors.New("no data assistant client configured")
			return queryResultMsg{seq: seq, err: err}, err
		}
		answer, err := client.Query(ctx, prompt)
		return queryResultMsg{seq: seq, answer: answer, err: err}, err
	}
}

func revealTickCmd(interval time.Duration, token reveal.Token) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return revealTickMsg{token: token}
	})
}

// truncateSchemaSummary shortens the summary for display only. Longer values
// keep their first schemaSummaryLimit runes followed by "...".
func truncateSchemaSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) <= schemaSummaryLimit {
		return summary
	}
	return string(runes[:schemaSummaryLimit]) + "..."
}
