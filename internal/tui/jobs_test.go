package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobBusReportsSuccess(t *testing.T) {
	bus := newJobBus(nil)
	snapshot, cmd := bus.Start(jobKindQuery, 3, func(ctx context.Context) (tea.Msg, error) {
		return "done", nil
	})
	assert.Equal(t, "query-1", snapshot.ID)
	assert.Equal(t, jobStatusRunning, snapshot.Status)
	assert.Equal(t, 1, bus.Running())

	env, ok := cmd().(jobResultEnvelope)
	require.True(t, ok)
	assert.Equal(t, jobStatusSucceeded, env.Snapshot.Status)
	assert.Equal(t, uint64(3), env.Snapshot.Seq)
	assert.Equal(t, "done", env.Payload)
	assert.Equal(t, 0, bus.Running())
}

func TestJobBusRecoversPanics(t *testing.T) {
	bus := newJobBus(nil)
	_, cmd := bus.Start(jobKindQuery, 1, func(ctx context.Context) (tea.Msg, error) {
		panic("boom")
	})
	env, ok := cmd().(jobResultEnvelope)
	require.True(t, ok)
	assert.Equal(t, jobStatusFailed, env.Snapshot.Status)
	assert.Contains(t, env.Snapshot.Err, "boom")
	assert.Nil(t, env.Payload)
}

func TestJobBusCancelSingleJob(t *testing.T) {
	bus := newJobBus(nil)
	waitForCancel := func(ctx context.Context) (tea.Msg, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	first, firstCmd := bus.Start(jobKindQuery, 1, waitForCancel)
	_, secondCmd := bus.Start(jobKindQuery, 2, func(ctx context.Context) (tea.Msg, error) {
		if ctx.Err() != nil {
			return nil, errors.New("second job should not be canceled")
		}
		return "ok", nil
	})

	bus.Cancel(first.ID)
	bus.Cancel("query-unknown")

	env := firstCmd().(jobResultEnvelope)
	assert.Equal(t, jobStatusCanceled, env.Snapshot.Status)
	env = secondCmd().(jobResultEnvelope)
	assert.Equal(t, jobStatusSucceeded, env.Snapshot.Status)
}

func TestJobBusStopCancelsEverything(t *testing.T) {
	bus := newJobBus(nil)
	_, cmd := bus.Start(jobKindQuery, 1, func(ctx context.Context) (tea.Msg, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	bus.Stop()
	env := cmd().(jobResultEnvelope)
	assert.Equal(t, jobStatusCanceled, env.Snapshot.Status)
}
