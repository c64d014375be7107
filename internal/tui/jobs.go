package tui

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/dataquery/internal/logger"
)

type jobKind string

type jobStatus string

const (
	jobKindQuery jobKind = "query"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
	jobStatusCanceled  jobStatus = "canceled"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Seq         uint64
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

// jobBus runs background work off the update loop. Every job gets a child of
// the bus context, so Stop cancels everything still in flight.
type jobBus struct {
	counter int64
	ctx     context.Context
	stop    context.CancelFunc
	log     *logger.Logger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

func newJobBus(log *logger.Logger) *jobBus {
	if log == nil {
		log = logger.Nop()
	}
	ctx, stop := context.WithCancel(context.Background())
	return &jobBus{
		ctx:     ctx,
		stop:    stop,
		log:     log.WithComponent("jobs"),
		cancels: map[string]context.CancelFunc{},
	}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start registers a job and returns its running snapshot together with the
// command that executes it. The envelope is always delivered, even when the
// runner panics.
func (b *jobBus) Start(kind jobKind, seq uint64, runner jobRunner) (jobSnapshot, tea.Cmd) {
	id := b.nextID(kind)
	started := time.Now()
	ctx, cancel := context.WithCancel(b.ctx)
	b.mu.Lock()
	b.cancels[id] = cancel
	b.mu.Unlock()

	snapshot := jobSnapshot{ID: id, Kind: kind, Seq: seq, Status: jobStatusRunning, StartedAt: started}
	b.log.Debug("job started", "job", id, "seq", seq)

	runCmd := func() (msg tea.Msg) {
		var (
			payload tea.Msg
			err     error
		)
		defer func() {
			if r := recover(); r != nil {
				payload = nil
				err = fmt.Errorf("job %s panicked: %v", id, r)
			}
			msg = b.finish(ctx, snapshot, payload, err)
		}()
		payload, err = runner(ctx)
		return nil
	}
	return snapshot, runCmd
}

func (b *jobBus) finish(ctx context.Context, snapshot jobSnapshot, payload tea.Msg, err error) jobResultEnvelope {
	canceled := ctx.Err() != nil
	b.mu.Lock()
	if cancel, ok := b.cancels[snapshot.ID]; ok {
		cancel()
		delete(b.cancels, snapshot.ID)
	}
	b.mu.Unlock()

	snapshot.CompletedAt = time.Now()
	snapshot.Duration = snapshot.CompletedAt.Sub(snapshot.StartedAt)
	switch {
	case err != nil && canceled:
		snapshot.Status = jobStatusCanceled
		snapshot.Err = err.Error()
	case err != nil:
		snapshot.Status = jobStatusFailed
		snapshot.Err = err.Error()
	default:
		snapshot.Status = jobStatusSucceeded
	}
	b.log.Info("job finished",
		"job", snapshot.ID,
		"seq", snapshot.Seq,
		"status", string(snapshot.Status),
		"duration", snapshot.Duration,
		"error", snapshot.Err,
	)
	return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
}

// Cancel aborts a single running job. Unknown ids are ignored.
func (b *jobBus) Cancel(id string) {
	b.mu.Lock()
	cancel, ok := b.cancels[id]
	b.mu.Unlock()
	if ok {
		cancel()
	}
}

// Stop cancels every job started by this bus.
func (b *jobBus) Stop() {
	b.stop()
}

// Running reports how many jobs have not delivered their envelope yet.
func (b *jobBus) Running() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.cancels)
}
