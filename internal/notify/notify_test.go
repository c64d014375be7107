package notify

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/dataquery/internal/logger"
	"github.com/csheth/dataquery/internal/metrics"
)

func TestRecorderKeepsOrder(t *testing.T) {
	rec := &Recorder{}
	rec.Notify("first", SeverityWarning)
	rec.Notify("second", SeveritySuccess)

	all := rec.All()
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Message)
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, Notification{Message: "second", Severity: SeveritySuccess}, last)
	assert.Equal(t, 1, rec.Count(SeverityWarning))
	assert.Equal(t, 0, rec.Count(SeverityError))
}

func TestMultiSkipsNil(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	Multi(a, nil, b).Notify("hi", SeverityError)
	assert.Len(t, a.All(), 1)
	assert.Len(t, b.All(), 1)
}

func TestWithLoggingForwardsAndCounts(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{}, &buf)
	rec := &Recorder{}
	before := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(string(SeverityError)))

	WithLogging(rec, log).Notify("server down", SeverityError)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "server down", last.Message)
	assert.Contains(t, buf.String(), "server down")
	after := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(string(SeverityError)))
	assert.Equal(t, before+1, after)
}
