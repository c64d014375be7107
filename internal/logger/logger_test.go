package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	cfg := FromConfig("warn", "json")
	assert.Equal(t, slog.LevelWarn, cfg.Level)
	assert.Equal(t, "json", cfg.Format)

	cfg = FromConfig("bogus", "")
	assert.Equal(t, slog.LevelInfo, cfg.Level)
	assert.Equal(t, "text", cfg.Format)
}

func TestJSONLoggerCarriesContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: slog.LevelDebug, Format: "json"}, &buf).WithComponent("tui")

	ctx := WithOperation(WithRequestID(context.Background(), "req-1"), "query")
	log.LogError(ctx, errors.New("boom"), "query failed", "seq", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "query failed", record["msg"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "query", record["operation"])
	assert.Equal(t, "tui", record["component"])
	assert.Equal(t, "boom", record["error"])
	assert.EqualValues(t, 3, record["seq"])
}

func TestTextLoggerHasNoColorCodes(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Level: slog.LevelInfo}, &buf).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestOpenDiscardAndFile(t *testing.T) {
	w, err := Open(DiscardPath)
	require.NoError(t, err)
	_, err = w.Write([]byte("ignored"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "logs", "dataquery.log")
	f, err := Open(path)
	require.NoError(t, err)
	New(Config{}, f).Info("written")
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}
