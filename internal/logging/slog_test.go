package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	return NewSlogLogger(l), &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestSlogLogger_Info(t *testing.T) {
	logger, buf := newTestLogger(t)
	logger.Info(context.Background(), "hello", "k", "v")

	record := lastRecord(t, buf)
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "v", record["k"])
	assert.Equal(t, "INFO", record["level"])
}

func TestSlogLogger_With(t *testing.T) {
	logger, buf := newTestLogger(t)
	child := logger.With("module", "graphql_server")
	child.Error(context.Background(), "boom")

	record := lastRecord(t, buf)
	assert.Equal(t, "graphql_server", record["module"])
	assert.Equal(t, "ERROR", record["level"])
}
