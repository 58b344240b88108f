package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/talkstoque/pkg/contextx"
)

func TestWithContextAddsRequestAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	prev := globalLogger
	globalLogger = New(&buf, Config{Level: "debug", Format: "json"})
	t.Cleanup(func() { globalLogger = prev })

	ctx := contextx.WithTraceID(contextx.WithRequestID(context.Background(), "req-9"), "trace-9")
	Info(ctx, "stock reserved", "product_id", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "stock reserved", record["msg"])
	assert.Equal(t, "req-9", record["request_id"])
	assert.Equal(t, "trace-9", record["trace_id"])
	assert.EqualValues(t, 3, record["product_id"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	prev := globalLogger
	globalLogger = New(&buf, Config{Level: "warn", Format: "text"})
	t.Cleanup(func() { globalLogger = prev })

	Info(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}
