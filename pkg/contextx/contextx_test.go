package contextx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetTx(ctx))

	tx := &struct{ name string }{"tx"}
	assert.Same(t, tx, GetTx(WithTx(ctx, tx)))
}

func TestRequestAndTraceID(t *testing.T) {
	ctx := WithTraceID(WithRequestID(context.Background(), "req-1"), "trace-1")
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "trace-1", TraceID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}
