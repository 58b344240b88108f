package mq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer(KafkaConfig{})
	require.Error(t, err)
}

func TestSendEmptyBatchIsNoop(t *testing.T) {
	p, err := NewProducer(KafkaConfig{Brokers: []string{"127.0.0.1:1"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	assert.NoError(t, p.Send(context.Background(), "stock.events"))
}
