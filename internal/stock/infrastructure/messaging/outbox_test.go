package messaging

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/db"
	"github.com/wyfcoding/talkstoque/pkg/metrics"
	"github.com/wyfcoding/talkstoque/pkg/mq"
)

type fakeProducer struct {
	mu   sync.Mutex
	sent []mq.Message
	err  error
}

func (f *fakeProducer) Send(_ context.Context, _ string, msgs ...mq.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msgs...)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func openDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Init(db.Config{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, AutoMigrate(context.Background(), d.DB))
	return d
}

func TestPublishFollowsTransaction(t *testing.T) {
	d := openDB(t)
	pub := NewOutboxPublisher(d.DB)

	err := d.WithTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, pub.Publish(ctx, domain.OrderCreatedEventType, "1", domain.OrderCreatedEvent{OrderID: 1}))
		return errors.New("rollback")
	})
	require.Error(t, err)

	var n int64
	require.NoError(t, d.Model(&OutboxMessage{}).Count(&n).Error)
	assert.Zero(t, n)

	require.NoError(t, d.WithTx(context.Background(), func(ctx context.Context) error {
		return pub.Publish(ctx, domain.OrderCreatedEventType, "1", domain.OrderCreatedEvent{OrderID: 1})
	}))
	require.NoError(t, d.Model(&OutboxMessage{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRelayOnceMarksSent(t *testing.T) {
	d := openDB(t)
	ctx := context.Background()
	pub := NewOutboxPublisher(d.DB)
	require.NoError(t, pub.Publish(ctx, domain.StockReservedEventType, "7", domain.StockReservedEvent{ProductID: 7, Quantity: 2}))
	require.NoError(t, pub.Publish(ctx, domain.StockReleasedEventType, "7", domain.StockReleasedEvent{ProductID: 7, Quantity: 2}))

	producer := &fakeProducer{}
	relay := NewOutboxRelay(d.DB, producer, metrics.New("stock"), RelayConfig{Topic: "stock.events"})

	n, err := relay.RelayOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, producer.sent, 2)
	assert.Equal(t, "7", producer.sent[0].Key)
	assert.Equal(t, domain.StockReservedEventType, producer.sent[0].Headers["event_type"])
	assert.JSONEq(t, `{"produto_id":7,"pedido_id":0,"quantidade":2,"quantidade_estoque":0,"occurred_on":"0001-01-01T00:00:00Z"}`, string(producer.sent[0].Value))

	n, err = relay.RelayOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRelayOnceKeepsPendingOnFailure(t *testing.T) {
	d := openDB(t)
	ctx := context.Background()
	require.NoError(t, NewOutboxPublisher(d.DB).Publish(ctx, domain.SaleRecordedEventType, "3", map[string]int{"venda_id": 3}))

	producer := &fakeProducer{err: errors.New("broker down")}
	relay := NewOutboxRelay(d.DB, producer, nil, RelayConfig{Topic: "stock.events"})

	_, err := relay.RelayOnce(ctx)
	require.Error(t, err)

	var msg OutboxMessage
	require.NoError(t, d.First(&msg).Error)
	assert.Equal(t, StatusPending, msg.Status)
	assert.Equal(t, 1, msg.Attempts)
	require.NotNil(t, msg.LastError)
	assert.Equal(t, "broker down", *msg.LastError)
}
