package messaging

import (
	"context"
	"time"

	"github.com/wyfcoding/talkstoque/pkg/logger"
	"github.com/wyfcoding/talkstoque/pkg/metrics"
	"github.com/wyfcoding/talkstoque/pkg/mq"
	"gorm.io/gorm"
)

// RelayConfig 投递配置
type RelayConfig struct {
	Topic     string
	Interval  time.Duration
	BatchSize int
}

// OutboxRelay 轮询 outbox 表并投递到 Kafka，失败的消息留待下一轮
type OutboxRelay struct {
	db       *gorm.DB
	producer mq.Producer
	metrics  *metrics.Metrics
	cfg      RelayConfig
}

// NewOutboxRelay 创建投递器
func NewOutboxRelay(db *gorm.DB, producer mq.Producer, m *metrics.Metrics, cfg RelayConfig) *OutboxRelay {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &OutboxRelay{db: db, producer: producer, metrics: m, cfg: cfg}
}

// Run 阻塞运行直到 ctx 取消
func (r *OutboxRelay) Run(ctx context.Context) error {
	logger.Info(ctx, "outbox relay started", "topic", r.cfg.Topic, "interval", r.cfg.Interval)
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(context.Background(), "outbox relay stopped")
			return nil
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
				logger.Error(ctx, "outbox relay failed", "error", err)
			}
		}
	}
}

// RelayOnce 投递一批待发送消息，返回成功条数
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	var batch []OutboxMessage
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("criado_em ASC").
		Limit(r.cfg.BatchSize).
		Find(&batch).Error
	if err != nil {
		return 0, err
	}
	defer r.refreshPending(ctx)
	if len(batch) == 0 {
		return 0, nil
	}

	msgs := make([]mq.Message, 0, len(batch))
	ids := make([]string, 0, len(batch))
	for _, m := range batch {
		msgs = append(msgs, mq.Message{
			Key:     m.Key,
			Value:   []byte(m.Payload),
			Headers: map[string]string{"event_type": m.EventType, "message_id": m.ID},
		})
		ids = append(ids, m.ID)
	}

	if err := r.producer.Send(ctx, r.cfg.Topic, msgs...); err != nil {
		r.metrics.RecordRelay("error", len(batch))
		reason := err.Error()
		if uerr := r.db.WithContext(ctx).Model(&OutboxMessage{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"tentativas":  gorm.Expr("tentativas + 1"),
				"ultimo_erro": reason,
			}).Error; uerr != nil {
			logger.Warn(ctx, "failed to record outbox attempt", "error", uerr)
		}
		return 0, err
	}

	now := time.Now().UTC()
	if err := r.db.WithContext(ctx).Model(&OutboxMessage{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": StatusSent, "enviado_em": now}).Error; err != nil {
		return 0, err
	}
	r.metrics.RecordRelay("ok", len(batch))
	logger.Debug(ctx, "outbox batch relayed", "count", len(batch))
	return len(batch), nil
}

func (r *OutboxRelay) refreshPending(ctx context.Context) {
	if r.metrics == nil {
		return
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(&OutboxMessage{}).Where("status = ?", StatusPending).Count(&n).Error; err == nil {
		r.metrics.SetOutboxPending(n)
	}
}
