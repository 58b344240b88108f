// Package messaging 基于 Outbox 模式的事件发布与投递
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/contextx"
	"gorm.io/gorm"
)

const (
	StatusPending = "pendente"
	StatusSent    = "enviado"
)

// OutboxMessage OutboxMensagem 表映射
type OutboxMessage struct {
	ID        string     `gorm:"column:id;type:varchar(36);primaryKey"`
	EventType string     `gorm:"column:event_type;type:varchar(100);not null"`
	Key       string     `gorm:"column:chave;type:varchar(100)"`
	Payload   string     `gorm:"column:payload;type:text;not null"`
	Status    string     `gorm:"column:status;type:varchar(20);not null;index:idx_outbox_status"`
	Attempts  int        `gorm:"column:tentativas;not null;default:0"`
	LastError *string    `gorm:"column:ultimo_erro;type:text"`
	CreatedAt time.Time  `gorm:"column:criado_em;autoCreateTime;index:idx_outbox_status"`
	SentAt    *time.Time `gorm:"column:enviado_em"`
}

func (OutboxMessage) TableName() string { return "OutboxMensagem" }

// AutoMigrate 创建 outbox 表
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&OutboxMessage{})
}

// outboxPublisher 将事件写入调用方当前事务中的 outbox 表
type outboxPublisher struct {
	db *gorm.DB
}

// NewOutboxPublisher 创建 OutboxPublisher 实例
func NewOutboxPublisher(db *gorm.DB) domain.EventPublisher {
	return &outboxPublisher{db: db}
}

// Publish 事件随业务数据一起提交或回滚
func (p *outboxPublisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	msg := &OutboxMessage{
		ID:        uuid.NewString(),
		EventType: eventType,
		Key:       key,
		Payload:   string(data),
		Status:    StatusPending,
	}
	return p.getDB(ctx).Create(msg).Error
}

func (p *outboxPublisher) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return p.db.WithContext(ctx)
}
