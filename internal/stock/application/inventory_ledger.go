package application

import (
	"context"
	"strconv"
	"time"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/logger"
	"github.com/wyfcoding/talkstoque/pkg/metrics"
)

// InventoryLedger 库存台账：订单行创建时扣减，删除时归还
// 所有方法必须在调用方事务内执行
type InventoryLedger struct {
	products  domain.ProductRepository
	movements domain.StockMovementRepository
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewInventoryLedger 创建库存台账
func NewInventoryLedger(
	products domain.ProductRepository,
	movements domain.StockMovementRepository,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *InventoryLedger {
	return &InventoryLedger{
		products:  products,
		movements: movements,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// Reserve 锁定商品行并扣减订单行数量，返回扣减后的商品
func (l *InventoryLedger) Reserve(ctx context.Context, item *domain.OrderItem) (*domain.Product, error) {
	product, err := l.products.GetForUpdate(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.MissingReference(domain.EntityProduct, item.ProductID)
	}

	if err := product.Reserve(item.Quantity); err != nil {
		l.metrics.RecordRejection()
		return nil, err
	}

	ok, err := l.products.DecrementStock(ctx, product.ID, item.Quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		// 锁未生效的驱动上被并发扣减
		l.metrics.RecordRejection()
		available := 0
		if current, err := l.products.Get(ctx, product.ID); err == nil && current != nil {
			available = current.Stock
		}
		return nil, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   item.Quantity,
			Available:   available,
		}
	}

	if err := l.record(ctx, product, item, -item.Quantity, domain.MovementReserve); err != nil {
		return nil, err
	}
	l.metrics.RecordReserve(item.Quantity)

	if l.publisher != nil {
		event := domain.StockReservedEvent{
			ProductID:  product.ID,
			OrderID:    item.OrderID,
			Quantity:   item.Quantity,
			Balance:    product.Stock,
			OccurredOn: l.now().UTC(),
		}
		if err := l.publisher.Publish(ctx, domain.StockReservedEventType, productKey(product.ID), event); err != nil {
			return nil, err
		}
	}
	return product, nil
}

// Release 归还订单行数量；商品已删除时跳过
func (l *InventoryLedger) Release(ctx context.Context, item *domain.OrderItem) error {
	product, err := l.products.GetForUpdate(ctx, item.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		logger.Warn(ctx, "release skipped, product no longer exists",
			"produto_id", item.ProductID,
			"pedido_item_id", item.ID,
			"quantidade", item.Quantity,
		)
		return nil
	}

	if err := l.products.IncrementStock(ctx, product.ID, item.Quantity); err != nil {
		return err
	}
	product.Release(item.Quantity)

	if err := l.record(ctx, product, item, item.Quantity, domain.MovementRelease); err != nil {
		return err
	}
	l.metrics.RecordRelease(item.Quantity)

	if l.publisher != nil {
		event := domain.StockReleasedEvent{
			ProductID:  product.ID,
			OrderID:    item.OrderID,
			Quantity:   item.Quantity,
			Balance:    product.Stock,
			OccurredOn: l.now().UTC(),
		}
		return l.publisher.Publish(ctx, domain.StockReleasedEventType, productKey(product.ID), event)
	}
	return nil
}

func (l *InventoryLedger) record(ctx context.Context, product *domain.Product, item *domain.OrderItem, delta int, reason domain.MovementReason) error {
	mv := &domain.StockMovement{
		ProductID: product.ID,
		Delta:     delta,
		Balance:   product.Stock,
		Reason:    reason,
	}
	if item.OrderID != 0 {
		orderID := item.OrderID
		mv.OrderID = &orderID
	}
	if item.ID != 0 {
		itemID := item.ID
		mv.OrderItemID = &itemID
	}
	return l.movements.Append(ctx, mv)
}

func productKey(id int64) string {
	return "produto:" + strconv.FormatInt(id, 10)
}
