package application

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/logger"
	"github.com/wyfcoding/talkstoque/pkg/metrics"
)

// OrderItemInput 订单行输入
type OrderItemInput struct {
	ProductID int64            `json:"produto_id" binding:"required"`
	Quantity  int              `json:"quantidade" binding:"required"`
	UnitPrice *decimal.Decimal `json:"preco_unitario" binding:"required"`
}

func (in OrderItemInput) toItem(orderID int64) (*domain.OrderItem, error) {
	price, err := required("preco_unitario", in.UnitPrice)
	if err != nil {
		return nil, err
	}
	return domain.NewOrderItem(orderID, in.ProductID, in.Quantity, price)
}

// CreateOrderCommand 创建订单命令
type CreateOrderCommand struct {
	ClientID int64            `json:"cliente_id" binding:"required"`
	Status   *string          `json:"status"`
	Total    *decimal.Decimal `json:"total" binding:"required"`
	Items    []OrderItemInput `json:"itens" binding:"dive"`
}

// UpdateOrderCommand 订单部分更新
type UpdateOrderCommand struct {
	ClientID *int64           `json:"cliente_id"`
	Status   *string          `json:"status"`
	Total    *decimal.Decimal `json:"total"`
}

func (c UpdateOrderCommand) patch() domain.OrderPatch {
	p := domain.OrderPatch{ClientID: c.ClientID, Total: c.Total}
	if c.Status != nil {
		s := domain.OrderStatus(*c.Status)
		p.Status = &s
	}
	return p
}

// OrderCommandService 订单聚合写服务
type OrderCommandService struct {
	tx        domain.TxManager
	orders    domain.OrderRepository
	items     domain.OrderItemRepository
	clients   domain.ClientRepository
	sales     domain.SaleRepository
	ledger    *InventoryLedger
	query     *OrderQueryService
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewOrderCommandService 创建订单写服务
func NewOrderCommandService(
	tx domain.TxManager,
	orders domain.OrderRepository,
	items domain.OrderItemRepository,
	clients domain.ClientRepository,
	sales domain.SaleRepository,
	ledger *InventoryLedger,
	query *OrderQueryService,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *OrderCommandService {
	return &OrderCommandService{
		tx:        tx,
		orders:    orders,
		items:     items,
		clients:   clients,
		sales:     sales,
		ledger:    ledger,
		query:     query,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// CreateOrder 创建订单并按输入顺序逐行扣减库存，任一行失败则整体回滚
func (s *OrderCommandService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*OrderDTO, error) {
	defer logger.LogDuration(ctx, "create order", "client_id", cmd.ClientID, "items", len(cmd.Items))()

	status := domain.OrderPending
	if cmd.Status != nil && *cmd.Status != "" {
		status = domain.OrderStatus(*cmd.Status)
	}
	total, err := required("total", cmd.Total)
	if err != nil {
		return nil, err
	}
	order, err := domain.NewOrder(cmd.ClientID, status, total)
	if err != nil {
		return nil, err
	}
	items := make([]*domain.OrderItem, 0, len(cmd.Items))
	for _, in := range cmd.Items {
		it, err := in.toItem(0)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		client, err := s.clients.Get(txCtx, cmd.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.MissingReference(domain.EntityClient, cmd.ClientID)
		}

		if err := s.orders.Create(txCtx, order); err != nil {
			return err
		}
		for _, it := range items {
			it.OrderID = order.ID
			if _, err := s.ledger.Reserve(txCtx, it); err != nil {
				return err
			}
			if err := s.items.Create(txCtx, it); err != nil {
				return err
			}
		}

		if s.publisher == nil {
			return nil
		}
		event := domain.OrderCreatedEvent{
			OrderID:    order.ID,
			ClientID:   order.ClientID,
			Status:     order.Status,
			Total:      order.Total,
			ItemCount:  len(items),
			OccurredOn: s.now().UTC(),
		}
		return s.publisher.Publish(txCtx, domain.OrderCreatedEventType, orderKey(order.ID), event)
	})
	if err != nil {
		return nil, domain.AsStorageConflict("criar pedido", err)
	}

	s.metrics.RecordOrder("create")
	logger.Info(ctx, "order created", "pedido_id", order.ID, "cliente_id", order.ClientID, "itens", len(items))
	return s.query.GetOrder(ctx, order.ID)
}

// UpdateOrder 部分更新订单头，不重算库存
func (s *OrderCommandService) UpdateOrder(ctx context.Context, id int64, cmd UpdateOrderCommand) (*OrderDTO, error) {
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.orders.Get(txCtx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFound(domain.EntityOrder, id)
		}
		if cmd.ClientID != nil {
			client, err := s.clients.Get(txCtx, *cmd.ClientID)
			if err != nil {
				return err
			}
			if client == nil {
				return domain.MissingReference(domain.EntityClient, *cmd.ClientID)
			}
		}
		if err := order.Apply(cmd.patch()); err != nil {
			return err
		}
		return s.orders.Update(txCtx, order)
	})
	if err != nil {
		return nil, domain.AsStorageConflict("atualizar pedido", err)
	}
	return s.query.GetOrder(ctx, id)
}

// DeleteOrder 归还全部订单行库存后删除订单行、销售与订单
func (s *OrderCommandService) DeleteOrder(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		return s.deleteOrder(txCtx, id)
	})
	if err != nil {
		return domain.AsStorageConflict("deletar pedido", err)
	}
	logger.Info(ctx, "order deleted", "pedido_id", id)
	return nil
}

// deleteOrder 级联删除例程，必须在事务中调用
func (s *OrderCommandService) deleteOrder(ctx context.Context, id int64) error {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.NotFound(domain.EntityOrder, id)
	}

	grouped, err := s.items.ListByOrderIDs(ctx, []int64{id})
	if err != nil {
		return err
	}
	items := grouped[id]
	for _, it := range items {
		if err := s.ledger.Release(ctx, it); err != nil {
			return err
		}
	}
	if err := s.items.DeleteByOrderID(ctx, id); err != nil {
		return err
	}
	if err := s.sales.DeleteByOrderID(ctx, id); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.RecordOrder("delete")

	if s.publisher == nil {
		return nil
	}
	event := domain.OrderDeletedEvent{
		OrderID:       id,
		ClientID:      order.ClientID,
		ReleasedItems: len(items),
		OccurredOn:    s.now().UTC(),
	}
	return s.publisher.Publish(ctx, domain.OrderDeletedEventType, orderKey(id), event)
}

func orderKey(id int64) string {
	return "pedido:" + strconv.FormatInt(id, 10)
}
