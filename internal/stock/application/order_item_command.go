package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/logger"
	"github.com/wyfcoding/talkstoque/pkg/utils"
)

// UpdateOrderItemCommand 订单行部分更新
type UpdateOrderItemCommand struct {
	ProductID *int64           `json:"produto_id"`
	Quantity  *int             `json:"quantidade"`
	UnitPrice *decimal.Decimal `json:"preco_unitario"`
}

// ListOrderItemsQuery 订单行列表参数，OrderID 为 0 时不过滤
type ListOrderItemsQuery struct {
	OrderID int64 `form:"pedido_id"`
	Skip    int   `form:"skip"`
	Limit   *int  `form:"limit"`
}

// OrderItemService 单独维护订单行，创建与删除经过库存台账
type OrderItemService struct {
	tx       domain.TxManager
	orders   domain.OrderRepository
	items    domain.OrderItemRepository
	products domain.ProductRepository
	ledger   *InventoryLedger
}

// NewOrderItemService 创建订单行服务
func NewOrderItemService(
	tx domain.TxManager,
	orders domain.OrderRepository,
	items domain.OrderItemRepository,
	products domain.ProductRepository,
	ledger *InventoryLedger,
) *OrderItemService {
	return &OrderItemService{tx: tx, orders: orders, items: items, products: products, ledger: ledger}
}

// CreateItem 向已存在订单追加一行并扣减库存
func (s *OrderItemService) CreateItem(ctx context.Context, orderID int64, in OrderItemInput) (*OrderItemDTO, error) {
	item, err := in.toItem(orderID)
	if err != nil {
		return nil, err
	}

	var product *domain.Product
	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.orders.Get(txCtx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.MissingReference(domain.EntityOrder, orderID)
		}
		if product, err = s.ledger.Reserve(txCtx, item); err != nil {
			return err
		}
		return s.items.Create(txCtx, item)
	})
	if err != nil {
		return nil, domain.AsStorageConflict("criar item de pedido", err)
	}

	item.ProductName = &product.Name
	logger.Info(ctx, "order item created", "pedido_item_id", item.ID, "pedido_id", orderID, "produto_id", item.ProductID)
	return toOrderItemDTO(item), nil
}

// GetItem 获取订单行
func (s *OrderItemService) GetItem(ctx context.Context, id int64) (*OrderItemDTO, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound(domain.EntityOrderItem, id)
	}
	if err := s.resolveNames(ctx, []*domain.OrderItem{item}); err != nil {
		return nil, err
	}
	return toOrderItemDTO(item), nil
}

// ListItems 列出订单行
func (s *OrderItemService) ListItems(ctx context.Context, query ListOrderItemsQuery) ([]*OrderItemDTO, error) {
	w := utils.NewWindow(query.Skip, query.Limit)
	items, err := s.items.List(ctx, query.OrderID, w.Skip, w.Limit)
	if err != nil {
		return nil, err
	}
	if err := s.resolveNames(ctx, items); err != nil {
		return nil, err
	}
	out := make([]*OrderItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toOrderItemDTO(it))
	}
	return out, nil
}

// UpdateItem 部分更新订单行，仅校验新商品存在，不调整库存
func (s *OrderItemService) UpdateItem(ctx context.Context, id int64, cmd UpdateOrderItemCommand) (*OrderItemDTO, error) {
	var item *domain.OrderItem
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		item, err = s.items.Get(txCtx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.NotFound(domain.EntityOrderItem, id)
		}
		if cmd.ProductID != nil {
			product, err := s.products.Get(txCtx, *cmd.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.MissingReference(domain.EntityProduct, *cmd.ProductID)
			}
		}
		if err := item.Apply(domain.OrderItemPatch{
			ProductID: cmd.ProductID,
			Quantity:  cmd.Quantity,
			UnitPrice: cmd.UnitPrice,
		}); err != nil {
			return err
		}
		return s.items.Update(txCtx, item)
	})
	if err != nil {
		return nil, domain.AsStorageConflict("atualizar item", err)
	}
	if err := s.resolveNames(ctx, []*domain.OrderItem{item}); err != nil {
		return nil, err
	}
	return toOrderItemDTO(item), nil
}

// DeleteItem 归还库存后删除订单行
func (s *OrderItemService) DeleteItem(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		item, err := s.items.Get(txCtx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.NotFound(domain.EntityOrderItem, id)
		}
		if err := s.ledger.Release(txCtx, item); err != nil {
			return err
		}
		return s.items.Delete(txCtx, id)
	})
	return domain.AsStorageConflict("deletar item", err)
}

func (s *OrderItemService) resolveNames(ctx context.Context, items []*domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	names, err := s.products.NamesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		if name, ok := names[it.ProductID]; ok {
			it.ProductName = &name
		}
	}
	return nil
}
