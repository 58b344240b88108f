package application

import (
	"context"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/utils"
)

// ListOrdersQuery 订单列表查询参数
type ListOrdersQuery struct {
	Skip         int    `form:"skip"`
	Limit        *int   `form:"limit"`
	StatusFilter string `form:"status_filter"`
	Search       string `form:"search"`
}

// OrderQueryService 订单读服务，按 id 组装客户、订单行（含商品名）与销售
type OrderQueryService struct {
	orders   domain.OrderRepository
	items    domain.OrderItemRepository
	clients  domain.ClientRepository
	products domain.ProductRepository
	sales    domain.SaleRepository
}

// NewOrderQueryService 创建订单读服务
func NewOrderQueryService(
	orders domain.OrderRepository,
	items domain.OrderItemRepository,
	clients domain.ClientRepository,
	products domain.ProductRepository,
	sales domain.SaleRepository,
) *OrderQueryService {
	return &OrderQueryService{
		orders:   orders,
		items:    items,
		clients:  clients,
		products: products,
		sales:    sales,
	}
}

// GetOrder 获取订单聚合
func (q *OrderQueryService) GetOrder(ctx context.Context, id int64) (*OrderDTO, error) {
	order, err := q.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound(domain.EntityOrder, id)
	}
	views, err := q.assemble(ctx, []*domain.Order{order})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ListOrders 列出订单聚合，按 id 升序
func (q *OrderQueryService) ListOrders(ctx context.Context, query ListOrdersQuery) ([]*OrderDTO, error) {
	w := utils.NewWindow(query.Skip, query.Limit)
	orders, err := q.orders.List(ctx, domain.OrderFilter{
		Status: query.StatusFilter,
		Search: query.Search,
	}, w.Skip, w.Limit)
	if err != nil {
		return nil, err
	}
	return q.assemble(ctx, orders)
}

func (q *OrderQueryService) assemble(ctx context.Context, orders []*domain.Order) ([]*OrderDTO, error) {
	out := make([]*OrderDTO, 0, len(orders))
	if len(orders) == 0 {
		return out, nil
	}

	orderIDs := make([]int64, 0, len(orders))
	clientIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		clientIDs = append(clientIDs, o.ClientID)
	}

	clients, err := q.clients.GetByIDs(ctx, clientIDs)
	if err != nil {
		return nil, err
	}
	itemsByOrder, err := q.items.ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	sales, err := q.sales.GetByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	var productIDs []int64
	for _, items := range itemsByOrder {
		for _, it := range items {
			productIDs = append(productIDs, it.ProductID)
		}
	}
	names, err := q.products.NamesByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		items := itemsByOrder[o.ID]
		dto := &OrderDTO{
			ID:       o.ID,
			ClientID: o.ClientID,
			Status:   string(o.Status),
			Total:    money(o.Total),
			PlacedAt: o.PlacedAt,
			Client:   toClientDTO(clients[o.ClientID]),
			Items:    make([]*OrderItemDTO, 0, len(items)),
			Sale:     toSaleDTO(sales[o.ID]),
		}
		for _, it := range items {
			if name, ok := names[it.ProductID]; ok {
				it.ProductName = &name
			}
			dto.Items = append(dto.Items, toOrderItemDTO(it))
		}
		out = append(out, dto)
	}
	return out, nil
}
