package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderCreatedEventType  = "stock.order.created"
	OrderDeletedEventType  = "stock.order.deleted"
	StockReservedEventType = "stock.inventory.reserved"
	StockReleasedEventType = "stock.inventory.released"
	SaleRecordedEventType  = "stock.sale.recorded"
)

// OrderCreatedEvent 订单创建事件
type OrderCreatedEvent struct {
	OrderID    int64           `json:"pedido_id"`
	ClientID   int64           `json:"cliente_id"`
	Status     OrderStatus     `json:"status"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"itens"`
	OccurredOn time.Time       `json:"occurred_on"`
}

// OrderDeletedEvent 订单删除事件
type OrderDeletedEvent struct {
	OrderID       int64     `json:"pedido_id"`
	ClientID      int64     `json:"cliente_id"`
	ReleasedItems int       `json:"itens_liberados"`
	OccurredOn    time.Time `json:"occurred_on"`
}

// StockReservedEvent 库存扣减事件
type StockReservedEvent struct {
	ProductID  int64     `json:"produto_id"`
	OrderID    int64     `json:"pedido_id"`
	Quantity   int       `json:"quantidade"`
	Balance    int       `json:"quantidade_estoque"`
	OccurredOn time.Time `json:"occurred_on"`
}

// StockReleasedEvent 库存归还事件
type StockReleasedEvent struct {
	ProductID  int64     `json:"produto_id"`
	OrderID    int64     `json:"pedido_id"`
	Quantity   int       `json:"quantidade"`
	Balance    int       `json:"quantidade_estoque"`
	OccurredOn time.Time `json:"occurred_on"`
}

// SaleRecordedEvent 销售创建事件
type SaleRecordedEvent struct {
	SaleID     int64           `json:"venda_id"`
	OrderID    int64           `json:"pedido_id"`
	EmployeeID *int64          `json:"funcionario_id"`
	TotalValue decimal.Decimal `json:"valor_total"`
	OccurredOn time.Time       `json:"occurred_on"`
}
