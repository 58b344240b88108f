package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 订单状态，取值不做枚举限制
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pendente"
	OrderProcessing OrderStatus = "Processando"
	OrderShipped    OrderStatus = "Enviado"
	OrderDelivered  OrderStatus = "Entregue"
	OrderCancelled  OrderStatus = "Cancelado"
)

// ActiveOrderStatuses 计入“活跃订单”的状态
var ActiveOrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped}

// Order 订单（Pedido）
type Order struct {
	ID       int64
	ClientID int64
	PlacedAt time.Time
	Status   OrderStatus
	Total    decimal.Decimal
}

// NewOrder 创建订单，status 为空时默认 Pendente
func NewOrder(clientID int64, status OrderStatus, total decimal.Decimal) (*Order, error) {
	if status == "" {
		status = OrderPending
	}
	o := &Order{ClientID: clientID, Status: status, Total: total}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate 校验订单字段
func (o *Order) Validate() error {
	if o.ClientID <= 0 {
		return &ValidationError{Field: "cliente_id", Reason: "obrigatório"}
	}
	status := strings.TrimSpace(string(o.Status))
	if status == "" {
		return &ValidationError{Field: "status", Reason: "obrigatório"}
	}
	if len(status) > 50 {
		return &ValidationError{Field: "status", Reason: "máximo de 50 caracteres"}
	}
	return validateMoney("total", o.Total)
}

// OrderPatch 订单部分更新，不触发库存重算
type OrderPatch struct {
	ClientID *int64
	Status   *OrderStatus
	Total    *decimal.Decimal
}

// Apply 逐字段应用补丁并校验
func (o *Order) Apply(patch OrderPatch) error {
	next := *o
	assign(patch.ClientID, &next.ClientID)
	assign(patch.Status, &next.Status)
	assign(patch.Total, &next.Total)
	if err := next.Validate(); err != nil {
		return err
	}
	*o = next
	return nil
}

// OrderItem 订单行（PedidoItem），UnitPrice 为下单时的价格快照
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	// ProductName 读取时按 ProductID 解析，商品已删除时为 nil
	ProductName *string
}

// NewOrderItem 创建订单行并校验
func NewOrderItem(orderID, productID int64, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	it := &OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return it, nil
}

// Validate 校验订单行字段
func (it *OrderItem) Validate() error {
	if it.ProductID <= 0 {
		return &ValidationError{Field: "produto_id", Reason: "obrigatório"}
	}
	if it.Quantity <= 0 {
		return &ValidationError{Field: "quantidade", Reason: "deve ser maior que zero"}
	}
	return validateMoney("preco_unitario", it.UnitPrice)
}

// OrderItemPatch 订单行部分更新，不触发库存重算
type OrderItemPatch struct {
	ProductID *int64
	Quantity  *int
	UnitPrice *decimal.Decimal
}

// Apply 逐字段应用补丁并校验
func (it *OrderItem) Apply(patch OrderItemPatch) error {
	next := *it
	assign(patch.ProductID, &next.ProductID)
	assign(patch.Quantity, &next.Quantity)
	assign(patch.UnitPrice, &next.UnitPrice)
	if err := next.Validate(); err != nil {
		return err
	}
	*it = next
	return nil
}
