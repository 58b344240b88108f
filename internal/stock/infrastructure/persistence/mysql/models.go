package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
)

// ProductModel Produto 表映射
type ProductModel struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string          `gorm:"column:nome;type:varchar(255);not null"`
	Description  *string         `gorm:"column:descricao;type:text"`
	Price        decimal.Decimal `gorm:"column:preco;type:decimal(10,2);not null"`
	Stock        int             `gorm:"column:quantidade_estoque;not null"`
	Category     *string         `gorm:"column:categoria;type:varchar(100)"`
	RegisteredAt time.Time       `gorm:"column:data_cadastro;autoCreateTime"`
}

func (ProductModel) TableName() string { return "Produto" }

// EmployeeModel Funcionario 表映射
type EmployeeModel struct {
	ID       int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string    `gorm:"column:nome;type:varchar(255);not null"`
	Email    string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uk_funcionario_email"`
	Password string    `gorm:"column:senha;type:varchar(255);not null"`
	Role     *string   `gorm:"column:cargo;type:varchar(100)"`
	HiredAt  time.Time `gorm:"column:data_contratacao;autoCreateTime"`
}

func (EmployeeModel) TableName() string { return "Funcionario" }

// ClientModel Cliente 表映射，email 可空唯一
type ClientModel struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:nome;type:varchar(255);not null"`
	Email        *string   `gorm:"column:email;type:varchar(255);uniqueIndex:uk_cliente_email"`
	Phone        *string   `gorm:"column:telefone;type:varchar(20)"`
	Address      *string   `gorm:"column:endereco;type:text"`
	RegisteredAt time.Time `gorm:"column:data_cadastro;autoCreateTime"`
}

func (ClientModel) TableName() string { return "Cliente" }

// OrderModel Pedido 表映射
type OrderModel struct {
	ID       int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ClientID int64           `gorm:"column:cliente_id;not null;index:idx_pedido_cliente"`
	PlacedAt time.Time       `gorm:"column:data_pedido;autoCreateTime"`
	Status   string          `gorm:"column:status;type:varchar(50);default:'Pendente';index:idx_pedido_status"`
	Total    decimal.Decimal `gorm:"column:total;type:decimal(10,2);not null"`
}

func (OrderModel) TableName() string { return "Pedido" }

// OrderItemModel PedidoItem 表映射
type OrderItemModel struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:pedido_id;not null;index:idx_item_pedido"`
	ProductID int64           `gorm:"column:produto_id;not null;index:idx_item_produto"`
	Quantity  int             `gorm:"column:quantidade;not null"`
	UnitPrice decimal.Decimal `gorm:"column:preco_unitario;type:decimal(10,2);not null"`
}

func (OrderItemModel) TableName() string { return "PedidoItem" }

// SaleModel Venda 表映射，每个订单至多一条
type SaleModel struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID       int64           `gorm:"column:pedido_id;not null;uniqueIndex:uk_venda_pedido"`
	EmployeeID    *int64          `gorm:"column:funcionario_id;index:idx_venda_funcionario"`
	SoldAt        time.Time       `gorm:"column:data_venda;autoCreateTime;index:idx_venda_data"`
	TotalValue    decimal.Decimal `gorm:"column:valor_total;type:decimal(10,2);not null"`
	PaymentMethod *string         `gorm:"column:forma_pagamento;type:varchar(50)"`
}

func (SaleModel) TableName() string { return "Venda" }

// StockMovementModel MovimentoEstoque 表映射，仅追加
type StockMovementModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID   int64     `gorm:"column:produto_id;not null;index:idx_movimento_produto"`
	OrderID     *int64    `gorm:"column:pedido_id"`
	OrderItemID *int64    `gorm:"column:pedido_item_id"`
	Delta       int       `gorm:"column:delta;not null"`
	Balance     int       `gorm:"column:saldo;not null"`
	Reason      string    `gorm:"column:motivo;type:varchar(20);not null"`
	CreatedAt   time.Time `gorm:"column:criado_em;autoCreateTime"`
}

func (StockMovementModel) TableName() string { return "MovimentoEstoque" }

func toProductModel(p *domain.Product) *ProductModel {
	return &ProductModel{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.Round(2),
		Stock:        p.Stock,
		Category:     p.Category,
		RegisteredAt: p.RegisteredAt,
	}
}

func toProduct(m *ProductModel) *domain.Product {
	return &domain.Product{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Stock:        m.Stock,
		Category:     m.Category,
		RegisteredAt: m.RegisteredAt,
	}
}

func toEmployeeModel(e *domain.Employee) *EmployeeModel {
	return &EmployeeModel{
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.Email,
		Password: e.PasswordHash,
		Role:     e.Role,
		HiredAt:  e.HiredAt,
	}
}

func toEmployee(m *EmployeeModel) *domain.Employee {
	return &domain.Employee{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.Password,
		Role:         m.Role,
		HiredAt:      m.HiredAt,
	}
}

func toClientModel(c *domain.Client) *ClientModel {
	return &ClientModel{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		RegisteredAt: c.RegisteredAt,
	}
}

func toClient(m *ClientModel) *domain.Client {
	return &domain.Client{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Address:      m.Address,
		RegisteredAt: m.RegisteredAt,
	}
}

func toOrderModel(o *domain.Order) *OrderModel {
	return &OrderModel{
		ID:       o.ID,
		ClientID: o.ClientID,
		PlacedAt: o.PlacedAt,
		Status:   string(o.Status),
		Total:    o.Total.Round(2),
	}
}

func toOrder(m *OrderModel) *domain.Order {
	return &domain.Order{
		ID:       m.ID,
		ClientID: m.ClientID,
		PlacedAt: m.PlacedAt,
		Status:   domain.OrderStatus(m.Status),
		Total:    m.Total,
	}
}

func toOrderItemModel(it *domain.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:        it.ID,
		OrderID:   it.OrderID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice.Round(2),
	}
}

func toOrderItem(m *OrderItemModel) *domain.OrderItem {
	return &domain.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
	}
}

func toSaleModel(s *domain.Sale) *SaleModel {
	return &SaleModel{
		ID:            s.ID,
		OrderID:       s.OrderID,
		EmployeeID:    s.EmployeeID,
		SoldAt:        s.SoldAt,
		TotalValue:    s.TotalValue.Round(2),
		PaymentMethod: s.PaymentMethod,
	}
}

func toSale(m *SaleModel) *domain.Sale {
	return &domain.Sale{
		ID:            m.ID,
		OrderID:       m.OrderID,
		EmployeeID:    m.EmployeeID,
		SoldAt:        m.SoldAt,
		TotalValue:    m.TotalValue,
		PaymentMethod: m.PaymentMethod,
	}
}

func toStockMovementModel(mv *domain.StockMovement) *StockMovementModel {
	return &StockMovementModel{
		ID:          mv.ID,
		ProductID:   mv.ProductID,
		OrderID:     mv.OrderID,
		OrderItemID: mv.OrderItemID,
		Delta:       mv.Delta,
		Balance:     mv.Balance,
		Reason:      string(mv.Reason),
		CreatedAt:   mv.CreatedAt,
	}
}

func toStockMovement(m *StockMovementModel) *domain.StockMovement {
	return &domain.StockMovement{
		ID:          m.ID,
		ProductID:   m.ProductID,
		OrderID:     m.OrderID,
		OrderItemID: m.OrderItemID,
		Delta:       m.Delta,
		Balance:     m.Balance,
		Reason:      domain.MovementReason(m.Reason),
		CreatedAt:   m.CreatedAt,
	}
}
