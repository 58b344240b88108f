package application

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
)

// ProductDTO 商品响应
type ProductDTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nome"`
	Description  *string   `json:"descricao"`
	Price        string    `json:"preco"`
	Stock        int       `json:"quantidade_estoque"`
	Category     *string   `json:"categoria"`
	RegisteredAt time.Time `json:"data_cadastro"`
}

// EmployeeDTO 员工响应，不含密码
type EmployeeDTO struct {
	ID      int64     `json:"id"`
	Name    string    `json:"nome"`
	Email   string    `json:"email"`
	Role    *string   `json:"cargo"`
	HiredAt time.Time `json:"data_contratacao"`
}

// ClientDTO 客户响应
type ClientDTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nome"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"telefone"`
	Address      *string   `json:"endereco"`
	RegisteredAt time.Time `json:"data_cadastro"`
}

// OrderItemDTO 订单行响应
type OrderItemDTO struct {
	ID          int64   `json:"id"`
	OrderID     int64   `json:"pedido_id"`
	ProductID   int64   `json:"produto_id"`
	Quantity    int     `json:"quantidade"`
	UnitPrice   string  `json:"preco_unitario"`
	ProductName *string `json:"nome_produto"`
}

// SaleDTO 销售响应
type SaleDTO struct {
	ID            int64     `json:"id"`
	OrderID       int64     `json:"pedido_id"`
	EmployeeID    *int64    `json:"funcionario_id"`
	TotalValue    string    `json:"valor_total"`
	PaymentMethod *string   `json:"forma_pagamento"`
	SoldAt        time.Time `json:"data_venda"`
}

// OrderDTO 订单聚合响应，内嵌客户、订单行与销售
type OrderDTO struct {
	ID       int64           `json:"id"`
	ClientID int64           `json:"cliente_id"`
	Status   string          `json:"status"`
	Total    string          `json:"total"`
	PlacedAt time.Time       `json:"data_pedido"`
	Client   *ClientDTO      `json:"cliente"`
	Items    []*OrderItemDTO `json:"itens"`
	Sale     *SaleDTO        `json:"venda"`
}

// StockMovementDTO 库存流水响应
type StockMovementDTO struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"produto_id"`
	OrderID     *int64    `json:"pedido_id"`
	OrderItemID *int64    `json:"pedido_item_id"`
	Delta       int       `json:"delta"`
	Balance     int       `json:"saldo"`
	Reason      string    `json:"motivo"`
	CreatedAt   time.Time `json:"criado_em"`
}

// TokenDTO 登录响应
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenInfoDTO 当前令牌信息
type TokenInfoDTO struct {
	Subject    string `json:"sub"`
	EmployeeID int64  `json:"id"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toProductDTO(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        money(p.Price),
		Stock:        p.Stock,
		Category:     p.Category,
		RegisteredAt: p.RegisteredAt,
	}
}

func toEmployeeDTO(e *domain.Employee) *EmployeeDTO {
	return &EmployeeDTO{
		ID:      e.ID,
		Name:    e.Name,
		Email:   e.Email,
		Role:    e.Role,
		HiredAt: e.HiredAt,
	}
}

func toClientDTO(c *domain.Client) *ClientDTO {
	if c == nil {
		return nil
	}
	return &ClientDTO{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		RegisteredAt: c.RegisteredAt,
	}
}

func toOrderItemDTO(it *domain.OrderItem) *OrderItemDTO {
	return &OrderItemDTO{
		ID:          it.ID,
		OrderID:     it.OrderID,
		ProductID:   it.ProductID,
		Quantity:    it.Quantity,
		UnitPrice:   money(it.UnitPrice),
		ProductName: it.ProductName,
	}
}

func toSaleDTO(s *domain.Sale) *SaleDTO {
	if s == nil {
		return nil
	}
	return &SaleDTO{
		ID:            s.ID,
		OrderID:       s.OrderID,
		EmployeeID:    s.EmployeeID,
		TotalValue:    money(s.TotalValue),
		PaymentMethod: s.PaymentMethod,
		SoldAt:        s.SoldAt,
	}
}

func toStockMovementDTO(m *domain.StockMovement) *StockMovementDTO {
	return &StockMovementDTO{
		ID:          m.ID,
		ProductID:   m.ProductID,
		OrderID:     m.OrderID,
		OrderItemID: m.OrderItemID,
		Delta:       m.Delta,
		Balance:     m.Balance,
		Reason:      string(m.Reason),
		CreatedAt:   m.CreatedAt,
	}
}

// required 取出必填字段的值，缺失时返回字段校验错误
func required[T any](field string, v *T) (T, error) {
	if v == nil {
		var zero T
		return zero, &domain.ValidationError{Field: field, Reason: "obrigatório"}
	}
	return *v, nil
}
