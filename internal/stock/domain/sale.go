package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale 销售（Venda），每个订单至多一条
type Sale struct {
	ID            int64
	OrderID       int64
	EmployeeID    *int64
	SoldAt        time.Time
	TotalValue    decimal.Decimal
	PaymentMethod *string
}

// NewSale 创建销售并校验
func NewSale(orderID int64, employeeID *int64, totalValue decimal.Decimal, paymentMethod *string) (*Sale, error) {
	s := &Sale{
		OrderID:       orderID,
		EmployeeID:    employeeID,
		TotalValue:    totalValue,
		PaymentMethod: paymentMethod,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate 校验销售字段
func (s *Sale) Validate() error {
	if s.OrderID <= 0 {
		return &ValidationError{Field: "pedido_id", Reason: "obrigatório"}
	}
	if s.PaymentMethod != nil && len(*s.PaymentMethod) > 50 {
		return &ValidationError{Field: "forma_pagamento", Reason: "máximo de 50 caracteres"}
	}
	return validateMoney("valor_total", s.TotalValue)
}

// SalePatch 销售部分更新，pedido_id 不可修改
type SalePatch struct {
	EmployeeID    Optional[int64]
	TotalValue    *decimal.Decimal
	PaymentMethod Optional[string]
}

// Apply 逐字段应用补丁并校验
func (s *Sale) Apply(patch SalePatch) error {
	next := *s
	patch.EmployeeID.applyTo(&next.EmployeeID)
	assign(patch.TotalValue, &next.TotalValue)
	patch.PaymentMethod.applyTo(&next.PaymentMethod)
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}
