package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品（Produto），quantidade_estoque 为当前可用库存
type Product struct {
	ID           int64
	Name         string
	Description  *string
	Price        decimal.Decimal
	Stock        int
	Category     *string
	RegisteredAt time.Time
}

// NewProduct 创建商品并校验字段
func NewProduct(name string, description *string, price decimal.Decimal, stock int, category *string) (*Product, error) {
	p := &Product{
		Name:        strings.TrimSpace(name),
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    category,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate 校验商品字段
func (p *Product) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "nome", Reason: "obrigatório"}
	}
	if len(p.Name) > 255 {
		return &ValidationError{Field: "nome", Reason: "máximo de 255 caracteres"}
	}
	if err := validateMoney("preco", p.Price); err != nil {
		return err
	}
	if p.Stock < 0 {
		return &ValidationError{Field: "quantidade_estoque", Reason: "não pode ser negativa"}
	}
	if p.Category != nil && len(*p.Category) > 100 {
		return &ValidationError{Field: "categoria", Reason: "máximo de 100 caracteres"}
	}
	return nil
}

// Reserve 扣减库存，库存不足时返回 InsufficientStockError 且不修改
func (p *Product) Reserve(qty int) error {
	if qty <= 0 {
		return &ValidationError{Field: "quantidade", Reason: "deve ser maior que zero"}
	}
	if qty > p.Stock {
		return &InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Requested:   qty,
			Available:   p.Stock,
		}
	}
	p.Stock -= qty
	return nil
}

// Release 归还库存
func (p *Product) Release(qty int) {
	if qty > 0 {
		p.Stock += qty
	}
}

// ProductPatch 商品部分更新
type ProductPatch struct {
	Name        *string
	Description Optional[string]
	Price       *decimal.Decimal
	Stock       *int
	Category    Optional[string]
}

// Apply 逐字段应用补丁并校验
func (p *Product) Apply(patch ProductPatch) error {
	next := *p
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	patch.Description.applyTo(&next.Description)
	assign(patch.Price, &next.Price)
	assign(patch.Stock, &next.Stock)
	patch.Category.applyTo(&next.Category)
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

// Numeric(10,2) 上限
var maxMoney = decimal.New(1, 8)

func validateMoney(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return &ValidationError{Field: field, Reason: "não pode ser negativo"}
	}
	if v.GreaterThanOrEqual(maxMoney) {
		return &ValidationError{Field: field, Reason: "excede o valor máximo"}
	}
	if !v.Equal(v.Round(2)) {
		return &ValidationError{Field: field, Reason: "máximo de 2 casas decimais"}
	}
	return nil
}
