package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"gorm.io/gorm"
)

type saleRepository struct{ base }

// NewSaleRepository 创建销售仓储
func NewSaleRepository(db *gorm.DB) domain.SaleRepository {
	return &saleRepository{base{db: db}}
}

func (r *saleRepository) Create(ctx context.Context, s *domain.Sale) error {
	model := toSaleModel(s)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SaleAlreadyExists(s.OrderID)
		}
		return err
	}
	s.ID = model.ID
	s.SoldAt = model.SoldAt
	return nil
}

func (r *saleRepository) Get(ctx context.Context, id int64) (*domain.Sale, error) {
	var model SaleModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return toSale(&model), nil
}

func (r *saleRepository) GetByOrderID(ctx context.Context, orderID int64) (*domain.Sale, error) {
	var model SaleModel
	if err := r.getDB(ctx).Where("pedido_id = ?", orderID).First(&model).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return toSale(&model), nil
}

func (r *saleRepository) GetByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64]*domain.Sale, error) {
	out := make(map[int64]*domain.Sale, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	var models []SaleModel
	if err := r.getDB(ctx).Where("pedido_id IN ?", orderIDs).Find(&models).Error; err != nil {
		return nil, err
	}
	for i := range models {
		out[models[i].OrderID] = toSale(&models[i])
	}
	return out, nil
}

func (r *saleRepository) List(ctx context.Context, skip, limit int) ([]*domain.Sale, error) {
	var models []SaleModel
	if err := window(r.getDB(ctx).Order("id ASC"), skip, limit).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Sale, 0, len(models))
	for i := range models {
		out = append(out, toSale(&models[i]))
	}
	return out, nil
}

func (r *saleRepository) Update(ctx context.Context, s *domain.Sale) error {
	return r.getDB(ctx).Model(&SaleModel{}).Where("id = ?", s.ID).
		Select("funcionario_id", "valor_total", "forma_pagamento").
		Updates(toSaleModel(s)).Error
}

func (r *saleRepository) Delete(ctx context.Context, id int64) error {
	return checkAffected(r.getDB(ctx).Delete(&SaleModel{}, id), domain.EntitySale, id)
}

func (r *saleRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.getDB(ctx).Where("pedido_id = ?", orderID).Delete(&SaleModel{}).Error
}

func (r *saleRepository) NullifyEmployee(ctx context.Context, employeeID int64) error {
	return r.getDB(ctx).Model(&SaleModel{}).
		Where("funcionario_id = ?", employeeID).
		Update("funcionario_id", nil).Error
}

func (r *saleRepository) SumTotal(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	q := r.getDB(ctx).Model(&SaleModel{}).Select("COALESCE(SUM(valor_total), 0)")
	if from != nil {
		q = q.Where("data_venda >= ?", from.UTC())
	}
	if to != nil {
		q = q.Where("data_venda < ?", to.UTC())
	}
	var total decimal.Decimal
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}
