package mysql

import (
	"context"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"gorm.io/gorm"
)

type stockMovementRepository struct{ base }

// NewStockMovementRepository 创建库存流水仓储
func NewStockMovementRepository(db *gorm.DB) domain.StockMovementRepository {
	return &stockMovementRepository{base{db: db}}
}

func (r *stockMovementRepository) Append(ctx context.Context, m *domain.StockMovement) error {
	model := toStockMovementModel(m)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	return nil
}

func (r *stockMovementRepository) ListByProduct(ctx context.Context, productID int64, skip, limit int) ([]*domain.StockMovement, error) {
	var models []StockMovementModel
	q := r.getDB(ctx).Where("produto_id = ?", productID).Order("id ASC")
	if err := window(q, skip, limit).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.StockMovement, 0, len(models))
	for i := range models {
		out = append(out, toStockMovement(&models[i]))
	}
	return out, nil
}
