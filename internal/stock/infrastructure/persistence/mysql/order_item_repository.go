package mysql

import (
	"context"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"gorm.io/gorm"
)

type orderItemRepository struct{ base }

// NewOrderItemRepository 创建订单行仓储
func NewOrderItemRepository(db *gorm.DB) domain.OrderItemRepository {
	return &orderItemRepository{base{db: db}}
}

func (r *orderItemRepository) Create(ctx context.Context, it *domain.OrderItem) error {
	model := toOrderItemModel(it)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	it.ID = model.ID
	return nil
}

func (r *orderItemRepository) Get(ctx context.Context, id int64) (*domain.OrderItem, error) {
	var model OrderItemModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return toOrderItem(&model), nil
}

func (r *orderItemRepository) List(ctx context.Context, orderID int64, skip, limit int) ([]*domain.OrderItem, error) {
	q := r.getDB(ctx).Model(&OrderItemModel{})
	if orderID > 0 {
		q = q.Where("pedido_id = ?", orderID)
	}
	var models []OrderItemModel
	if err := window(q.Order("id ASC"), skip, limit).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.OrderItem, 0, len(models))
	for i := range models {
		out = append(out, toOrderItem(&models[i]))
	}
	return out, nil
}

func (r *orderItemRepository) ListByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]*domain.OrderItem, error) {
	out := make(map[int64][]*domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	var models []OrderItemModel
	if err := r.getDB(ctx).Where("pedido_id IN ?", orderIDs).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	for i := range models {
		it := toOrderItem(&models[i])
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, nil
}

func (r *orderItemRepository) Update(ctx context.Context, it *domain.OrderItem) error {
	return r.getDB(ctx).Model(&OrderItemModel{}).Where("id = ?", it.ID).
		Select("produto_id", "quantidade", "preco_unitario").
		Updates(toOrderItemModel(it)).Error
}

func (r *orderItemRepository) Delete(ctx context.Context, id int64) error {
	return checkAffected(r.getDB(ctx).Delete(&OrderItemModel{}, id), domain.EntityOrderItem, id)
}

func (r *orderItemRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.getDB(ctx).Where("pedido_id = ?", orderID).Delete(&OrderItemModel{}).Error
}

func (r *orderItemRepository) DeleteByProductID(ctx context.Context, productID int64) (int64, error) {
	res := r.getDB(ctx).Where("produto_id = ?", productID).Delete(&OrderItemModel{})
	return res.RowsAffected, res.Error
}
