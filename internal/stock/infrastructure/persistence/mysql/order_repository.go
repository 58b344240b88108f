package mysql

import (
	"context"
	"strconv"
	"strings"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/utils"
	"gorm.io/gorm"
)

type orderRepository struct{ base }

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{base{db: db}}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	model := toOrderModel(o)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	o.ID = model.ID
	o.PlacedAt = model.PlacedAt
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var model OrderModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return toOrder(&model), nil
}

// List search 为整数时匹配订单 id 或客户名，否则只匹配客户名
func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter, skip, limit int) ([]*domain.Order, error) {
	db := r.getDB(ctx)
	q := db.Model(&OrderModel{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		byClientName := db.Session(&gorm.Session{NewDB: true}).
			Model(&ClientModel{}).
			Select("id").
			Where(likeClause("nome"), utils.ContainsPattern(filter.Search))
		if id, err := strconv.ParseInt(strings.TrimSpace(filter.Search), 10, 64); err == nil {
			q = q.Where("id = ? OR cliente_id IN (?)", id, byClientName)
		} else {
			q = q.Where("cliente_id IN (?)", byClientName)
		}
	}

	var models []OrderModel
	if err := window(q.Order("id ASC"), skip, limit).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Order, 0, len(models))
	for i := range models {
		out = append(out, toOrder(&models[i]))
	}
	return out, nil
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	return r.getDB(ctx).Model(&OrderModel{}).Where("id = ?", o.ID).
		Select("cliente_id", "status", "total").
		Updates(toOrderModel(o)).Error
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	return checkAffected(r.getDB(ctx).Delete(&OrderModel{}, id), domain.EntityOrder, id)
}

func (r *orderRepository) ListIDsByClient(ctx context.Context, clientID int64) ([]int64, error) {
	var ids []int64
	err := r.getDB(ctx).Model(&OrderModel{}).
		Where("cliente_id = ?", clientID).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *orderRepository) CountByStatuses(ctx context.Context, statuses []domain.OrderStatus) (int64, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	var n int64
	err := r.getDB(ctx).Model(&OrderModel{}).Where("status IN ?", values).Count(&n).Error
	return n, err
}
