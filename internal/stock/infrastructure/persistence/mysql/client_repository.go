package mysql

import (
	"context"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/utils"
	"gorm.io/gorm"
)

const clientEmailTaken = "Email de cliente já registrado"

type clientRepository struct{ base }

// NewClientRepository 创建客户仓储
func NewClientRepository(db *gorm.DB) domain.ClientRepository {
	return &clientRepository{base{db: db}}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	model := toClientModel(c)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return translate(err, "cliente.email", clientEmailTaken)
	}
	c.ID = model.ID
	c.RegisteredAt = model.RegisteredAt
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id int64) (*domain.Client, error) {
	var model ClientModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return toClient(&model), nil
}

func (r *clientRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Client, error) {
	out := make(map[int64]*domain.Client, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var models []ClientModel
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	for i := range models {
		out[models[i].ID] = toClient(&models[i])
	}
	return out, nil
}

func (r *clientRepository) List(ctx context.Context, search string, skip, limit int) ([]*domain.Client, error) {
	q := r.getDB(ctx).Model(&ClientModel{})
	if search != "" {
		q = q.Where(likeClause("nome"), utils.ContainsPattern(search))
	}
	var models []ClientModel
	if err := window(q.Order("id ASC"), skip, limit).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Client, 0, len(models))
	for i := range models {
		out = append(out, toClient(&models[i]))
	}
	return out, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	err := r.getDB(ctx).Model(&ClientModel{}).Where("id = ?", c.ID).
		Select("nome", "email", "telefone", "endereco").
		Updates(toClientModel(c)).Error
	return translate(err, "cliente.email", clientEmailTaken)
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	return checkAffected(r.getDB(ctx).Delete(&ClientModel{}, id), domain.EntityClient, id)
}
