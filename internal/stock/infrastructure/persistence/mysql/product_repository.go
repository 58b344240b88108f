package mysql

import (
	"context"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct{ base }

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{base{db: db}}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	model := toProductModel(p)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return err
	}
	p.ID = model.ID
	p.RegisteredAt = model.RegisteredAt
	return nil
}

func (r *productRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return r.get(r.getDB(ctx), id)
}

func (r *productRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return r.get(r.getDB(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *productRepository) get(db *gorm.DB, id int64) (*domain.Product, error) {
	var model ProductModel
	if err := db.First(&model, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return toProduct(&model), nil
}

func (r *productRepository) List(ctx context.Context, search string, skip, limit int) ([]*domain.Product, error) {
	q := r.getDB(ctx).Model(&ProductModel{})
	if search != "" {
		pattern := utils.ContainsPattern(search)
		q = q.Where(
			likeClause("nome")+" OR "+likeClause("descricao")+" OR "+likeClause("categoria"),
			pattern, pattern, pattern,
		)
	}
	var models []ProductModel
	if err := window(q.Order("id ASC"), skip, limit).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Product, 0, len(models))
	for i := range models {
		out = append(out, toProduct(&models[i]))
	}
	return out, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	model := toProductModel(p)
	return r.getDB(ctx).Model(&ProductModel{}).Where("id = ?", p.ID).
		Select("nome", "descricao", "preco", "quantidade_estoque", "categoria").
		Updates(model).Error
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return checkAffected(r.getDB(ctx).Delete(&ProductModel{}, id), domain.EntityProduct, id)
}

func (r *productRepository) DecrementStock(ctx context.Context, id int64, qty int) (bool, error) {
	res := r.getDB(ctx).Model(&ProductModel{}).
		Where("id = ? AND quantidade_estoque >= ?", id, qty).
		Update("quantidade_estoque", gorm.Expr("quantidade_estoque - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id int64, qty int) error {
	return r.getDB(ctx).Model(&ProductModel{}).
		Where("id = ?", id).
		Update("quantidade_estoque", gorm.Expr("quantidade_estoque + ?", qty)).Error
}

func (r *productRepository) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []struct {
		ID   int64
		Nome string
	}
	if err := r.getDB(ctx).Model(&ProductModel{}).Select("id", "nome").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Nome
	}
	return names, nil
}

func (r *productRepository) TotalStock(ctx context.Context) (int64, error) {
	var total int64
	err := r.getDB(ctx).Model(&ProductModel{}).
		Select("COALESCE(SUM(quantidade_estoque), 0)").
		Row().Scan(&total)
	return total, err
}
