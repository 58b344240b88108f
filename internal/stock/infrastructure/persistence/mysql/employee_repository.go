package mysql

import (
	"context"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/utils"
	"gorm.io/gorm"
)

const emailTaken = "Email já registrado"

type employeeRepository struct{ base }

// NewEmployeeRepository 创建员工仓储
func NewEmployeeRepository(db *gorm.DB) domain.EmployeeRepository {
	return &employeeRepository{base{db: db}}
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	model := toEmployeeModel(e)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return translate(err, "funcionario.email", emailTaken)
	}
	e.ID = model.ID
	e.HiredAt = model.HiredAt
	return nil
}

func (r *employeeRepository) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	var model EmployeeModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return toEmployee(&model), nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var model EmployeeModel
	if err := r.getDB(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return toEmployee(&model), nil
}

func (r *employeeRepository) List(ctx context.Context, search string, skip, limit int) ([]*domain.Employee, error) {
	q := r.getDB(ctx).Model(&EmployeeModel{})
	if search != "" {
		pattern := utils.ContainsPattern(search)
		q = q.Where(likeClause("nome")+" OR "+likeClause("email"), pattern, pattern)
	}
	var models []EmployeeModel
	if err := window(q.Order("id ASC"), skip, limit).Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Employee, 0, len(models))
	for i := range models {
		out = append(out, toEmployee(&models[i]))
	}
	return out, nil
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	err := r.getDB(ctx).Model(&EmployeeModel{}).Where("id = ?", e.ID).
		Select("nome", "email", "cargo").
		Updates(toEmployeeModel(e)).Error
	return translate(err, "funcionario.email", emailTaken)
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	return checkAffected(r.getDB(ctx).Delete(&EmployeeModel{}, id), domain.EntityEmployee, id)
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.getDB(ctx).Model(&EmployeeModel{}).Count(&n).Error
	return n, err
}
