package application

import (
	"context"
	"strings"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/logger"
	"github.com/wyfcoding/talkstoque/pkg/utils"
)

const emailTaken = "Email já registrado"

// RegisterEmployeeCommand 员工注册
type RegisterEmployeeCommand struct {
	Name     string  `json:"nome" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"senha" binding:"required"`
	Role     *string `json:"cargo"`
}

// UpdateEmployeeCommand 员工部分更新
type UpdateEmployeeCommand struct {
	Name  *string                 `json:"nome"`
	Email *string                 `json:"email"`
	Role  domain.Optional[string] `json:"cargo"`
}

// EmployeeService 员工服务
type EmployeeService struct {
	tx        domain.TxManager
	employees domain.EmployeeRepository
	sales     domain.SaleRepository
	hasher    domain.PasswordHasher
}

// NewEmployeeService 创建员工服务
func NewEmployeeService(
	tx domain.TxManager,
	employees domain.EmployeeRepository,
	sales domain.SaleRepository,
	hasher domain.PasswordHasher,
) *EmployeeService {
	return &EmployeeService{tx: tx, employees: employees, sales: sales, hasher: hasher}
}

// Register 公开注册，邮箱重复时返回 AlreadyExists
func (s *EmployeeService) Register(ctx context.Context, cmd RegisterEmployeeCommand) (*EmployeeDTO, error) {
	if cmd.Password == "" {
		return nil, &domain.ValidationError{Field: "senha", Reason: "obrigatória"}
	}
	email := strings.TrimSpace(cmd.Email)
	existing, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.AlreadyExistsError{Constraint: "funcionario.email", Message: emailTaken}
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}
	e, err := domain.NewEmployee(cmd.Name, email, hash, cmd.Role)
	if err != nil {
		return nil, err
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, domain.AsStorageConflict("criar funcionário", err)
	}
	logger.Info(ctx, "employee registered", "funcionario_id", e.ID)
	return toEmployeeDTO(e), nil
}

// GetEmployee 获取员工
func (s *EmployeeService) GetEmployee(ctx context.Context, id int64) (*EmployeeDTO, error) {
	e, err := s.employees.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NotFound(domain.EntityEmployee, id)
	}
	return toEmployeeDTO(e), nil
}

// Me 当前登录员工
func (s *EmployeeService) Me(e *domain.Employee) *EmployeeDTO {
	return toEmployeeDTO(e)
}

// ListEmployees 列出员工，search 匹配姓名与邮箱
func (s *EmployeeService) ListEmployees(ctx context.Context, query ListQuery) ([]*EmployeeDTO, error) {
	w := utils.NewWindow(query.Skip, query.Limit)
	employees, err := s.employees.List(ctx, query.Search, w.Skip, w.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]*EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeDTO(e))
	}
	return out, nil
}

// UpdateEmployee 部分更新员工，修改邮箱时重新校验唯一性
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int64, cmd UpdateEmployeeCommand) (*EmployeeDTO, error) {
	var e *domain.Employee
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		if e, err = s.employees.Get(txCtx, id); err != nil {
			return err
		}
		if e == nil {
			return domain.NotFound(domain.EntityEmployee, id)
		}
		if cmd.Email != nil && strings.TrimSpace(*cmd.Email) != e.Email {
			other, err := s.employees.GetByEmail(txCtx, strings.TrimSpace(*cmd.Email))
			if err != nil {
				return err
			}
			if other != nil && other.ID != id {
				return &domain.AlreadyExistsError{Constraint: "funcionario.email", Message: emailTaken}
			}
		}
		if err := e.Apply(domain.EmployeePatch{Name: cmd.Name, Email: cmd.Email, Role: cmd.Role}); err != nil {
			return err
		}
		return s.employees.Update(txCtx, e)
	})
	if err != nil {
		return nil, domain.AsStorageConflict("atualizar funcionário", err)
	}
	return toEmployeeDTO(e), nil
}

// DeleteEmployee 删除员工，其销售记录的 funcionario_id 置空
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		e, err := s.employees.Get(txCtx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.NotFound(domain.EntityEmployee, id)
		}
		if err := s.sales.NullifyEmployee(txCtx, id); err != nil {
			return err
		}
		return s.employees.Delete(txCtx, id)
	})
	return domain.AsStorageConflict("deletar funcionário", err)
}
