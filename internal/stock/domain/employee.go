package domain

import (
	"strings"
	"time"
)

// Employee 员工（Funcionario），同时是登录主体
type Employee struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         *string
	HiredAt      time.Time
}

// NewEmployee 创建员工，passwordHash 为已哈希的密码
func NewEmployee(name, email, passwordHash string, role *string) (*Employee, error) {
	e := &Employee{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if e.PasswordHash == "" {
		return nil, &ValidationError{Field: "senha", Reason: "obrigatória"}
	}
	return e, nil
}

// Validate 校验员工字段
func (e *Employee) Validate() error {
	if e.Name == "" {
		return &ValidationError{Field: "nome", Reason: "obrigatório"}
	}
	if len(e.Name) > 255 {
		return &ValidationError{Field: "nome", Reason: "máximo de 255 caracteres"}
	}
	if e.Email == "" {
		return &ValidationError{Field: "email", Reason: "obrigatório"}
	}
	if len(e.Email) > 255 {
		return &ValidationError{Field: "email", Reason: "máximo de 255 caracteres"}
	}
	if e.Role != nil && len(*e.Role) > 100 {
		return &ValidationError{Field: "cargo", Reason: "máximo de 100 caracteres"}
	}
	return nil
}

// EmployeePatch 员工部分更新，密码不可在此修改
type EmployeePatch struct {
	Name  *string
	Email *string
	Role  Optional[string]
}

// Apply 逐字段应用补丁并校验
func (e *Employee) Apply(patch EmployeePatch) error {
	next := *e
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		next.Email = strings.TrimSpace(*patch.Email)
	}
	patch.Role.applyTo(&next.Role)
	if err := next.Validate(); err != nil {
		return err
	}
	*e = next
	return nil
}
