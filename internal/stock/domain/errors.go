package domain

import (
	"errors"
	"fmt"
)

// Entity 实体名称，用于错误信息
type Entity string

const (
	EntityProduct   Entity = "Produto"
	EntityEmployee  Entity = "Funcionário"
	EntityClient    Entity = "Cliente"
	EntityOrder     Entity = "Pedido"
	EntityOrderItem Entity = "Item de pedido"
	EntitySale      Entity = "Venda"
)

func (e Entity) notFoundWord() string {
	if e == EntitySale {
		return "não encontrada"
	}
	return "não encontrado"
}

// ErrUnauthorized 凭证缺失、无效或过期
var ErrUnauthorized = errors.New("Não foi possível validar as credenciais")

// ErrBadCredentials 登录邮箱或密码错误，errors.Is(err, ErrUnauthorized) 成立
var ErrBadCredentials error = badCredentials{}

type badCredentials struct{}

func (badCredentials) Error() string { return "Email ou senha incorretos" }

func (badCredentials) Is(target error) bool { return target == ErrUnauthorized }

// NotFoundError 实体不存在
// Referenced 为 true 表示该实体是被其他记录引用的（如创建订单时的 cliente_id）
type NotFoundError struct {
	Entity     Entity
	ID         int64
	Referenced bool
}

func (e *NotFoundError) Error() string {
	if e.Referenced {
		return fmt.Sprintf("%s com id %d %s.", e.Entity, e.ID, e.Entity.notFoundWord())
	}
	return fmt.Sprintf("%s %s", e.Entity, e.Entity.notFoundWord())
}

// NotFound 按路径 id 访问不存在的实体
func NotFound(entity Entity, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// MissingReference 引用的实体不存在
func MissingReference(entity Entity, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id, Referenced: true}
}

// InsufficientStockError 库存不足
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Estoque insuficiente para %s.", e.ProductName)
}

// AlreadyExistsError 唯一约束冲突
type AlreadyExistsError struct {
	Constraint string
	Message    string
}

func (e *AlreadyExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("registro duplicado: %s", e.Constraint)
}

// ValidationError 字段校验失败
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// StorageConflictError 存储层失败导致事务回滚
type StorageConflictError struct {
	Op     string
	Reason error
}

func (e *StorageConflictError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("Erro de armazenamento: %v", e.Reason)
	}
	return fmt.Sprintf("Erro ao %s: %v", e.Op, e.Reason)
}

func (e *StorageConflictError) Unwrap() error {
	return e.Reason
}

// IsDomainError 判断 err 是否为已分类的业务错误
func IsDomainError(err error) bool {
	var (
		nf  *NotFoundError
		is  *InsufficientStockError
		ae  *AlreadyExistsError
		ve  *ValidationError
		sce *StorageConflictError
	)
	return errors.As(err, &nf) || errors.As(err, &is) || errors.As(err, &ae) ||
		errors.As(err, &ve) || errors.As(err, &sce) || errors.Is(err, ErrUnauthorized)
}

// AsStorageConflict 将未分类的错误包装为 StorageConflictError，已分类的错误原样返回
func AsStorageConflict(op string, err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return &StorageConflictError{Op: op, Reason: err}
}

// SaleAlreadyExists 订单已存在销售
func SaleAlreadyExists(orderID int64) *AlreadyExistsError {
	return &AlreadyExistsError{
		Constraint: "venda.pedido_id",
		Message:    fmt.Sprintf("Pedido com id %d já possui uma venda associada.", orderID),
	}
}
