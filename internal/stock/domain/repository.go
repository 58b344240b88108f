package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TxManager 事务管理，fn 收到的 ctx 携带事务句柄，返回错误时回滚
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProductRepository 商品仓储，Get 系列在记录不存在时返回 nil, nil
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	Get(ctx context.Context, id int64) (*Product, error)
	// GetForUpdate 读取并锁定商品行，需在事务中调用
	GetForUpdate(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, search string, skip, limit int) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
	// DecrementStock 条件扣减，库存不足时返回 false
	DecrementStock(ctx context.Context, id int64, qty int) (bool, error)
	IncrementStock(ctx context.Context, id int64, qty int) error
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
	TotalStock(ctx context.Context) (int64, error)
}

// EmployeeRepository 员工仓储
type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	Get(ctx context.Context, id int64) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context, search string, skip, limit int) ([]*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// ClientRepository 客户仓储
type ClientRepository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id int64) (*Client, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*Client, error)
	List(ctx context.Context, search string, skip, limit int) ([]*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id int64) error
}

// OrderFilter 订单列表过滤条件
type OrderFilter struct {
	Status string
	Search string
}

// OrderRepository 订单仓储
type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context, filter OrderFilter, skip, limit int) ([]*Order, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id int64) error
	ListIDsByClient(ctx context.Context, clientID int64) ([]int64, error)
	CountByStatuses(ctx context.Context, statuses []OrderStatus) (int64, error)
}

// OrderItemRepository 订单行仓储
type OrderItemRepository interface {
	Create(ctx context.Context, it *OrderItem) error
	Get(ctx context.Context, id int64) (*OrderItem, error)
	// List orderID 为 0 时不过滤
	List(ctx context.Context, orderID int64, skip, limit int) ([]*OrderItem, error)
	ListByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64][]*OrderItem, error)
	Update(ctx context.Context, it *OrderItem) error
	Delete(ctx context.Context, id int64) error
	DeleteByOrderID(ctx context.Context, orderID int64) error
	DeleteByProductID(ctx context.Context, productID int64) (int64, error)
}

// SaleRepository 销售仓储
type SaleRepository interface {
	Create(ctx context.Context, s *Sale) error
	Get(ctx context.Context, id int64) (*Sale, error)
	GetByOrderID(ctx context.Context, orderID int64) (*Sale, error)
	GetByOrderIDs(ctx context.Context, orderIDs []int64) (map[int64]*Sale, error)
	List(ctx context.Context, skip, limit int) ([]*Sale, error)
	Update(ctx context.Context, s *Sale) error
	Delete(ctx context.Context, id int64) error
	DeleteByOrderID(ctx context.Context, orderID int64) error
	// NullifyEmployee 将员工的销售记录 funcionario_id 置空
	NullifyEmployee(ctx context.Context, employeeID int64) error
	// SumTotal 汇总 valor_total，from/to 为 nil 时不限制，区间为 [from, to)
	SumTotal(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
}

// StockMovementRepository 库存流水仓储
type StockMovementRepository interface {
	Append(ctx context.Context, m *StockMovement) error
	ListByProduct(ctx context.Context, productID int64, skip, limit int) ([]*StockMovement, error)
}

// EventPublisher 事件发布者，写入调用方当前事务
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

// PasswordHasher 密码哈希
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// TokenClaims 访问令牌载荷
type TokenClaims struct {
	Email      string
	EmployeeID int64
	ExpiresAt  time.Time
}

// TokenIssuer 访问令牌签发与校验
type TokenIssuer interface {
	Issue(email string, employeeID int64) (string, time.Time, error)
	// Parse 校验签名与过期时间，失败返回 ErrUnauthorized
	Parse(token string) (*TokenClaims, error)
}
