package domain

import "time"

// MovementReason 库存流水原因
type MovementReason string

const (
	// MovementReserve 订单行创建时扣减
	MovementReserve MovementReason = "reserva"
	// MovementRelease 订单行或订单删除时归还
	MovementRelease MovementReason = "liberacao"
)

// StockMovement 库存流水（MovimentoEstoque），Delta 为带符号的变动量，Balance 为变动后库存
type StockMovement struct {
	ID          int64
	ProductID   int64
	OrderID     *int64
	OrderItemID *int64
	Delta       int
	Balance     int
	Reason      MovementReason
	CreatedAt   time.Time
}
