package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/logger"
	"github.com/wyfcoding/talkstoque/pkg/metrics"
	"github.com/wyfcoding/talkstoque/pkg/utils"
)

// CreateSaleCommand 创建销售
type CreateSaleCommand struct {
	OrderID       int64            `json:"pedido_id" binding:"required"`
	EmployeeID    *int64           `json:"funcionario_id"`
	TotalValue    *decimal.Decimal `json:"valor_total" binding:"required"`
	PaymentMethod *string          `json:"forma_pagamento"`
}

// UpdateSaleCommand 销售部分更新，funcionario_id 可显式置 null
type UpdateSaleCommand struct {
	EmployeeID    domain.Optional[int64]  `json:"funcionario_id"`
	TotalValue    *decimal.Decimal        `json:"valor_total"`
	PaymentMethod domain.Optional[string] `json:"forma_pagamento"`
}

// SaleService 销售服务，不涉及库存
type SaleService struct {
	tx        domain.TxManager
	sales     domain.SaleRepository
	orders    domain.OrderRepository
	employees domain.EmployeeRepository
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewSaleService 创建销售服务
func NewSaleService(
	tx domain.TxManager,
	sales domain.SaleRepository,
	orders domain.OrderRepository,
	employees domain.EmployeeRepository,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *SaleService {
	return &SaleService{
		tx:        tx,
		sales:     sales,
		orders:    orders,
		employees: employees,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// CreateSale 为订单登记销售，每个订单至多一条
func (s *SaleService) CreateSale(ctx context.Context, cmd CreateSaleCommand) (*SaleDTO, error) {
	employeeID := cmd.EmployeeID
	if employeeID != nil && *employeeID == 0 {
		employeeID = nil
	}
	value, err := required("valor_total", cmd.TotalValue)
	if err != nil {
		return nil, err
	}
	sale, err := domain.NewSale(cmd.OrderID, employeeID, value, cmd.PaymentMethod)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.orders.Get(txCtx, cmd.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.MissingReference(domain.EntityOrder, cmd.OrderID)
		}
		existing, err := s.sales.GetByOrderID(txCtx, cmd.OrderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.SaleAlreadyExists(cmd.OrderID)
		}
		if err := s.checkEmployee(txCtx, employeeID); err != nil {
			return err
		}
		if err := s.sales.Create(txCtx, sale); err != nil {
			return err
		}

		if s.publisher == nil {
			return nil
		}
		event := domain.SaleRecordedEvent{
			SaleID:     sale.ID,
			OrderID:    sale.OrderID,
			EmployeeID: sale.EmployeeID,
			TotalValue: sale.TotalValue,
			OccurredOn: s.now().UTC(),
		}
		return s.publisher.Publish(txCtx, domain.SaleRecordedEventType, orderKey(sale.OrderID), event)
	})
	if err != nil {
		return nil, domain.AsStorageConflict("criar venda", err)
	}

	s.metrics.RecordSale()
	logger.Info(ctx, "sale recorded", "venda_id", sale.ID, "pedido_id", sale.OrderID)
	return toSaleDTO(sale), nil
}

// GetSale 获取销售
func (s *SaleService) GetSale(ctx context.Context, id int64) (*SaleDTO, error) {
	sale, err := s.sales.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound(domain.EntitySale, id)
	}
	return toSaleDTO(sale), nil
}

// ListSales 列出销售
func (s *SaleService) ListSales(ctx context.Context, skip int, limit *int) ([]*SaleDTO, error) {
	w := utils.NewWindow(skip, limit)
	sales, err := s.sales.List(ctx, w.Skip, w.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]*SaleDTO, 0, len(sales))
	for _, sale := range sales {
		out = append(out, toSaleDTO(sale))
	}
	return out, nil
}

// UpdateSale 部分更新销售，设置非空员工时校验其存在
func (s *SaleService) UpdateSale(ctx context.Context, id int64, cmd UpdateSaleCommand) (*SaleDTO, error) {
	var sale *domain.Sale
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		if sale, err = s.sales.Get(txCtx, id); err != nil {
			return err
		}
		if sale == nil {
			return domain.NotFound(domain.EntitySale, id)
		}
		if cmd.EmployeeID.Set {
			if err := s.checkEmployee(txCtx, cmd.EmployeeID.Value); err != nil {
				return err
			}
		}
		if err := sale.Apply(domain.SalePatch{
			EmployeeID:    cmd.EmployeeID,
			TotalValue:    cmd.TotalValue,
			PaymentMethod: cmd.PaymentMethod,
		}); err != nil {
			return err
		}
		return s.sales.Update(txCtx, sale)
	})
	if err != nil {
		return nil, domain.AsStorageConflict("atualizar venda", err)
	}
	return toSaleDTO(sale), nil
}

// DeleteSale 删除销售
func (s *SaleService) DeleteSale(ctx context.Context, id int64) error {
	err := s.sales.Delete(ctx, id)
	return domain.AsStorageConflict("deletar venda", err)
}

func (s *SaleService) checkEmployee(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	e, err := s.employees.Get(ctx, *id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.MissingReference(domain.EntityEmployee, *id)
	}
	return nil
}
