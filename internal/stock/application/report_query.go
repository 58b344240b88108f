package application

import (
	"context"
	"time"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/utils"
)

// StockTotalDTO 库存总量
type StockTotalDTO struct {
	Total int64 `json:"total_itens_estoque"`
}

// ActiveOrdersDTO 活跃订单数
type ActiveOrdersDTO struct {
	Total int64 `json:"total_ativos"`
}

// EmployeeCountDTO 员工总数
type EmployeeCountDTO struct {
	Total int64 `json:"total_funcionarios"`
}

// SalesTotalDTO 销售总额
type SalesTotalDTO struct {
	Total string `json:"total"`
}

// ReportQueryService 汇总查询
type ReportQueryService struct {
	products  domain.ProductRepository
	orders    domain.OrderRepository
	employees domain.EmployeeRepository
	sales     domain.SaleRepository
	now       func() time.Time
}

// NewReportQueryService 创建汇总查询服务
func NewReportQueryService(
	products domain.ProductRepository,
	orders domain.OrderRepository,
	employees domain.EmployeeRepository,
	sales domain.SaleRepository,
) *ReportQueryService {
	return &ReportQueryService{
		products:  products,
		orders:    orders,
		employees: employees,
		sales:     sales,
		now:       time.Now,
	}
}

// WithClock 替换时钟
func (s *ReportQueryService) WithClock(now func() time.Time) *ReportQueryService {
	s.now = now
	return s
}

// TotalStock 全部商品库存之和，无商品时为 0
func (s *ReportQueryService) TotalStock(ctx context.Context) (*StockTotalDTO, error) {
	total, err := s.products.TotalStock(ctx)
	if err != nil {
		return nil, err
	}
	return &StockTotalDTO{Total: total}, nil
}

// CountActiveOrders 状态为 Pendente、Processando 或 Enviado 的订单数
func (s *ReportQueryService) CountActiveOrders(ctx context.Context) (*ActiveOrdersDTO, error) {
	n, err := s.orders.CountByStatuses(ctx, domain.ActiveOrderStatuses)
	if err != nil {
		return nil, err
	}
	return &ActiveOrdersDTO{Total: n}, nil
}

// CountEmployees 员工总数
func (s *ReportQueryService) CountEmployees(ctx context.Context) (*EmployeeCountDTO, error) {
	n, err := s.employees.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &EmployeeCountDTO{Total: n}, nil
}

// TotalSalesValue 销售总额；lastMonthOnly 时仅统计上一个完整自然月
func (s *ReportQueryService) TotalSalesValue(ctx context.Context, lastMonthOnly bool) (*SalesTotalDTO, error) {
	var from, to *time.Time
	if lastMonthOnly {
		start, end := utils.PreviousMonthRange(s.now())
		from, to = &start, &end
	}
	total, err := s.sales.SumTotal(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &SalesTotalDTO{Total: money(total)}, nil
}
