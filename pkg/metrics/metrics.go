// Package metrics 提供 Prometheus 指标集合，包含 HTTP、库存流水与 outbox 投递指标
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/talkstoque/pkg/logger"
)

const namespace = "talkstoque"

// Metrics 指标集合，所有方法对 nil 接收者安全
type Metrics struct {
	registry *prometheus.Registry

	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// 库存预留/释放的数量
	StockMovements *prometheus.CounterVec
	// 库存不足被拒绝的预留次数
	StockRejections prometheus.Counter

	// 订单创建/删除计数
	OrdersTotal *prometheus.CounterVec
	// 销售创建计数
	SalesTotal prometheus.Counter

	// outbox 投递结果
	OutboxRelayed *prometheus.CounterVec
	// 待投递 outbox 条数
	OutboxPending prometheus.Gauge
}

// New 创建指标实例并注册到独立 registry
func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		StockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "stock_movement_units_total",
			Help:      "Units of stock reserved or released",
		}, []string{"kind"}),
		StockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "stock_rejections_total",
			Help:      "Reservations rejected for insufficient stock",
		}),
		OrdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "orders_total",
			Help:      "Orders created or deleted",
		}, []string{"op"}),
		SalesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "sales_total",
			Help:      "Sales created",
		}),
		OutboxRelayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "outbox_relayed_total",
			Help:      "Outbox messages relayed to the broker",
		}, []string{"result"}),
		OutboxPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: serviceName,
			Name:      "outbox_pending",
			Help:      "Outbox messages waiting for delivery",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StockMovements,
		m.StockRejections,
		m.OrdersTotal,
		m.SalesTotal,
		m.OutboxRelayed,
		m.OutboxPending,
	)
	return m
}

// Registry 返回底层 registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest 记录 HTTP 请求
func (m *Metrics) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordReserve 记录库存预留数量
func (m *Metrics) RecordReserve(qty int) {
	if m == nil {
		return
	}
	m.StockMovements.WithLabelValues("reserve").Add(float64(qty))
}

// RecordRelease 记录库存释放数量
func (m *Metrics) RecordRelease(qty int) {
	if m == nil {
		return
	}
	m.StockMovements.WithLabelValues("release").Add(float64(qty))
}

// RecordRejection 记录库存不足
func (m *Metrics) RecordRejection() {
	if m == nil {
		return
	}
	m.StockRejections.Inc()
}

// RecordOrder 记录订单操作，op 为 create 或 delete
func (m *Metrics) RecordOrder(op string) {
	if m == nil {
		return
	}
	m.OrdersTotal.WithLabelValues(op).Inc()
}

// RecordSale 记录销售创建
func (m *Metrics) RecordSale() {
	if m == nil {
		return
	}
	m.SalesTotal.Inc()
}

// RecordRelay 记录 outbox 投递结果
func (m *Metrics) RecordRelay(result string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.OutboxRelayed.WithLabelValues(result).Add(float64(n))
}

// SetOutboxPending 更新待投递条数
func (m *Metrics) SetOutboxPending(n int64) {
	if m == nil {
		return
	}
	m.OutboxPending.Set(float64(n))
}

// Server 独立的 Prometheus HTTP 服务
type Server struct {
	srv *http.Server
}

// NewServer 创建指标 HTTP 服务
func NewServer(m *Metrics, port int, path string) *Server {
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())
	return &Server{srv: &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Start 阻塞运行直到 Shutdown
func (s *Server) Start() error {
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
