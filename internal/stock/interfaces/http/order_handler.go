package http

import (
	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/talkstoque/internal/stock/application"
	"github.com/wyfcoding/talkstoque/pkg/response"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	cmd     *application.OrderCommandService
	query   *application.OrderQueryService
	reports *application.ReportQueryService
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(cmd *application.OrderCommandService, query *application.OrderQueryService, reports *application.ReportQueryService) *OrderHandler {
	return &OrderHandler{cmd: cmd, query: query, reports: reports}
}

// RegisterRoutes 注册路由
func (h *OrderHandler) RegisterRoutes(protected *gin.RouterGroup) {
	api := protected.Group("/pedidos")
	{
		api.POST("", h.CreateOrder)
		api.GET("", h.ListOrders)
		api.GET("/contagem-ativos", h.CountActive)
		api.GET("/:id", h.GetOrder)
		api.PUT("/:id", h.UpdateOrder)
		api.DELETE("/:id", h.DeleteOrder)
	}
}

// CreateOrder 创建订单及订单行
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var cmd application.CreateOrderCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.cmd.CreateOrder(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, dto)
}

// ListOrders 订单列表，支持 status_filter 与 search
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q application.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	list, err := h.query.ListOrders(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// GetOrder 订单详情
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dto, err := h.query.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

// UpdateOrder 部分更新订单
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var cmd application.UpdateOrderCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.cmd.UpdateOrder(c.Request.Context(), id, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

// DeleteOrder 删除订单并归还库存
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmd.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}

// CountActive 活跃订单数
func (h *OrderHandler) CountActive(c *gin.Context) {
	dto, err := h.reports.CountActiveOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}
