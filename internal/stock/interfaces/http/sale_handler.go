package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/talkstoque/internal/stock/application"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/response"
)

// SaleHandler 销售 HTTP 处理器
type SaleHandler struct {
	svc     *application.SaleService
	reports *application.ReportQueryService
}

// NewSaleHandler 创建销售处理器
func NewSaleHandler(svc *application.SaleService, reports *application.ReportQueryService) *SaleHandler {
	return &SaleHandler{svc: svc, reports: reports}
}

// RegisterRoutes 注册路由
func (h *SaleHandler) RegisterRoutes(protected *gin.RouterGroup) {
	api := protected.Group("/vendas")
	{
		api.POST("", h.Create)
		api.GET("", h.List)
		api.GET("/estatisticas/valor-total", h.TotalValue)
		api.GET("/:id", h.Get)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
	}
}

func (h *SaleHandler) Create(c *gin.Context) {
	var cmd application.CreateSaleCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.svc.CreateSale(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, dto)
}

func (h *SaleHandler) List(c *gin.Context) {
	skip, ok := queryInt(c, "skip")
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	list, err := h.svc.ListSales(c.Request.Context(), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dto, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var cmd application.UpdateSaleCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.svc.UpdateSale(c.Request.Context(), id, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteSale(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}

// TotalValue 销售总额，apenas_ultimo_mes=true 时只统计上一个自然月
func (h *SaleHandler) TotalValue(c *gin.Context) {
	lastMonth := false
	if raw := c.Query("apenas_ultimo_mes"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			bindError(c, &domain.ValidationError{Field: "apenas_ultimo_mes", Reason: "deve ser booleano"})
			return
		}
		lastMonth = v
	}
	dto, err := h.reports.TotalSalesValue(c.Request.Context(), lastMonth)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}
