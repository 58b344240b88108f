package http

import (
	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/talkstoque/internal/stock/application"
	"github.com/wyfcoding/talkstoque/pkg/response"
)

// ProductHandler 商品 HTTP 处理器
type ProductHandler struct {
	svc     *application.ProductService
	reports *application.ReportQueryService
}

// NewProductHandler 创建商品处理器
func NewProductHandler(svc *application.ProductService, reports *application.ReportQueryService) *ProductHandler {
	return &ProductHandler{svc: svc, reports: reports}
}

// RegisterRoutes 注册路由
func (h *ProductHandler) RegisterRoutes(protected *gin.RouterGroup) {
	api := protected.Group("/produtos")
	{
		api.POST("", h.Create)
		api.GET("", h.List)
		api.GET("/estoque/total", h.TotalStock)
		api.GET("/:id", h.Get)
		api.GET("/:id/movimentos", h.Movements)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var cmd application.CreateProductCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.svc.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, dto)
}

func (h *ProductHandler) List(c *gin.Context) {
	var q application.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	list, err := h.svc.ListProducts(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dto, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

// Movements 商品库存流水
func (h *ProductHandler) Movements(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	skip, ok := queryInt(c, "skip")
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	list, err := h.svc.ListMovements(c.Request.Context(), id, skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var cmd application.UpdateProductCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.svc.UpdateProduct(c.Request.Context(), id, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}

// TotalStock 全部商品库存之和
func (h *ProductHandler) TotalStock(c *gin.Context) {
	dto, err := h.reports.TotalStock(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}
