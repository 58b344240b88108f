package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/talkstoque/internal/stock/application"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/response"
)

// OrderItemHandler 订单行 HTTP 处理器
type OrderItemHandler struct {
	svc *application.OrderItemService
}

// NewOrderItemHandler 创建订单行处理器
func NewOrderItemHandler(svc *application.OrderItemService) *OrderItemHandler {
	return &OrderItemHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *OrderItemHandler) RegisterRoutes(protected *gin.RouterGroup) {
	api := protected.Group("/pedido_itens")
	{
		api.POST("", h.Create)
		api.GET("", h.List)
		api.GET("/:id", h.Get)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
	}
}

// Create 向订单追加一行，pedido_id 查询参数必填
func (h *OrderItemHandler) Create(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Query("pedido_id"), 10, 64)
	if err != nil || orderID <= 0 {
		bindError(c, &domain.ValidationError{Field: "pedido_id", Reason: "obrigatório"})
		return
	}
	var in application.OrderItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.svc.CreateItem(c.Request.Context(), orderID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, dto)
}

func (h *OrderItemHandler) List(c *gin.Context) {
	var q application.ListOrderItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	list, err := h.svc.ListItems(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

func (h *OrderItemHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dto, err := h.svc.GetItem(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

// Update 不调整库存
func (h *OrderItemHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var cmd application.UpdateOrderItemCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.svc.UpdateItem(c.Request.Context(), id, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

func (h *OrderItemHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteItem(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}
