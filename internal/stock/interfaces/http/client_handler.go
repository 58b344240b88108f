package http

import (
	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/talkstoque/internal/stock/application"
	"github.com/wyfcoding/talkstoque/pkg/response"
)

// ClientHandler 客户 HTTP 处理器
type ClientHandler struct {
	svc *application.ClientService
}

// NewClientHandler 创建客户处理器
func NewClientHandler(svc *application.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *ClientHandler) RegisterRoutes(protected *gin.RouterGroup) {
	api := protected.Group("/clientes")
	{
		api.POST("", h.Create)
		api.GET("", h.List)
		api.GET("/:id", h.Get)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
	}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var cmd application.CreateClientCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.svc.CreateClient(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, dto)
}

func (h *ClientHandler) List(c *gin.Context) {
	var q application.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	list, err := h.svc.ListClients(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dto, err := h.svc.GetClient(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var cmd application.UpdateClientCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.svc.UpdateClient(c.Request.Context(), id, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

// Delete 删除客户，其订单一并删除并归还库存
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteClient(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}
