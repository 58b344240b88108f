package http

import (
	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/talkstoque/internal/stock/application"
	"github.com/wyfcoding/talkstoque/pkg/response"
)

// EmployeeHandler 员工 HTTP 处理器，注册接口公开
type EmployeeHandler struct {
	svc     *application.EmployeeService
	reports *application.ReportQueryService
}

// NewEmployeeHandler 创建员工处理器
func NewEmployeeHandler(svc *application.EmployeeService, reports *application.ReportQueryService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, reports: reports}
}

// RegisterRoutes 注册路由
func (h *EmployeeHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/funcionarios", h.Register)

	api := protected.Group("/funcionarios")
	{
		api.GET("", h.List)
		api.GET("/me", h.Me)
		api.GET("/total", h.Count)
		api.GET("/:id", h.Get)
		api.PUT("/:id", h.Update)
		api.DELETE("/:id", h.Delete)
	}
}

func (h *EmployeeHandler) Register(c *gin.Context) {
	var cmd application.RegisterEmployeeCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.svc.Register(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, dto)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	var q application.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	list, err := h.svc.ListEmployees(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, list)
}

// Me 当前登录员工
func (h *EmployeeHandler) Me(c *gin.Context) {
	response.Success(c, h.svc.Me(currentEmployee(c)))
}

// Count 员工总数
func (h *EmployeeHandler) Count(c *gin.Context) {
	dto, err := h.reports.CountEmployees(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dto, err := h.svc.GetEmployee(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var cmd application.UpdateEmployeeCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.svc.UpdateEmployee(c.Request.Context(), id, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteEmployee(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.NoContent(c)
}
