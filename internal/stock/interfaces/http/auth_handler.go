package http

import (
	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/talkstoque/internal/stock/application"
	"github.com/wyfcoding/talkstoque/pkg/response"
)

// AuthHandler 登录与令牌信息
type AuthHandler struct {
	auth *application.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(auth *application.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes 注册路由
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/token", h.Login)
	protected.GET("/me/token-info", h.TokenInfo)
}

// Login 接受 OAuth2 密码表单或 JSON
func (h *AuthHandler) Login(c *gin.Context) {
	var cmd application.LoginCommand
	if err := c.ShouldBind(&cmd); err != nil {
		bindError(c, err)
		return
	}
	dto, err := h.auth.Login(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, dto)
}

// TokenInfo 当前令牌对应的员工
func (h *AuthHandler) TokenInfo(c *gin.Context) {
	response.Success(c, h.auth.TokenInfo(currentEmployee(c)))
}
