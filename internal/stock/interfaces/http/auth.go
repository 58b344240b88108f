package http

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/talkstoque/internal/stock/application"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
)

const employeeKey = "stock.employee"

// AuthMiddleware 校验 Bearer 令牌并将当前员工放入上下文
func AuthMiddleware(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			writeError(c, domain.ErrUnauthorized)
			return
		}
		e, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set(employeeKey, e)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// currentEmployee 当前登录员工，仅在 AuthMiddleware 之后可用
func currentEmployee(c *gin.Context) *domain.Employee {
	v, _ := c.Get(employeeKey)
	e, _ := v.(*domain.Employee)
	return e
}
