package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/logger"
	"github.com/wyfcoding/talkstoque/pkg/response"
)

// statusOf 业务错误到 HTTP 状态码的唯一映射
func statusOf(err error) int {
	var (
		nf  *domain.NotFoundError
		is  *domain.InsufficientStockError
		ae  *domain.AlreadyExistsError
		ve  *domain.ValidationError
		sce *domain.StorageConflictError
	)
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &is), errors.As(err, &ae), errors.As(err, &ve), errors.As(err, &sce):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	switch status := statusOf(err); status {
	case http.StatusUnauthorized:
		response.Unauthorized(c, err.Error())
	case http.StatusInternalServerError:
		logger.Error(ctx, "request failed", "path", c.FullPath(), "error", err)
		response.Internal(c)
	default:
		var sce *domain.StorageConflictError
		if errors.As(err, &sce) {
			logger.Warn(ctx, "storage conflict", "op", sce.Op, "error", sce.Reason)
		}
		response.Error(c, status, err.Error())
	}
}

// bindError 请求体或查询参数解析失败
func bindError(c *gin.Context, err error) {
	response.BadRequest(c, err.Error())
}

// pathID 解析路径中的整数 id
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		bindError(c, &domain.ValidationError{Field: name, Reason: "deve ser um inteiro positivo"})
		return 0, false
	}
	return id, true
}

// queryLimit 解析 limit，未提供时返回 nil
func queryLimit(c *gin.Context) (*int, bool) {
	if _, ok := c.GetQuery("limit"); !ok {
		return nil, true
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return nil, false
	}
	return &limit, true
}

// queryInt 解析可选的整数查询参数
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		bindError(c, &domain.ValidationError{Field: name, Reason: "deve ser um inteiro"})
		return 0, false
	}
	return v, true
}
