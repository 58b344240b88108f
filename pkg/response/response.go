// Package response 统一 HTTP 响应体，错误体为 {"detail": ...}
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应体
type ErrorBody struct {
	Detail any `json:"detail"`
}

// Message 简单消息响应体
type Message struct {
	Message string `json:"message"`
}

// Success 写出 200 JSON
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created 写出 201 JSON
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 写出 204
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 写出错误并终止后续处理
func Error(c *gin.Context, status int, detail any) {
	c.AbortWithStatusJSON(status, ErrorBody{Detail: detail})
}

// BadRequest 400
func BadRequest(c *gin.Context, detail any) {
	Error(c, http.StatusBadRequest, detail)
}

// NotFound 404
func NotFound(c *gin.Context, detail string) {
	Error(c, http.StatusNotFound, detail)
}

// Unauthorized 401，附带 WWW-Authenticate 头
func Unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	Error(c, http.StatusUnauthorized, detail)
}

// Internal 500
func Internal(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal Server Error")
}
