// Package http 库存服务的 gin 接口层
package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/talkstoque/internal/stock/application"
	"github.com/wyfcoding/talkstoque/pkg/metrics"
	"github.com/wyfcoding/talkstoque/pkg/middleware"
	"github.com/wyfcoding/talkstoque/pkg/ratelimit"
	"github.com/wyfcoding/talkstoque/pkg/response"
)

// Pinger 健康检查依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig 路由装配参数
type RouterConfig struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	// Limiter 为 nil 时不限流
	Limiter ratelimit.RateLimiter
	Limit   ratelimit.Limit
	DB      Pinger
}

// Services 各处理器依赖的应用服务
type Services struct {
	Auth       *application.AuthService
	Products   *application.ProductService
	Employees  *application.EmployeeService
	Clients    *application.ClientService
	OrderCmd   *application.OrderCommandService
	OrderQuery *application.OrderQueryService
	OrderItems *application.OrderItemService
	Sales      *application.SaleService
	Reports    *application.ReportQueryService
}

// NewRouter 装配 gin 引擎，路径末尾的 / 在路由前去除
func NewRouter(cfg RouterConfig, svc Services) http.Handler {
	router := gin.New()
	router.RedirectTrailingSlash = false

	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinCORSMiddleware(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		router.Use(middleware.GinMetricsMiddleware(cfg.Metrics))
	}
	if cfg.Limiter != nil {
		router.Use(middleware.RateLimitMiddleware(cfg.Limiter, cfg.Limit))
	}

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not Found")
	})

	public := router.Group("")
	public.GET("/", func(c *gin.Context) {
		response.Success(c, response.Message{Message: "Bem-vindo à API de Gestão de Estoque!"})
	})
	public.GET("/health", health(cfg))

	protected := router.Group("")
	protected.Use(AuthMiddleware(svc.Auth))

	NewAuthHandler(svc.Auth).RegisterRoutes(public, protected)
	NewEmployeeHandler(svc.Employees, svc.Reports).RegisterRoutes(public, protected)
	NewProductHandler(svc.Products, svc.Reports).RegisterRoutes(protected)
	NewClientHandler(svc.Clients).RegisterRoutes(protected)
	NewOrderHandler(svc.OrderCmd, svc.OrderQuery, svc.Reports).RegisterRoutes(protected)
	NewOrderItemHandler(svc.OrderItems).RegisterRoutes(protected)
	NewSaleHandler(svc.Sales, svc.Reports).RegisterRoutes(protected)

	return stripTrailingSlash(router)
}

func health(cfg RouterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if cfg.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := cfg.DB.Ping(ctx); err != nil {
				status = "unhealthy"
				code = http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":    status,
			"service":   cfg.ServiceName,
			"version":   cfg.Version,
			"timestamp": time.Now().Unix(),
		})
	}
}

func stripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := r.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
			r.URL.Path = strings.TrimRight(p, "/")
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}
