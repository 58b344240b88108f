// StockService 主程序
// 功能：商品、员工、客户、订单、订单行与销售的管理接口，订单创建与删除时维护库存
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wyfcoding/talkstoque/internal/stock/application"
	"github.com/wyfcoding/talkstoque/internal/stock/infrastructure/messaging"
	"github.com/wyfcoding/talkstoque/internal/stock/infrastructure/persistence/mysql"
	"github.com/wyfcoding/talkstoque/internal/stock/infrastructure/security"
	httphandler "github.com/wyfcoding/talkstoque/internal/stock/interfaces/http"
	"github.com/wyfcoding/talkstoque/pkg/config"
	"github.com/wyfcoding/talkstoque/pkg/db"
	"github.com/wyfcoding/talkstoque/pkg/logger"
	"github.com/wyfcoding/talkstoque/pkg/metrics"
	"github.com/wyfcoding/talkstoque/pkg/mq"
	"github.com/wyfcoding/talkstoque/pkg/ratelimit"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", config.GetEnv("APP_CONFIG", "configs/stock/config.toml"), "path to the TOML config file")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	loggerCfg := logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}
	if err := logger.Init(loggerCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting StockService",
		"service", cfg.ServiceName,
		"version", cfg.Version,
		"environment", cfg.Environment,
	)

	if err := run(ctx, cfg); err != nil {
		logger.Error(ctx, "StockService exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info(context.Background(), "StockService stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	// 3. 初始化数据库
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		Isolation:          cfg.Database.Isolation,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		if err := mysql.AutoMigrate(ctx, database.DB); err != nil {
			return err
		}
		if err := messaging.AutoMigrate(ctx, database.DB); err != nil {
			return err
		}
	}

	// 4. 初始化指标
	metricsInstance := metrics.New(cfg.ServiceName)

	// 5. 初始化仓储与基础设施
	products := mysql.NewProductRepository(database.DB)
	employees := mysql.NewEmployeeRepository(database.DB)
	clients := mysql.NewClientRepository(database.DB)
	orders := mysql.NewOrderRepository(database.DB)
	items := mysql.NewOrderItemRepository(database.DB)
	sales := mysql.NewSaleRepository(database.DB)
	movements := mysql.NewStockMovementRepository(database.DB)
	publisher := messaging.NewOutboxPublisher(database.DB)

	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		// 仅 dev 允许为空，令牌在重启后失效
		secret = uuid.NewString()
		logger.Warn(ctx, "auth.jwt_secret not set, using an ephemeral secret")
	}
	issuer, err := security.NewJWTIssuer(secret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute, cfg.Auth.Issuer)
	if err != nil {
		return err
	}

	// 6. 初始化应用服务
	ledger := application.NewInventoryLedger(products, movements, publisher, metricsInstance)
	orderQuery := application.NewOrderQueryService(orders, items, clients, products, sales)
	orderCmd := application.NewOrderCommandService(database, orders, items, clients, sales, ledger, orderQuery, publisher, metricsInstance)
	services := httphandler.Services{
		Auth:       application.NewAuthService(employees, hasher, issuer),
		Products:   application.NewProductService(database, products, items, movements),
		Employees:  application.NewEmployeeService(database, employees, sales, hasher),
		Clients:    application.NewClientService(database, clients, orders, orderCmd),
		OrderCmd:   orderCmd,
		OrderQuery: orderQuery,
		OrderItems: application.NewOrderItemService(database, orders, items, products, ledger),
		Sales:      application.NewSaleService(database, sales, orders, employees, publisher, metricsInstance),
		Reports:    application.NewReportQueryService(products, orders, employees, sales),
	}

	// 7. 可选限流
	routerCfg := httphandler.RouterConfig{
		ServiceName:    cfg.ServiceName,
		Version:        cfg.Version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        metricsInstance,
		DB:             database,
	}
	if cfg.RateLimit.Enabled {
		rdb, err := ratelimit.NewRedisClient(ctx, ratelimit.RedisConfig{
			Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.MaxPoolSize,
			DialTimeout:  time.Duration(cfg.Redis.ConnTimeout) * time.Second,
			ReadTimeout:  time.Duration(cfg.Redis.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Redis.WriteTimeout) * time.Second,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		routerCfg.Limiter = ratelimit.NewRedisRateLimiter(rdb)
		routerCfg.Limit = ratelimit.PerSecond(cfg.RateLimit.QPS, cfg.RateLimit.Burst)
	}

	if cfg.Environment != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      httphandler.NewRouter(routerCfg, services),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	// 8. HTTP 服务
	g.Go(func() error {
		logger.Info(gctx, "Starting HTTP server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// 9. 指标服务
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(metricsInstance, cfg.Metrics.Port, cfg.Metrics.Path)
		g.Go(metricsServer.Start)
	}

	// 10. Outbox 投递，仅在配置了 broker 时启动
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoffMs,
		})
		if err != nil {
			return err
		}
		defer producer.Close()
		relay := messaging.NewOutboxRelay(database.DB, producer, metricsInstance, messaging.RelayConfig{
			Topic:     cfg.Kafka.Topic,
			Interval:  time.Duration(cfg.Kafka.RelayIntervalMs) * time.Millisecond,
			BatchSize: cfg.Kafka.RelayBatchSize,
		})
		g.Go(func() error { return relay.Run(gctx) })
	} else {
		logger.Info(ctx, "Kafka brokers not configured, outbox relay disabled")
	}

	// 11. 优雅关停
	g.Go(func() error {
		<-gctx.Done()
		logger.Info(context.Background(), "Shutting down StockService")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "HTTP server shutdown error", "error", err)
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "Metrics server shutdown error", "error", err)
			}
		}
		return nil
	})

	return g.Wait()
}
