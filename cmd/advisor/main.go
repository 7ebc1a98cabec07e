package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"sudooom.mj.advisor/internal/cache"
	"sudooom.mj.advisor/internal/config"
	"sudooom.mj.advisor/internal/handler"
	"sudooom.mj.advisor/internal/health"
	"sudooom.mj.advisor/internal/jwt"
	"sudooom.mj.advisor/internal/mahjong"
	"sudooom.mj.advisor/internal/model"
	"sudooom.mj.advisor/internal/nats"
	"sudooom.mj.advisor/internal/repository"
	"sudooom.mj.advisor/internal/router"
	"sudooom.mj.advisor/internal/scoring"
	"sudooom.mj.advisor/internal/service"
	"sudooom.mj.advisor/internal/snowflake"
)

// @title        MJ Advisor API
// @version      1.0
// @description  立直麻将牌效分析服务
// @BasePath     /api/v1
func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	// 初始化日志
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checker := health.NewChecker(2 * time.Second)

	// 分析结果缓存
	var resultCache service.ResultCache
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient = connectRedis(cfg.Redis)
		defer redisClient.Close()
		rc := cache.NewResultCache(redisClient, cfg.Cache.Prefix, cfg.Cache.TTL)
		if cfg.Cache.FlushOnStart {
			flushCache(ctx, logger, rc)
		}
		resultCache = rc
		logger.Info("Result cache enabled", "addr", cfg.Redis.Addr(), "ttl", cfg.Cache.TTL)
	}
	checker.Register("redis", health.RedisCheck(redisClient))

	// 分析记录
	var records service.RecordStore
	var db *pgxpool.Pool
	if cfg.Database.Enabled {
		db, err = connectDatabase(ctx, cfg.Database)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo := repository.NewAnalysisRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("Failed to create analysis schema", "error", err)
			os.Exit(1)
		}
		records = repo
		logger.Info("Connected to PostgreSQL", "host", cfg.Database.Host)
	}
	checker.Register("postgres", health.PostgresCheck(db))

	// 初始化雪花ID生成器
	sfNode, err := snowflake.NewNode(cfg.App.NodeID)
	if err != nil {
		logger.Error("Failed to create snowflake node", "error", err)
		os.Exit(1)
	}

	// 点数计算
	var scorer scoring.Scorer
	if cfg.Scoring.Enabled {
		scorer = scoring.NewCommandScorer(cfg.Scoring.Command, cfg.Scoring.Script, cfg.Scoring.Dir, cfg.Scoring.Timeout)
	}

	analyzer := mahjong.NewAnalyzer(
		mahjong.WithWorkers(cfg.Analysis.Workers),
		mahjong.WithCacheLimit(cfg.Analysis.CacheLimit),
		mahjong.WithLogger(logger),
	)
	advisorService := service.NewAdvisorService(analyzer, resultCache, records, sfNode, scorer)

	// NATS 请求应答
	var natsClient *nats.Client
	var subscriber *nats.RequestSubscriber
	if cfg.NATS.Enabled {
		natsClient, err = nats.NewClient(cfg.NATS)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsClient.Close()

		subscriber = nats.NewRequestSubscriber(natsClient.Conn(), advisorService, nats.SubscriberConfig{
			QueueGroup:  cfg.NATS.QueueGroup,
			WorkerCount: cfg.NATS.WorkerCount,
			BufferSize:  cfg.NATS.BufferSize,
		})
		if err := subscriber.Start(ctx); err != nil {
			logger.Error("Failed to start NATS subscriber", "error", err)
			os.Exit(1)
		}
		logger.Info("Connected to NATS", "url", cfg.NATS.URL)
	}
	if natsClient != nil {
		checker.Register("nats", health.NATSCheck(natsClient.Conn()))
	} else {
		checker.Register("nats", nil)
	}

	// 初始化 JWT 服务
	var jwtService *jwt.Service
	if cfg.JWT.Enabled {
		jwtService = jwt.NewService(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessExpire)
	}

	// 设置路由
	r := router.SetupRouter(cfg, logger, jwtService,
		handler.NewAdvisorHandler(advisorService),
		handler.NewHealthHandler(advisorService, checker),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Advisor server started", "addr", srv.Addr, "mode", cfg.App.Mode, "workers", cfg.Analysis.Workers)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}

	if subscriber != nil {
		_ = subscriber.Stop()
	}
	cancel()

	logger.Info("Server stopped")
}

// flushCache 清空各操作的缓存结果，失败只记日志
func flushCache(ctx context.Context, logger *slog.Logger, rc *cache.ResultCache) {
	for _, op := range model.CachedOperations {
		n, err := rc.Invalidate(ctx, string(op))
		if err != nil {
			logger.Warn("Failed to flush result cache", "operation", op, "error", err)
			continue
		}
		logger.Info("Result cache flushed", "operation", op, "keys", n)
	}
}

// parseLevel 日志级别
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// connectDatabase 连接 PostgreSQL
func connectDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = 10 * time.Minute

	return pgxpool.NewWithConfig(ctx, poolConfig)
}

// connectRedis 连接 Redis
func connectRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}
