package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/api/handler"
	"daily-briefing/backend/internal/api/router"
	"daily-briefing/backend/internal/repository"
	"daily-briefing/backend/internal/service"
	"daily-briefing/backend/pkg/jwt"
	applogger "daily-briefing/backend/pkg/logger"
	"daily-briefing/backend/pkg/redis"
	"daily-briefing/backend/pkg/secrets"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("服务异常退出", zap.Error(err))
	}
	_ = applogger.Sync(logger)
	if err != nil {
		os.Exit(1)
	}
}

// run 组装依赖并阻塞到 ctx 结束，随后优雅关闭
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("template_source", cfg.Template.Source),
	)

	// PEPPER：环境变量 → secrets 文件 → 内置后备值
	pepper := secrets.ResolvePepper(cfg.Auth.SecretsFile, cfg.Auth.FallbackPepper)
	if pepper == cfg.Auth.FallbackPepper {
		logger.Warn("未设置 PEPPER，使用内置后备值")
	}

	rdb := connectSessionStore(cfg, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	// 依赖注入: Repository → Service → Handler
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	repo, err := repository.NewRepository(initCtx, cfg, rdb)
	cancel()
	if err != nil {
		return fmt.Errorf("初始化存储失败: %w", err)
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, repo, jwtMgr, pepper, logger)
	engine := router.Setup(cfg, handler.NewHandler(cfg, svc), jwtMgr, svc.Auth, rdb, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("HTTP 服务器异常: %w", err)
	case <-ctx.Done():
	}

	logger.Info("收到关闭信号，开始优雅关闭...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("服务器关闭异常: %w", err)
	}

	logger.Info("服务器已关闭")
	return nil
}

// connectSessionStore 连接 Redis 会话存储
// 未启用或连接失败时返回 nil，会话改存进程内存（单实例部署可用）
func connectSessionStore(cfg *config.Config, logger *zap.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis 未启用，会话保存在内存中")
		return nil
	}
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，会话改存内存", zap.Error(err))
		return nil
	}
	return rdb
}
