// @title           Bookmarket API
// @version         1.0
// @description     图书市场后台：作者管理自己的图书，公开目录供所有人查询。
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Bearer <access token>
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	_ "github.com/xiebiao/bookmarket/docs"
	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	"github.com/xiebiao/bookmarket/pkg/logger"
	"github.com/xiebiao/bookmarket/pkg/metrics"
	"github.com/xiebiao/bookmarket/pkg/tracing"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("服务异常退出")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	closeLog, err := logger.Init(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer func() { _ = closeLog() }()

	log.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("database", cfg.Database.Driver).
		Str("redis", cfg.Redis.Addr()).
		Str("storage", cfg.Storage.Backend).
		Msg("配置加载成功")

	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(ctx, tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Warn().Err(err).Msg("关闭链路追踪失败")
			}
		}()
	}

	engine, cleanup, err := InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("服务启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("启动服务失败: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("收到退出信号，开始优雅关闭")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭服务失败: %w", err)
	}

	log.Info().Msg("服务已停止")
	return nil
}
