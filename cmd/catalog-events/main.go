// catalog-events 订阅图书变更事件并写入日志，用于排查事件发布
//
//	go run ./cmd/catalog-events --queue bookmarket.audit --keys book.created,book.deleted
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	"github.com/xiebiao/bookmarket/internal/infrastructure/messaging"
	"github.com/xiebiao/bookmarket/pkg/logger"
)

// consumeFunc 按队列与routing key消费，直到ctx取消
type consumeFunc func(ctx context.Context, queue string, keys []string) error

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(run).RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("消费事件失败")
		stop()
		os.Exit(1)
	}
}

func newApp(consume consumeFunc) *cli.App {
	return &cli.App{
		Name:  "catalog-events",
		Usage: "订阅图书变更事件并写入日志",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "queue",
				Usage: "队列名，为空时使用临时队列",
			},
			&cli.StringSliceFlag{
				Name:  "keys",
				Usage: "绑定的routing key，可用逗号分隔或重复指定",
				Value: cli.NewStringSlice(messaging.AllBookEvents...),
			},
		},
		Action: func(c *cli.Context) error {
			return consume(c.Context, c.String("queue"), c.StringSlice("keys"))
		},
	}
}

func run(ctx context.Context, queue string, keys []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	closeLog, err := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer func() { _ = closeLog() }()

	return messaging.ConsumeEvents(ctx, cfg, queue, keys, logEvent)
}

func logEvent(ctx context.Context, event book.Event) error {
	log.Ctx(ctx).Info().
		Str("type", event.Type).
		Uint("book_id", event.BookID).
		Uint("author_id", event.AuthorID).
		Str("title", event.Title).
		Bool("published", event.Published).
		Time("occurred_at", event.OccurredAt).
		Msg("图书事件")
	return nil
}
