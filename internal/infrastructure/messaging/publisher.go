// Package messaging 图书事件发布
package messaging

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	"github.com/xiebiao/bookmarket/pkg/mq"
)

// ExchangeType 事件使用topic交换机，消费方按book.*订阅
const ExchangeType = "topic"

// amqpPublisher 通过RabbitMQ发布图书事件
type amqpPublisher struct {
	publisher *mq.Publisher
}

// NewEventPublisher 按配置创建事件发布器
// mq.enabled=false时返回空实现，返回的cleanup用于关闭连接
func NewEventPublisher(cfg *config.Config) (book.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return NoopPublisher{}, func() {}, nil
	}

	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, ExchangeType)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("exchange", cfg.MQ.Exchange).Msg("事件发布已启用")

	cleanup := func() {
		if err := p.Close(); err != nil {
			log.Warn().Err(err).Msg("关闭MQ连接失败")
		}
	}
	return &amqpPublisher{publisher: p}, cleanup, nil
}

// Publish routing key即事件类型
func (p *amqpPublisher) Publish(ctx context.Context, event book.Event) error {
	return p.publisher.Publish(ctx, event.Type, event)
}

// NoopPublisher 不发布任何事件
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, book.Event) error { return nil }
