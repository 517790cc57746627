package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/infrastructure/config"
	"github.com/xiebiao/bookmarket/pkg/mq"
)

// AllBookEvents 绑定全部图书事件
var AllBookEvents = []string{"book.*"}

// EventHandler 处理一条图书事件，返回错误时消息重新入队
type EventHandler func(ctx context.Context, event book.Event) error

// ConsumeEvents 订阅图书事件直到ctx取消
// queue为空时使用临时队列，进程退出后自动删除
func ConsumeEvents(ctx context.Context, cfg *config.Config, queue string, routingKeys []string, handle EventHandler) error {
	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, ExchangeType, queue, routingKeys)
	if err != nil {
		return err
	}
	defer consumer.Close()

	return consumer.Consume(ctx, func(routingKey string, body []byte) error {
		event, err := DecodeEvent(routingKey, body)
		if err != nil {
			// 格式错误的消息重新入队也无法处理，记录后丢弃
			log.Ctx(ctx).Warn().Err(err).Bytes("body", body).Msg("丢弃无法解析的事件")
			return nil
		}
		return handle(ctx, event)
	})
}

// DecodeEvent 消息体 → 事件，事件类型取自routing key
func DecodeEvent(routingKey string, body []byte) (book.Event, error) {
	var event book.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return book.Event{}, fmt.Errorf("解析事件失败(%s): %w", routingKey, err)
	}
	event.Type = routingKey
	return event, nil
}
