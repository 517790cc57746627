// Package mq RabbitMQ消息发布与消费
//
// 图书变更以事件形式发布到topic类型的Exchange：
//
//	Exchange: bookmarket.catalog (topic)
//	RoutingKey: book.created / book.updated / book.unpublished / book.deleted
//
// 消费方按"book.*"绑定队列即可接收全部图书事件。
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookmarket/pkg/metrics"
)

// Publisher 消息发布者
type Publisher struct {
	mu       sync.Mutex // amqp.Channel的发布不保证并发安全
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher 连接RabbitMQ并声明持久化Exchange
func NewPublisher(url, exchange, exchangeType string) (*Publisher, error) {
	conn, channel, err := dialExchange(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	log.Info().Str("exchange", exchange).Str("type", exchangeType).Msg("消息发布者已创建")

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Publish 发布JSON消息（持久化投递）
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("消息序列化失败: %w", err)
	}

	p.mu.Lock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	p.mu.Unlock()

	p.record(routingKey, err)
	if err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	log.Debug().Str("routing_key", routingKey).RawJSON("body", body).Msg("消息已发布")
	return nil
}

func (p *Publisher) record(routingKey string, err error) {
	if metrics.MessagesPublishedTotal == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.MessagesPublishedTotal.WithLabelValues(p.exchange, routingKey, result).Inc()
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	return closeAll(p.channel, p.conn)
}

// Consumer 消息消费者
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewConsumer 声明Exchange与Queue，并按routingKeys绑定（支持通配符）
// queue为空时创建服务端命名的独占临时队列
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string) (*Consumer, error) {
	conn, channel, err := dialExchange(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	durable, exclusive := true, false
	if queue == "" {
		durable, exclusive = false, true
	}

	q, err := channel.QueueDeclare(queue, durable, !durable, exclusive, false, nil)
	if err != nil {
		_ = closeAll(channel, conn)
		return nil, fmt.Errorf("声明Queue失败: %w", err)
	}

	for _, routingKey := range routingKeys {
		if err := channel.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
			_ = closeAll(channel, conn)
			return nil, fmt.Errorf("绑定Queue失败: %w", err)
		}
	}

	log.Info().Str("queue", q.Name).Strs("routing_keys", routingKeys).Msg("消息消费者已创建")

	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   q.Name,
	}, nil
}

// Queue 实际队列名
func (c *Consumer) Queue() string {
	return c.queue
}

// Consume 阻塞消费，直到ctx取消
// handler返回错误时消息Nack并重新入队
func (c *Consumer) Consume(ctx context.Context, handler func(routingKey string, body []byte) error) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}

	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("开始消费失败: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("消息Channel已关闭")
			}

			if err := handler(msg.RoutingKey, msg.Body); err != nil {
				log.Warn().Err(err).Str("routing_key", msg.RoutingKey).Msg("消息处理失败，重新入队")
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

// Close 关闭Channel和连接
func (c *Consumer) Close() error {
	return closeAll(c.channel, c.conn)
}

func dialExchange(url, exchange, exchangeType string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = closeAll(channel, conn)
		return nil, nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	return conn, channel, nil
}

func closeAll(channel *amqp.Channel, conn *amqp.Connection) error {
	if channel != nil {
		_ = channel.Close()
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}
