package pubsub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// 阻塞读取的超时，超时后重新检查 ctx
const queuePopTimeout = 5 * time.Second

// QueuePublisher 基于 Redis 列表的发布者；消费者离线期间的消息会保留在列表中
type QueuePublisher struct {
	client    *redis.Client
	queueName string
}

func NewQueuePublisher(client *redis.Client, queueName string) *QueuePublisher {
	return &QueuePublisher{client: client, queueName: queueName}
}

func (p *QueuePublisher) Start(ctx context.Context) error {
	return p.Ping(ctx)
}

// Publish 将消息加入队列
func (p *QueuePublisher) Publish(ctx context.Context, key string, value []byte) error {
	if err := p.client.LPush(ctx, p.queueName, value).Err(); err != nil {
		return fmt.Errorf("failed to push to %s: %w", p.queueName, err)
	}
	return nil
}

func (p *QueuePublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *QueuePublisher) Close() error {
	return nil
}

// QueueSubscriber 从 Redis 列表阻塞读取消息，多个实例之间竞争消费
type QueueSubscriber struct {
	client    *redis.Client
	queueName string
	connected bool
}

func NewQueueSubscriber(client *redis.Client, queueName string) *QueueSubscriber {
	return &QueueSubscriber{client: client, queueName: queueName}
}

func (s *QueueSubscriber) Connect(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	s.connected = true
	return nil
}

// Consume 循环取出消息并处理，ctx 取消时返回 nil
func (s *QueueSubscriber) Consume(ctx context.Context, handler Handler) error {
	if !s.connected {
		return ErrNotConnected
	}

	for {
		result, err := s.client.BRPop(ctx, queuePopTimeout, s.queueName).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, redis.Nil) {
				continue // 超时，无消息
			}
			return fmt.Errorf("failed to pop from %s: %w", s.queueName, err)
		}

		if len(result) < 2 {
			continue
		}

		handler(ctx, &Message{
			Topic: result[0],
			Value: []byte(result[1]),
		})
	}
}

func (s *QueueSubscriber) Close() error {
	s.connected = false
	return nil
}
