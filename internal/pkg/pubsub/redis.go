package pubsub

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisPublisher Redis 发布者，频道即 topic
type RedisPublisher struct {
	client *redis.Client
	topic  string
}

// NewRedisPublisher 创建发布者
func NewRedisPublisher(client *redis.Client, topic string) *RedisPublisher {
	return &RedisPublisher{client: client, topic: topic}
}

func (p *RedisPublisher) Start(ctx context.Context) error {
	return p.Ping(ctx)
}

// Publish 发布消息；Redis 频道没有分区，key 不参与路由
func (p *RedisPublisher) Publish(ctx context.Context, key string, value []byte) error {
	if err := p.client.Publish(ctx, p.topic, value).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}
	return nil
}

func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close 客户端由调用方管理
func (p *RedisPublisher) Close() error {
	return nil
}

// RedisSubscriber Redis 订阅者，只能收到订阅之后发布的消息
type RedisSubscriber struct {
	client *redis.Client
	topic  string
	ps     *redis.PubSub
}

// NewRedisSubscriber 创建订阅者
func NewRedisSubscriber(client *redis.Client, topic string) *RedisSubscriber {
	return &RedisSubscriber{client: client, topic: topic}
}

// Connect 订阅频道并等待确认
func (s *RedisSubscriber) Connect(ctx context.Context) error {
	if s.ps != nil {
		return nil
	}

	ps := s.client.Subscribe(ctx, s.topic)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return fmt.Errorf("failed to subscribe %s: %w", s.topic, err)
	}
	s.ps = ps
	return nil
}

// Consume 处理订阅消息，ctx 取消时返回 nil
func (s *RedisSubscriber) Consume(ctx context.Context, handler Handler) error {
	if s.ps == nil {
		return ErrNotConnected
	}

	ch := s.ps.Channel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			handler(ctx, &Message{
				Topic: msg.Channel,
				Value: []byte(msg.Payload),
			})
		}
	}
}

func (s *RedisSubscriber) Close() error {
	if s.ps == nil {
		return nil
	}
	return s.ps.Close()
}
