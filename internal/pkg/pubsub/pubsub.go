package pubsub

import (
	"context"
	"errors"
)

// ErrNotConnected 订阅者未连接
var ErrNotConnected = errors.New("subscriber not connected")

// Message 从事件通道收到的消息
type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	Partition int
	Offset    int64
}

// Handler 消息处理函数，返回后消息即视为已消费
type Handler func(ctx context.Context, msg *Message)

// Publisher 事件发布者
type Publisher interface {
	Start(ctx context.Context) error
	Publish(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Connector 可重试连接的组件
type Connector interface {
	Connect(ctx context.Context) error
}

// Subscriber 事件订阅者
type Subscriber interface {
	Connector
	Consume(ctx context.Context, handler Handler) error
	Close() error
}
