package worker

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/qs3c/debook/internal/model"
	"github.com/qs3c/debook/internal/pkg/event"
	"github.com/qs3c/debook/internal/pkg/pubsub"
)

var (
	// ErrConnectFailed 重试次数用尽仍未连上事件通道
	ErrConnectFailed = errors.New("failed to connect to event channel")
	// ErrConsumerStopped Stop 之后不能再 Start
	ErrConsumerStopped = errors.New("consumer stopped")
	// ErrNotConsuming 消费者未在运行，用于健康检查
	ErrNotConsuming = errors.New("consumer not running")
)

// NotificationCreator 根据事件生成通知
type NotificationCreator interface {
	CreateNotification(ctx context.Context, ev *event.InteractionEvent) (*model.Notification, error)
}

// ConsumerConfig 连接重试参数
type ConsumerConfig struct {
	ConnectRetries    int
	ConnectRetryDelay time.Duration
}

// Consumer 消费互动事件并生成通知
type Consumer struct {
	sub      pubsub.Subscriber
	notifier NotificationCreator
	cfg      ConsumerConfig
	logger   *log.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup

	consuming atomic.Bool
}

// NewConsumer 创建消费者
func NewConsumer(sub pubsub.Subscriber, notifier NotificationCreator, cfg ConsumerConfig, logger *log.Logger) *Consumer {
	if cfg.ConnectRetries <= 0 {
		cfg.ConnectRetries = 10
	}
	if cfg.ConnectRetryDelay <= 0 {
		cfg.ConnectRetryDelay = 5 * time.Second
	}
	return &Consumer{
		sub:      sub,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start 连接事件通道并在后台开始消费；连接失败时只记录日志，不影响 HTTP 服务
func (c *Consumer) Start(ctx context.Context) error {
	// 连接阶段也计入 wg，Stop 会等待正在进行的 Start
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrConsumerStopped
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(1)
	c.mu.Unlock()

	if !pubsub.ConnectWithRetry(ctx, c.sub, c.cfg.ConnectRetries, c.cfg.ConnectRetryDelay, c.logger) {
		c.wg.Done()
		c.logger.Printf("Consumer not started: event channel unreachable after %d attempts", c.cfg.ConnectRetries)
		return ErrConnectFailed
	}

	c.consuming.Store(true)
	go func() {
		defer c.wg.Done()
		defer c.consuming.Store(false)

		c.logger.Println("Consumer started")
		if err := c.sub.Consume(ctx, c.HandleMessage); err != nil {
			c.logger.Printf("Consumer stopped: %v", err)
			return
		}
		c.logger.Println("Consumer stopped")
	}()

	return nil
}

// Stop 停止消费并关闭订阅
func (c *Consumer) Stop() error {
	c.mu.Lock()
	c.stopped = true
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()

	return c.sub.Close()
}

// Ping 消费循环是否在运行；重试用尽或已停止时返回错误
func (c *Consumer) Ping(ctx context.Context) error {
	if !c.consuming.Load() {
		return ErrNotConsuming
	}
	return nil
}

// HandleMessage 处理单条消息；任何错误只记录日志，消息都视为已消费
func (c *Consumer) HandleMessage(ctx context.Context, msg *pubsub.Message) {
	if len(msg.Value) == 0 {
		c.logger.Printf("Dropping empty message from %s partition %d offset %d", msg.Topic, msg.Partition, msg.Offset)
		return
	}

	ev, err := event.Parse(msg.Value)
	if err != nil {
		c.logger.Printf("Dropping malformed message from %s partition %d offset %d: %v", msg.Topic, msg.Partition, msg.Offset, err)
		return
	}

	c.logger.Printf("Received %s event %s for post %s", ev.Type, ev.ID, ev.PostID)

	if _, err := c.notifier.CreateNotification(ctx, ev); err != nil {
		c.logger.Printf("Failed to create notification for event %s: %v", ev.ID, err)
	}
}
