package pubsub

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/qs3c/debook/config"
)

// 未配置时的批量等待时间；每次发布只有一条消息，不能等 kafka-go 默认的 1s
const defaultBatchTimeout = 10 * time.Millisecond

// KafkaPublisher 基于 Kafka 的发布者，按 key 哈希选择分区
type KafkaPublisher struct {
	brokers []string
	topic   string
	dialer  *kafka.Dialer
	writer  *kafka.Writer
}

// NewKafkaPublisher 创建 Kafka 发布者
func NewKafkaPublisher(cfg *config.KafkaConfig, topic string) *KafkaPublisher {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = defaultBatchTimeout
	}

	return &KafkaPublisher{
		brokers: cfg.Brokers,
		topic:   topic,
		dialer:  newDialer(cfg.ClientID),
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           cfg.WriteTimeout,
			BatchSize:              1,
			BatchTimeout:           batchTimeout,
			Transport:              &kafka.Transport{ClientID: cfg.ClientID},
		},
	}
}

// Start 验证 broker 可达
func (p *KafkaPublisher) Start(ctx context.Context) error {
	return p.Ping(ctx)
}

// Publish 发布消息
func (p *KafkaPublisher) Publish(ctx context.Context, key string, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.topic, err)
	}
	return nil
}

// Ping 健康检查
func (p *KafkaPublisher) Ping(ctx context.Context) error {
	return pingBrokers(ctx, p.dialer, p.brokers)
}

// Close 刷新并关闭 writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// KafkaSubscriber 基于 Kafka 消费组的订阅者，从最新位点开始消费
type KafkaSubscriber struct {
	brokers []string
	topic   string
	groupID string
	dialer  *kafka.Dialer
	reader  *kafka.Reader
	logger  *log.Logger
}

// NewKafkaSubscriber 创建 Kafka 订阅者
func NewKafkaSubscriber(cfg *config.KafkaConfig, topic string, logger *log.Logger) *KafkaSubscriber {
	return &KafkaSubscriber{
		brokers: cfg.Brokers,
		topic:   topic,
		groupID: cfg.GroupID,
		dialer:  newDialer(cfg.ClientID),
		logger:  logger,
	}
}

// Connect 连接 broker 并加入消费组
func (s *KafkaSubscriber) Connect(ctx context.Context) error {
	if err := pingBrokers(ctx, s.dialer, s.brokers); err != nil {
		return err
	}

	if s.reader == nil {
		s.reader = kafka.NewReader(kafka.ReaderConfig{
			Brokers:     s.brokers,
			GroupID:     s.groupID,
			Topic:       s.topic,
			StartOffset: kafka.LastOffset,
			Dialer:      s.dialer,
		})
	}
	return nil
}

// Consume 循环拉取消息，处理后提交位点；ctx 取消时返回 nil
func (s *KafkaSubscriber) Consume(ctx context.Context, handler Handler) error {
	if s.reader == nil {
		return ErrNotConnected
	}

	for {
		m, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		handler(ctx, &Message{
			Topic:     m.Topic,
			Key:       m.Key,
			Value:     m.Value,
			Partition: m.Partition,
			Offset:    m.Offset,
		})

		// 无论处理结果如何都提交
		if err := s.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Printf("Failed to commit offset %d on partition %d: %v", m.Offset, m.Partition, err)
		}
	}
}

// Close 关闭 reader
func (s *KafkaSubscriber) Close() error {
	if s.reader == nil {
		return nil
	}
	return s.reader.Close()
}

func newDialer(clientID string) *kafka.Dialer {
	return &kafka.Dialer{
		ClientID: clientID,
		Timeout:  10 * time.Second,
	}
}

// pingBrokers 依次尝试连接，任一可达即成功
func pingBrokers(ctx context.Context, dialer *kafka.Dialer, brokers []string) error {
	if len(brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}

	var lastErr error
	for _, addr := range brokers {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = conn.Brokers()
		conn.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("kafka unreachable: %w", lastErr)
}
