package pubsub

import (
	"context"
	"log"

	"github.com/qs3c/debook/internal/pkg/event"
)

// InteractionProducer 发布互动事件，以帖子 ID 作为消息 key
type InteractionProducer struct {
	pub    Publisher
	logger *log.Logger
}

// NewInteractionProducer 创建事件生产者
func NewInteractionProducer(pub Publisher, logger *log.Logger) *InteractionProducer {
	return &InteractionProducer{pub: pub, logger: logger}
}

// Emit 发布互动事件
func (p *InteractionProducer) Emit(ctx context.Context, ev *event.InteractionEvent) error {
	data, err := ev.Marshal()
	if err != nil {
		p.logger.Printf("Failed to encode %s event %s: %v", ev.Type, ev.ID, err)
		return err
	}

	if err := p.pub.Publish(ctx, ev.PostID, data); err != nil {
		p.logger.Printf("Failed to publish %s event %s for post %s: %v", ev.Type, ev.ID, ev.PostID, err)
		return err
	}

	p.logger.Printf("Published %s event %s for post %s", ev.Type, ev.ID, ev.PostID)
	return nil
}

// Ping 检查事件通道是否可达
func (p *InteractionProducer) Ping(ctx context.Context) error {
	return p.pub.Ping(ctx)
}
