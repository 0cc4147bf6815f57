package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrEmptyPayload 消息体为空
var ErrEmptyPayload = errors.New("empty event payload")

// InteractionEvent 互动事件，发布后不可修改
type InteractionEvent struct {
	ID        string    `json:"id"` // 来源互动 ID
	OwnerID   string    `json:"ownerId"`
	ActorID   string    `json:"actorId"`
	PostID    string    `json:"postId"`
	Type      string    `json:"type"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Marshal 序列化为 JSON
func (e *InteractionEvent) Marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal interaction event: %w", err)
	}
	return data, nil
}

// Parse 解析事件消息体
func Parse(data []byte) (*InteractionEvent, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	var ev InteractionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse interaction event: %w", err)
	}
	return &ev, nil
}
