package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 通知状态
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationRead    = "read"
)

// NotificationMetadata 记录来源互动，原样保存评论内容
type NotificationMetadata struct {
	InteractionID string `json:"interactionId"`
	Content       string `json:"content,omitempty"`
}

type Notification struct {
	ID        string                                   `gorm:"primaryKey;size:36" json:"id"`
	UserID    string                                   `gorm:"size:36;not null;index:idx_notifications_user_created,priority:1" json:"userId"`
	ActorID   string                                   `gorm:"size:36;not null;index:idx_notifications_actor" json:"actorId"`
	PostID    string                                   `gorm:"size:36;not null;index:idx_notifications_post" json:"postId"`
	Type      string                                   `gorm:"size:20;not null;index:idx_notifications_type" json:"type"`
	Status    string                                   `gorm:"size:20;not null;default:pending;index:idx_notifications_status_created,priority:1" json:"status"`
	Message   string                                   `gorm:"type:text" json:"message"`
	Metadata  datatypes.JSONType[NotificationMetadata] `json:"metadata"`
	CreatedAt time.Time                                `gorm:"index:idx_notifications_user_created,priority:2;index:idx_notifications_status_created,priority:2" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
