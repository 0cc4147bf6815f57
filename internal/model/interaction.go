package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 互动类型
const (
	InteractionLike    = "like"
	InteractionComment = "comment"
)

// IsValidInteractionType 判断互动类型是否合法
func IsValidInteractionType(t string) bool {
	return t == InteractionLike || t == InteractionComment
}

// Interaction 用户对帖子的点赞或评论，同一 (user, post, type) 至多一条
type Interaction struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:uniq_interactions_user_post_type,priority:1;index:idx_interactions_user_post,priority:1" json:"userId"`
	PostID    string    `gorm:"size:36;not null;uniqueIndex:uniq_interactions_user_post_type,priority:2;index:idx_interactions_user_post,priority:2;index:idx_interactions_post_type,priority:1" json:"postId"`
	Type      string    `gorm:"size:20;not null;default:like;uniqueIndex:uniq_interactions_user_post_type,priority:3;index:idx_interactions_post_type,priority:2" json:"type"`
	Content   *string   `gorm:"type:text" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_interactions_created_at" json:"createdAt"`

	// 关联
	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Interaction) TableName() string {
	return "interactions"
}

func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
