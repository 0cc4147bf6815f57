package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 计数字段，只允许通过原子加减修改
const (
	FieldLikesCount    = "likes_count"
	FieldCommentsCount = "comments_count"
)

type Post struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	AuthorID      string    `gorm:"size:36;not null;index:idx_posts_author_id" json:"authorId"`
	LikesCount    int       `gorm:"not null;default:0" json:"likesCount"`
	CommentsCount int       `gorm:"not null;default:0" json:"commentsCount"`
	CreatedAt     time.Time `gorm:"index:idx_posts_created_at" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
