package dto

import (
	"time"

	"github.com/qs3c/debook/internal/model"
)

// CreatePostRequest 创建帖子请求
type CreatePostRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}

// PostResponse 帖子及计数
type PostResponse struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	AuthorID      string    `json:"authorId"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewPostResponse(p *model.Post) *PostResponse {
	return &PostResponse{
		ID:            p.ID,
		Content:       p.Content,
		AuthorID:      p.AuthorID,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
