package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/qs3c/debook/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create 创建帖子
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID 根据 ID 获取帖子
func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// IncrementCounter 原子更新计数列
func (r *PostRepository) IncrementCounter(ctx context.Context, id, field string, delta int) error {
	if field != model.FieldLikesCount && field != model.FieldCommentsCount {
		return fmt.Errorf("unknown counter field: %q", field)
	}
	return r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).
		Update(field, gorm.Expr(field+" + ?", delta)).Error
}
