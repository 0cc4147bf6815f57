package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs3c/debook/internal/model"
)

type InteractionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// Create 创建互动记录
func (r *InteractionRepository) Create(ctx context.Context, interaction *model.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

// FindByUserPostType 查找用户对帖子的某类互动
func (r *InteractionRepository) FindByUserPostType(ctx context.Context, userID, postID, interactionType string) (*model.Interaction, error) {
	var interaction model.Interaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ? AND type = ?", userID, postID, interactionType).
		First(&interaction).Error
	if err != nil {
		return nil, err
	}
	return &interaction, nil
}

// Delete 删除互动记录
func (r *InteractionRepository) Delete(ctx context.Context, interaction *model.Interaction) error {
	return r.db.WithContext(ctx).Delete(interaction).Error
}

// ListByPost 获取帖子的互动列表，interactionType 为空时不过滤
func (r *InteractionRepository) ListByPost(ctx context.Context, postID, interactionType string, limit int) ([]*model.Interaction, error) {
	var interactions []*model.Interaction

	query := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if interactionType != "" {
		query = query.Where("type = ?", interactionType)
	}

	err := query.Order("created_at DESC").Limit(limit).Find(&interactions).Error
	return interactions, err
}
