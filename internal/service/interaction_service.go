package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/qs3c/debook/internal/model"
	"github.com/qs3c/debook/internal/pkg/event"
	"github.com/qs3c/debook/internal/repository"
)

// 帖子互动列表的最大条数
const interactionListLimit = 50

// EventEmitter 发布互动事件
type EventEmitter interface {
	Emit(ctx context.Context, ev *event.InteractionEvent) error
}

type InteractionService struct {
	postService     *PostService
	interactionRepo *repository.InteractionRepository
	emitter         EventEmitter
	logger          *log.Logger
}

func NewInteractionService(
	postService *PostService,
	interactionRepo *repository.InteractionRepository,
	emitter EventEmitter,
	logger *log.Logger,
) *InteractionService {
	return &InteractionService{
		postService:     postService,
		interactionRepo: interactionRepo,
		emitter:         emitter,
		logger:          logger,
	}
}

// LikePost 点赞，成功后发布 like 事件
func (s *InteractionService) LikePost(ctx context.Context, postID, userID string) (*model.Interaction, error) {
	post, err := s.postService.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	// 检查是否已点赞
	_, err = s.interactionRepo.FindByUserPostType(ctx, userID, postID, model.InteractionLike)
	if err == nil {
		return nil, ErrAlreadyLiked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	interaction := &model.Interaction{
		UserID: userID,
		PostID: postID,
		Type:   model.InteractionLike,
	}
	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		// 并发点赞越过了预检查
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}

	if err := s.postService.IncrementCounter(ctx, postID, model.FieldLikesCount); err != nil {
		return nil, err
	}

	if err := s.emit(ctx, post, interaction); err != nil {
		return nil, err
	}

	return interaction, nil
}

// UnlikePost 取消点赞，不发布事件
func (s *InteractionService) UnlikePost(ctx context.Context, postID, userID string) error {
	like, err := s.interactionRepo.FindByUserPostType(ctx, userID, postID, model.InteractionLike)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLikeNotFound
		}
		return err
	}

	if err := s.interactionRepo.Delete(ctx, like); err != nil {
		return err
	}

	return s.postService.DecrementCounter(ctx, postID, model.FieldLikesCount)
}

// CommentOnPost 评论，内容去除首尾空白后保存并发布 comment 事件
func (s *InteractionService) CommentOnPost(ctx context.Context, postID, userID, content string) (*model.Interaction, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	post, err := s.postService.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	interaction := &model.Interaction{
		UserID:  userID,
		PostID:  postID,
		Type:    model.InteractionComment,
		Content: &content,
	}
	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		// 同一用户对同一帖子只能有一条评论
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCommented
		}
		return nil, err
	}

	if err := s.postService.IncrementCounter(ctx, postID, model.FieldCommentsCount); err != nil {
		return nil, err
	}

	if err := s.emit(ctx, post, interaction); err != nil {
		return nil, err
	}

	return interaction, nil
}

// GetPostInteractions 获取帖子最近的互动，interactionType 为空时返回全部类型
func (s *InteractionService) GetPostInteractions(ctx context.Context, postID, interactionType string) ([]*model.Interaction, error) {
	if interactionType != "" && !model.IsValidInteractionType(interactionType) {
		return nil, ErrInvalidInteractionType
	}
	return s.interactionRepo.ListByPost(ctx, postID, interactionType, interactionListLimit)
}

// emit 发布事件；数据库写入已提交，发布失败不回滚
func (s *InteractionService) emit(ctx context.Context, post *model.Post, interaction *model.Interaction) error {
	ev := &event.InteractionEvent{
		ID:        interaction.ID,
		OwnerID:   post.AuthorID,
		ActorID:   interaction.UserID,
		PostID:    post.ID,
		Type:      interaction.Type,
		CreatedAt: interaction.CreatedAt,
	}
	if interaction.Content != nil {
		ev.Content = *interaction.Content
	}

	if err := s.emitter.Emit(ctx, ev); err != nil {
		s.logger.Printf("Interaction %s saved but event was not published: %v", interaction.ID, err)
		return fmt.Errorf("failed to publish %s event: %w", interaction.Type, err)
	}
	return nil
}
