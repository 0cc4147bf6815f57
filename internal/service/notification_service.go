package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/qs3c/debook/internal/model"
	"github.com/qs3c/debook/internal/pkg/event"
	"github.com/qs3c/debook/internal/repository"
)

const (
	defaultNotificationLimit = 20
	commentPreviewLength     = 50
)

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	logger           *log.Logger
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, logger *log.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// CreateNotification 根据互动事件为帖子作者生成通知，不去重
func (s *NotificationService) CreateNotification(ctx context.Context, ev *event.InteractionEvent) (*model.Notification, error) {
	if !model.IsValidInteractionType(ev.Type) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ev.Type)
	}

	s.logger.Printf("Creating notification for user %s from actor %s type %s", ev.OwnerID, ev.ActorID, ev.Type)

	notification := &model.Notification{
		UserID:  ev.OwnerID,
		ActorID: ev.ActorID,
		PostID:  ev.PostID,
		Type:    ev.Type,
		Status:  model.NotificationPending,
		Message: GenerateNotificationMessage(ev),
		Metadata: datatypes.NewJSONType(model.NotificationMetadata{
			InteractionID: ev.ID,
			Content:       ev.Content,
		}),
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification, nil
}

// GenerateNotificationMessage 生成通知文案，评论预览按字符截断
func GenerateNotificationMessage(ev *event.InteractionEvent) string {
	switch ev.Type {
	case model.InteractionLike:
		return "User liked your post"
	case model.InteractionComment:
		if ev.Content == "" {
			return "User commented on your post"
		}
		preview := ev.Content
		if runes := []rune(preview); len(runes) > commentPreviewLength {
			preview = string(runes[:commentPreviewLength]) + "..."
		}
		return `User commented on your post: "` + preview + `"`
	default:
		return "You have a new notification"
	}
}

// GetNotifications 获取通知列表，按时间倒序
func (s *NotificationService) GetNotifications(ctx context.Context, userID string, limit, offset int) ([]*model.Notification, error) {
	if limit < 0 {
		limit = defaultNotificationLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.notificationRepo.ListByUser(ctx, userID, limit, offset)
}

// MarkAsRead 标记已读，只能操作自己的通知；重复标记无副作用
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID string) (*model.Notification, error) {
	notification, err := s.notificationRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	notification.Status = model.NotificationRead
	if err := s.notificationRepo.Save(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// GetUnreadCount 统计未读数
// 这里统计的是 sent 状态，而通知创建后是 pending，目前没有流程把状态改为 sent
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.CountByStatus(ctx, userID, model.NotificationSent)
}
