package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs3c/debook/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create 创建通知
func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByUser 获取用户的通知列表，按时间倒序
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Notification, error) {
	var notifications []*model.Notification

	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Offset(offset)
	// limit 为 0 时不限制条数
	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&notifications).Error
	return notifications, err
}

// FindByIDAndUser 查找属于该用户的通知
func (r *NotificationRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// Save 保存通知
func (r *NotificationRepository) Save(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

// CountByStatus 统计用户某状态的通知数
func (r *NotificationRepository) CountByStatus(ctx context.Context, userID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}
