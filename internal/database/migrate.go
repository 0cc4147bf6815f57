package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/qs3c/debook/internal/model"
)

// MigratePosts 帖子服务的表：posts、interactions（外键级联删除）
func MigratePosts(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Post{}, &model.Interaction{}); err != nil {
		return fmt.Errorf("failed to migrate post schema: %w", err)
	}
	return nil
}

// MigrateNotifications 通知服务的表
func MigrateNotifications(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Notification{}); err != nil {
		return fmt.Errorf("failed to migrate notification schema: %w", err)
	}
	return nil
}
