package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/qs3c/debook/internal/model"
)

// NewUserID 生成测试用户 ID（x-user-id 要求 UUID）
func NewUserID() string {
	return uuid.New().String()
}

// TestPost 创建测试帖子
func TestPost(t *testing.T, db *gorm.DB, authorID string, opts ...func(*model.Post)) *model.Post {
	t.Helper()

	post := &model.Post{
		AuthorID: authorID,
		Content:  fmt.Sprintf("Test post %d", time.Now().UnixNano()%10000),
	}

	for _, opt := range opts {
		opt(post)
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}

	return post
}

// WithContent 设置帖子内容
func WithContent(content string) func(*model.Post) {
	return func(p *model.Post) {
		p.Content = content
	}
}

// WithCounters 设置计数
func WithCounters(likes, comments int) func(*model.Post) {
	return func(p *model.Post) {
		p.LikesCount = likes
		p.CommentsCount = comments
	}
}

// TestInteraction 创建测试互动
func TestInteraction(t *testing.T, db *gorm.DB, userID, postID, interactionType string, opts ...func(*model.Interaction)) *model.Interaction {
	t.Helper()

	interaction := &model.Interaction{
		UserID: userID,
		PostID: postID,
		Type:   interactionType,
	}
	if interactionType == model.InteractionComment {
		content := "Test comment"
		interaction.Content = &content
	}

	for _, opt := range opts {
		opt(interaction)
	}

	if err := db.Create(interaction).Error; err != nil {
		t.Fatalf("Failed to create test interaction: %v", err)
	}

	return interaction
}

// WithCreatedAt 固定创建时间，便于断言排序
func WithCreatedAt(createdAt time.Time) func(*model.Interaction) {
	return func(i *model.Interaction) {
		i.CreatedAt = createdAt
	}
}

// TestNotification 创建测试通知
func TestNotification(t *testing.T, db *gorm.DB, userID string, opts ...func(*model.Notification)) *model.Notification {
	t.Helper()

	notification := &model.Notification{
		UserID:  userID,
		ActorID: NewUserID(),
		PostID:  uuid.New().String(),
		Type:    model.InteractionLike,
		Status:  model.NotificationPending,
		Message: "User liked your post",
		Metadata: datatypes.NewJSONType(model.NotificationMetadata{
			InteractionID: uuid.New().String(),
		}),
	}

	for _, opt := range opts {
		opt(notification)
	}

	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("Failed to create test notification: %v", err)
	}

	return notification
}

// WithStatus 设置通知状态
func WithStatus(status string) func(*model.Notification) {
	return func(n *model.Notification) {
		n.Status = status
	}
}

// WithNotificationCreatedAt 固定通知创建时间
func WithNotificationCreatedAt(createdAt time.Time) func(*model.Notification) {
	return func(n *model.Notification) {
		n.CreatedAt = createdAt
	}
}
