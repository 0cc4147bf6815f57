package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/debook/internal/model"
	"github.com/qs3c/debook/internal/pkg/event"
	"github.com/qs3c/debook/internal/pkg/logger"
	"github.com/qs3c/debook/internal/repository"
	"github.com/qs3c/debook/internal/testutil"
)

const longComment = "This is a great post with a lot of interesting content that goes beyond fifty characters"

func setupNotificationService(t *testing.T) (*NotificationService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewNotificationService(repository.NewNotificationRepository(db), logger.Discard())

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func newEvent(eventType, content string) *event.InteractionEvent {
	return &event.InteractionEvent{
		ID:        uuid.New().String(),
		OwnerID:   testutil.NewUserID(),
		ActorID:   testutil.NewUserID(),
		PostID:    uuid.New().String(),
		Type:      eventType,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

func TestGenerateNotificationMessage(t *testing.T) {
	tests := []struct {
		name     string
		ev       *event.InteractionEvent
		expected string
	}{
		{
			name:     "like",
			ev:       newEvent(model.InteractionLike, ""),
			expected: "User liked your post",
		},
		{
			name:     "long comment is truncated",
			ev:       newEvent(model.InteractionComment, longComment),
			expected: `User commented on your post: "This is a great post with a lot of interesting con..."`,
		},
		{
			name:     "short comment",
			ev:       newEvent(model.InteractionComment, "Short comment"),
			expected: `User commented on your post: "Short comment"`,
		},
		{
			name:     "exactly fifty characters",
			ev:       newEvent(model.InteractionComment, strings.Repeat("A", 50)),
			expected: `User commented on your post: "` + strings.Repeat("A", 50) + `"`,
		},
		{
			name:     "fifty one characters",
			ev:       newEvent(model.InteractionComment, strings.Repeat("A", 51)),
			expected: `User commented on your post: "` + strings.Repeat("A", 50) + `..."`,
		},
		{
			name:     "comment without content",
			ev:       newEvent(model.InteractionComment, ""),
			expected: "User commented on your post",
		},
		{
			name:     "multibyte content counts characters",
			ev:       newEvent(model.InteractionComment, strings.Repeat("好", 51)),
			expected: `User commented on your post: "` + strings.Repeat("好", 50) + `..."`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateNotificationMessage(tt.ev))
		})
	}
}

func TestNotificationService_CreateNotification_Like(t *testing.T) {
	service, _, cleanup := setupNotificationService(t)
	defer cleanup()

	ev := newEvent(model.InteractionLike, "")

	notification, err := service.CreateNotification(context.Background(), ev)
	require.NoError(t, err)

	assert.NotEmpty(t, notification.ID)
	assert.Equal(t, ev.OwnerID, notification.UserID)
	assert.Equal(t, ev.ActorID, notification.ActorID)
	assert.Equal(t, ev.PostID, notification.PostID)
	assert.Equal(t, model.InteractionLike, notification.Type)
	assert.Equal(t, model.NotificationPending, notification.Status)
	assert.Equal(t, "User liked your post", notification.Message)
	assert.Equal(t, ev.ID, notification.Metadata.Data().InteractionID)
	assert.Empty(t, notification.Metadata.Data().Content)
}

func TestNotificationService_CreateNotification_CommentKeepsFullContent(t *testing.T) {
	service, _, cleanup := setupNotificationService(t)
	defer cleanup()

	ev := newEvent(model.InteractionComment, longComment)

	notification, err := service.CreateNotification(context.Background(), ev)
	require.NoError(t, err)

	assert.Equal(t, `User commented on your post: "This is a great post with a lot of interesting con..."`, notification.Message)
	assert.Equal(t, longComment, notification.Metadata.Data().Content)
}

func TestNotificationService_CreateNotification_NoDedup(t *testing.T) {
	service, _, cleanup := setupNotificationService(t)
	defer cleanup()

	ev := newEvent(model.InteractionLike, "")

	first, err := service.CreateNotification(context.Background(), ev)
	require.NoError(t, err)
	second, err := service.CreateNotification(context.Background(), ev)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	list, err := service.GetNotifications(context.Background(), ev.OwnerID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestNotificationService_CreateNotification_UnsupportedType(t *testing.T) {
	service, _, cleanup := setupNotificationService(t)
	defer cleanup()

	_, err := service.CreateNotification(context.Background(), newEvent("share", ""))
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestNotificationService_GetNotifications(t *testing.T) {
	service, db, cleanup := setupNotificationService(t)
	defer cleanup()

	owner := testutil.NewUserID()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		testutil.TestNotification(t, db, owner,
			testutil.WithNotificationCreatedAt(base.Add(time.Duration(i)*time.Second)))
	}

	list, err := service.GetNotifications(context.Background(), owner, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 20)
	assert.True(t, list[0].CreatedAt.After(list[19].CreatedAt))

	rest, err := service.GetNotifications(context.Background(), owner, 20, 20)
	require.NoError(t, err)
	assert.Len(t, rest, 5)

	// No upper bound on limit
	all, err := service.GetNotifications(context.Background(), owner, 1000, 0)
	require.NoError(t, err)
	assert.Len(t, all, 25)

	empty, err := service.GetNotifications(context.Background(), testutil.NewUserID(), 20, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	service, _, cleanup := setupNotificationService(t)
	defer cleanup()

	ev := newEvent(model.InteractionLike, "")
	notification, err := service.CreateNotification(context.Background(), ev)
	require.NoError(t, err)

	read, err := service.MarkAsRead(context.Background(), notification.ID, ev.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationRead, read.Status)

	// Idempotent
	again, err := service.MarkAsRead(context.Background(), notification.ID, ev.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, model.NotificationRead, again.Status)
}

func TestNotificationService_MarkAsRead_OtherUser(t *testing.T) {
	service, db, cleanup := setupNotificationService(t)
	defer cleanup()

	owner := testutil.NewUserID()
	notification := testutil.TestNotification(t, db, owner)

	_, err := service.MarkAsRead(context.Background(), notification.ID, testutil.NewUserID())
	assert.True(t, errors.Is(err, ErrNotificationNotFound))

	_, err = service.MarkAsRead(context.Background(), uuid.New().String(), owner)
	assert.True(t, errors.Is(err, ErrNotificationNotFound))

	var stored model.Notification
	require.NoError(t, db.First(&stored, "id = ?", notification.ID).Error)
	assert.Equal(t, model.NotificationPending, stored.Status)
}

func TestNotificationService_GetUnreadCount(t *testing.T) {
	service, db, cleanup := setupNotificationService(t)
	defer cleanup()

	owner := testutil.NewUserID()

	// Freshly created notifications are pending and not counted
	_, err := service.CreateNotification(context.Background(), &event.InteractionEvent{
		ID: uuid.New().String(), OwnerID: owner, ActorID: testutil.NewUserID(),
		PostID: uuid.New().String(), Type: model.InteractionLike, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	testutil.TestNotification(t, db, owner, testutil.WithStatus(model.NotificationRead))

	count, err := service.GetUnreadCount(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	testutil.TestNotification(t, db, owner, testutil.WithStatus(model.NotificationSent))
	testutil.TestNotification(t, db, owner, testutil.WithStatus(model.NotificationSent))

	count, err = service.GetUnreadCount(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
