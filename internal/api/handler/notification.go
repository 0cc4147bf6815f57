package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qs3c/debook/internal/api/middleware"
	"github.com/qs3c/debook/internal/model/dto"
	"github.com/qs3c/debook/internal/pkg/response"
	"github.com/qs3c/debook/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List 获取通知列表
// GET /api/v1/notifications?limit=20&offset=0
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var query dto.NotificationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ParamError(c, "limit 和 offset 必须是非负整数")
		return
	}

	notifications, err := h.notificationService.GetNotifications(c.Request.Context(), userID, query.Limit, query.Offset)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, notifications)
}

// UnreadCount 获取未读数
// GET /api/v1/notifications/unread/count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	count, err := h.notificationService.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, dto.UnreadCountResponse{Count: count})
}

// MarkAsRead 标记已读
// PATCH /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id := c.Param("id")
	if err := uuid.Validate(id); err != nil {
		response.ParamError(c, "无效的通知ID")
		return
	}

	notification, err := h.notificationService.MarkAsRead(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, notification)
}
