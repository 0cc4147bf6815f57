package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/debook/internal/api/middleware"
	"github.com/qs3c/debook/internal/model/dto"
	"github.com/qs3c/debook/internal/pkg/response"
	"github.com/qs3c/debook/internal/service"
)

type InteractionHandler struct {
	interactionService *service.InteractionService
}

func NewInteractionHandler(interactionService *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		interactionService: interactionService,
	}
}

// Like 点赞
// POST /api/v1/posts/:id/like
func (h *InteractionHandler) Like(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	like, err := h.interactionService.LikePost(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		writeInteractionError(c, err)
		return
	}

	response.Created(c, like)
}

// Unlike 取消点赞
// DELETE /api/v1/posts/:id/like
func (h *InteractionHandler) Unlike(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.interactionService.UnlikePost(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeInteractionError(c, err)
		return
	}

	response.NoContent(c)
}

// Comment 评论
// POST /api/v1/posts/:id/comment
func (h *InteractionHandler) Comment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	comment, err := h.interactionService.CommentOnPost(c.Request.Context(), c.Param("id"), userID, req.Content)
	if err != nil {
		writeInteractionError(c, err)
		return
	}

	response.Created(c, comment)
}

// List 获取帖子互动列表
// GET /api/v1/posts/:id/interactions?type=like|comment
func (h *InteractionHandler) List(c *gin.Context) {
	var query dto.InteractionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	interactions, err := h.interactionService.GetPostInteractions(c.Request.Context(), c.Param("id"), query.Type)
	if err != nil {
		writeInteractionError(c, err)
		return
	}

	response.Success(c, interactions)
}

func writeInteractionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrLikeNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrAlreadyLiked), errors.Is(err, service.ErrAlreadyCommented):
		response.DuplicateError(c, err.Error())
	case errors.Is(err, service.ErrEmptyComment), errors.Is(err, service.ErrInvalidInteractionType):
		response.ParamError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
