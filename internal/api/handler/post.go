package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/debook/internal/api/middleware"
	"github.com/qs3c/debook/internal/model/dto"
	"github.com/qs3c/debook/internal/pkg/response"
	"github.com/qs3c/debook/internal/service"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// Create 发布帖子
// POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	post, err := h.postService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Created(c, dto.NewPostResponse(post))
}

// Get 获取帖子及计数
// GET /api/v1/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, dto.NewPostResponse(post))
}
