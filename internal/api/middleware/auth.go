package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/qs3c/debook/internal/pkg/response"
)

const (
	UserIDHeader = "x-user-id"
	UserIDKey    = "userID"
)

var validate = validator.New()

// Auth 从 x-user-id 请求头识别用户，要求是 UUID
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			response.AuthError(c, "请提供 x-user-id")
			return
		}

		if err := validate.Var(userID, "uuid"); err != nil {
			response.AuthError(c, "x-user-id 格式错误")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}
