package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/debook/config"
	"github.com/qs3c/debook/internal/api/handler"
	"github.com/qs3c/debook/internal/api/middleware"
	"github.com/qs3c/debook/internal/pkg/response"
)

// Router 两个服务共用一套路由骨架，未注入的 handler 不注册对应路由
type Router struct {
	postHandler         *handler.PostHandler
	interactionHandler  *handler.InteractionHandler
	notificationHandler *handler.NotificationHandler
	healthHandler       *handler.HealthHandler
	cfg                 *config.Config
}

// NewAPIRouter 帖子与互动服务的路由
func NewAPIRouter(
	postHandler *handler.PostHandler,
	interactionHandler *handler.InteractionHandler,
	healthHandler *handler.HealthHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		postHandler:        postHandler,
		interactionHandler: interactionHandler,
		healthHandler:      healthHandler,
		cfg:                cfg,
	}
}

// NewNotifierRouter 通知服务的路由
func NewNotifierRouter(
	notificationHandler *handler.NotificationHandler,
	healthHandler *handler.HealthHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		notificationHandler: notificationHandler,
		healthHandler:       healthHandler,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	engine.NoRoute(func(c *gin.Context) {
		response.NotFoundError(c, "接口不存在")
	})

	api := engine.Group("/api/v1")
	{
		// 公开接口
		if r.healthHandler != nil {
			api.GET("/health", r.healthHandler.Check)
		}

		// 需要 x-user-id 的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth())
		{
			if r.postHandler != nil {
				authenticated.POST("/posts", r.postHandler.Create)
				authenticated.GET("/posts/:id", r.postHandler.Get)
			}

			// 互动
			if r.interactionHandler != nil {
				interactions := authenticated.Group("/posts/:id")
				{
					interactions.POST("/like", r.interactionHandler.Like)
					interactions.DELETE("/like", r.interactionHandler.Unlike)
					interactions.POST("/comment", r.interactionHandler.Comment)
					interactions.GET("/interactions", r.interactionHandler.List)
				}
			}

			// 通知
			if r.notificationHandler != nil {
				notifications := authenticated.Group("/notifications")
				{
					notifications.GET("", r.notificationHandler.List)
					notifications.GET("/unread/count", r.notificationHandler.UnreadCount)
					notifications.PATCH("/:id/read", r.notificationHandler.MarkAsRead)
				}
			}
		}
	}

	return engine
}
