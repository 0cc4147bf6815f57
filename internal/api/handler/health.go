package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/debook/internal/pkg/response"
)

// Pinger 依赖健康检查
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc 把函数适配为 Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type HealthHandler struct {
	service string
	checks  map[string]Pinger
}

// NewHealthHandler checks 的 key 是依赖名，例如 database、broker
func NewHealthHandler(service string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		service: service,
		checks:  checks,
	}
}

// Check 健康检查，任一依赖不可用时返回 503
// GET /api/v1/health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	healthy := true
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			deps[name] = "down: " + err.Error()
			healthy = false
			continue
		}
		deps[name] = "up"
	}

	data := gin.H{
		"service":      h.service,
		"dependencies": deps,
	}

	if !healthy {
		data["status"] = "unhealthy"
		response.ErrorWithData(c, response.CodeServiceUnavailable, "", data)
		return
	}

	data["status"] = "ok"
	response.Success(c, data)
}
