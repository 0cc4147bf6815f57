package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/debook/internal/pkg/response"
)

func TestHealthHandler_Check(t *testing.T) {
	up := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name   string
		checks map[string]Pinger
		status int
		code   int
	}{
		{"all up", map[string]Pinger{"database": up, "broker": up}, http.StatusOK, response.CodeSuccess},
		{"broker down", map[string]Pinger{"database": up, "broker": down}, http.StatusServiceUnavailable, response.CodeServiceUnavailable},
		{"no dependencies", map[string]Pinger{}, http.StatusOK, response.CodeSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthHandler("api", tt.checks).Check)

			req := httptest.NewRequest("GET", "/health", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			resp := parseResponse(t, w)
			assert.Equal(t, tt.code, resp.Code)

			data, ok := resp.Data.(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, "api", data["service"])
		})
	}
}
