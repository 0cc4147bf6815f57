package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	var resp Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/test", handler)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSuccess(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Success(c, gin.H{"key": "value"})
	})

	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "success", resp.Message)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", data["key"])
}

func TestSuccess_NilData(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Success(c, nil)
	})

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Nil(t, resp.Data)
}

func TestCreated(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Created(c, gin.H{"id": "abc"})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, CodeSuccess, parseResponse(t, w).Code)
}

func TestNoContent(t *testing.T) {
	w := serve(func(c *gin.Context) {
		NoContent(c)
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(c *gin.Context)
		status  int
		code    int
		message string
	}{
		{"param", func(c *gin.Context) { ParamError(c, "bad limit") }, http.StatusBadRequest, CodeParamError, "bad limit"},
		{"auth", func(c *gin.Context) { AuthError(c, "") }, http.StatusUnauthorized, CodeAuthFailed, "认证失败"},
		{"not found", func(c *gin.Context) { NotFoundError(c, "") }, http.StatusNotFound, CodeResourceNotFound, "资源不存在"},
		{"duplicate", func(c *gin.Context) { DuplicateError(c, "已点赞") }, http.StatusConflict, CodeDuplicateAction, "已点赞"},
		{"server", func(c *gin.Context) { ServerError(c, "") }, http.StatusInternalServerError, CodeServerError, "服务器内部错误"},
		{"unknown code", func(c *gin.Context) { Error(c, 4242, "odd") }, http.StatusInternalServerError, 4242, "odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.fn)

			assert.Equal(t, tt.status, w.Code)
			resp := parseResponse(t, w)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.message, resp.Message)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestErrorWithData(t *testing.T) {
	w := serve(func(c *gin.Context) {
		ErrorWithData(c, CodeServiceUnavailable, "", gin.H{"database": "up", "broker": "down"})
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "服务不可用", resp.Message)
	assert.NotNil(t, resp.Data)
}
