package handler

import (
	"github.com/gin-gonic/gin"

	"daily-briefing/backend/internal/api/middleware"
	"daily-briefing/backend/pkg/response"
)

// MustGetSessionID 从 Gin 上下文中安全提取 session_id。
// 如果认证中间件未正确注入 session_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetSessionID(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.ContextKeySessionID)
}

// MustGetUsername 从 Gin 上下文中安全提取登录账号
func MustGetUsername(c *gin.Context) (string, bool) {
	return mustGetString(c, middleware.ContextKeyUsername)
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}
