package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"daily-briefing/backend/pkg/response"
)

// RequestIDHeader 请求追踪 ID 的请求/响应头
const RequestIDHeader = "X-Request-ID"

const requestIDMaxLen = 64

// RequestID 请求追踪 ID 中间件
// 沿用上游代理传入的 X-Request-ID；缺失、过长或含非法字符时生成 UUID。
// ID 会写入日志与错误响应，因此只接受 [A-Za-z0-9._-]
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}

		c.Set(response.RequestIDKey, rid)
		c.Header(RequestIDHeader, rid)

		c.Next()
	}
}

// GetRequestID 当前请求的追踪 ID；未经过 RequestID 中间件时为空
func GetRequestID(c *gin.Context) string {
	return c.GetString(response.RequestIDKey)
}

func validRequestID(rid string) bool {
	if rid == "" || len(rid) > requestIDMaxLen {
		return false
	}
	for i := 0; i < len(rid); i++ {
		b := rid[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		case b == '-' || b == '_' || b == '.':
		default:
			return false
		}
	}
	return true
}
