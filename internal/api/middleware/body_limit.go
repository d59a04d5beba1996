package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daily-briefing/backend/pkg/response"
)

// BodyLimit 请求体大小上限
//
// 声明的 Content-Length 超限时直接 413；未声明长度（分块上传）时
// 由 MaxBytesReader 截断，读取超限会让绑定失败并返回 400。
// 接口只收小型 JSON，上限通常为 1 MiB；maxBytes<=0 时不限制
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
