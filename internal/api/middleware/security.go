package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders 安全 HTTP 头中间件
//
// 接口只返回 JSON 与下载文件，CSP 一律 default-src 'none'。
// 名单与出席记录含人员资料，响应一律 no-store。
// hsts=true（部署在 HTTPS 之后、Cookie 设为 Secure）时追加 Strict-Transport-Security
func SecurityHeaders(hsts bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cache-Control", "no-store")
		h.Set("Pragma", "no-cache")
		if hsts {
			h.Set("Strict-Transport-Security", "max-age=31536000")
		}

		c.Next()
	}
}
