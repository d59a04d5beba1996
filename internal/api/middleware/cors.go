package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsPolicy 预先拼好的 CORS 响应头
type corsPolicy struct {
	origins map[string]bool
	methods string
	headers string
	expose  string
}

// CORS 跨域中间件
//
// 只对白名单内的 Origin 回写允许头（含 Credentials，浏览器才会带上会话 Cookie）。
// 暴露 Content-Disposition，前端才能读到下载文件名。
// 预检请求直接以 204 结束；来源不在白名单的预检返回 403
func CORS(allowOrigins []string) gin.HandlerFunc {
	p := &corsPolicy{
		origins: make(map[string]bool, len(allowOrigins)),
		methods: strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}, ", "),
		headers: strings.Join([]string{"Content-Type", "Authorization", RequestIDHeader}, ", "),
		expose:  strings.Join([]string{"Content-Disposition", RequestIDHeader}, ", "),
	}
	for _, o := range allowOrigins {
		p.origins[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := origin != "" && p.origins[origin]

		if allowed {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Expose-Headers", p.expose)
		}

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			if !allowed {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Methods", p.methods)
			h.Set("Access-Control-Allow-Headers", p.headers)
			h.Set("Access-Control-Max-Age", "86400")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
