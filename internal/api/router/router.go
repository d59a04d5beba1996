package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/api/handler"
	"daily-briefing/backend/internal/api/middleware"
	"daily-briefing/backend/internal/service"
	"daily-briefing/backend/pkg/jwt"
	"daily-briefing/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 表示会话存于内存
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, authSvc service.AuthService, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders(cfg.Auth.Cookie.Secure))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		store := "memory"
		if rdb != nil {
			store = "redis"
			if err := rdb.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "session_store": store})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "session_store": store})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.GET("/users", h.Auth.ListUsers)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.SessionAuth(jwtMgr, authSvc, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 宣达信息
			authorized.GET("/meeting/options", h.Meeting.Options)
			authorized.GET("/template", h.Meeting.TemplateStatus)

			// 名单与勾选
			authorized.GET("/roster", h.Roster.List)
			authorized.PUT("/roster/selection/:id", h.Roster.Toggle)
			authorized.POST("/roster/selection/bulk", h.Roster.Bulk)

			// 出席记录
			authorized.POST("/attendance/generate", h.Attendance.Generate)
			authorized.POST("/attendance/export", h.Attendance.Export)
		}
	}

	return r
}
