package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-briefing/backend/internal/service"
	"daily-briefing/backend/pkg/jwt"
	"daily-briefing/backend/pkg/response"
)

// 注入 gin.Context 的键
const (
	ContextKeySessionID   = "session_id"
	ContextKeyUsername    = "username"
	ContextKeyDisplayName = "display_name"
)

// SessionCookieName 浏览器端保存会话令牌的 Cookie
const SessionCookieName = "session_token"

// SessionAuth 会话认证中间件
// 令牌取自 Authorization: Bearer <token>，缺少时读取 session_token Cookie；
// 令牌有效且对应的会话仍存在才放行
func SessionAuth(jwtMgr *jwt.Manager, authSvc service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			response.Unauthorized(c, 10002, "缺少认证信息")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != jwt.TokenTypeSession {
			response.Unauthorized(c, 10002, "Token 类型无效")
			c.Abort()
			return
		}

		session, err := authSvc.ResolveSession(c.Request.Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				response.Unauthorized(c, 10002, "会话已结束，请重新登录")
			} else {
				logger.Error("读取会话失败", zap.Error(err))
				response.InternalError(c)
			}
			c.Abort()
			return
		}

		c.Set(ContextKeySessionID, session.ID)
		c.Set(ContextKeyUsername, session.Username)
		c.Set(ContextKeyDisplayName, session.DisplayName)

		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}
