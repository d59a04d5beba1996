package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/api/middleware"
	"daily-briefing/backend/internal/dto"
	"daily-briefing/backend/internal/service"
	"daily-briefing/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cfg     *config.AuthConfig
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cfg *config.AuthConfig) *AuthHandler {
	if cfg == nil {
		cfg = &config.AuthConfig{}
	}
	return &AuthHandler{authSvc: authSvc, cfg: cfg}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "账号或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	h.setSessionCookie(c, result.Token, result.ExpiresIn)
	response.OK(c, result)
}

// ListUsers 登录下拉框的账号列表
// GET /api/v1/auth/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authSvc.ListUsers(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, users)
}

// Logout 结束当前会话，令牌随之失效
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sessionID); err != nil {
		response.InternalError(c)
		return
	}

	h.setSessionCookie(c, "", -1)
	response.OK(c, nil)
}

// Me 当前登录用户
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	sessionID, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	me, err := h.authSvc.Me(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.Unauthorized(c, 10002, "会话已结束，请重新登录")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, me)
}

// setSessionCookie 写入会话 Cookie；maxAge < 0 表示删除
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(sameSiteMode(h.cfg.Cookie.SameSite))
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
}

func sameSiteMode(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
