package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/dto"
	"daily-briefing/backend/internal/model"
	"daily-briefing/backend/internal/service"
	"daily-briefing/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock AuthService ──

type mockAuthService struct {
	sessions map[string]*model.Session
	err      error
}

func (m *mockAuthService) Check(context.Context, string, string) bool { return false }
func (m *mockAuthService) Login(context.Context, *dto.LoginRequest) (*dto.TokenResponse, error) {
	return nil, nil
}
func (m *mockAuthService) Logout(context.Context, string) error { return nil }
func (m *mockAuthService) Me(context.Context, string) (*dto.MeResponse, error) {
	return nil, nil
}
func (m *mockAuthService) ListUsers(context.Context) ([]dto.UserResponse, error) {
	return nil, nil
}
func (m *mockAuthService) ResolveSession(_ context.Context, id string) (*model.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, service.ErrSessionNotFound
}

func newJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		SessionSecret: "middleware-test-secret-0001",
		SessionTTL:    time.Hour,
	})
}

func newAuthRouter(mgr *jwt.Manager, svc service.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(SessionAuth(mgr, svc, zap.NewNop()))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextKeySessionID)+"|"+c.GetString(ContextKeyUsername))
	})
	return r
}

func TestSessionAuth(t *testing.T) {
	mgr := newJWT()
	svc := &mockAuthService{sessions: map[string]*model.Session{
		"sess-1": {ID: "sess-1", Username: "Min", DisplayName: "Min"},
	}}
	r := newAuthRouter(mgr, svc)

	valid, _, _ := mgr.GenerateSessionToken("sess-1", "Min")
	orphan, _, _ := mgr.GenerateSessionToken("sess-gone", "Min")

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"Bearer 头", "Bearer " + valid, "", http.StatusOK},
		{"Cookie", "", valid, http.StatusOK},
		{"缺少认证", "", "", http.StatusUnauthorized},
		{"格式错误", "Token " + valid, "", http.StatusUnauthorized},
		{"令牌无效", "Bearer not-a-token", "", http.StatusUnauthorized},
		{"会话已删除", "Bearer " + orphan, "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		if tc.cookie != "" {
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tc.cookie})
		}
		r.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Errorf("%s: 期望 %d，实际=%d", tc.name, tc.want, w.Code)
		}
		if tc.want == http.StatusOK && w.Body.String() != "sess-1|Min" {
			t.Errorf("%s: 上下文注入错误: %s", tc.name, w.Body.String())
		}
	}
}

func TestSessionAuth_StoreError(t *testing.T) {
	mgr := newJWT()
	r := newAuthRouter(mgr, &mockAuthService{err: errors.New("redis down")})
	token, _, _ := mgr.GenerateSessionToken("sess-1", "Min")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("会话存储错误期望 500，实际=%d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("应沿用请求头中的 ID，实际=%s", w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 100))
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("过长的 ID 应被替换为 UUID，实际=%s", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc\nlevel=error")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); strings.Contains(got, "level") {
		t.Errorf("含非法字符的 ID 应被替换，实际=%q", got)
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 64))))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("期望 413，实际=%d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("预检期望 204，实际=%d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("允许的来源应回写 Allow-Origin")
	}
	if !strings.Contains(w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition") {
		t.Error("应暴露 Content-Disposition")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("未允许的来源不应回写 Allow-Origin")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("未允许来源的预检期望 403，实际=%d", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	for _, hsts := range []bool{false, true} {
		r := gin.New()
		r.Use(SecurityHeaders(hsts))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Header().Get("Cache-Control") != "no-store" {
			t.Error("响应应禁止缓存")
		}
		if got := w.Header().Get("Strict-Transport-Security") != ""; got != hsts {
			t.Errorf("hsts=%v 时 HSTS 头存在=%v", hsts, got)
		}
	}
}
