package jwt

import (
	"testing"
	"time"

	"daily-briefing/backend/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		SessionSecret: "test-secret-key-for-unit-testing-2026",
		SessionTTL:    12 * time.Hour,
	})
}

func TestGenerateAndParseSessionToken(t *testing.T) {
	m := newTestManager()

	token, expiresAt, err := m.GenerateSessionToken("sess-1", "Min")
	if err != nil {
		t.Fatalf("GenerateSessionToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.SessionID != "sess-1" {
		t.Errorf("期望 SessionID=sess-1，实际=%s", claims.SessionID)
	}
	if claims.Username != "Min" {
		t.Errorf("期望 Username=Min，实际=%s", claims.Username)
	}
	if claims.TokenType != TokenTypeSession {
		t.Errorf("期望 TokenType=session，实际=%s", claims.TokenType)
	}
	if claims.Issuer != "daily-briefing" {
		t.Errorf("期望 Issuer=daily-briefing，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	// 过期时间约为 12h
	ttl := time.Until(expiresAt)
	if ttl < 11*time.Hour || ttl > 13*time.Hour {
		t.Errorf("会话 TTL 期望约12h，实际=%v", ttl)
	}
	if !claims.ExpiresAt.Time.Equal(expiresAt.Truncate(time.Second)) {
		t.Errorf("令牌过期时间与返回值不一致: %v vs %v", claims.ExpiresAt.Time, expiresAt)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("invalid.token.string")
	if err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		SessionSecret: "different-secret-key-000",
		SessionTTL:    time.Hour,
	})

	token, _, _ := m1.GenerateSessionToken("sess-1", "Min")
	_, err := m2.ParseToken(token)
	if err == nil {
		t.Error("不同密钥签名的 token 不应通过验证")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := newTestManager()
	issued := time.Now().Add(-24 * time.Hour)
	m.now = func() time.Time { return issued }

	token, _, err := m.GenerateSessionToken("sess-1", "Min")
	if err != nil {
		t.Fatalf("GenerateSessionToken 失败: %v", err)
	}

	m.now = time.Now
	_, err = m.ParseToken(token)
	if err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_MissingSessionID(t *testing.T) {
	m := newTestManager()

	token, _, _ := m.GenerateSessionToken("", "Min")
	if _, err := m.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("缺少会话 ID 的 token 应无效，实际: %v", err)
	}
}
