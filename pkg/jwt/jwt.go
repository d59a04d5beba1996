package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"daily-briefing/backend/config"
)

const (
	issuer           = "daily-briefing"
	TokenTypeSession = "session"
)

var (
	ErrTokenExpired = errors.New("token 已过期")
	ErrTokenInvalid = errors.New("token 无效")
)

// Claims 会话令牌声明
// 令牌只携带会话 ID，勾选状态等可变数据留在服务端会话中
type Claims struct {
	SessionID string `json:"sid"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwtv5.RegisteredClaims
}

// Manager JWT 管理器
type Manager struct {
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

// NewManager 创建 JWT 管理器
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:     []byte(cfg.SessionSecret),
		sessionTTL: cfg.SessionTTL,
		now:        time.Now,
	}
}

// TTL 会话令牌有效期
func (m *Manager) TTL() time.Duration {
	return m.sessionTTL
}

// GenerateSessionToken 为会话签发令牌，返回令牌与过期时间
func (m *Manager) GenerateSessionToken(sessionID, username string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.sessionTTL)
	claims := Claims{
		SessionID: sessionID,
		Username:  username,
		TokenType: TokenTypeSession,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   username,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(expiresAt),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken 解析并验证 Token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer), jwtv5.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
