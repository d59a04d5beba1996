package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/dto"
	"daily-briefing/backend/internal/model"
	"daily-briefing/backend/internal/repository"
	"daily-briefing/backend/pkg/jwt"
	"daily-briefing/backend/pkg/password"
)

var (
	ErrInvalidCredentials = errors.New("账号或密码错误")
	ErrSessionNotFound    = errors.New("会话不存在或已过期")
)

// AuthService 认证业务接口
type AuthService interface {
	// Check 账号存在且 SHA-256(pepper+password+salt) 与存储的哈希一致时返回 true
	Check(ctx context.Context, username, password string) bool
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, sessionID string) (*dto.MeResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	// ResolveSession 供认证中间件按令牌中的会话 ID 取回会话
	ResolveSession(ctx context.Context, sessionID string) (*model.Session, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	pepper string
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	pepper string,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		pepper: pepper,
		logger: logger,
		now:    time.Now,
	}
}

func (s *authService) Check(ctx context.Context, username, pw string) bool {
	user, err := s.repo.User.GetByUsername(ctx, username)
	if err != nil {
		return false
	}
	return password.Verify(s.pepper, pw, user.Salt, user.PwHash)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 校验账号密码（密码去掉首尾空白）
	if !s.Check(ctx, req.Username, strings.TrimSpace(req.Password)) {
		s.logger.Info("登录失败", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. 新建会话，勾选状态重置为全选
	roster, err := s.repo.Personnel.List(ctx)
	if err != nil {
		s.logger.Error("读取名单失败", zap.Error(err))
		return nil, err
	}
	now := s.now()
	session := &model.Session{
		ID:          uuid.New().String(),
		Username:    user.Username,
		DisplayName: user.Name,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.jwtMgr.TTL()),
	}
	session.SelectAll(roster)

	// 3. 签发令牌
	token, expiresAt, err := s.jwtMgr.GenerateSessionToken(session.ID, user.Username)
	if err != nil {
		s.logger.Error("生成会话令牌失败", zap.Error(err))
		return nil, err
	}
	session.ExpiresAt = expiresAt

	if err := s.repo.Session.Save(ctx, session); err != nil {
		s.logger.Error("保存会话失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("登录成功", zap.String("username", user.Username))

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int(s.jwtMgr.TTL().Seconds()),
		User:      dto.UserResponse{Username: user.Username, Name: user.Name},
	}, nil
}

// Logout 删除会话；之后该会话的令牌一律被拒绝，再次登录时勾选重置为全选
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.repo.Session.Delete(ctx, sessionID); err != nil {
		s.logger.Error("删除会话失败", zap.String("session_id", sessionID), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, sessionID string) (*dto.MeResponse, error) {
	session, err := s.ResolveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		User:          dto.UserResponse{Username: session.Username, Name: session.DisplayName},
		SelectedCount: session.SelectedCount(),
		ExpiresAt:     session.ExpiresAt.Format(time.RFC3339),
	}, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserResponse{Username: u.Username, Name: u.Name})
	}
	return out, nil
}

func (s *authService) ResolveSession(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.repo.Session.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("读取会话失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	return session, nil
}
