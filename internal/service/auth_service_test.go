package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"daily-briefing/backend/internal/dto"
	"daily-briefing/backend/pkg/jwt"
)

func TestAuthService_Check(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if !env.svc.Auth.Check(ctx, "alice", "A00001") {
		t.Error("正确密码应通过")
	}
	if !env.svc.Auth.Check(ctx, "bob", "A00002") {
		t.Error("bob 正确密码应通过")
	}

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"密码改一个字", "alice", "A00002"},
		{"密码大小写", "alice", "a00001"},
		{"他人密码", "bob", "A00001"},
		{"未知账号", "nobody", "A00001"},
		{"空密码", "alice", ""},
	}
	for _, tc := range cases {
		if env.svc.Auth.Check(ctx, tc.username, tc.password) {
			t.Errorf("%s: 不应通过", tc.name)
		}
	}
}

func TestAuthService_Check_PepperMatters(t *testing.T) {
	env := newTestEnv()
	other := NewAuthService(env.cfg, env.repo, env.jwtMgr, "test-peppes", zap.NewNop())

	if other.Check(context.Background(), "alice", "A00001") {
		t.Error("pepper 不同时不应通过")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	env := newTestEnv()

	// 密码首尾空白会被去掉
	resp, err := env.svc.Auth.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "  A00001 ",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}
	if resp.User.Username != "alice" || resp.User.Name != "Alice" {
		t.Errorf("用户信息不符: %+v", resp.User)
	}
	if resp.ExpiresIn != int(env.cfg.Auth.SessionTTL.Seconds()) {
		t.Errorf("期望 ExpiresIn=%d，实际=%d", int(env.cfg.Auth.SessionTTL.Seconds()), resp.ExpiresIn)
	}

	claims, err := env.jwtMgr.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("令牌应可解析: %v", err)
	}
	if claims.TokenType != jwt.TokenTypeSession || claims.Username != "alice" {
		t.Errorf("令牌声明不符: %+v", claims)
	}

	// 新会话勾选全员
	session, ok := env.sessions.sessions[claims.SessionID]
	if !ok {
		t.Fatal("登录后应保存会话")
	}
	if session.SelectedCount() != len(env.cfg.Roster.Personnel) {
		t.Errorf("期望全选 %d 人，实际=%d", len(env.cfg.Roster.Personnel), session.SelectedCount())
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Auth.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "A00002"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
	_, err = env.svc.Auth.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "A00001"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知账号期望 ErrInvalidCredentials，实际: %v", err)
	}
	if len(env.sessions.sessions) != 0 {
		t.Error("登录失败不应建立会话")
	}
}

func TestAuthService_Login_SessionStoreFailure(t *testing.T) {
	env := newTestEnv()
	env.sessions.err = errors.New("store down")

	_, err := env.svc.Auth.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "A00001"})
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("存储失败应返回内部错误，实际: %v", err)
	}
}

func TestAuthService_LogoutInvalidatesSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	resp, _ := env.svc.Auth.Login(ctx, &dto.LoginRequest{Username: "bob", Password: "A00002"})
	claims, _ := env.jwtMgr.ParseToken(resp.Token)

	if _, err := env.svc.Auth.ResolveSession(ctx, claims.SessionID); err != nil {
		t.Fatalf("登出前会话应存在: %v", err)
	}
	if err := env.svc.Auth.Logout(ctx, claims.SessionID); err != nil {
		t.Fatalf("Logout 失败: %v", err)
	}
	if _, err := env.svc.Auth.ResolveSession(ctx, claims.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("登出后期望 ErrSessionNotFound，实际: %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	env := newTestEnv()
	s := env.newSession("sess-me")
	s.SetSelected("B00015", false)

	me, err := env.svc.Auth.Me(context.Background(), "sess-me")
	if err != nil {
		t.Fatalf("Me 失败: %v", err)
	}
	if me.User.Username != "alice" || me.SelectedCount != len(env.cfg.Roster.Personnel)-1 {
		t.Errorf("Me 结果不符: %+v", me)
	}

	if _, err := env.svc.Auth.Me(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("期望 ErrSessionNotFound，实际: %v", err)
	}
}

func TestAuthService_ListUsers(t *testing.T) {
	env := newTestEnv()

	users, err := env.svc.Auth.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers 失败: %v", err)
	}
	if len(users) != 2 || users[0].Username != "alice" || users[1].Username != "bob" {
		t.Errorf("期望按配置顺序返回 alice、bob，实际=%+v", users)
	}
}
