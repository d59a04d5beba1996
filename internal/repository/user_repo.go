package repository

import (
	"context"

	"daily-briefing/backend/config"
	"daily-briefing/backend/internal/model"
)

// UserRepository 账号数据访问接口
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// userRepo UserRepository 的静态实现，数据来自启动时加载的配置
type userRepo struct {
	users []model.User
	index map[string]int
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(users []config.UserConfig) UserRepository {
	r := &userRepo{
		users: make([]model.User, 0, len(users)),
		index: make(map[string]int, len(users)),
	}
	for _, u := range users {
		r.index[u.Username] = len(r.users)
		name := u.Name
		if name == "" {
			name = u.Username
		}
		r.users = append(r.users, model.User{
			Username: u.Username,
			Name:     name,
			Salt:     u.Salt,
			PwHash:   u.PwHash,
		})
	}
	return r
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	i, ok := r.index[username]
	if !ok {
		return nil, ErrNotFound
	}
	u := r.users[i]
	return &u, nil
}

func (r *userRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out, nil
}
