package repository

import (
	"context"
	"errors"
	"fmt"

	"daily-briefing/backend/config"
	"daily-briefing/backend/pkg/redis"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User      UserRepository
	Personnel PersonnelRepository
	Session   SessionRepository
	Template  TemplateRepository
}

// NewRepository 创建 Repository 聚合
// rdb 为 nil 时会话保存在进程内存中
func NewRepository(ctx context.Context, cfg *config.Config, rdb *redis.Client) (*Repository, error) {
	tmpl, err := NewTemplateRepo(ctx, &cfg.Template, &cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("初始化范本存储失败: %w", err)
	}

	var sessions SessionRepository
	if rdb != nil {
		sessions = NewRedisSessionRepo(rdb)
	} else {
		sessions = NewMemorySessionRepo()
	}

	return &Repository{
		User:      NewUserRepo(cfg.Auth.Users),
		Personnel: NewPersonnelRepo(&cfg.Roster),
		Session:   sessions,
		Template:  tmpl,
	}, nil
}
