package repository

import (
	"context"
	"sync"
	"time"

	"daily-briefing/backend/internal/model"
	"daily-briefing/backend/pkg/redis"
)

// SessionRepository 会话存储接口
// Get 返回副本；修改后需调用 Save 写回
type SessionRepository interface {
	Save(ctx context.Context, s *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

// ── 进程内实现 ──

// memorySessionRepo 单实例部署使用；过期会话在访问与写入时清理
type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	now      func() time.Time
}

// NewMemorySessionRepo 创建进程内 SessionRepository
func NewMemorySessionRepo() SessionRepository {
	return &memorySessionRepo{
		sessions: make(map[string]*model.Session),
		now:      time.Now,
	}
}

func (r *memorySessionRepo) Save(_ context.Context, s *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, existing := range r.sessions {
		if existing.Expired(now) {
			delete(r.sessions, id)
		}
	}
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *memorySessionRepo) Get(_ context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.Expired(r.now()) {
		delete(r.sessions, id)
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (r *memorySessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// ── Redis 实现 ──

// redisSessionRepo 多实例部署时共享会话，过期交给 Redis TTL
type redisSessionRepo struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedisSessionRepo 创建基于 Redis 的 SessionRepository
func NewRedisSessionRepo(rdb *redis.Client) SessionRepository {
	return &redisSessionRepo{rdb: rdb, now: time.Now}
}

func (r *redisSessionRepo) Save(ctx context.Context, s *model.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.rdb.Delete(ctx, redis.SessionKey(s.ID))
	}
	return r.rdb.SetJSON(ctx, redis.SessionKey(s.ID), s, ttl)
}

func (r *redisSessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	var s model.Session
	found, err := r.rdb.GetJSON(ctx, redis.SessionKey(id), &s)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	if s.Selected == nil {
		s.Selected = make(map[string]bool)
	}
	return &s, nil
}

func (r *redisSessionRepo) Delete(ctx context.Context, id string) error {
	return r.rdb.Delete(ctx, redis.SessionKey(id))
}
