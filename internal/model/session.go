package model

import (
	"time"
)

// Session 一次登录的会话状态
// 勾选集合只属于该会话，登录与登出时重置为全选
type Session struct {
	ID          string          `json:"id"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	Selected    map[string]bool `json:"selected"`
	CreatedAt   time.Time       `json:"created_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

// IsSelected 工号是否已勾选
func (s *Session) IsSelected(id string) bool {
	return s.Selected[id]
}

// SetSelected 勾选或取消勾选
func (s *Session) SetSelected(id string, selected bool) {
	if s.Selected == nil {
		s.Selected = make(map[string]bool)
	}
	if selected {
		s.Selected[id] = true
		return
	}
	delete(s.Selected, id)
}

// SelectAll 以给定名单重置为全选
func (s *Session) SelectAll(roster []Personnel) {
	s.Selected = make(map[string]bool, len(roster))
	for _, p := range roster {
		s.Selected[p.ID] = true
	}
}

// SelectedCount 已勾选人数
func (s *Session) SelectedCount() int {
	return len(s.Selected)
}

// Expired 会话在 now 时是否已过期
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Clone 深拷贝，存储层返回副本以免并发请求共享同一个 map
func (s *Session) Clone() *Session {
	c := *s
	c.Selected = make(map[string]bool, len(s.Selected))
	for k, v := range s.Selected {
		c.Selected[k] = v
	}
	return &c
}
