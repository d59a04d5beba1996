package dto

// ── 认证模块响应 ──

// TokenResponse 登录成功响应
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // 会话有效期（秒）
	User      UserResponse `json:"user"`
}

// UserResponse 用户信息（不含盐值与哈希）
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// MeResponse 当前登录用户（GET /auth/me）
type MeResponse struct {
	User          UserResponse `json:"user"`
	SelectedCount int          `json:"selected_count"`
	ExpiresAt     string       `json:"expires_at"`
}

// ── 宣达信息响应 ──

// MeetingOptionsResponse 表单下拉与默认值
type MeetingOptionsResponse struct {
	Locations        []string `json:"locations"`
	DefaultLocation  int      `json:"default_location"`
	Spokesmen        []string `json:"spokesmen"`
	DefaultSpokesman string   `json:"default_spokesman"`
	Date             string   `json:"date"`
	TimeRange        string   `json:"time_range"`
}

// TemplateStatusResponse 范本是否可用
type TemplateStatusResponse struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Found  bool   `json:"found"`
}

// ── 名单响应 ──

// RosterEntry 名单中的一位人员及其勾选状态
type RosterEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"` // 宣达人本人，不可勾选
}

// RosterResponse 名单列表
type RosterResponse struct {
	List          []RosterEntry `json:"list"`
	Visible       int           `json:"visible"`
	Total         int           `json:"total"`
	SelectedCount int           `json:"selected_count"`
	SpokesmanID   string        `json:"spokesman_id,omitempty"`
}
