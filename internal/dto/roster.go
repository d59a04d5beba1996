package dto

// ── 名单模块 DTO ──

// 批量操作
const (
	BulkSelectVisible = "select_visible"
	BulkClearVisible  = "clear_visible"
	BulkClearAll      = "clear_all"
)

// RosterFilter 名单筛选条件（query string）
type RosterFilter struct {
	Query     string `form:"query"`
	OnlyB     bool   `form:"only_b"`
	OnlyF     bool   `form:"only_f"`
	Spokesman string `form:"spokesman"`
}

// ToggleSelectionRequest 勾选或取消勾选一人
// EmployeeID 取自路径参数
type ToggleSelectionRequest struct {
	EmployeeID string `json:"-"`
	Selected   *bool  `json:"selected"  binding:"required"`
	Spokesman  string `json:"spokesman"`
}

// BulkSelectionRequest 批量勾选
// 筛选条件决定"目前可见"的范围，clear_all 忽略筛选
type BulkSelectionRequest struct {
	Action    string `json:"action"    binding:"required,oneof=select_visible clear_visible clear_all"`
	Query     string `json:"query"`
	OnlyB     bool   `json:"only_b"`
	OnlyF     bool   `json:"only_f"`
	Spokesman string `json:"spokesman"`
}

// Filter 取出筛选部分
func (r *BulkSelectionRequest) Filter() RosterFilter {
	return RosterFilter{Query: r.Query, OnlyB: r.OnlyB, OnlyF: r.OnlyF, Spokesman: r.Spokesman}
}
