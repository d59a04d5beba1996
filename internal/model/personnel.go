package model

import "strings"

// 工号前缀，对应名单页的 B / F 筛选
const (
	PrefixB = "B"
	PrefixF = "F"
)

// Personnel 名单中的一位人员
type Personnel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HasPrefix 工号是否以 prefix 开头
func (p Personnel) HasPrefix(prefix string) bool {
	return strings.HasPrefix(p.ID, prefix)
}

// Matches 关键字是否出现在工号或姓名中；空关键字匹配全部
func (p Personnel) Matches(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(p.ID, query) || strings.Contains(p.Name, query)
}

// Spokesman 宣达人及其工号
// 宣达人本人不计入出席名单
type Spokesman struct {
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
}
