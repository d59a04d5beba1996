package model

// User 静态账号
// 只保存盐值与 hex(SHA-256(pepper+password+salt))，明文密码与 pepper 均不落地
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Salt     string `json:"-"`
	PwHash   string `json:"-"`
}
