// Package password 实现账号表使用的加盐加胡椒 SHA-256 口令哈希。
//
// 哈希公式：hex(SHA256(pepper + password + salt))
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
)

// SaltLength 新建账号时默认的 salt 长度
const SaltLength = 10

const saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Hash 计算 pepper‖password‖salt 的 SHA-256 十六进制摘要
func Hash(pepper, password, salt string) string {
	sum := sha256.Sum256([]byte(pepper + password + salt))
	return hex.EncodeToString(sum[:])
}

// Verify 比较计算出的摘要与存储值，恒定时间比较
func Verify(pepper, password, salt, storedHex string) bool {
	calc := Hash(pepper, password, salt)
	return subtle.ConstantTimeCompare([]byte(calc), []byte(storedHex)) == 1
}

// NewSalt 生成 n 位字母数字随机 salt
func NewSalt(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("salt 长度必须大于 0")
	}
	max := big.NewInt(int64(len(saltAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("生成 salt 失败: %w", err)
		}
		b[i] = saltAlphabet[idx.Int64()]
	}
	return string(b), nil
}
