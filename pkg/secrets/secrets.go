// Package secrets 按顺序从多个来源解析机密值（环境变量 → secrets 文件 → 内置兜底）。
package secrets

import (
	"os"

	"github.com/joho/godotenv"
)

// PepperKey 环境变量与 secrets 文件中 pepper 的键名
const PepperKey = "PEPPER"

// Source 单一机密来源
type Source interface {
	Lookup(key string) (string, bool)
}

// EnvSource 读取进程环境变量
type EnvSource struct{}

// Lookup 实现 Source
func (EnvSource) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// FileSource 读取 KEY=VALUE 格式的 secrets 文件
// 文件不存在或无法解析时视为没有该键
type FileSource struct {
	Path string
}

// Lookup 实现 Source
func (f FileSource) Lookup(key string) (string, bool) {
	if f.Path == "" {
		return "", false
	}
	values, err := godotenv.Read(f.Path)
	if err != nil {
		return "", false
	}
	v, ok := values[key]
	return v, ok
}

// MapSource 内存来源，主要用于测试
type MapSource map[string]string

// Lookup 实现 Source
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Resolve 返回第一个非空值；全部为空时返回 fallback
func Resolve(key, fallback string, sources ...Source) string {
	for _, src := range sources {
		if v, ok := src.Lookup(key); ok && v != "" {
			return v
		}
	}
	return fallback
}

// ResolvePepper 按 环境变量 PEPPER → secrets 文件 → fallback 的顺序解析 pepper
func ResolvePepper(secretsFile, fallback string) string {
	return Resolve(PepperKey, fallback, EnvSource{}, FileSource{Path: secretsFile})
}
