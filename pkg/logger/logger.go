package logger

import (
	"errors"
	"fmt"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"daily-briefing/backend/config"
)

// serviceName 写入每条日志的 service 字段
const serviceName = "daily-briefing"

// NewLogger 根据配置初始化 Zap 日志实例
//
// format=console 用于本地开发：彩色级别、不采样。
// 其余均输出 JSON，时间用 ISO8601，并带上 service 字段便于集中检索
func NewLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.Sampling = nil
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "time"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapCfg.InitialFields = map[string]interface{}{"service": serviceName}
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("初始化日志器失败: %w", err)
	}
	return logger, nil
}

// Sync 刷出缓冲日志
// 输出为终端或管道时 fsync 会返回 EINVAL/ENOTTY，这类错误忽略
func Sync(l *zap.Logger) error {
	err := l.Sync()
	if err == nil || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
