package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger 请求日志中间件（基于 Zap 结构化日志）
//
// 不记录请求体与 query 以外的输入，密码不会进入日志。
// 健康检查成功时降为 Debug，避免探针刷屏。
// 下载类响应额外记录文件大小
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", GetRequestID(c)),
		}
		if user := c.GetString(ContextKeyUsername); user != "" {
			fields = append(fields, zap.String("user", user))
		}
		if c.Writer.Header().Get("Content-Disposition") != "" {
			fields = append(fields, zap.Int("bytes", c.Writer.Size()))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		level, msg := requestLogLevel(path, status)
		if ce := logger.Check(level, msg); ce != nil {
			ce.Write(fields...)
		}
	}
}

func requestLogLevel(path string, status int) (zapcore.Level, string) {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel, "请求处理失败"
	case status >= 400:
		return zapcore.WarnLevel, "客户端错误"
	case path == "/health":
		return zapcore.DebugLevel, "健康检查"
	default:
		return zapcore.InfoLevel, "请求完成"
	}
}
